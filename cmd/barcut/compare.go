package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/report"
)

var (
	compareProfile profileFlags
	compareLengths []float64
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <job-file|cut-list>",
	Short: "Compare bar lengths for each profile",
	Long: `Plan every profile of a job against several bar lengths and show bars
used, efficiency, leftovers and cost for each. The best candidate (fewest
bars, then least scrap) is marked with *.

Without --lengths the candidates are 6000 mm, 6200 mm and the profile's own
bar length.`,
	Example: `  barcut compare job.yaml
  barcut compare cuts.csv --code HOJA-20 --lengths 5800,6000,6200`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadSettings()
		if err := checkProfileValues(compareProfile.weight, compareProfile.bar, compareProfile.price); err != nil {
			return err
		}
		job, err := loadJob(args[0], compareProfile.base(cmd, cfg))
		if err != nil {
			return err
		}

		for i, p := range job.Profiles {
			lengths := compareLengths
			if len(lengths) == 0 {
				lengths = engine.DefaultBarLengths(p)
			}
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			if err := report.RenderComparison(os.Stdout, p, engine.CompareBarLengths(p, lengths)); err != nil {
				return fmt.Errorf("failed to write comparison: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareProfile.register(compareCmd)
	compareCmd.Flags().Float64SliceVar(&compareLengths, "lengths", nil, "Candidate bar lengths in mm (comma-separated)")
}
