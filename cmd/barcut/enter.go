package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/form"
	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

var (
	enterExport     exportFlags
	enterSave       string
	enterName       string
	enterAccessible bool
)

// enterCmd represents the enter command
var enterCmd = &cobra.Command{
	Use:   "enter",
	Short: "Enter profiles interactively, then plan them",
	Long: `Prompt for one profile at a time: code, weight, bar length, price and
each cut type with its adjustment, quantity and angle. After each profile
choose whether to enter another. The finished job is planned and reported
like "barcut plan".`,
	Example: `  barcut enter --pdf plan.pdf --save job.barcut`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadSettings()

		catalog, _, err := project.LoadOrCreateCatalog()
		if err != nil {
			slog.Warn("failed to load catalog", "error", err)
			catalog = model.Catalog{}
		}

		session := form.NewSession(cfg, catalog, os.Stderr, enterAccessible)
		profiles, err := session.Run(cmd.Context())
		if errors.Is(err, form.ErrAborted) && len(profiles) == 0 {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return nil
		}
		if err != nil && !errors.Is(err, form.ErrAborted) {
			return err
		}

		job := model.NewJob(enterName)
		for _, p := range profiles {
			job.Add(p)
		}
		return planAndReport(cmd.Context(), job, workersFlag(cmd, cfg), cfg, enterExport, enterSave)
	},
}

func init() {
	rootCmd.AddCommand(enterCmd)

	enterExport.register(enterCmd)
	enterCmd.Flags().Int("workers", 1, "Profiles planned in parallel")
	enterCmd.Flags().StringVar(&enterSave, "save", "", "Save the job to this file (.barcut, .json or .yaml)")
	enterCmd.Flags().StringVar(&enterName, "name", "Untitled job", "Job name stored in the saved file")
	enterCmd.Flags().BoolVar(&enterAccessible, "accessible", false, "Plain line-by-line prompts for screen readers")
}
