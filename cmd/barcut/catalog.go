package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

// catalogCmd groups the profile catalog subcommands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the profile catalog",
	Long: `The catalog stores profile presets (code, kg/m, bar length, price/kg)
in ~/.barcut/catalog.json. Presets fill in cut lists planned with --code
and are offered by "barcut enter".`,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(newCatalogListCmd())
	catalogCmd.AddCommand(newCatalogAddCmd())
	catalogCmd.AddCommand(newCatalogRemoveCmd())
	catalogCmd.AddCommand(newCatalogImportCmd())
	catalogCmd.AddCommand(newCatalogExportCmd())
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List catalog profiles",
		Example: `  barcut catalog list`,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			catalog, _, err := project.LoadOrCreateCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			if len(catalog.Entries) == 0 {
				fmt.Println("Catalog is empty.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			if _, err := fmt.Fprintln(w, "CODE\tKG/M\tBAR (MM)\tPRICE/KG\tDESCRIPTION"); err != nil {
				return fmt.Errorf("failed to write header: %w", err)
			}
			for _, e := range catalog.Entries {
				if _, err := fmt.Fprintf(w, "%s\t%.3f\t%.0f\t%s\t%s\n",
					e.Code,
					e.WeightPerMeter,
					e.BarLength,
					model.FormatMoney(e.PricePerKg),
					e.Description,
				); err != nil {
					return fmt.Errorf("failed to write entry: %w", err)
				}
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to flush writer: %w", err)
			}
			return nil
		},
	}
}

func newCatalogAddCmd() *cobra.Command {
	var (
		description string
		weight      float64
		bar         float64
		price       float64
	)
	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add or replace a catalog profile",
		Example: `  barcut catalog add MARCO-30 --weight 0.81 --bar 6000 --price 4.2
  barcut catalog add TUBO-40x20 --price 5 --description "Rectangular tube"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := checkProfileValues(weight, bar, price); err != nil {
				return err
			}
			if bar == 0 {
				return fmt.Errorf("bar length must be greater than zero")
			}

			catalog, path, err := project.LoadOrCreateCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			catalog.Upsert(model.NewCatalogEntry(args[0], description, weight, bar, price))
			if err := project.SaveCatalog(path, catalog); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}
			fmt.Printf("✓ %s saved to %s\n", args[0], path)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Profile weight in kg/m")
	cmd.Flags().Float64Var(&bar, "bar", model.DefaultBarLengthMM, "Bar length in mm")
	cmd.Flags().Float64Var(&price, "price", 0, "Aluminum price per kg")
	return cmd
}

func newCatalogRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <code>",
		Short:   "Remove a catalog profile",
		Example: `  barcut catalog remove ANG-25`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			catalog, path, err := project.LoadOrCreateCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			if !catalog.Remove(args[0]) {
				return fmt.Errorf("profile %q is not in the catalog", args[0])
			}
			if err := project.SaveCatalog(path, catalog); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}
			fmt.Printf("✓ %s removed\n", args[0])
			return nil
		},
	}
}

func newCatalogImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "import <file>",
		Short:   "Merge profiles from another catalog file",
		Long:    `Add the profiles of a catalog JSON file. Codes already in the catalog are kept unchanged.`,
		Example: `  barcut catalog import shop-catalog.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			catalog, path, err := project.LoadOrCreateCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			merged, added, err := project.ImportCatalog(args[0], catalog)
			if err != nil {
				return fmt.Errorf("failed to import catalog: %w", err)
			}
			if err := project.SaveCatalog(path, merged); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}
			fmt.Printf("✓ %d profiles added\n", added)
			return nil
		},
	}
}

func newCatalogExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "export <file>",
		Short:   "Write the catalog to a file",
		Example: `  barcut catalog export shop-catalog.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			catalog, _, err := project.LoadOrCreateCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			if err := project.SaveCatalog(args[0], catalog); err != nil {
				return fmt.Errorf("failed to export catalog: %w", err)
			}
			fmt.Printf("✓ %d profiles written to %s\n", len(catalog.Entries), args[0])
			return nil
		},
	}
}
