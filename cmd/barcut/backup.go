package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/project"
)

func init() {
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newRestoreCmd())
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "backup <file>",
		Short:   "Back up the app config and catalog to one file",
		Example: `  barcut backup barcut-backup.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			catalog, _, err := project.LoadOrCreateCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			if err := project.ExportAllData(args[0], cfg, catalog); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			fmt.Printf("✓ Backup written to %s\n", args[0])
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "restore <file>",
		Short:   "Restore the app config and catalog from a backup",
		Example: `  barcut restore barcut-backup.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}
			if err := project.SaveAppConfig(project.DefaultConfigPath(), data.Config); err != nil {
				return fmt.Errorf("failed to restore config: %w", err)
			}
			if err := project.SaveCatalog(project.DefaultCatalogPath(), data.Catalog); err != nil {
				return fmt.Errorf("failed to restore catalog: %w", err)
			}
			fmt.Printf("✓ Restored %d catalog profiles from backup of %s\n", len(data.Catalog.Entries), data.CreatedAt)
			return nil
		},
	}
}
