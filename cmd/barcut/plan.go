package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/export"
	"github.com/piwi3910/BarCut/internal/importer"
	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
	"github.com/piwi3910/BarCut/internal/report"
)

// profileFlags describe the profile a bare cut list is planned against.
type profileFlags struct {
	code   string
	weight float64
	bar    float64 // mm
	price  float64
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "Profile code for CSV/XLSX cut lists (catalog values are used when it matches)")
	cmd.Flags().Float64Var(&f.weight, "weight", 0, "Profile weight in kg/m")
	cmd.Flags().Float64Var(&f.bar, "bar", 0, "Bar length in mm (default from config)")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Aluminum price per kg")
}

// checkProfileValues rejects weights, bar lengths and prices that cannot
// be planned or priced.
func checkProfileValues(weight, bar, price float64) error {
	for _, v := range []float64{weight, bar, price} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%v is not a number", v)
		}
	}
	if weight < 0 || price < 0 {
		return fmt.Errorf("weight and price must not be negative")
	}
	if bar < 0 {
		return fmt.Errorf("bar length must not be negative")
	}
	return nil
}

// base builds the profile that imported cut groups are added to. Values
// come from the catalog entry matching --code, then the config defaults,
// and explicit flags win over both.
func (f *profileFlags) base(cmd *cobra.Command, cfg model.AppConfig) model.Profile {
	p := cfg.NewProfile(f.code)
	if f.code != "" {
		if catalog, _, err := project.LoadOrCreateCatalog(); err != nil {
			slog.Warn("failed to load catalog", "error", err)
		} else if e := catalog.FindByCode(f.code); e != nil {
			p = e.ToProfile()
			slog.Debug("using catalog entry", "code", e.Code)
		}
	}
	if cmd.Flags().Changed("weight") {
		p.WeightPerMeter = f.weight
	}
	if cmd.Flags().Changed("bar") {
		p.BarLength = f.bar
	}
	if cmd.Flags().Changed("price") {
		p.PricePerKg = f.price
	}
	return p
}

// exportFlags select the report files written after planning.
type exportFlags struct {
	pdf       string
	xlsx      string
	dxf       string
	labels    string
	title     string
	logo      string
	leftovers bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "Write the PDF report to this file")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "Write the XLSX workbook to this file")
	cmd.Flags().StringVar(&f.dxf, "dxf", "", "Write the DXF bar diagram to this file")
	cmd.Flags().StringVar(&f.labels, "labels", "", "Write QR cut labels (Avery 5160) to this PDF file")
	cmd.Flags().StringVar(&f.title, "title", "", "PDF report title")
	cmd.Flags().StringVar(&f.logo, "logo", "", "Logo image drawn on every PDF page (default from config)")
	cmd.Flags().BoolVar(&f.leftovers, "leftovers", false, "List reusable leftovers after the report")
}

func (f *exportFlags) write(cfg model.AppConfig, results []model.ProfileResult) error {
	logo := f.logo
	if logo == "" {
		logo = cfg.LogoPath
	}

	if f.pdf != "" {
		path := outputPath(cfg, f.pdf)
		if err := export.ExportPDF(path, results, export.PDFOptions{Title: f.title, LogoPath: logo}); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		slog.Info("PDF report written", "path", path)
	}
	if f.xlsx != "" {
		path := outputPath(cfg, f.xlsx)
		if err := export.ExportXLSX(path, results); err != nil {
			return fmt.Errorf("failed to write XLSX: %w", err)
		}
		slog.Info("XLSX workbook written", "path", path)
	}
	if f.dxf != "" {
		path := outputPath(cfg, f.dxf)
		if err := export.ExportDXF(path, results); err != nil {
			return fmt.Errorf("failed to write DXF: %w", err)
		}
		slog.Info("DXF drawing written", "path", path)
	}
	if f.labels != "" {
		path := outputPath(cfg, f.labels)
		if err := export.ExportLabels(path, results); err != nil {
			return fmt.Errorf("failed to write labels: %w", err)
		}
		slog.Info("labels written", "path", path)
	}
	return nil
}

var (
	planProfile profileFlags
	planExport  exportFlags
	planSave    string
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <job-file|cut-list>",
	Short: "Plan the cuts of a job and print the report",
	Long: `Load a job file (.barcut, .json, .yaml) or a cut list (.csv, .xlsx),
plan every profile and print the cutting report.

Cut lists hold one profile's cuts. Give the profile with --code and, unless
the code is in the catalog, --weight, --bar and --price. A cut list with a
profile column produces one profile per code.`,
	Example: `  barcut plan job.yaml
  barcut plan cuts.csv --code MARCO-20 --price 4.5 --pdf plan.pdf
  barcut plan job.barcut --workers 4 --xlsx plan.xlsx --dxf plan.dxf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadSettings()
		if err := checkProfileValues(planProfile.weight, planProfile.bar, planProfile.price); err != nil {
			return err
		}
		job, err := loadJob(args[0], planProfile.base(cmd, cfg))
		if err != nil {
			return err
		}
		return planAndReport(cmd.Context(), job, workersFlag(cmd, cfg), cfg, planExport, planSave)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planProfile.register(planCmd)
	planExport.register(planCmd)
	planCmd.Flags().Int("workers", 1, "Profiles planned in parallel")
	planCmd.Flags().StringVar(&planSave, "save", "", "Save the job to this file (.barcut, .json or .yaml)")
}

// loadJob reads a job file, or imports a cut list against base.
func loadJob(path string, base model.Profile) (model.Job, error) {
	if project.IsJobFile(path) {
		job, err := project.Load(path)
		if err != nil {
			return model.Job{}, fmt.Errorf("failed to load job: %w", err)
		}
		slog.Debug("job loaded", "path", path, "profiles", len(job.Profiles))
		return job, nil
	}

	result := importer.ImportFile(path)
	for _, w := range result.Warnings {
		slog.Warn(w, "file", path)
	}
	for _, e := range result.Errors {
		slog.Warn("skipped row", "file", path, "error", e)
	}
	if len(result.Rows) == 0 {
		return model.Job{}, fmt.Errorf("no cuts imported from %s", path)
	}

	profiles := result.ToProfiles(base)
	for _, p := range profiles {
		if strings.TrimSpace(p.Code) == "" {
			return model.Job{}, fmt.Errorf("cut list %s has no profile code: use --code", path)
		}
	}

	job := model.NewJob(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	for _, p := range profiles {
		job.Add(p)
	}
	slog.Debug("cut list imported", "path", path, "rows", len(result.Rows), "profiles", len(profiles))
	return job, nil
}

// planAndReport plans the job, prints the report, writes the requested
// exports and optionally saves the job. Profiles that fail validation are
// reported and make the command exit non-zero.
func planAndReport(ctx context.Context, job model.Job, workers int, cfg model.AppConfig, ex exportFlags, savePath string) error {
	results, err := engine.PlanJob(ctx, job.Profiles, engine.Options{Workers: workers, Logger: slog.Default()})
	if err != nil {
		return fmt.Errorf("planning cancelled: %w", err)
	}

	if err := report.Render(os.Stdout, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if ex.leftovers {
		if err := report.RenderLeftovers(os.Stdout, model.CollectAllLeftovers(results)); err != nil {
			return fmt.Errorf("failed to write leftovers: %w", err)
		}
	}

	if err := ex.write(cfg, results); err != nil {
		return err
	}

	if savePath != "" {
		if err := project.Save(savePath, job); err != nil {
			return fmt.Errorf("failed to save job: %w", err)
		}
		slog.Info("job saved", "path", savePath)
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles could not be planned", failed, len(results))
	}
	return nil
}
