package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/export"
	"github.com/piwi3910/BarCut/internal/form"
	"github.com/piwi3910/BarCut/internal/importer"
	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
	"github.com/piwi3910/BarCut/internal/report"
	"github.com/piwi3910/BarCut/internal/ui/widgets"
)

const maxRecentJobs = 10

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	job     model.Job
	jobPath string
	results []model.ProfileResult // nil until planned, reset on every edit
	history *History
	theme   *BarCutTheme

	config      model.AppConfig
	catalog     model.Catalog
	catalogPath string

	tabs *container.AppTabs

	// UI references for dynamic updates
	profilesContainer *fyne.Container
	resultContainer   *fyne.Container
	mainMenu          *fyne.MainMenu
	undoItem          *fyne.MenuItem
	redoItem          *fyne.MenuItem
	recentMenu        *fyne.Menu
}

func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		slog.Warn("failed to load app config, using defaults", "error", err)
		cfg = model.DefaultAppConfig()
	}
	catalog, catalogPath, err := project.LoadOrCreateCatalog()
	if err != nil {
		slog.Warn("failed to load catalog", "error", err)
		catalog = model.DefaultCatalog()
	}

	a := &App{
		app:         application,
		window:      window,
		job:         model.NewJob("Untitled job"),
		history:     NewHistory(),
		theme:       NewBarCutThemeFor(cfg.Theme),
		config:      cfg,
		catalog:     catalog,
		catalogPath: catalogPath,
	}
	application.Settings().SetTheme(a.theme)
	return a
}

// SetupMenus creates the native menu bar and keyboard shortcuts.
func (a *App) SetupMenus() {
	a.recentMenu = fyne.NewMenu("")
	recentItem := fyne.NewMenuItem("Open Recent", nil)
	recentItem.ChildMenu = a.recentMenu
	a.refreshRecentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Job", func() {
			a.newJob()
		}),
		fyne.NewMenuItem("Open Job...", func() {
			a.openJob()
		}),
		recentItem,
		fyne.NewMenuItem("Save Job", func() {
			a.saveJob()
		}),
		fyne.NewMenuItem("Save Job As...", func() {
			a.saveJobAs()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Cut List (CSV/Excel)...", func() {
			a.importCutList()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Spreadsheet...", func() {
			a.exportXLSX()
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItem("Export Cut Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	a.undoItem = fyne.NewMenuItem("Undo", func() { a.undo() })
	a.redoItem = fyne.NewMenuItem("Redo", func() { a.redo() })
	editMenu := fyne.NewMenu("Edit",
		a.undoItem,
		a.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Profiles", func() {
			a.mutate("Clear All Profiles", func() {
				a.job.Profiles = []model.Profile{}
			})
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Plan", func() {
			a.runPlan()
		}),
		fyne.NewMenuItem("Profile Catalog...", func() {
			a.showCatalogDialog()
		}),
	)

	settingsMenu := fyne.NewMenu("Settings",
		fyne.NewMenuItem("Preferences...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Backup and Restore...", func() {
			a.showBackupDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, settingsMenu, helpMenu)
	a.window.SetMainMenu(a.mainMenu)
	a.updateUndoMenu()

	c := a.window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.undo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.redo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.saveJob()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.runPlan()
	})
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About BarCut",
		"BarCut — Aluminum Bar Cutting Planner\n\n"+
			"Plans how to cut fixed-length aluminum bars into the pieces\n"+
			"of a job, with cost, efficiency and reusable leftovers.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	profilesTab := container.NewTabItem("Profiles", a.buildProfilesPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(profilesTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.updateTitle()

	return a.tabs
}

// ─── Profiles Panel ────────────────────────────────────────

func (a *App) buildProfilesPanel() fyne.CanvasObject {
	a.profilesContainer = container.NewVBox()
	a.refreshProfilesList()

	addBtn := widget.NewButtonWithIcon("Add Profile", theme.ContentAddIcon(), func() {
		a.showAddProfileDialog()
	})
	catalogBtn := widget.NewButtonWithIcon("From Catalog", theme.ListIcon(), func() {
		a.showAddFromCatalog()
	})
	planBtn := widget.NewButtonWithIcon("Plan", theme.MediaPlayIcon(), func() {
		a.runPlan()
	})
	planBtn.Importance = widget.HighImportance

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
			catalogBtn,
			planBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.profilesContainer),
	)
}

func (a *App) refreshProfilesList() {
	a.profilesContainer.RemoveAll()

	if len(a.job.Profiles) == 0 {
		a.profilesContainer.Add(widget.NewLabel("No profiles added yet. Click 'Add Profile' to begin."))
		return
	}

	header := container.NewGridWithColumns(8,
		widget.NewLabelWithStyle("Code", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("kg/m", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Bar (m)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Price/kg", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Cuts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.profilesContainer.Add(header)
	a.profilesContainer.Add(widget.NewSeparator())

	for i := range a.job.Profiles {
		idx := i
		p := a.job.Profiles[idx]
		barLabel := widget.NewLabel(fmt.Sprintf("%.2f", p.BarLength/1000))
		if p.ExceedsMaxBarLength() {
			barLabel.Importance = widget.WarningImportance
		}
		row := container.NewGridWithColumns(8,
			widget.NewLabel(p.Code),
			widget.NewLabel(fmt.Sprintf("%.3f", p.WeightPerMeter)),
			barLabel,
			widget.NewLabel(model.FormatMoney(p.PricePerKg)),
			widget.NewLabel(fmt.Sprintf("%d (%.0f mm)", len(p.Cuts), p.TotalCutLength())),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showProfileEditor(idx)
			}),
			widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
				a.showCompareDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.mutate("Delete Profile", func() {
					a.job.Remove(a.job.Profiles[idx].ID)
				})
			}),
		)
		a.profilesContainer.Add(row)
	}
}

// profileFormItems builds the header entries of a profile form bound to
// answers. The preset select fills every entry from a catalog entry.
func (a *App) profileFormItems(answers *form.ProfileAnswers) ([]*widget.FormItem, func()) {
	codeEntry := widget.NewEntry()
	codeEntry.SetPlaceHolder("e.g., MARCO-20")
	codeEntry.SetText(answers.Code)

	weightEntry := widget.NewEntry()
	weightEntry.SetText(answers.WeightPerMeter)

	barEntry := widget.NewEntry()
	barEntry.SetText(answers.BarLengthM)

	priceEntry := widget.NewEntry()
	priceEntry.SetText(answers.PricePerKg)

	presetSelect := widget.NewSelect(a.catalog.Codes(), func(selected string) {
		e := a.catalog.FindByCode(selected)
		if e == nil {
			return
		}
		answers.FromCatalog(*e)
		codeEntry.SetText(answers.Code)
		weightEntry.SetText(answers.WeightPerMeter)
		barEntry.SetText(answers.BarLengthM)
		priceEntry.SetText(answers.PricePerKg)
	})
	presetSelect.PlaceHolder = "Select a catalog profile..."

	items := []*widget.FormItem{
		widget.NewFormItem("Catalog", presetSelect),
		widget.NewFormItem("Profile Code", codeEntry),
		widget.NewFormItem("Weight (kg/m)", weightEntry),
		widget.NewFormItem(fmt.Sprintf("Bar Length (max. %.2f m)", model.MaxBarLengthMM/1000), barEntry),
		widget.NewFormItem("Price per kg ($)", priceEntry),
	}
	collect := func() {
		answers.Code = codeEntry.Text
		answers.WeightPerMeter = weightEntry.Text
		answers.BarLengthM = barEntry.Text
		answers.PricePerKg = priceEntry.Text
	}
	return items, collect
}

func (a *App) showAddProfileDialog() {
	answers := form.NewProfileAnswers(a.config)
	items, collect := a.profileFormItems(&answers)

	d := dialog.NewForm("Add Profile", "Add", "Cancel", items,
		func(ok bool) {
			if !ok {
				return
			}
			collect()
			p, err := answers.Profile()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.addProfile(p)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(450, 350))
	d.Show()
}

// addProfile appends p to the job and opens its cut editor.
func (a *App) addProfile(p model.Profile) {
	if warn := report.BarLengthWarning(p); warn != "" {
		dialog.ShowInformation("Bar Length", warn, a.window)
	}
	a.mutate("Add Profile", func() {
		a.job.Add(p)
	})
	a.showProfileEditor(len(a.job.Profiles) - 1)
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No results yet. Add profiles, then click Plan."),
	)
	return a.resultContainer
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderResults(a.results))
	a.resultContainer.Refresh()
}

// ─── Editing and History ───────────────────────────────────

// mutate records the current profiles for undo, applies fn and
// invalidates the plan.
func (a *App) mutate(label string, fn func()) {
	a.history.Push(MakeSnapshot(a.job.Profiles, label))
	fn()
	a.afterChange()
}

func (a *App) afterChange() {
	a.results = nil
	a.refreshProfilesList()
	a.refreshResults()
	a.updateUndoMenu()
}

func (a *App) undo() {
	s, ok := a.history.Undo(MakeSnapshot(a.job.Profiles, "Undo"))
	if !ok {
		return
	}
	a.restore(s)
}

func (a *App) redo() {
	s, ok := a.history.Redo(MakeSnapshot(a.job.Profiles, "Redo"))
	if !ok {
		return
	}
	a.restore(s)
}

func (a *App) restore(s Snapshot) {
	a.job.Profiles = s.Profiles
	if a.job.Profiles == nil {
		a.job.Profiles = []model.Profile{}
	}
	a.afterChange()
}

func (a *App) updateUndoMenu() {
	if a.undoItem == nil {
		return
	}
	a.undoItem.Disabled = !a.history.CanUndo()
	a.undoItem.Label = "Undo"
	if l := a.history.UndoLabel(); l != "" {
		a.undoItem.Label = "Undo " + l
	}
	a.redoItem.Disabled = !a.history.CanRedo()
	a.mainMenu.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runPlan() {
	if len(a.job.Profiles) == 0 {
		dialog.ShowInformation("Nothing to plan", "Add at least one profile first.", a.window)
		return
	}
	if !a.plan() {
		return
	}
	a.refreshResults()
	a.tabs.SelectIndex(1)
}

// plan computes results for the current profiles. Failed profiles are
// kept in the results and shown with their error.
func (a *App) plan() bool {
	results, err := engine.PlanJob(context.Background(), a.job.Profiles, engine.Options{
		Workers: a.config.Workers,
		Logger:  slog.Default(),
	})
	if err != nil {
		dialog.ShowError(err, a.window)
		return false
	}
	a.results = results
	return true
}

// ensureResults plans the job when the results are stale.
func (a *App) ensureResults() bool {
	if len(a.job.Profiles) == 0 {
		dialog.ShowInformation("Nothing to export", "Add at least one profile first.", a.window)
		return false
	}
	if a.results == nil && !a.plan() {
		return false
	}
	a.refreshResults()
	return true
}

func (a *App) newJob() {
	a.job = model.NewJob("Untitled job")
	a.jobPath = ""
	a.history.Clear()
	a.afterChange()
	a.updateTitle()
}

func (a *App) updateTitle() {
	name := a.job.Name
	if a.jobPath != "" {
		name = filepath.Base(a.jobPath)
	}
	a.window.SetTitle("BarCut — " + name)
}

func (a *App) saveJob() {
	if a.jobPath == "" {
		a.saveJobAs()
		return
	}
	a.writeJob(a.jobPath)
}

func (a *App) saveJobAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		a.writeJob(writer.URI().Path())
	}, a.window)
	d.SetFileName(jobFileName(a.job.Name))
	d.Show()
}

func (a *App) writeJob(path string) {
	if err := project.Save(path, a.job); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.jobPath = path
	a.rememberJob(path)
	a.updateTitle()
}

func (a *App) openJob() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.loadJob(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.JobExtension, ".json", ".yaml", ".yml"}))
	d.Show()
}

func (a *App) loadJob(path string) {
	job, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.job = job
	a.jobPath = path
	a.history.Clear()
	a.rememberJob(path)
	a.afterChange()
	a.updateTitle()
}

func (a *App) rememberJob(path string) {
	a.config.AddRecentJob(path, maxRecentJobs)
	if err := a.saveConfig(); err != nil {
		slog.Warn("failed to save recent jobs", "error", err)
	}
	a.refreshRecentMenu()
}

func (a *App) refreshRecentMenu() {
	if a.recentMenu == nil {
		return
	}
	a.recentMenu.Items = nil
	for _, path := range a.config.RecentJobs {
		p := path
		a.recentMenu.Items = append(a.recentMenu.Items, fyne.NewMenuItem(filepath.Base(p), func() {
			a.loadJob(p)
		}))
	}
	if len(a.recentMenu.Items) == 0 {
		empty := fyne.NewMenuItem("No recent jobs", nil)
		empty.Disabled = true
		a.recentMenu.Items = append(a.recentMenu.Items, empty)
	}
	if a.mainMenu != nil {
		a.mainMenu.Refresh()
	}
}

func jobFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "job"
	}
	return name + project.JobExtension
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importCutList() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		a.handleImportResult(path, importer.ImportFile(path))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx", ".xls"}))
	d.Show()
}

// importedProfiles turns import rows into profiles. Rows without a profile
// code go to a profile named after the file. Codes found in the catalog
// take its weight, bar length and price.
func (a *App) importedProfiles(path string, result importer.ImportResult) []model.Profile {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	profiles := result.ToProfiles(a.config.NewProfile(stem))
	for i := range profiles {
		if e := a.catalog.FindByCode(profiles[i].Code); e != nil {
			profiles[i].WeightPerMeter = e.WeightPerMeter
			profiles[i].BarLength = e.BarLength
			profiles[i].PricePerKg = e.PricePerKg
		}
	}
	return profiles
}

func (a *App) handleImportResult(path string, result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	for _, w := range result.Warnings {
		slog.Debug("import warning", "file", path, "warning", w)
	}

	if len(result.Rows) == 0 {
		return
	}

	profiles := a.importedProfiles(path, result)
	a.mutate("Import Cut List", func() {
		for _, p := range profiles {
			a.job.Add(p)
		}
	})

	groups := result.Groups()
	cuts := 0
	for _, g := range groups {
		cuts += g.Quantity
	}
	msg := fmt.Sprintf("Imported %d cuts from %d rows into %d profile(s).", cuts, len(groups), len(profiles))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// ─── Export ────────────────────────────────────────────────

// exportFile asks for a destination and runs write with the chosen path.
func (a *App) exportFile(title, defaultName string, write func(path string) error) {
	if !a.ensureResults() {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", title, path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportBaseName() string {
	name := strings.TrimSpace(a.job.Name)
	if name == "" {
		name = "cutting-plan"
	}
	return name
}

func (a *App) exportPDF() {
	a.exportFile("PDF report", a.exportBaseName()+".pdf", func(path string) error {
		return export.ExportPDF(path, a.results, export.PDFOptions{
			Title:    a.job.Name,
			LogoPath: a.config.LogoPath,
		})
	})
}

func (a *App) exportXLSX() {
	a.exportFile("Spreadsheet", a.exportBaseName()+".xlsx", func(path string) error {
		return export.ExportXLSX(path, a.results)
	})
}

func (a *App) exportDXF() {
	a.exportFile("DXF drawing", a.exportBaseName()+".dxf", func(path string) error {
		return export.ExportDXF(path, a.results)
	})
}

func (a *App) exportLabels() {
	a.exportFile("Cut labels", a.exportBaseName()+"-labels.pdf", func(path string) error {
		return export.ExportLabels(path, a.results)
	})
}
