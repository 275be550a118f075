package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BarCut/internal/form"
	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

// ─── Profile Catalog Dialog ────────────────────────────────

func (a *App) showCatalogDialog() {
	entryList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		entryList.RemoveAll()

		if len(a.catalog.Entries) == 0 {
			entryList.Add(widget.NewLabel("No catalog profiles defined."))
			return
		}

		header := container.NewGridWithColumns(7,
			widget.NewLabelWithStyle("Code", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Description", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("kg/m", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Bar (m)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Price/kg", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		entryList.Add(header)
		entryList.Add(widget.NewSeparator())

		for i := range a.catalog.Entries {
			e := a.catalog.Entries[i]
			row := container.NewGridWithColumns(7,
				widget.NewLabel(e.Code),
				widget.NewLabel(e.Description),
				widget.NewLabel(fmt.Sprintf("%.3f", e.WeightPerMeter)),
				widget.NewLabel(fmt.Sprintf("%.2f", e.BarLength/1000)),
				widget.NewLabel(model.FormatMoney(e.PricePerKg)),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showCatalogEntryDialog(&e, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.catalog.Remove(e.Code)
					a.saveCatalog()
					refreshList()
				}),
			)
			entryList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Profile", theme.ContentAddIcon(), func() {
		a.showCatalogEntryDialog(nil, refreshList)
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importCatalog(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportCatalog()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(entryList),
	)

	d := dialog.NewCustom("Profile Catalog", "Close", content, a.window)
	d.Resize(fyne.NewSize(760, 480))
	d.Show()
}

// showCatalogEntryDialog adds a catalog entry, or edits existing when it
// is not nil. Saving under an existing code replaces that entry.
func (a *App) showCatalogEntryDialog(existing *model.CatalogEntry, onDone func()) {
	answers := form.NewProfileAnswers(a.config)
	description := ""
	title, confirm := "Add Catalog Profile", "Add"
	if existing != nil {
		answers.FromCatalog(*existing)
		description = existing.Description
		title, confirm = "Edit Catalog Profile", "Save"
	}

	codeEntry := widget.NewEntry()
	codeEntry.SetPlaceHolder("e.g., MARCO-20")
	codeEntry.SetText(answers.Code)
	codeEntry.Validator = form.ValidateCode

	descEntry := widget.NewEntry()
	descEntry.SetText(description)

	weightEntry := widget.NewEntry()
	weightEntry.SetText(answers.WeightPerMeter)
	weightEntry.Validator = form.ValidateNonNegative

	barEntry := widget.NewEntry()
	barEntry.SetText(answers.BarLengthM)
	barEntry.Validator = form.ValidatePositive

	priceEntry := widget.NewEntry()
	priceEntry.SetText(answers.PricePerKg)
	priceEntry.Validator = form.ValidateNonNegative

	d := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Code", codeEntry),
			widget.NewFormItem("Description", descEntry),
			widget.NewFormItem("Weight (kg/m)", weightEntry),
			widget.NewFormItem("Bar Length (m)", barEntry),
			widget.NewFormItem("Price per kg ($)", priceEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			answers.Code = codeEntry.Text
			answers.WeightPerMeter = weightEntry.Text
			answers.BarLengthM = barEntry.Text
			answers.PricePerKg = priceEntry.Text

			p, err := answers.Profile()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if existing != nil && existing.Code != p.Code {
				a.catalog.Remove(existing.Code)
			}
			a.catalog.Upsert(model.NewCatalogEntry(p.Code, descEntry.Text, p.WeightPerMeter, p.BarLength, p.PricePerKg))
			a.saveCatalog()
			onDone()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 360))
	d.Show()
}

func (a *App) importCatalog(onDone func()) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, added, err := project.ImportCatalog(reader.URI().Path(), a.catalog)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.catalog = merged
		a.saveCatalog()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Added %d catalog profile(s). Existing codes were kept.", added), a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (a *App) exportCatalog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := project.SaveCatalog(path, a.catalog); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Catalog exported to:\n%s", path), a.window)
	}, a.window)
	d.SetFileName("barcut-catalog.json")
	d.Show()
}

func (a *App) saveCatalog() {
	if a.catalogPath == "" {
		a.catalogPath = project.DefaultCatalogPath()
	}
	if err := project.SaveCatalog(a.catalogPath, a.catalog); err != nil {
		slog.Error("failed to save catalog", "path", a.catalogPath, "error", err)
		dialog.ShowError(fmt.Errorf("failed to save catalog: %w", err), a.window)
	}
}

// showAddFromCatalog starts a job profile from a catalog entry.
func (a *App) showAddFromCatalog() {
	if len(a.catalog.Entries) == 0 {
		dialog.ShowInformation("Empty Catalog",
			"No catalog profiles defined. Add some via Tools > Profile Catalog.", a.window)
		return
	}

	codeSelect := widget.NewSelect(a.catalog.Codes(), nil)
	codeSelect.SetSelectedIndex(0)

	d := dialog.NewForm("Add Profile from Catalog", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Profile", codeSelect),
		},
		func(ok bool) {
			if !ok {
				return
			}
			e := a.catalog.FindByCode(codeSelect.Selected)
			if e == nil {
				return
			}
			a.addProfile(e.ToProfile())
		},
		a.window,
	)
	d.Resize(fyne.NewSize(380, 180))
	d.Show()
}
