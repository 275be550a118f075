package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BarCut/internal/form"
	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/report"
)

// showProfileEditor opens the editor for the profile at idx. Changes are
// made on a copy and applied to the job as one undoable step on Save.
func (a *App) showProfileEditor(idx int) {
	if idx < 0 || idx >= len(a.job.Profiles) {
		return
	}
	working := a.job.Profiles[idx].Clone()

	w := fyne.CurrentApp().NewWindow("Edit Profile — " + working.Code)
	w.Resize(fyne.NewSize(620, 560))

	answers := form.NewProfileAnswers(a.config)
	answers.Code = working.Code
	answers.WeightPerMeter = strconv.FormatFloat(working.WeightPerMeter, 'f', -1, 64)
	answers.BarLengthM = strconv.FormatFloat(working.BarLength/1000, 'f', -1, 64)
	answers.PricePerKg = strconv.FormatFloat(working.PricePerKg, 'f', -1, 64)
	items, collect := a.profileFormItems(&answers)
	headerForm := widget.NewForm(items...)

	selectedIdx := -1
	totalLabel := widget.NewLabel("")
	updateTotal := func() {
		totalLabel.SetText(fmt.Sprintf("%d cuts, %.1f mm total", len(working.Cuts), working.TotalCutLength()))
	}
	updateTotal()

	cutList := widget.NewList(
		func() int {
			return len(working.Cuts)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.ContentCutIcon()),
				widget.NewLabel("Cut"),
				layout.NewSpacer(),
				widget.NewLabel("Label"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			c := working.Cuts[id]
			box.Objects[1].(*widget.Label).SetText(fmt.Sprintf("%d. %s", id+1, c))
			box.Objects[3].(*widget.Label).SetText(c.Label)
		},
	)
	cutList.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
	}
	cutList.OnUnselected = func(widget.ListItemID) {
		selectedIdx = -1
	}

	addBtn := widget.NewButtonWithIcon("Add Cuts", theme.ContentAddIcon(), func() {
		showCutGroupDialog(w, func(g model.CutGroup) {
			working.AddGroup(g)
			cutList.Refresh()
			updateTotal()
		})
	})

	removeBtn := widget.NewButtonWithIcon("Remove Selected", theme.DeleteIcon(), func() {
		if selectedIdx < 0 || selectedIdx >= len(working.Cuts) {
			return
		}
		working.Cuts = append(working.Cuts[:selectedIdx], working.Cuts[selectedIdx+1:]...)
		selectedIdx = -1
		cutList.UnselectAll()
		cutList.Refresh()
		updateTotal()
	})

	clearBtn := widget.NewButtonWithIcon("Clear Cuts", theme.ContentClearIcon(), func() {
		dialog.ShowConfirm("Clear Cuts", "Remove every cut from this profile?", func(ok bool) {
			if !ok {
				return
			}
			working.Cuts = []model.CutRequest{}
			cutList.UnselectAll()
			cutList.Refresh()
			updateTotal()
		}, w)
	})

	saveBtn := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		collect()
		header, err := answers.Profile()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		header.ID = working.ID
		header.Cuts = working.Cuts
		if warn := report.BarLengthWarning(header); warn != "" {
			dialog.ShowInformation("Bar Length", warn, a.window)
		}
		a.mutate("Edit Profile", func() {
			a.job.Replace(header)
		})
		w.Close()
	})
	saveBtn.Importance = widget.HighImportance

	cancelBtn := widget.NewButton("Cancel", func() {
		w.Close()
	})

	cutsHeader := container.NewHBox(
		widget.NewLabelWithStyle("Cuts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		addBtn,
		removeBtn,
		clearBtn,
	)

	w.SetContent(container.NewBorder(
		container.NewVBox(headerForm, widget.NewSeparator(), cutsHeader),
		container.NewVBox(
			totalLabel,
			container.NewHBox(layout.NewSpacer(), cancelBtn, saveBtn),
		),
		nil, nil,
		cutList,
	))
	w.Show()
}

// showCutGroupDialog asks for one cut group and hands the parsed group to
// onAdd. The adjustment value is only enabled when an adjustment is chosen.
func showCutGroupDialog(parent fyne.Window, onAdd func(model.CutGroup)) {
	g := form.NewGroupAnswers()

	lengthEntry := widget.NewEntry()
	lengthEntry.SetPlaceHolder("Length in mm")
	lengthEntry.Validator = form.ValidatePositive

	adjustByEntry := widget.NewEntry()
	adjustByEntry.SetText(g.AdjustBy)
	adjustByEntry.Validator = form.ValidateNonNegative
	adjustByEntry.Disable()

	adjustSelect := widget.NewSelect([]string{
		string(model.AdjustNone),
		string(model.AdjustAdd),
		string(model.AdjustSubtract),
	}, func(s string) {
		if s == string(model.AdjustNone) {
			adjustByEntry.Disable()
		} else {
			adjustByEntry.Enable()
		}
	})
	adjustSelect.SetSelected(g.Adjustment)

	qtyEntry := widget.NewEntry()
	qtyEntry.SetText(g.Quantity)
	qtyEntry.Validator = form.ValidatePositiveInt

	angleOptions := make([]string, len(model.Angles))
	for i, an := range model.Angles {
		angleOptions[i] = strconv.Itoa(int(an))
	}
	angleSelect := widget.NewSelect(angleOptions, nil)
	angleSelect.SetSelected(g.Angle)

	labelEntry := widget.NewEntry()
	labelEntry.SetPlaceHolder("Optional, e.g. Jamb")

	items := []*widget.FormItem{
		widget.NewFormItem("Length (mm)", lengthEntry),
		widget.NewFormItem("Adjustment", adjustSelect),
		widget.NewFormItem("Adjust by (mm)", adjustByEntry),
		widget.NewFormItem("Quantity", qtyEntry),
		widget.NewFormItem("Angle (°)", angleSelect),
		widget.NewFormItem("Label", labelEntry),
	}

	d := dialog.NewForm("Add Cuts", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		g.Length = lengthEntry.Text
		g.Adjustment = adjustSelect.Selected
		g.AdjustBy = adjustByEntry.Text
		g.Quantity = qtyEntry.Text
		g.Angle = angleSelect.Selected
		g.Label = labelEntry.Text

		group, err := g.Group()
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		onAdd(group)
	}, parent)
	d.Resize(fyne.NewSize(400, 380))
	d.Show()
}
