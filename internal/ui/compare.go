package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/model"
)

// showCompareDialog plans the profile at idx against several stock bar
// lengths side by side and offers to switch to the best one.
func (a *App) showCompareDialog(idx int) {
	if idx < 0 || idx >= len(a.job.Profiles) {
		return
	}
	profile := a.job.Profiles[idx].Clone()
	if len(profile.Cuts) == 0 {
		dialog.ShowInformation("Nothing to compare", "Add cuts to "+profile.Code+" first.", a.window)
		return
	}

	lengthsEntry := widget.NewEntry()
	lengthsEntry.SetText(formatLengths(engine.DefaultBarLengths(profile)))

	resultsBox := container.NewVBox()
	var d dialog.Dialog

	compare := func() {
		lengths, err := parseLengths(lengthsEntry.Text)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		results := engine.CompareBarLengths(profile, lengths)
		best := engine.Best(results)

		resultsBox.RemoveAll()
		for i, r := range results {
			resultsBox.Add(a.comparisonCard(profile, r, i == best, func(length float64) {
				a.mutate("Change Bar Length", func() {
					p := profile.Clone()
					p.BarLength = length
					a.job.Replace(p)
				})
				d.Hide()
			}))
		}
		resultsBox.Refresh()
	}

	compareBtn := widget.NewButtonWithIcon("Compare", theme.ViewRefreshIcon(), compare)

	content := container.NewBorder(
		container.NewVBox(
			widget.NewLabel("Bar lengths in meters, separated by commas or spaces:"),
			container.NewBorder(nil, nil, nil, compareBtn, lengthsEntry),
		),
		nil, nil, nil,
		container.NewVScroll(resultsBox),
	)

	d = dialog.NewCustom("Compare Bar Lengths — "+profile.Code, "Close", content, a.window)
	d.Resize(fyne.NewSize(560, 560))
	compare()
	d.Show()
}

// comparisonCard shows one candidate's statistics. The best candidate gets
// a button that applies its length to the profile.
func (a *App) comparisonCard(profile model.Profile, r engine.ComparisonResult, best bool, use func(float64)) fyne.CanvasObject {
	title := fmt.Sprintf("%.2f m bars", r.BarLength/1000)
	if r.Err != nil {
		msg := widget.NewLabel(r.Err.Error())
		msg.Importance = widget.DangerImportance
		msg.Wrapping = fyne.TextWrapWord
		return widget.NewCard(title, "Cannot be planned", msg)
	}

	subtitle := ""
	if best {
		subtitle = "Best: fewest bars, then least scrap"
	}

	grid := container.NewGridWithColumns(2,
		widget.NewLabel("Bars"), widget.NewLabel(strconv.Itoa(r.BarsUsed)),
		widget.NewLabel("Efficiency"), widget.NewLabel(fmt.Sprintf("%.2f%%", r.Efficiency)),
		widget.NewLabel("Reusable leftovers"), widget.NewLabel(fmt.Sprintf("%.1f mm", r.ReusableTotal)),
		widget.NewLabel("Scrap"), widget.NewLabel(fmt.Sprintf("%.1f mm", r.ScrapTotal)),
		widget.NewLabel("Purchased"), widget.NewLabel(fmt.Sprintf("%s  %s",
			model.FormatWeight(r.Cost.PurchasedWeight), model.FormatMoney(r.Cost.PurchasedCost))),
	)

	body := container.NewVBox(grid)
	if best && !model.NearlyEqual(r.BarLength, profile.BarLength) {
		useBtn := widget.NewButtonWithIcon("Use This Length", theme.ConfirmIcon(), func() {
			use(r.BarLength)
		})
		useBtn.Importance = widget.HighImportance
		body.Add(useBtn)
	}
	return widget.NewCard(title, subtitle, body)
}

// parseLengths reads bar lengths typed in meters and returns them in mm.
func parseLengths(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("enter at least one bar length")
	}

	lengths := make([]float64, 0, len(fields))
	for _, f := range fields {
		m, err := strconv.ParseFloat(f, 64)
		if err != nil || !(m > 0) || math.IsInf(m, 0) {
			return nil, fmt.Errorf("invalid bar length %q", f)
		}
		lengths = append(lengths, model.MetersToMM(m))
	}
	return lengths, nil
}

func formatLengths(lengths []float64) string {
	parts := make([]string, len(lengths))
	for i, l := range lengths {
		parts[i] = strconv.FormatFloat(l/1000, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
