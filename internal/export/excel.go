package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

var summaryHeaders = []string{
	"Profile", "kg/m", "Price/kg", "Bar (mm)", "Cuts", "Bars",
	"Efficiency %", "Waste %", "Weight (kg)", "Cost", "Reusable (mm)", "Scrap (mm)", "Status",
}

var planHeaders = []string{"Bar", "Piece", "Length (mm)", "Angle", "Label", "Weight (kg)", "Cost", "Type"}

// ExportXLSX writes a workbook with a Summary sheet listing every profile
// and one sheet per planned profile with a row per cut and per leftover.
func ExportXLSX(path string, results []model.ProfileResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no profiles to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#B0B0B0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	reusable, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#78C000"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("reusable style: %w", err)
	}
	scrap, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D62728"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("scrap style: %w", err)
	}

	if err := writeRow(f, summarySheet, 1, toCells(summaryHeaders)); err != nil {
		return err
	}
	if err := styleRow(f, summarySheet, 1, len(summaryHeaders), header); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	for i, r := range results {
		if err := writeSummaryRow(f, i+2, r); err != nil {
			return err
		}
		if !r.OK() {
			continue
		}
		name := uniqueSheetName(r.Profile.Code, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
		if err := writePlanSheet(f, name, r, header, reusable, scrap); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "M", 14); err != nil {
		return err
	}
	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeSummaryRow(f *excelize.File, row int, r model.ProfileResult) error {
	p := r.Profile
	if !r.OK() {
		return writeRow(f, summarySheet, row, []interface{}{
			p.Code, p.WeightPerMeter, p.PricePerKg, p.BarLength, len(p.Cuts),
			"", "", "", "", "", "", "", r.Err.Error(),
		})
	}
	cost := model.SummarizeCost(p, r.Plan)
	re, sc := r.Plan.LeftoverTotals()
	return writeRow(f, summarySheet, row, []interface{}{
		p.Code, p.WeightPerMeter, p.PricePerKg, p.BarLength, r.Plan.CutCount(), len(r.Plan.Bars),
		round(r.Plan.Efficiency, 2), round(r.Plan.Waste, 2),
		round(cost.PurchasedWeight, 3), model.Money(cost.PurchasedCost).InexactFloat64(),
		re, sc, "OK",
	})
}

func writePlanSheet(f *excelize.File, sheet string, r model.ProfileResult, header, reusable, scrap int) error {
	if err := writeRow(f, sheet, 1, toCells(planHeaders)); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(planHeaders), header); err != nil {
		return err
	}

	row := 2
	for b, bar := range r.Plan.Bars {
		for i, c := range bar.Cuts {
			seg := r.Profile.Segment(c.Length)
			if err := writeRow(f, sheet, row, []interface{}{
				b + 1, i + 1, c.Length, int(c.Angle), c.Label,
				round(seg.Weight, 3), model.Money(seg.Cost).InexactFloat64(), "CUT",
			}); err != nil {
				return err
			}
			row++
		}

		seg := r.Profile.Segment(bar.Leftover)
		if err := writeRow(f, sheet, row, []interface{}{
			b + 1, "", bar.Leftover, "", "",
			round(seg.Weight, 3), model.Money(seg.Cost).InexactFloat64(), bar.Class().String(),
		}); err != nil {
			return err
		}
		style := scrap
		if bar.Class() == model.LeftoverReusable {
			style = reusable
		}
		if err := styleRow(f, sheet, row, len(planHeaders), style); err != nil {
			return err
		}
		row++
	}

	row++
	if err := writeRow(f, sheet, row, []interface{}{"Efficiency %", round(r.Plan.Efficiency, 2), "Waste %", round(r.Plan.Waste, 2)}); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "H", 13)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// uniqueSheetName makes a valid, unused sheet name from a profile code:
// at most 31 characters, none of []:*?/\ and no duplicates.
func uniqueSheetName(code string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(code))
	if name == "" {
		name = "Profile"
	}
	if len([]rune(name)) > 31 {
		name = string([]rune(name)[:31])
	}

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if len(base)+len(suffix) > 31 {
			base = base[:31-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
