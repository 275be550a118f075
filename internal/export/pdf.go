// Package export writes cutting plans to PDF reports, QR label sheets,
// spreadsheets and DXF drawings.
package export

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/report"
)

// rgb is a fill color for a chart segment.
type rgb struct {
	R, G, B int
}

// Chart colors, shared with the GUI bar canvas.
var (
	cutColor      = rgb{R: 176, G: 176, B: 176} // #B0B0B0
	reusableColor = rgb{R: 120, G: 192, B: 0}   // #78C000
	scrapColor    = rgb{R: 214, G: 39, B: 40}   // #D62728
	pageColor     = rgb{R: 240, G: 240, B: 240}
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	logoWidth    = 33.0
	logoTop      = 8.0
	logoSpace    = 30.0 // Vertical room reserved below the page top for the logo
	chartWidth   = pageWidth - marginLeft - marginRight
	chartHeight  = 8.0
	lineHeight   = 6.0
)

// PDFOptions configures the PDF report.
type PDFOptions struct {
	Title    string // Defaults to "Aluminum Cutting Plan"
	LogoPath string // PNG or JPG drawn in the top-left of every page, optional
}

// ExportPDF writes a report with one section per profile: the header, the
// useful cuts, the leftovers, the efficiency line and one proportional chart
// per bar. Profiles that could not be planned are listed with their error.
// A summary page closes the document.
func ExportPDF(path string, results []model.ProfileResult, opts PDFOptions) error {
	if len(results) == 0 {
		return fmt.Errorf("no profiles to export")
	}
	if opts.LogoPath != "" {
		if _, err := os.Stat(opts.LogoPath); err != nil {
			return fmt.Errorf("logo: %w", err)
		}
	}
	if opts.Title == "" {
		opts.Title = "Aluminum Cutting Plan"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	top := marginTop
	if opts.LogoPath != "" {
		top = logoTop + logoSpace
	}
	pdf.SetMargins(marginLeft, top, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(pageColor.R, pageColor.G, pageColor.B)
		pdf.Rect(0, 0, pageWidth, pageHeight, "F")
		if opts.LogoPath != "" {
			pdf.ImageOptions(opts.LogoPath, marginLeft, logoTop, logoWidth, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
		pdf.SetXY(marginLeft, top)
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(opts.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for i, r := range results {
		if i > 0 {
			pdf.Ln(4)
		}
		renderProfileSection(pdf, tr, r)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, tr, results)

	return pdf.OutputFileAndClose(path)
}

// renderProfileSection writes one profile's plan starting at the current position.
func renderProfileSection(pdf *fpdf.Fpdf, tr func(string) string, r model.ProfileResult) {
	p := r.Profile

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Profile: "+p.Code), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range report.HeaderLines(p) {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	if warn := report.BarLengthWarning(p); warn != "" {
		pdf.SetTextColor(scrapColor.R, scrapColor.G, scrapColor.B)
		pdf.CellFormat(0, lineHeight, tr(warn), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	if !r.OK() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(scrapColor.R, scrapColor.G, scrapColor.B)
		pdf.MultiCell(0, lineHeight, tr("Not planned: "+r.Err.Error()), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		return
	}

	plan := r.Plan
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Useful cuts:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, bar := range plan.Bars {
		for _, c := range bar.Cuts {
			pdf.CellFormat(0, lineHeight, tr(report.CutLine(p, c)), "", 1, "L", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Leftovers:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, bar := range plan.Bars {
		pdf.CellFormat(0, lineHeight, tr(report.LeftoverLine(p, bar)), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr(report.EfficiencyLine(plan)), "", 1, "L", false, 0, "")

	if len(plan.Bars) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Charts:", "", 1, "L", false, 0, "")
	for i, bar := range plan.Bars {
		_, pageH := pdf.GetPageSize()
		if pdf.GetY()+chartHeight+8 > pageH-marginBottom {
			pdf.AddPage()
		}
		drawBarChart(pdf, tr, i, bar, plan.BarLength)
	}
}

// drawBarChart draws one bar as proportional segments: gray cuts labelled
// with length and angle, then the leftover in green (reusable) or red
// (scrap) when there is one.
func drawBarChart(pdf *fpdf.Fpdf, tr func(string) string, index int, bar model.Bar, barLength float64) {
	y := pdf.GetY()
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 4, fmt.Sprintf("Bar %d", index+1), "", 1, "L", false, 0, "")
	y += 4

	scale := chartWidth / barLength
	x := marginLeft

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 6)

	for _, c := range bar.Cuts {
		w := c.Length * scale
		pdf.SetFillColor(cutColor.R, cutColor.G, cutColor.B)
		pdf.Rect(x, y, w, chartHeight, "FD")
		segmentText(pdf, tr(report.SegmentLabel(c)), x, y, w)
		x += w
	}

	if bar.Leftover > 0 {
		w := bar.Leftover * scale
		col := scrapColor
		if bar.Class() == model.LeftoverReusable {
			col = reusableColor
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y, w, chartHeight, "FD")
		segmentText(pdf, fmt.Sprintf("%d", int(bar.Leftover)), x, y, w)
	}

	pdf.SetXY(marginLeft, y+chartHeight+2)
}

// segmentText centers s in a chart segment if it fits.
func segmentText(pdf *fpdf.Fpdf, s string, x, y, w float64) {
	sw := pdf.GetStringWidth(s)
	if sw > w-1 {
		return
	}
	pdf.SetXY(x+(w-sw)/2, y+(chartHeight-3)/2)
	pdf.CellFormat(sw, 3, s, "", 0, "C", false, 0, "")
}

// renderSummaryPage draws the per-profile totals table and the job totals.
func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, results []model.ProfileResult) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")

	y := pdf.GetY()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	pdf.Ln(4)

	colWidths := []float64{36, 14, 22, 26, 26, 28, 28}
	headers := []string{"Profile", "Bars", "Efficiency", "Weight", "Cost", "Reusable", "Scrap"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	total := model.CostSummary{}
	var failed []model.ProfileResult
	row := 0
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
			continue
		}
		cost := model.SummarizeCost(r.Profile, r.Plan)
		total = total.Add(cost)
		reusable, scrap := r.Plan.LeftoverTotals()

		if row%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row++

		cells := []string{
			r.Profile.Code,
			fmt.Sprintf("%d", len(r.Plan.Bars)),
			fmt.Sprintf("%.2f%%", r.Plan.Efficiency),
			model.FormatWeight(cost.PurchasedWeight),
			model.FormatMoney(cost.PurchasedCost),
			fmt.Sprintf("%.1f mm", reusable),
			fmt.Sprintf("%.1f mm", scrap),
		}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 6, tr(cell), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Job totals", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range report.CostLines(total) {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}

	leftovers := model.CollectAllLeftovers(results)
	if len(leftovers) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Reusable leftovers", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, l := range leftovers {
			pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf("- %s, bar %d: %.1f mm", l.ProfileCode, l.SourceBar, l.Length)), "", 1, "L", false, 0, "")
		}
	}

	if len(failed) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(scrapColor.R, scrapColor.G, scrapColor.B)
		pdf.CellFormat(0, 8, "WARNING: Profiles not planned", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, r := range failed {
			pdf.MultiCell(0, 5, tr("- "+r.Err.Error()), "", "L", false)
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.Ln(6)
	pdf.CellFormat(0, 4, "Generated by BarCut - Aluminum Bar Cutting Planner", "", 1, "C", false, 0, "")
}
