package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BarCut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	ProfileCode string  `json:"profile"`
	Length      float64 `json:"length_mm"`
	Angle       int     `json:"angle"`
	Label       string  `json:"label,omitempty"`
	Bar         int     `json:"bar"`   // 1-based bar number within the profile
	Piece       int     `json:"piece"` // 1-based position on the bar
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per cut, in bar
// order. Labels are laid out on a standard label sheet (Avery 5160,
// 3 columns x 10 rows on US Letter).
func ExportLabels(path string, results []model.ProfileResult) error {
	labels := CollectLabelInfos(results)
	if len(labels) == 0 {
		return fmt.Errorf("no cuts to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %s bar %d: %w", label.ProfileCode, label.Bar, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, n int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", n)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Profile code (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.ProfileCode, textW), "", 1, "L", false, 0, "")

	// Length and angle
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, tr(fmt.Sprintf("%.1f mm @ %d°", info.Length, info.Angle)), "", 1, "L", false, 0, "")

	if info.Label != "" {
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(textX, y+labelPadding+9)
		pdf.CellFormat(textW, 3, tr(truncate(pdf, info.Label, textW)), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Bar %d, piece %d", info.Bar, info.Piece), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with "..." until it fits in width w at the current font.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos extracts one label per cut of every planned profile.
func CollectLabelInfos(results []model.ProfileResult) []LabelInfo {
	var labels []LabelInfo
	for _, r := range results {
		if !r.OK() {
			continue
		}
		for barIdx, bar := range r.Plan.Bars {
			for pieceIdx, c := range bar.Cuts {
				labels = append(labels, LabelInfo{
					ProfileCode: r.Profile.Code,
					Length:      c.Length,
					Angle:       int(c.Angle),
					Label:       c.Label,
					Bar:         barIdx + 1,
					Piece:       pieceIdx + 1,
				})
			}
		}
	}
	return labels
}
