package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/BarCut/internal/model"
)

// DXF layer names.
const (
	LayerCuts     = "CUTS"
	LayerReusable = "REUSABLE"
	LayerScrap    = "SCRAP"
	LayerText     = "TEXT"
)

// DXF layout in drawing units (mm): bars are drawn at true length, one per row.
const (
	dxfBarHeight  = 60.0
	dxfRowGap     = 120.0
	dxfProfileGap = 300.0
	dxfTextHeight = 25.0
)

// ExportDXF draws every planned bar at 1:1 scale. Each cut and leftover is
// a closed rectangle on its own layer with its length written inside.
// Profiles are stacked top to bottom, bars within a profile one per row.
func ExportDXF(path string, results []model.ProfileResult) error {
	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerCuts, color.White},
		{LayerReusable, color.Green},
		{LayerScrap, color.Red},
		{LayerText, color.Cyan},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	y := 0.0
	drawn := 0
	for _, r := range results {
		if !r.OK() || len(r.Plan.Bars) == 0 {
			continue
		}
		if err := text(d, fmt.Sprintf("Profile %s - bar %.0f mm", r.Profile.Code, r.Plan.BarLength), 0, y, dxfTextHeight*1.5); err != nil {
			return err
		}
		y -= dxfRowGap

		for i, bar := range r.Plan.Bars {
			if err := drawDXFBar(d, i, bar, y); err != nil {
				return fmt.Errorf("profile %s bar %d: %w", r.Profile.Code, i+1, err)
			}
			y -= dxfRowGap
			drawn++
		}
		y -= dxfProfileGap
	}

	if drawn == 0 {
		return fmt.Errorf("no bars to export")
	}
	return d.SaveAs(path)
}

func drawDXFBar(d *drawing.Drawing, index int, bar model.Bar, y float64) error {
	if err := text(d, fmt.Sprintf("%d", index+1), -dxfTextHeight*3, y+dxfBarHeight/3, dxfTextHeight); err != nil {
		return err
	}

	x := 0.0
	for _, c := range bar.Cuts {
		if err := d.ChangeLayer(LayerCuts); err != nil {
			return err
		}
		if err := rect(d, x, y, c.Length, dxfBarHeight); err != nil {
			return err
		}
		if err := text(d, fmt.Sprintf("%.1f %d", c.Length, int(c.Angle)), x+dxfTextHeight/2, y+dxfBarHeight/3, dxfTextHeight); err != nil {
			return err
		}
		x += c.Length
	}

	if bar.Leftover <= 0 {
		return nil
	}
	layer := LayerScrap
	if bar.Class() == model.LeftoverReusable {
		layer = LayerReusable
	}
	if err := d.ChangeLayer(layer); err != nil {
		return err
	}
	if err := rect(d, x, y, bar.Leftover, dxfBarHeight); err != nil {
		return err
	}
	return text(d, fmt.Sprintf("%.1f %s", bar.Leftover, bar.Class()), x+dxfTextHeight/2, y+dxfBarHeight/3, dxfTextHeight)
}

// rect draws a closed rectangle from four lines on the current layer.
func rect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y}}
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[i+1]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}

func text(d *drawing.Drawing, s string, x, y, h float64) error {
	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	_, err := d.Text(s, x, y, 0, h)
	return err
}
