package widgets

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/report"
)

// Segment colors match the PDF report.
var (
	cutColor      = color.NRGBA{R: 176, G: 176, B: 176, A: 255} // #B0B0B0
	reusableColor = color.NRGBA{R: 120, G: 192, B: 0, A: 255}   // #78C000
	scrapColor    = color.NRGBA{R: 214, G: 39, B: 40, A: 255}   // #D62728
	outlineColor  = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
)

// SegmentKind tells a cut segment from a leftover.
type SegmentKind int

const (
	SegmentCut SegmentKind = iota
	SegmentReusable
	SegmentScrap
)

// Segment is one drawn run of a bar, in pixels from the left edge.
type Segment struct {
	Kind  SegmentKind
	X     float32
	Width float32
	Label string
}

// BarSegments lays out bar proportionally across width pixels. Cuts keep
// their plan order; the leftover comes last and is omitted when zero.
func BarSegments(bar model.Bar, barLength float64, width float32) []Segment {
	if barLength <= 0 || width <= 0 {
		return nil
	}
	scale := width / float32(barLength)

	var segs []Segment
	var x float32
	for _, c := range bar.Cuts {
		w := float32(c.Length) * scale
		segs = append(segs, Segment{Kind: SegmentCut, X: x, Width: w, Label: report.SegmentLabel(c)})
		x += w
	}
	if bar.Leftover > model.Epsilon {
		kind := SegmentScrap
		if bar.Class() == model.LeftoverReusable {
			kind = SegmentReusable
		}
		segs = append(segs, Segment{
			Kind:  kind,
			X:     x,
			Width: float32(bar.Leftover) * scale,
			Label: fmt.Sprintf("%dmm", int(bar.Leftover)),
		})
	}
	return segs
}

// BarCanvas renders one bar of a cutting plan as a proportional strip.
type BarCanvas struct {
	widget.BaseWidget
	bar       model.Bar
	barLength float64
	width     float32
	height    float32
}

func NewBarCanvas(bar model.Bar, barLength float64, width, height float32) *BarCanvas {
	bc := &BarCanvas{
		bar:       bar,
		barLength: barLength,
		width:     width,
		height:    height,
	}
	bc.ExtendBaseWidget(bc)
	return bc
}

func (bc *BarCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newBarCanvasRenderer(bc)
}

type barCanvasRenderer struct {
	bc      *BarCanvas
	objects []fyne.CanvasObject
}

func newBarCanvasRenderer(bc *BarCanvas) *barCanvasRenderer {
	r := &barCanvasRenderer{bc: bc}
	r.rebuild()
	return r
}

func (r *barCanvasRenderer) rebuild() {
	r.objects = nil
	h := r.bc.height

	for _, s := range BarSegments(r.bc.bar, r.bc.barLength, r.bc.width) {
		fill := cutColor
		switch s.Kind {
		case SegmentReusable:
			fill = reusableColor
		case SegmentScrap:
			fill = scrapColor
		}

		rect := canvas.NewRectangle(fill)
		rect.StrokeColor = outlineColor
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(s.Width, h))
		rect.Move(fyne.NewPos(s.X, 0))
		r.objects = append(r.objects, rect)

		// Label only if it fits
		if s.Width > float32(len(s.Label))*5.5 {
			label := canvas.NewText(s.Label, color.Black)
			label.TextSize = 9
			label.Move(fyne.NewPos(s.X+3, (h-12)/2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *barCanvasRenderer) Layout(size fyne.Size)        {}
func (r *barCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *barCanvasRenderer) Destroy()                     {}
func (r *barCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *barCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.bc.width, r.bc.height)
}

func boldLabel(text string) *widget.Label {
	l := widget.NewLabel(text)
	l.TextStyle = fyne.TextStyle{Bold: true}
	return l
}

// RenderResults creates a scrollable container with the plan of every
// profile followed by the job totals and the reusable leftovers.
func RenderResults(results []model.ProfileResult) fyne.CanvasObject {
	if len(results) == 0 {
		return widget.NewLabel("No results yet. Add profiles, then click Plan.")
	}

	var items []fyne.CanvasObject
	total := model.CostSummary{}
	failed := 0

	for _, r := range results {
		items = append(items, boldLabel("Profile: "+r.Profile.Code))
		if warn := report.BarLengthWarning(r.Profile); warn != "" {
			w := widget.NewLabel(warn)
			w.Importance = widget.WarningImportance
			items = append(items, w)
		}
		if !r.OK() {
			e := widget.NewLabel("Not planned: " + r.Err.Error())
			e.Importance = widget.DangerImportance
			items = append(items, e, widget.NewSeparator())
			failed++
			continue
		}

		for _, line := range report.HeaderLines(r.Profile) {
			items = append(items, widget.NewLabel(line))
		}
		items = append(items, boldLabel(report.EfficiencyLine(r.Plan)))
		if len(r.Plan.Bars) == 0 {
			items = append(items, widget.NewLabel("No cuts requested"), widget.NewSeparator())
			continue
		}
		items = append(items, widget.NewLabel(report.CountLine(r.Plan)))

		for i, bar := range r.Plan.Bars {
			items = append(items,
				widget.NewLabel(report.BarSummary(i, bar)),
				NewBarCanvas(bar, r.Plan.BarLength, 640, 26),
			)
		}

		cost := model.SummarizeCost(r.Profile, r.Plan)
		total = total.Add(cost)
		items = append(items, widget.NewLabel(strings.Join(report.CostLines(cost), "\n")), widget.NewSeparator())
	}

	if failed > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d profile(s) could not be planned. Fix their cuts or bar length.", failed,
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	leftovers := model.CollectAllLeftovers(results)
	if len(leftovers) > 0 {
		items = append(items, boldLabel("Reusable leftovers:"))
		for _, l := range leftovers {
			items = append(items, widget.NewLabel(fmt.Sprintf(
				"  %s: %.1f mm (bar %d)", l.ProfileCode, l.Length, l.SourceBar,
			)))
		}
	}

	items = append(items, boldLabel("Job totals"), widget.NewLabel(strings.Join(report.CostLines(total), "\n")))
	return container.NewVScroll(container.NewVBox(items...))
}
