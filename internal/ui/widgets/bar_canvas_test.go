package widgets

import (
	"math"
	"testing"

	"github.com/piwi3910/BarCut/internal/model"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestBarSegments_Proportional(t *testing.T) {
	bar := model.Bar{
		Cuts: []model.CutRequest{
			{Length: 3000, Angle: model.Angle90},
			{Length: 1500, Angle: model.Angle45},
		},
		Leftover: 1500,
	}
	segs := BarSegments(bar, 6000, 600)

	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if !near(segs[0].Width, 300) || segs[0].X != 0 {
		t.Errorf("first cut: got x=%v w=%v", segs[0].X, segs[0].Width)
	}
	if !near(segs[1].X, 300) || !near(segs[1].Width, 150) {
		t.Errorf("second cut: got x=%v w=%v", segs[1].X, segs[1].Width)
	}
	if segs[1].Label != "1500mm (45°)" {
		t.Errorf("unexpected label %q", segs[1].Label)
	}
	if segs[2].Kind != SegmentReusable {
		t.Errorf("1500 mm leftover should be reusable, got %v", segs[2].Kind)
	}
	if !near(segs[2].X+segs[2].Width, 600) {
		t.Errorf("segments should fill the width, end at %v", segs[2].X+segs[2].Width)
	}
}

func TestBarSegments_ScrapAndExactFit(t *testing.T) {
	scrap := model.Bar{Cuts: []model.CutRequest{{Length: 5500, Angle: model.Angle90}}, Leftover: 500}
	segs := BarSegments(scrap, 6000, 600)
	if got := segs[len(segs)-1].Kind; got != SegmentScrap {
		t.Errorf("500 mm leftover should be scrap, got %v", got)
	}

	exact := model.Bar{Cuts: []model.CutRequest{{Length: 6000, Angle: model.Angle90}}, Leftover: 0}
	segs = BarSegments(exact, 6000, 600)
	if len(segs) != 1 {
		t.Errorf("zero leftover should not be drawn, got %d segments", len(segs))
	}
}

func TestBarSegments_InvalidInput(t *testing.T) {
	bar := model.Bar{Cuts: []model.CutRequest{{Length: 100}}}
	if segs := BarSegments(bar, 0, 600); segs != nil {
		t.Errorf("expected nil for zero bar length, got %v", segs)
	}
	if segs := BarSegments(bar, 6000, 0); segs != nil {
		t.Errorf("expected nil for zero width, got %v", segs)
	}
}
