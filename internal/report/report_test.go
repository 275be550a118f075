package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/model"
)

func plannedResult(t *testing.T) model.ProfileResult {
	t.Helper()
	p := model.NewProfile("MARCO-20", 0.5, 6000, 4,
		model.NewCutGroup(4000, 2, model.Angle90),
		model.NewCutGroup(2000, 1, model.Angle45),
	)
	plan, err := engine.Plan(p)
	require.NoError(t, err)
	return model.ProfileResult{Profile: p, Plan: plan}
}

func TestCutLine(t *testing.T) {
	p := model.Profile{WeightPerMeter: 0.5, PricePerKg: 4}
	line := CutLine(p, model.CutRequest{Length: 4000, Angle: model.Angle90})
	assert.Equal(t, "- 4000.0 mm (90°) -> 2.000 kg - $8.00", line)
}

func TestLeftoverLine(t *testing.T) {
	p := model.Profile{WeightPerMeter: 0.5, PricePerKg: 4}
	assert.Equal(t, "- 2000.0 mm -> 1.000 kg - $4.00 [REUSABLE]", LeftoverLine(p, model.Bar{Leftover: 2000}))
	assert.Equal(t, "- 0.0 mm -> 0.000 kg - $0.00 [SCRAP]", LeftoverLine(p, model.Bar{Leftover: 0}))
}

func TestEfficiencyLine(t *testing.T) {
	plan := model.CuttingPlan{Efficiency: 83.33333, Waste: 16.66667}
	assert.Equal(t, "Efficiency: 83.33% | Waste: 16.67%", EfficiencyLine(plan))
}

func TestCountLine(t *testing.T) {
	r := plannedResult(t)
	assert.Equal(t, "3 cuts on 2 bars", CountLine(r.Plan))
	assert.Equal(t, "0 cuts on 0 bars", CountLine(model.CuttingPlan{}))
}

func TestHeaderLines(t *testing.T) {
	lines := HeaderLines(model.Profile{WeightPerMeter: 0.512, PricePerKg: 4.5, BarLength: 6200})
	assert.Equal(t, []string{
		"Weight per meter: 0.512 kg/m",
		"Price per kg: $4.50",
		"Bar length: 6.20 m",
	}, lines)
}

func TestSegmentLabel(t *testing.T) {
	assert.Equal(t, "1200mm (45°)", SegmentLabel(model.CutRequest{Length: 1200.7, Angle: model.Angle45}))
}

func TestBarSummary(t *testing.T) {
	b := model.Bar{Cuts: []model.CutRequest{{Length: 4000}, {Length: 1500}}, Leftover: 500}
	assert.Equal(t, "Bar 2: 4000.0 + 1500.0 = 5500.0 mm, leftover 500.0 mm [SCRAP]", BarSummary(1, b))
}

func TestBarLengthWarning(t *testing.T) {
	assert.Empty(t, BarLengthWarning(model.Profile{BarLength: 6200}))
	assert.Contains(t, BarLengthWarning(model.Profile{BarLength: 6500}), "6.50 m exceeds")
}

func TestRender(t *testing.T) {
	ok := plannedResult(t)
	failed := model.ProfileResult{
		Profile: model.NewProfile("TUBO", 0.4, 6000, 4, model.NewCutGroup(7000, 1, model.Angle90)),
		Err:     &engine.ValidationError{ProfileCode: "TUBO", Reason: engine.ReasonOversizedCut, Length: 7000, BarLength: 6000},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []model.ProfileResult{ok, failed}))
	out := buf.String()

	assert.Contains(t, out, "Profile: MARCO-20")
	assert.Contains(t, out, "Efficiency: 83.33% | Waste: 16.67%")
	assert.Contains(t, out, "- 4000.0 mm (90°) -> 2.000 kg - $8.00")
	assert.Contains(t, out, "- 2000.0 mm (45°) -> 1.000 kg - $4.00")
	assert.Contains(t, out, "- 2000.0 mm -> 1.000 kg - $4.00 [REUSABLE]")
	assert.Contains(t, out, "Bar 1: 4000.0 + 2000.0 = 6000.0 mm, leftover 0.0 mm [SCRAP]")
	assert.Equal(t, 3, strings.Count(out, "mm ("), "three useful cuts")
	assert.Contains(t, out, "3 cuts on 2 bars")

	assert.Contains(t, out, "Profile: TUBO")
	assert.Contains(t, out, "Not planned:")
	assert.Contains(t, out, "Job totals")
	assert.Contains(t, out, "Bars: 2")
}

func TestRender_EmptyPlan(t *testing.T) {
	p := model.NewProfile("EMPTY", 0.5, 6000, 4)
	plan, err := engine.Plan(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []model.ProfileResult{{Profile: p, Plan: plan}}))
	assert.Contains(t, buf.String(), "No cuts requested")
	assert.Contains(t, buf.String(), "Efficiency: 0.00% | Waste: 100.00%")
	assert.NotContains(t, buf.String(), "Job totals")
	assert.NotContains(t, buf.String(), "cuts on")
}

func TestChart(t *testing.T) {
	st := NewStyles(lipgloss.NewRenderer(&bytes.Buffer{}))

	full := model.Bar{Cuts: []model.CutRequest{{Length: 3000}, {Length: 3000}}}
	chart := Chart(st, full, 6000, 10)
	assert.Equal(t, "[█████▓▓▓▓▓]", chart)

	partial := model.Bar{Cuts: []model.CutRequest{{Length: 3000}}, Leftover: 3000}
	assert.Equal(t, "[█████░░░░░]", Chart(st, partial, 6000, 10))

	tiny := model.Bar{Cuts: []model.CutRequest{{Length: 1}}, Leftover: 5999}
	assert.Equal(t, "[█░░░░░░░░░]", Chart(st, tiny, 6000, 10))

	assert.Empty(t, Chart(st, full, 0, 10))
}

func TestRenderComparison(t *testing.T) {
	p := model.NewProfile("MARCO", 1, 6000, 10, model.NewCutGroup(3100, 4, model.Angle90))
	results := engine.CompareBarLengths(p, []float64{3000, 6000, 6200})

	var buf bytes.Buffer
	require.NoError(t, RenderComparison(&buf, p, results))
	out := buf.String()

	assert.Contains(t, out, "Bar length comparison: MARCO")
	assert.Contains(t, out, "cut #1 of 3100.0 mm is longer than the 3000.0 mm bar")
	assert.Contains(t, out, "*")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "*"), "6.20 m should be marked best")
}

func TestRenderLeftovers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderLeftovers(&buf, []model.LeftoverStock{
		{ProfileCode: "MARCO", SourceBar: 2, Length: 2000},
	}))
	assert.Contains(t, buf.String(), "MARCO")
	assert.Contains(t, buf.String(), "Total: 2000.0 mm")

	buf.Reset()
	require.NoError(t, RenderLeftovers(&buf, nil))
	assert.Contains(t, buf.String(), "None")
}

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, []model.ProfileResult{plannedResult(t)})
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
