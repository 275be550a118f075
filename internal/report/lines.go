// Package report formats cutting plans as text: the line items shared by
// every output format and a styled terminal rendering.
package report

import (
	"fmt"

	"github.com/piwi3910/BarCut/internal/model"
)

// CutLine formats one useful cut, e.g. "- 4000.0 mm (90°) -> 2.000 kg - $8.00".
func CutLine(p model.Profile, c model.CutRequest) string {
	seg := p.Segment(c.Length)
	return fmt.Sprintf("- %.1f mm (%s) -> %s - %s", c.Length, c.Angle, model.FormatWeight(seg.Weight), model.FormatMoney(seg.Cost))
}

// LeftoverLine formats one bar leftover with its class tag,
// e.g. "- 2000.0 mm -> 1.000 kg - $4.00 [REUSABLE]".
func LeftoverLine(p model.Profile, b model.Bar) string {
	seg := p.Segment(b.Leftover)
	return fmt.Sprintf("- %.1f mm -> %s - %s [%s]", b.Leftover, model.FormatWeight(seg.Weight), model.FormatMoney(seg.Cost), b.Class())
}

// EfficiencyLine formats "Efficiency: 83.33% | Waste: 16.67%".
func EfficiencyLine(plan model.CuttingPlan) string {
	return fmt.Sprintf("Efficiency: %.2f%% | Waste: %.2f%%", plan.Efficiency, plan.Waste)
}

// CountLine formats "3 cuts on 2 bars".
func CountLine(plan model.CuttingPlan) string {
	return fmt.Sprintf("%d cuts on %d bars", plan.CutCount(), len(plan.Bars))
}

// HeaderLines returns the profile description printed above its plan.
func HeaderLines(p model.Profile) []string {
	return []string{
		fmt.Sprintf("Weight per meter: %g kg/m", p.WeightPerMeter),
		fmt.Sprintf("Price per kg: %s", model.FormatMoney(p.PricePerKg)),
		fmt.Sprintf("Bar length: %.2f m", p.BarLength/1000),
	}
}

// SegmentLabel is the caption drawn inside a cut segment, e.g. "1200mm (45°)".
func SegmentLabel(c model.CutRequest) string {
	return fmt.Sprintf("%dmm (%s)", int(c.Length), c.Angle)
}

// BarSummary formats one bar as "Bar 2: 4000.0 + 1500.0 = 5500.0 mm, leftover 500.0 mm [SCRAP]".
func BarSummary(index int, b model.Bar) string {
	s := fmt.Sprintf("Bar %d: ", index+1)
	for i, c := range b.Cuts {
		if i > 0 {
			s += " + "
		}
		s += fmt.Sprintf("%.1f", c.Length)
	}
	return s + fmt.Sprintf(" = %.1f mm, leftover %.1f mm [%s]", b.Used(), b.Leftover, b.Class())
}

// CostLines formats the material totals of a plan.
func CostLines(s model.CostSummary) []string {
	return []string{
		fmt.Sprintf("Bars: %d", s.Bars),
		fmt.Sprintf("Purchased: %s - %s", model.FormatWeight(s.PurchasedWeight), model.FormatMoney(s.PurchasedCost)),
		fmt.Sprintf("Used: %s - %s", model.FormatWeight(s.UsedWeight), model.FormatMoney(s.UsedCost)),
		fmt.Sprintf("Reusable leftovers: %s - %s", model.FormatWeight(s.ReusableWeight), model.FormatMoney(s.ReusableCost)),
		fmt.Sprintf("Scrap: %s - %s", model.FormatWeight(s.ScrapWeight), model.FormatMoney(s.ScrapCost)),
	}
}

// BarLengthWarning is shown when a profile's bar is longer than the stock limit.
func BarLengthWarning(p model.Profile) string {
	if !p.ExceedsMaxBarLength() {
		return ""
	}
	return fmt.Sprintf("Warning: bar length %.2f m exceeds the %.2f m maximum", p.BarLength/1000, model.MaxBarLengthMM/1000)
}
