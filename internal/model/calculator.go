package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WeightKg returns the weight of a piece of the given length.
func WeightKg(lengthMM, weightPerMeter float64) float64 {
	return (lengthMM / 1000.0) * weightPerMeter
}

// Segment is a cut or leftover annotated with its weight and cost.
type Segment struct {
	Length float64 `json:"length_mm"`
	Weight float64 `json:"weight_kg"`
	Cost   float64 `json:"cost"`
}

// Segment annotates a length of this profile with weight and cost.
// Cuts and leftovers are priced the same way.
func (p Profile) Segment(lengthMM float64) Segment {
	w := WeightKg(lengthMM, p.WeightPerMeter)
	return Segment{
		Length: lengthMM,
		Weight: w,
		Cost:   w * p.PricePerKg,
	}
}

// CostSummary holds the material totals of one cutting plan.
type CostSummary struct {
	Bars int `json:"bars"`

	PurchasedWeight float64 `json:"purchased_weight_kg"` // All bars, cuts and leftovers
	PurchasedCost   float64 `json:"purchased_cost"`
	UsedWeight      float64 `json:"used_weight_kg"`
	UsedCost        float64 `json:"used_cost"`
	ReusableWeight  float64 `json:"reusable_weight_kg"`
	ReusableCost    float64 `json:"reusable_cost"`
	ScrapWeight     float64 `json:"scrap_weight_kg"`
	ScrapCost       float64 `json:"scrap_cost"`
}

// SummarizeCost computes the material totals of plan for profile.
func SummarizeCost(profile Profile, plan CuttingPlan) CostSummary {
	reusable, scrap := plan.LeftoverTotals()
	purchased := profile.Segment(plan.TotalCapacity())
	used := profile.Segment(plan.TotalUsed())
	re := profile.Segment(reusable)
	sc := profile.Segment(scrap)
	return CostSummary{
		Bars:            len(plan.Bars),
		PurchasedWeight: purchased.Weight,
		PurchasedCost:   purchased.Cost,
		UsedWeight:      used.Weight,
		UsedCost:        used.Cost,
		ReusableWeight:  re.Weight,
		ReusableCost:    re.Cost,
		ScrapWeight:     sc.Weight,
		ScrapCost:       sc.Cost,
	}
}

// Add accumulates other into s.
func (s CostSummary) Add(other CostSummary) CostSummary {
	return CostSummary{
		Bars:            s.Bars + other.Bars,
		PurchasedWeight: s.PurchasedWeight + other.PurchasedWeight,
		PurchasedCost:   s.PurchasedCost + other.PurchasedCost,
		UsedWeight:      s.UsedWeight + other.UsedWeight,
		UsedCost:        s.UsedCost + other.UsedCost,
		ReusableWeight:  s.ReusableWeight + other.ReusableWeight,
		ReusableCost:    s.ReusableCost + other.ReusableCost,
		ScrapWeight:     s.ScrapWeight + other.ScrapWeight,
		ScrapCost:       s.ScrapCost + other.ScrapCost,
	}
}

// Money rounds a currency amount to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FormatMoney renders a currency amount as "$12.34".
func FormatMoney(v float64) string {
	return "$" + Money(v).StringFixed(2)
}

// FormatWeight renders a weight with gram precision.
func FormatWeight(kg float64) string {
	return fmt.Sprintf("%s kg", decimal.NewFromFloat(kg).StringFixed(3))
}
