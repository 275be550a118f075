package model

import (
	"math"
	"testing"
)

func TestWeightKg(t *testing.T) {
	// 2.5 m of a 0.8 kg/m profile
	if w := WeightKg(2500, 0.8); math.Abs(w-2.0) > 1e-9 {
		t.Errorf("expected 2.0 kg, got %f", w)
	}
}

func TestProfileSegment(t *testing.T) {
	p := Profile{WeightPerMeter: 1.2, PricePerKg: 5}
	seg := p.Segment(1500)

	if math.Abs(seg.Weight-1.8) > 1e-9 {
		t.Errorf("expected 1.8 kg, got %f", seg.Weight)
	}
	if math.Abs(seg.Cost-9.0) > 1e-9 {
		t.Errorf("expected cost 9.0, got %f", seg.Cost)
	}
	if seg.Length != 1500 {
		t.Errorf("expected length 1500, got %f", seg.Length)
	}
}

func TestSummarizeCost(t *testing.T) {
	p := Profile{Code: "X", WeightPerMeter: 1.0, BarLength: 6000, PricePerKg: 10}
	plan := CuttingPlan{
		ProfileCode: "X",
		BarLength:   6000,
		Bars: []Bar{
			{Cuts: []CutRequest{{Length: 5000}}, Leftover: 1000},
			{Cuts: []CutRequest{{Length: 5500}}, Leftover: 500},
		},
	}

	s := SummarizeCost(p, plan)
	if s.Bars != 2 {
		t.Errorf("expected 2 bars, got %d", s.Bars)
	}
	if math.Abs(s.PurchasedWeight-12.0) > 1e-9 {
		t.Errorf("expected purchased 12 kg, got %f", s.PurchasedWeight)
	}
	if math.Abs(s.PurchasedCost-120.0) > 1e-9 {
		t.Errorf("expected purchased cost 120, got %f", s.PurchasedCost)
	}
	if math.Abs(s.UsedWeight-10.5) > 1e-9 {
		t.Errorf("expected used 10.5 kg, got %f", s.UsedWeight)
	}
	if math.Abs(s.ReusableCost-10.0) > 1e-9 {
		t.Errorf("expected reusable cost 10, got %f", s.ReusableCost)
	}
	if math.Abs(s.ScrapWeight-0.5) > 1e-9 {
		t.Errorf("expected scrap 0.5 kg, got %f", s.ScrapWeight)
	}

	// Purchased always equals used + leftovers
	total := s.UsedCost + s.ReusableCost + s.ScrapCost
	if math.Abs(total-s.PurchasedCost) > 1e-9 {
		t.Errorf("cost split %f does not add up to purchased %f", total, s.PurchasedCost)
	}
}

func TestCostSummaryAdd(t *testing.T) {
	a := CostSummary{Bars: 1, PurchasedCost: 10, ScrapWeight: 0.5}
	b := CostSummary{Bars: 2, PurchasedCost: 5, ScrapWeight: 0.25}
	sum := a.Add(b)
	if sum.Bars != 3 || sum.PurchasedCost != 15 || sum.ScrapWeight != 0.75 {
		t.Errorf("unexpected sum: %+v", sum)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{
		0:        "$0.00",
		12.345:   "$12.35",
		80:       "$80.00",
		1234.004: "$1234.00",
	}
	for in, want := range cases {
		if got := FormatMoney(in); got != want {
			t.Errorf("FormatMoney(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestFormatWeight(t *testing.T) {
	if got := FormatWeight(2.0); got != "2.000 kg" {
		t.Errorf("expected 2.000 kg, got %s", got)
	}
	if got := FormatWeight(0.4615); got != "0.462 kg" {
		t.Errorf("expected 0.462 kg, got %s", got)
	}
}
