package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Bar length limits in mm.
const (
	DefaultBarLengthMM = 6000.0
	MaxBarLengthMM     = 6200.0 // Soft limit: longer bars only raise a warning
)

// ReusableThresholdMM is the minimum leftover length kept as stock.
// Shorter leftovers are scrap.
const ReusableThresholdMM = 1000.0

// Epsilon is the tolerance used when comparing lengths in mm.
const Epsilon = 1e-6

// NearlyEqual reports whether two lengths are equal within Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// MetersToMM converts a length in meters (as typed into forms) to mm.
func MetersToMM(m float64) float64 {
	return m * 1000.0
}

// Angle is the miter angle of a cut in degrees.
type Angle int

const (
	Angle90 Angle = 90 // Square cut
	Angle45 Angle = 45 // Miter cut
)

// Angles lists the supported cut angles in form order.
var Angles = []Angle{Angle90, Angle45}

// Valid reports whether the angle is one the saw supports.
func (a Angle) Valid() bool {
	return a == Angle90 || a == Angle45
}

func (a Angle) String() string {
	return fmt.Sprintf("%d°", int(a))
}

// ParseAngle accepts "45", "90", "45°" or "90 deg".
func ParseAngle(s string) (Angle, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "°")
	s = strings.TrimSuffix(s, "deg")
	s = strings.TrimSpace(s)
	if s == "" {
		return Angle90, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid angle %q", s)
	}
	a := Angle(int(v))
	if float64(a) != v || !a.Valid() {
		return 0, fmt.Errorf("unsupported angle %q: must be 45 or 90", s)
	}
	return a, nil
}

// CutRequest is one piece to be cut from a bar.
type CutRequest struct {
	Length float64 `json:"length_mm" yaml:"length_mm"`
	Angle  Angle   `json:"angle" yaml:"angle"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
}

func (c CutRequest) String() string {
	return fmt.Sprintf("%.1f mm (%s)", c.Length, c.Angle)
}

// Adjustment is the optional correction applied to a typed length.
type Adjustment string

const (
	AdjustNone     Adjustment = "none"
	AdjustAdd      Adjustment = "add"
	AdjustSubtract Adjustment = "subtract"
)

// ParseAdjustment accepts the English names and the shop-floor Spanish
// ones ("no", "sumar", "restar").
func ParseAdjustment(s string) (Adjustment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "no", "n", "-":
		return AdjustNone, true
	case "add", "sumar", "plus", "+":
		return AdjustAdd, true
	case "subtract", "restar", "minus":
		return AdjustSubtract, true
	default:
		return AdjustNone, false
	}
}

// CutGroup is a cut as entered by the user: a length with an optional
// adjustment, repeated Quantity times.
type CutGroup struct {
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	Length     float64    `json:"length_mm" yaml:"length_mm"`
	Adjustment Adjustment `json:"adjustment,omitempty" yaml:"adjustment,omitempty"`
	AdjustBy   float64    `json:"adjust_mm,omitempty" yaml:"adjust_mm,omitempty"`
	Quantity   int        `json:"quantity" yaml:"quantity"`
	Angle      Angle      `json:"angle" yaml:"angle"`
}

func NewCutGroup(length float64, qty int, angle Angle) CutGroup {
	return CutGroup{
		Length:     length,
		Adjustment: AdjustNone,
		Quantity:   qty,
		Angle:      angle,
	}
}

// FinalLength returns the length after the adjustment is applied.
func (g CutGroup) FinalLength() float64 {
	switch g.Adjustment {
	case AdjustAdd:
		return g.Length + g.AdjustBy
	case AdjustSubtract:
		return g.Length - g.AdjustBy
	default:
		return g.Length
	}
}

// Expand returns Quantity identical cut requests carrying the adjusted length.
func (g CutGroup) Expand() []CutRequest {
	if g.Quantity <= 0 {
		return nil
	}
	length := g.FinalLength()
	cuts := make([]CutRequest, g.Quantity)
	for i := range cuts {
		cuts[i] = CutRequest{Length: length, Angle: g.Angle, Label: g.Label}
	}
	return cuts
}

// Profile is one aluminum profile and the cuts requested from it.
type Profile struct {
	ID             string       `json:"id" yaml:"id"`
	Code           string       `json:"code" yaml:"code"`
	WeightPerMeter float64      `json:"weight_per_meter" yaml:"weight_per_meter"` // kg/m
	BarLength      float64      `json:"bar_length_mm" yaml:"bar_length_mm"`
	PricePerKg     float64      `json:"price_per_kg" yaml:"price_per_kg"`
	Cuts           []CutRequest `json:"cuts" yaml:"cuts"`
}

// NewProfile builds a profile and expands the given cut groups in order.
func NewProfile(code string, weightPerMeter, barLength, pricePerKg float64, groups ...CutGroup) Profile {
	p := Profile{
		ID:             uuid.New().String()[:8],
		Code:           code,
		WeightPerMeter: weightPerMeter,
		BarLength:      barLength,
		PricePerKg:     pricePerKg,
		Cuts:           []CutRequest{},
	}
	for _, g := range groups {
		p.AddGroup(g)
	}
	return p
}

// AddGroup appends the expansion of g as a contiguous run.
func (p *Profile) AddGroup(g CutGroup) {
	p.Cuts = append(p.Cuts, g.Expand()...)
}

// TotalCutLength returns the sum of all requested cut lengths.
func (p Profile) TotalCutLength() float64 {
	var total float64
	for _, c := range p.Cuts {
		total += c.Length
	}
	return total
}

// ExceedsMaxBarLength reports whether the bar is longer than the soft limit.
func (p Profile) ExceedsMaxBarLength() bool {
	return p.BarLength > MaxBarLengthMM
}

// Clone returns a copy that shares no slices with p.
func (p Profile) Clone() Profile {
	cp := p
	cp.Cuts = append([]CutRequest(nil), p.Cuts...)
	return cp
}

// LeftoverClass tells whether a leftover goes back to stock.
type LeftoverClass int

const (
	LeftoverScrap LeftoverClass = iota
	LeftoverReusable
)

func (c LeftoverClass) String() string {
	if c == LeftoverReusable {
		return "REUSABLE"
	}
	return "SCRAP"
}

// ClassifyLeftover returns REUSABLE for leftovers of at least
// ReusableThresholdMM, SCRAP otherwise.
func ClassifyLeftover(leftoverMM float64) LeftoverClass {
	if leftoverMM >= ReusableThresholdMM {
		return LeftoverReusable
	}
	return LeftoverScrap
}

// Bar is one stock bar with its assigned cuts.
type Bar struct {
	Cuts     []CutRequest `json:"cuts" yaml:"cuts"`
	Leftover float64      `json:"leftover_mm" yaml:"leftover_mm"`
}

// Used returns the total length of the cuts on this bar.
func (b Bar) Used() float64 {
	var total float64
	for _, c := range b.Cuts {
		total += c.Length
	}
	return total
}

// Class classifies the bar's leftover.
func (b Bar) Class() LeftoverClass {
	return ClassifyLeftover(b.Leftover)
}

// CuttingPlan is the result of planning one profile.
type CuttingPlan struct {
	ProfileCode string  `json:"profile_code" yaml:"profile_code"`
	BarLength   float64 `json:"bar_length_mm" yaml:"bar_length_mm"`
	Bars        []Bar   `json:"bars" yaml:"bars"`
	Efficiency  float64 `json:"efficiency_pct" yaml:"efficiency_pct"`
	Waste       float64 `json:"waste_pct" yaml:"waste_pct"`
}

// TotalCapacity returns the length of all bars used.
func (p CuttingPlan) TotalCapacity() float64 {
	return float64(len(p.Bars)) * p.BarLength
}

// TotalUsed returns the total length of all assigned cuts.
func (p CuttingPlan) TotalUsed() float64 {
	var total float64
	for _, b := range p.Bars {
		total += b.Used()
	}
	return total
}

// CutCount returns the number of pieces in the plan.
func (p CuttingPlan) CutCount() int {
	n := 0
	for _, b := range p.Bars {
		n += len(b.Cuts)
	}
	return n
}

// LeftoverTotals returns the summed reusable and scrap leftover lengths.
func (p CuttingPlan) LeftoverTotals() (reusable, scrap float64) {
	for _, b := range p.Bars {
		if b.Class() == LeftoverReusable {
			reusable += b.Leftover
		} else {
			scrap += b.Leftover
		}
	}
	return reusable, scrap
}

// ProfileResult pairs a profile with its plan, or with the reason it
// could not be planned. Plan is the zero value when Err is set.
type ProfileResult struct {
	Profile Profile     `json:"profile"`
	Plan    CuttingPlan `json:"plan"`
	Err     error       `json:"-"`
}

// OK reports whether the profile was planned.
func (r ProfileResult) OK() bool {
	return r.Err == nil
}
