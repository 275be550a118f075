package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/BarCut/internal/model"
)

// Reason identifies why a profile could not be planned.
type Reason string

const (
	ReasonInvalidCutLength Reason = "InvalidCutLength"
	ReasonOversizedCut     Reason = "OversizedCut"
	ReasonInvalidBarLength Reason = "InvalidBarLength"
)

// Sentinel errors matched with errors.Is against a *ValidationError.
var (
	ErrInvalidCutLength = errors.New("cut length must be positive")
	ErrOversizedCut     = errors.New("cut is longer than the bar")
	ErrInvalidBarLength = errors.New("bar length must be positive")
)

// ValidationError reports the first input problem found in a profile.
// CutIndex is -1 when the problem is not tied to a cut.
type ValidationError struct {
	ProfileCode string
	Reason      Reason
	CutIndex    int
	Length      float64
	BarLength   float64
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonInvalidBarLength:
		return fmt.Sprintf("profile %s: %s (got %.1f mm)", e.ProfileCode, ErrInvalidBarLength, e.BarLength)
	case ReasonOversizedCut:
		return fmt.Sprintf("profile %s: cut #%d of %.1f mm is longer than the %.1f mm bar",
			e.ProfileCode, e.CutIndex+1, e.Length, e.BarLength)
	default:
		return fmt.Sprintf("profile %s: cut #%d: %s (got %.1f mm)", e.ProfileCode, e.CutIndex+1, ErrInvalidCutLength, e.Length)
	}
}

func (e *ValidationError) Unwrap() error {
	switch e.Reason {
	case ReasonInvalidBarLength:
		return ErrInvalidBarLength
	case ReasonOversizedCut:
		return ErrOversizedCut
	default:
		return ErrInvalidCutLength
	}
}

// ReasonOf returns the validation reason carried by err, or "" if err is
// not a *ValidationError.
func ReasonOf(err error) Reason {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}

// Validate checks a profile before planning. The bar length is checked
// first, then each cut in input order. NaN and infinite lengths are
// rejected like non-positive ones.
func Validate(p model.Profile) error {
	if !positiveLength(p.BarLength) {
		return &ValidationError{
			ProfileCode: p.Code,
			Reason:      ReasonInvalidBarLength,
			CutIndex:    -1,
			BarLength:   p.BarLength,
		}
	}
	for i, c := range p.Cuts {
		if !positiveLength(c.Length) {
			return &ValidationError{
				ProfileCode: p.Code,
				Reason:      ReasonInvalidCutLength,
				CutIndex:    i,
				Length:      c.Length,
				BarLength:   p.BarLength,
			}
		}
		if c.Length > p.BarLength {
			return &ValidationError{
				ProfileCode: p.Code,
				Reason:      ReasonOversizedCut,
				CutIndex:    i,
				Length:      c.Length,
				BarLength:   p.BarLength,
			}
		}
	}
	return nil
}

func positiveLength(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Plan packs the profile's cuts into bars with first-fit-decreasing.
//
// Cuts are stable-sorted longest first. Each bar is filled by a single
// sweep over the pending cuts, taking every cut that still fits; the
// sweep is not restarted after a placement. The profile is not modified.
// An empty cut list yields a plan with no bars and zero efficiency.
func Plan(p model.Profile) (model.CuttingPlan, error) {
	if err := Validate(p); err != nil {
		return model.CuttingPlan{}, err
	}

	pending := sortedCuts(p.Cuts)
	bars := []model.Bar{}

	for len(pending) > 0 {
		available := p.BarLength
		var placed []model.CutRequest
		remaining := pending[:0:0]

		for _, c := range pending {
			if c.Length <= available {
				placed = append(placed, c)
				available -= c.Length
			} else {
				remaining = append(remaining, c)
			}
		}

		bars = append(bars, model.Bar{Cuts: placed, Leftover: available})
		pending = remaining
	}

	plan := model.CuttingPlan{
		ProfileCode: p.Code,
		BarLength:   p.BarLength,
		Bars:        bars,
	}
	plan.Efficiency = efficiency(plan.TotalUsed(), plan.TotalCapacity())
	plan.Waste = 100 - plan.Efficiency
	return plan, nil
}

// sortedCuts returns a copy of cuts ordered by length, longest first.
// Equal lengths keep their input order.
func sortedCuts(cuts []model.CutRequest) []model.CutRequest {
	out := make([]model.CutRequest, len(cuts))
	copy(out, cuts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Length > out[j].Length
	})
	return out
}

func efficiency(used, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return 100 * used / capacity
}
