package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/BarCut/internal/model"
)

// ProfileAnswers holds the raw text typed into the profile form.
// huh binds string fields, so everything is parsed after submit.
type ProfileAnswers struct {
	Code           string
	WeightPerMeter string // kg/m
	BarLengthM     string // meters, converted to mm
	PricePerKg     string
	CutTypes       string // how many cut groups follow
}

// GroupAnswers holds the raw text of one cut group.
type GroupAnswers struct {
	Length     string // mm
	Adjustment string // none, add, subtract
	AdjustBy   string // mm
	Quantity   string
	Angle      string // "90" or "45"
	Label      string
}

// NewProfileAnswers prefills the profile form from the config defaults.
func NewProfileAnswers(cfg model.AppConfig) ProfileAnswers {
	return ProfileAnswers{
		WeightPerMeter: formatFloat(cfg.DefaultWeightPerMeter),
		BarLengthM:     formatFloat(cfg.DefaultBarLength / 1000),
		PricePerKg:     formatFloat(cfg.DefaultPricePerKg),
		CutTypes:       "1",
	}
}

// FromCatalog overwrites the answers with a catalog entry's values.
func (a *ProfileAnswers) FromCatalog(e model.CatalogEntry) {
	a.Code = e.Code
	a.WeightPerMeter = formatFloat(e.WeightPerMeter)
	a.BarLengthM = formatFloat(e.BarLength / 1000)
	a.PricePerKg = formatFloat(e.PricePerKg)
}

// NewGroupAnswers returns the defaults of a cut group form.
func NewGroupAnswers() GroupAnswers {
	return GroupAnswers{
		Adjustment: string(model.AdjustNone),
		AdjustBy:   "0",
		Quantity:   "1",
		Angle:      strconv.Itoa(int(model.Angle90)),
	}
}

// Profile parses the answers into a profile with no cuts. A bar longer
// than the stock maximum is not an error; callers check
// Profile.ExceedsMaxBarLength and warn.
func (a ProfileAnswers) Profile() (model.Profile, error) {
	if err := ValidateCode(a.Code); err != nil {
		return model.Profile{}, err
	}
	weight, err := parseNonNegative(a.WeightPerMeter, "weight per meter")
	if err != nil {
		return model.Profile{}, err
	}
	barM, err := parsePositive(a.BarLengthM, "bar length")
	if err != nil {
		return model.Profile{}, err
	}
	price, err := parseNonNegative(a.PricePerKg, "price per kg")
	if err != nil {
		return model.Profile{}, err
	}
	return model.NewProfile(strings.TrimSpace(a.Code), weight, model.MetersToMM(barM), price), nil
}

// GroupCount parses the number of cut groups.
func (a ProfileAnswers) GroupCount() (int, error) {
	return parsePositiveInt(a.CutTypes, "cut types")
}

// Group parses the answers into a cut group. The adjusted length must stay
// positive.
func (g GroupAnswers) Group() (model.CutGroup, error) {
	length, err := parsePositive(g.Length, "length")
	if err != nil {
		return model.CutGroup{}, err
	}
	qty, err := parsePositiveInt(g.Quantity, "quantity")
	if err != nil {
		return model.CutGroup{}, err
	}
	angle, err := model.ParseAngle(g.Angle)
	if err != nil {
		return model.CutGroup{}, err
	}
	adj, ok := model.ParseAdjustment(g.Adjustment)
	if !ok {
		return model.CutGroup{}, fmt.Errorf("unknown adjustment %q", g.Adjustment)
	}

	group := model.NewCutGroup(length, qty, angle)
	group.Label = strings.TrimSpace(g.Label)
	group.Adjustment = adj
	if adj != model.AdjustNone {
		by, err := parseNonNegative(g.AdjustBy, "adjustment")
		if err != nil {
			return model.CutGroup{}, err
		}
		group.AdjustBy = by
	}
	if group.FinalLength() <= 0 {
		return model.CutGroup{}, fmt.Errorf("adjusted length %.1f mm must be positive", group.FinalLength())
	}
	return group, nil
}

// ValidateCode rejects an empty profile code.
func ValidateCode(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("profile code is required")
	}
	return nil
}

// ValidateNonNegative accepts a number >= 0. A decimal comma is allowed.
func ValidateNonNegative(s string) error {
	_, err := parseNonNegative(s, "value")
	return err
}

// ValidatePositive accepts a number > 0.
func ValidatePositive(s string) error {
	_, err := parsePositive(s, "value")
	return err
}

// ValidatePositiveInt accepts a whole number >= 1.
func ValidatePositiveInt(s string) error {
	_, err := parsePositiveInt(s, "value")
	return err
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, errors.New("a number is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func parseNonNegative(s, name string) (float64, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return v, nil
}

func parsePositive(s, name string) (float64, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than zero", name)
	}
	return v, nil
}

func parsePositiveInt(s, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a whole number", name, strings.TrimSpace(s))
	}
	if v < 1 {
		return 0, fmt.Errorf("%s must be at least 1", name)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
