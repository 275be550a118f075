package form

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BarCut/internal/model"
)

// scriptedPrompter replays canned answers in order.
type scriptedPrompter struct {
	profiles []ProfileAnswers
	groups   []GroupAnswers
	another  []bool
	abortAt  int // index of the Another call that aborts, -1 for none

	presetsSeen int
	anotherN    int
}

func (s *scriptedPrompter) Profile(_ context.Context, a *ProfileAnswers, presets []model.CatalogEntry) error {
	s.presetsSeen = len(presets)
	next := s.profiles[0]
	s.profiles = s.profiles[1:]
	*a = next
	return nil
}

func (s *scriptedPrompter) Group(_ context.Context, _ int, g *GroupAnswers) error {
	next := s.groups[0]
	s.groups = s.groups[1:]
	*g = next
	return nil
}

func (s *scriptedPrompter) Another(context.Context) (bool, error) {
	if s.anotherN == s.abortAt {
		return false, huh.ErrUserAborted
	}
	v := s.another[s.anotherN]
	s.anotherN++
	return v, nil
}

func group(length, qty, angle string) GroupAnswers {
	g := NewGroupAnswers()
	g.Length = length
	g.Quantity = qty
	g.Angle = angle
	return g
}

func TestSession_TwoProfiles(t *testing.T) {
	adjusted := group("1450", "2", "45")
	adjusted.Adjustment = "subtract"
	adjusted.AdjustBy = "12"

	script := &scriptedPrompter{
		profiles: []ProfileAnswers{
			{Code: "MARCO-20", WeightPerMeter: "0.5", BarLengthM: "6", PricePerKg: "4", CutTypes: "2"},
			{Code: "HOJA-20", WeightPerMeter: "0,436", BarLengthM: "6.2", PricePerKg: "4", CutTypes: "1"},
		},
		groups: []GroupAnswers{
			group("4000", "1", "90"),
			adjusted,
			group("780", "4", "90"),
		},
		another: []bool{true, false},
		abortAt: -1,
	}
	s := &Session{Catalog: model.DefaultCatalog(), prompt: script}

	profiles, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	first := profiles[0]
	assert.Equal(t, "MARCO-20", first.Code)
	assert.Equal(t, 6000.0, first.BarLength)
	require.Len(t, first.Cuts, 3)
	assert.Equal(t, 4000.0, first.Cuts[0].Length)
	assert.Equal(t, 1438.0, first.Cuts[1].Length)
	assert.Equal(t, model.Angle45, first.Cuts[2].Angle)

	second := profiles[1]
	assert.InDelta(t, 0.436, second.WeightPerMeter, 1e-9)
	assert.InDelta(t, 6200.0, second.BarLength, 1e-9)
	assert.Len(t, second.Cuts, 4)

	assert.Equal(t, len(model.DefaultCatalog().Entries), script.presetsSeen)
}

func TestSession_BarLengthWarning(t *testing.T) {
	script := &scriptedPrompter{
		profiles: []ProfileAnswers{
			{Code: "TUBO", WeightPerMeter: "1", BarLengthM: "7", PricePerKg: "1", CutTypes: "1"},
		},
		groups:  []GroupAnswers{group("1000", "1", "90")},
		another: []bool{false},
		abortAt: -1,
	}
	var out bytes.Buffer
	s := &Session{Out: &out, prompt: script}

	profiles, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, 7000.0, profiles[0].BarLength)
	assert.Contains(t, out.String(), "exceeds")
}

func TestSession_AbortKeepsEnteredProfiles(t *testing.T) {
	script := &scriptedPrompter{
		profiles: []ProfileAnswers{
			{Code: "A", WeightPerMeter: "1", BarLengthM: "6", PricePerKg: "1", CutTypes: "1"},
		},
		groups:  []GroupAnswers{group("1000", "1", "90")},
		abortAt: 0,
	}
	s := &Session{prompt: script}

	profiles, err := s.Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
	assert.Len(t, profiles, 1)
}

func TestSession_InvalidAdjustedLength(t *testing.T) {
	bad := group("10", "1", "90")
	bad.Adjustment = "subtract"
	bad.AdjustBy = "10"

	script := &scriptedPrompter{
		profiles: []ProfileAnswers{
			{Code: "A", WeightPerMeter: "1", BarLengthM: "6", PricePerKg: "1", CutTypes: "1"},
		},
		groups:  []GroupAnswers{bad},
		abortAt: -1,
	}
	s := &Session{prompt: script}

	_, err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cut #1")
}
