package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietOptions(workers int) Options {
	return Options{
		Workers: workers,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func jobProfiles() []model.Profile {
	return []model.Profile{
		model.NewProfile("A", 0.5, 6000, 4, model.NewCutGroup(4000, 2, model.Angle90), model.NewCutGroup(2000, 1, model.Angle45)),
		model.NewProfile("B", 0.5, 6000, 4, model.NewCutGroup(7000, 1, model.Angle90)),
		model.NewProfile("C", 0.5, 6000, 4, model.NewCutGroup(3000, 3, model.Angle90)),
		model.NewProfile("D", 0.5, 6000, 4),
		model.NewProfile("E", 0.5, 0, 4, model.NewCutGroup(100, 1, model.Angle90)),
	}
}

func TestPlanJob_PreservesOrderAndIsolatesFailures(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		results, err := PlanJob(context.Background(), jobProfiles(), quietOptions(workers))
		require.NoError(t, err)
		require.Len(t, results, 5)

		codes := make([]string, len(results))
		for i, r := range results {
			codes[i] = r.Profile.Code
		}
		assert.Equal(t, []string{"A", "B", "C", "D", "E"}, codes)

		assert.True(t, results[0].OK())
		assert.Len(t, results[0].Plan.Bars, 2)

		assert.False(t, results[1].OK())
		assert.ErrorIs(t, results[1].Err, ErrOversizedCut)
		assert.Empty(t, results[1].Plan.Bars, "failed profile must not carry a partial plan")

		assert.True(t, results[2].OK())
		assert.InDelta(t, 75.0, results[2].Plan.Efficiency, 1e-9)

		assert.True(t, results[3].OK())
		assert.Empty(t, results[3].Plan.Bars)

		assert.ErrorIs(t, results[4].Err, ErrInvalidBarLength)
	}
}

func TestPlanJob_MatchesSequentialPlan(t *testing.T) {
	profiles := jobProfiles()
	results, err := PlanJob(context.Background(), profiles, quietOptions(3))
	require.NoError(t, err)

	for i, p := range profiles {
		plan, perr := Plan(p)
		if perr != nil {
			assert.Equal(t, perr.Error(), results[i].Err.Error())
			continue
		}
		assert.Equal(t, plan, results[i].Plan)
	}
}

func TestPlanJob_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := PlanJob(ctx, jobProfiles(), quietOptions(2))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestPlanJob_Empty(t *testing.T) {
	results, err := PlanJob(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
