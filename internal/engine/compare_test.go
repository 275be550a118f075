package engine

import (
	"testing"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareBarLengths(t *testing.T) {
	p := model.NewProfile("MARCO", 1.0, 6000, 10,
		model.NewCutGroup(3100, 4, model.Angle90),
	)

	results := CompareBarLengths(p, []float64{3000, 6000, 6200})
	require.Len(t, results, 3)

	assert.ErrorIs(t, results[0].Err, ErrOversizedCut)

	// 6000: one 3100 per bar, 2900 left on each
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 4, results[1].BarsUsed)
	assert.InDelta(t, 4*2900, results[1].ReusableTotal, model.Epsilon)
	assert.InDelta(t, 0, results[1].ScrapTotal, model.Epsilon)

	// 6200: two 3100 per bar, no leftover
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 2, results[2].BarsUsed)
	assert.InDelta(t, 100, results[2].Efficiency, 1e-9)
	assert.InDelta(t, 12.4, results[2].Cost.PurchasedWeight, 1e-9)

	assert.Equal(t, 2, Best(results))

	// The original profile is untouched
	assert.Equal(t, 6000.0, p.BarLength)
}

func TestDefaultBarLengths(t *testing.T) {
	p := model.NewProfile("X", 0, 6000, 0)
	assert.Equal(t, []float64{6000, 6200}, DefaultBarLengths(p))

	p.BarLength = 5800
	assert.Equal(t, []float64{5800, 6000, 6200}, DefaultBarLengths(p))

	p.BarLength = 0
	assert.Equal(t, []float64{6000, 6200}, DefaultBarLengths(p))
}

func TestBest_NoneSucceeded(t *testing.T) {
	results := []ComparisonResult{{Err: ErrOversizedCut}}
	assert.Equal(t, -1, Best(results))
	assert.Equal(t, -1, Best(nil))
}
