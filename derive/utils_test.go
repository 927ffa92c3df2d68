package derive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/model"
)

func TestBestOf(t *testing.T) {
	pbm := model.Curve{0.105, 0.231, 0.309, 0.471, 0.449}
	mps := model.Curve{0.134, 0.231, 0.310, 0.471, 0.627}
	nonMU := model.Curve{0.199, 0.540, 10.068, 0.970, 1.698}

	got, err := BestOf(pbm, mps)
	require.NoError(t, err)
	assert.Equal(t, pbm, got)

	got, err = BestOf(nonMU, mps)
	require.NoError(t, err)
	assert.Equal(t, mps, got)

	got, err = BestOf(model.Curve{1, 5, 3}, model.Curve{2, 4, 6}, model.Curve{3, 6, 0.5})
	require.NoError(t, err)
	assert.Equal(t, model.Curve{1, 4, 0.5}, got)

	// single curve is copied, not aliased
	got, err = BestOf(pbm)
	require.NoError(t, err)
	got[0] = 99
	assert.Equal(t, 0.105, pbm[0])

	_, err = BestOf()
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = BestOf(pbm, model.Curve{1})
	assert.ErrorIs(t, err, common.ErrorLengthMismatch)
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean(model.Curve{1, 2, 3}), 1e-12)
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestCap(t *testing.T) {
	in := model.Curve{0.199, 0.540, 10.068, 0.970, 2.5}
	got, clipped := Cap(in, 2.5)
	assert.Equal(t, model.Curve{0.199, 0.540, 2.5, 0.970, 2.5}, got)
	assert.Equal(t, []int{2}, clipped)
	assert.Equal(t, 10.068, in[2])

	got, clipped = Cap(model.Curve{}, 1)
	assert.Empty(t, got)
	assert.Empty(t, clipped)
}

func TestRelativeChange(t *testing.T) {
	assert.InDelta(t, 50.0, RelativeChange(1.5, 1), 1e-12)
	assert.InDelta(t, -25.0, RelativeChange(0.75, 1), 1e-12)
	assert.True(t, math.IsNaN(RelativeChange(1, 0)))
}

func TestEqualAndMaxOf(t *testing.T) {
	assert.True(t, Equal(model.Curve{1, 2}, model.Curve{1, 2}))
	assert.False(t, Equal(model.Curve{1, 2}, model.Curve{1, 2.0000001}))
	assert.False(t, Equal(model.Curve{1}, model.Curve{1, 2}))

	assert.Equal(t, 10.068, MaxOf(model.Curve{1, 10.068}, nil, model.Curve{3}))
	assert.Equal(t, 0.0, MaxOf())
}
