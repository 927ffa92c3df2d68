package derive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/model"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestWeightedLatency(t *testing.T) {
	t.Parallel()

	t.Run("pbm case1 curves", func(t *testing.T) {
		t.Parallel()
		vo := model.Curve{0.070, 0.113, 0.109, 0.234, 0.226}
		vi := model.Curve{0.087, 0.190, 0.219, 0.253, 0.282}
		bk := model.Curve{0.105, 0.231, 0.309, 0.471, 0.449}

		got, err := WeightedLatency(vo, vi, bk)
		require.NoError(t, err)

		want := model.Curve{0.288, 0.570, 0.6465, 0.966, 0.9865}
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("WeightedLatency() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("matches the linear combination pointwise", func(t *testing.T) {
		t.Parallel()
		high := model.Curve{0, 1, 2.5, 10.068}
		mid := model.Curve{3, 0.5, 0, 2.465}
		low := model.Curve{1, 1, 1, 0.151}

		got, err := WeightedLatency(high, mid, low)
		require.NoError(t, err)
		require.Len(t, got, len(high))
		for i := range got {
			assert.InDelta(t, 1.5*high[i]+1.5*mid[i]+0.5*low[i], got[i], 1e-12, "index %d", i)
		}
	})

	t.Run("empty curves give an empty curve", func(t *testing.T) {
		t.Parallel()
		got, err := WeightedLatency(model.Curve{}, model.Curve{}, model.Curve{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := WeightedLatency(model.Curve{1, 2}, model.Curve{1, 2, 3}, model.Curve{1, 2})
		assert.ErrorIs(t, err, common.ErrorLengthMismatch)

		_, err = WeightedLatency(model.Curve{1}, model.Curve{1}, nil)
		assert.ErrorIs(t, err, common.ErrorLengthMismatch)
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		t.Parallel()
		high := model.Curve{1, 2}
		_, err := WeightedLatency(high, model.Curve{1, 1}, model.Curve{1, 1})
		require.NoError(t, err)
		assert.Equal(t, model.Curve{1, 2}, high)
	})
}

func TestWeightedClassLatency(t *testing.T) {
	cc := model.ClassCurves{
		BK: model.Curve{2},
		VI: model.Curve{4},
		VO: model.Curve{8},
	}
	got, err := WeightedClassLatency(cc)
	require.NoError(t, err)
	// VO and VI weighted high, BK low
	assert.InDelta(t, 1.5*8+1.5*4+0.5*2, got[0], 1e-12)

	_, err = PolicyWeightedLatency(nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = PolicyWeightedLatency(&model.Policy{Name: "broken", Latency: model.ClassCurves{BK: model.Curve{1}}})
	assert.ErrorIs(t, err, common.ErrorLengthMismatch)
	assert.Contains(t, err.Error(), "broken")
}
