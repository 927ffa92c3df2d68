package derive

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/model"
)

var pbmBK = model.Curve{0.105, 0.231, 0.309, 0.471, 0.449}

func TestEstimateLatency(t *testing.T) {
	t.Parallel()

	t.Run("b1 imitating pbm", func(t *testing.T) {
		t.Parallel()
		got, err := EstimateLatency(pbmBK, 0.5289, 1.8)
		require.NoError(t, err)
		require.Len(t, got, len(pbmBK))

		factor := 0.5289 + 0.4711*1.8
		assert.InDelta(t, 1.37688, factor, 1e-9)
		assert.InDelta(t, 0.1446, got[0], 1e-4)
		for i := range got {
			assert.InDelta(t, pbmBK[i]*factor, got[i], 1e-12)
		}
	})

	t.Run("perfect accuracy returns the teacher exactly", func(t *testing.T) {
		t.Parallel()
		teacher := model.Curve{0.199, 0.540, 10.068, 0.970, 1.698}
		for _, d := range []float64{1, 1.4, 1.5, 1.6, 1.8, 2.0, 2.5, 3.0} {
			got, err := EstimateLatency(teacher, 1.0, d)
			require.NoError(t, err)
			assert.Equal(t, teacher, got, "degradation %v", d)
		}
	})

	t.Run("zero accuracy scales by the degradation factor", func(t *testing.T) {
		t.Parallel()
		got, err := EstimateLatency(pbmBK, 0, 2.5)
		require.NoError(t, err)
		want := make(model.Curve, len(pbmBK))
		for i, v := range pbmBK {
			want[i] = v * 2.5
		}
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("EstimateLatency() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non-decreasing in the degradation factor", func(t *testing.T) {
		t.Parallel()
		factors := []float64{1, 1.4, 1.5, 1.6, 1.8, 2.0, 2.5, 3.0}
		for _, accuracy := range []float64{0, 0.3665, 0.5289, 0.594, 0.99} {
			prev, err := EstimateLatency(pbmBK, accuracy, factors[0])
			require.NoError(t, err)
			for _, d := range factors[1:] {
				cur, err := EstimateLatency(pbmBK, accuracy, d)
				require.NoError(t, err)
				for i := range cur {
					assert.GreaterOrEqual(t, cur[i], prev[i])
					assert.GreaterOrEqual(t, cur[i], pbmBK[i])
				}
				prev = cur
			}
		}
	})

	t.Run("empty teacher", func(t *testing.T) {
		t.Parallel()
		got, err := EstimateLatency(model.Curve{}, 0.5, 2)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestEstimateLatencyErrors(t *testing.T) {
	tests := []struct {
		name        string
		accuracy    float64
		degradation float64
		wantErr     error
	}{
		{name: "accuracy above one", accuracy: 1.01, degradation: 1.5, wantErr: common.ErrorInvalidAccuracy},
		{name: "negative accuracy", accuracy: -0.1, degradation: 1.5, wantErr: common.ErrorInvalidAccuracy},
		{name: "nan accuracy", accuracy: math.NaN(), degradation: 1.5, wantErr: common.ErrorInvalidAccuracy},
		{name: "degradation below one", accuracy: 0.5, degradation: 0.9, wantErr: common.ErrorInvalidDegradation},
		{name: "nan degradation", accuracy: 0.5, degradation: math.NaN(), wantErr: common.ErrorInvalidDegradation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateLatency(pbmBK, tt.accuracy, tt.degradation)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}

	t.Run("boundaries are valid", func(t *testing.T) {
		_, err := EstimateLatency(pbmBK, 0, 1)
		assert.NoError(t, err)
		_, err = EstimateLatency(pbmBK, 1, 1)
		assert.NoError(t, err)
	})
}
