package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/derive"
	"github.com/uyouii/latency-figures/model"
	"go.uber.org/multierr"
)

func newCase1WithBaselines(t *testing.T) *Dataset {
	t.Helper()
	ds := Case1()
	require.NoError(t, ds.Synthesize(context.Background(), DefaultBaselines()))
	return ds
}

func TestCase1(t *testing.T) {
	t.Parallel()

	ds := Case1()
	require.NoError(t, ds.Validate())
	assert.Equal(t, []float64{6, 12, 18, 24, 30}, ds.StationCounts())

	names := []string{}
	for _, policy := range ds.Policies() {
		names = append(names, policy.Name)
	}
	assert.Equal(t, []string{PolicyPBM, PolicyMPS, PolicySU, PolicyNonMU, PolicyMLOld, PolicyMLOldV2}, names)

	nonMU, err := ds.Policy(PolicyNonMU)
	require.NoError(t, err)
	assert.Equal(t, 10.068, nonMU.Latency.BK[2])
	assert.True(t, nonMU.HasJitter())

	mlOld := ds.MustPolicy(PolicyMLOld)
	assert.False(t, mlOld.HasJitter())
	assert.Equal(t, "ns-3", mlOld.AccuracyLabel())
	assert.Equal(t, "Rule", nonMU.AccuracyLabel())

	t.Run("every call builds fresh curves", func(t *testing.T) {
		t.Parallel()
		a, b := Case1(), Case1()
		a.MustPolicy(PolicyPBM).Latency.BK[0] = 42
		assert.Equal(t, 0.105, b.MustPolicy(PolicyPBM).Latency.BK[0])
	})
}

func TestDatasetAdd(t *testing.T) {
	ds := NewDataset("test", []float64{1, 2})

	ok := &model.Policy{Name: "ok", Latency: model.ClassCurves{
		BK: model.Curve{1, 2}, VI: model.Curve{1, 2}, VO: model.Curve{1, 2},
	}}
	require.NoError(t, ds.Add(ok))
	assert.ErrorIs(t, ds.Add(ok), common.ErrorDuplicatePolicy)
	assert.ErrorIs(t, ds.Add(nil), common.ErrorInvalidValue)
	assert.ErrorIs(t, ds.Add(&model.Policy{}), common.ErrorInvalidValue)

	bad := &model.Policy{Name: "bad", Latency: model.ClassCurves{
		BK: model.Curve{1}, VI: model.Curve{1, -2}, VO: model.Curve{1, 2, 3},
	}}
	err := ds.Add(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorLengthMismatch)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
	assert.Len(t, multierr.Errors(err), 3)
	assert.False(t, ds.Has("bad"))
	assert.Equal(t, 1, ds.Size())

	_, err = ds.Policy("missing")
	assert.ErrorIs(t, err, common.ErrorUnknownPolicy)
	assert.Panics(t, func() { ds.MustPolicy("missing") })
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	ds := newCase1WithBaselines(t)
	require.NoError(t, ds.Validate())
	require.Len(t, ds.Synthetics(), 4)

	t.Run("b0 equals non-mu-txop exactly", func(t *testing.T) {
		t.Parallel()
		b0 := ds.MustPolicy(BaselineB0)
		nonMU := ds.MustPolicy(PolicyNonMU)
		for _, class := range model.AllTrafficClasses {
			assert.True(t, derive.Equal(nonMU.Latency.Get(class), b0.Latency.Get(class)), "class %s", class)
		}
		assert.Equal(t, "100%", b0.AccuracyLabel())
		assert.Equal(t, model.Synthetic, b0.Kind)

		// copies, not aliases of the teacher
		b0.Latency.BK[0] = 99
		assert.Equal(t, 0.199, nonMU.Latency.BK[0])
	})

	t.Run("b1 degrades pbm per class", func(t *testing.T) {
		t.Parallel()
		b1 := ds.MustPolicy(BaselineB1)
		pbm := ds.MustPolicy(PolicyPBM)
		assert.Equal(t, "53%", b1.AccuracyLabel())
		assert.InDelta(t, 0.1446, b1.Latency.BK[0], 1e-4)
		for i := range pbm.Latency.VO {
			assert.InDelta(t, pbm.Latency.VO[i]*(0.5289+0.4711*1.4), b1.Latency.VO[i], 1e-12)
		}
	})

	t.Run("b2 and b3 imitate the pointwise best teacher", func(t *testing.T) {
		t.Parallel()
		b2 := ds.MustPolicy(BaselineB2)
		// best of pbm/mps BK at nwifi=30 is pbm's 0.449
		assert.InDelta(t, 0.449*(0.594+0.406*2.0), b2.Latency.BK[4], 1e-12)

		b3 := ds.MustPolicy(BaselineB3)
		// best of non-mu/pbm/mps BK at nwifi=18 is pbm's 0.309
		assert.InDelta(t, 0.309*(0.3665+0.6335*3.0), b3.Latency.BK[2], 1e-12)
		assert.Equal(t, []string{PolicyNonMU, PolicyPBM, PolicyMPS}, b3.Teachers)
	})

	t.Run("weighted latencies", func(t *testing.T) {
		t.Parallel()
		weighted, err := ds.WeightedLatencies(PolicyPBM, BaselineB1)
		require.NoError(t, err)
		assert.InDelta(t, 0.9865, weighted[PolicyPBM][4], 1e-9)
		assert.Greater(t, derive.Mean(weighted[BaselineB1]), derive.Mean(weighted[PolicyPBM]))

		_, err = ds.WeightedLatencies("nope")
		assert.ErrorIs(t, err, common.ErrorUnknownPolicy)
	})
}

func TestSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    model.BaselineSpec
		wantErr error
	}{
		{
			name:    "unknown teacher",
			spec:    model.BaselineSpec{Name: "X", Teachers: []string{"missing"}, Accuracy: 0.5, Degradation: model.ClassFactors{BK: 2, VI: 2, VO: 2}},
			wantErr: common.ErrorUnknownPolicy,
		},
		{
			name:    "no teacher",
			spec:    model.BaselineSpec{Name: "X", Accuracy: 0.5},
			wantErr: common.ErrorInvalidValue,
		},
		{
			name:    "invalid accuracy",
			spec:    model.BaselineSpec{Name: "X", Teachers: []string{PolicyPBM}, Accuracy: 1.5, Degradation: model.ClassFactors{BK: 2, VI: 2, VO: 2}},
			wantErr: common.ErrorInvalidAccuracy,
		},
		{
			name:    "invalid degradation",
			spec:    model.BaselineSpec{Name: "X", Teachers: []string{PolicyPBM}, Accuracy: 0.5, Degradation: model.ClassFactors{BK: 2, VI: 0.5, VO: 2}},
			wantErr: common.ErrorInvalidDegradation,
		},
		{
			name:    "name clash",
			spec:    model.BaselineSpec{Name: PolicyPBM, Teachers: []string{PolicyPBM}, Accuracy: 1, Degradation: model.ClassFactors{BK: 1, VI: 1, VO: 1}},
			wantErr: common.ErrorDuplicatePolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := Case1()
			err := ds.Synthesize(context.Background(), []model.BaselineSpec{tt.spec})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 6, ds.Size())
		})
	}
}
