package derive

import (
	"fmt"

	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/model"
	"gonum.org/v1/gonum/floats"
)

// WeightedLatency combines three per-class curves into a single scalar latency
// per sample point: WeightHigh*high + WeightMid*mid + WeightLow*low.
func WeightedLatency(high, mid, low model.Curve) (model.Curve, error) {
	if len(high) != len(mid) || len(high) != len(low) {
		return nil, fmt.Errorf("%w: high=%d mid=%d low=%d",
			common.ErrorLengthMismatch, len(high), len(mid), len(low))
	}

	res := make(model.Curve, len(high))
	if len(res) == 0 {
		return res, nil
	}
	floats.AddScaled(res, WeightHigh, high)
	floats.AddScaled(res, WeightMid, mid)
	floats.AddScaled(res, WeightLow, low)
	return res, nil
}

// WeightedClassLatency applies WeightedLatency with high=VO, mid=VI, low=BK.
func WeightedClassLatency(cc model.ClassCurves) (model.Curve, error) {
	return WeightedLatency(cc.VO, cc.VI, cc.BK)
}

func PolicyWeightedLatency(policy *model.Policy) (model.Curve, error) {
	if policy == nil {
		return nil, common.ErrorInvalidValue
	}
	res, err := WeightedClassLatency(policy.Latency)
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", policy.Name, err)
	}
	return res, nil
}
