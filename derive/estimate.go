package derive

import (
	"fmt"
	"math"

	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/model"
	"gonum.org/v1/gonum/floats"
)

// EstimateFactor interpolates between the teacher (accuracy 1) and a teacher
// degraded by the given factor (accuracy 0).
func EstimateFactor(accuracy, degradation float64) (float64, error) {
	if math.IsNaN(accuracy) || accuracy < 0 || accuracy > 1 {
		return 0, fmt.Errorf("%w: %v", common.ErrorInvalidAccuracy, accuracy)
	}
	if math.IsNaN(degradation) || degradation < MinDegradation {
		return 0, fmt.Errorf("%w: %v", common.ErrorInvalidDegradation, degradation)
	}
	return accuracy + (1-accuracy)*degradation, nil
}

// EstimateLatency models a learned policy that picks the teacher's decision
// with probability accuracy and otherwise performs degradation times worse.
func EstimateLatency(teacher model.Curve, accuracy, degradation float64) (model.Curve, error) {
	factor, err := EstimateFactor(accuracy, degradation)
	if err != nil {
		return nil, err
	}

	res := make(model.Curve, len(teacher))
	if len(res) == 0 {
		return res, nil
	}
	floats.ScaleTo(res, factor, teacher)
	return res, nil
}
