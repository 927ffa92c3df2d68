package derive

import (
	"fmt"
	"math"

	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BestOf returns the pointwise minimum of the curves, the latency an oracle
// choosing among the given policies would reach.
func BestOf(curves ...model.Curve) (model.Curve, error) {
	if len(curves) == 0 {
		return nil, common.ErrorInvalidValue
	}

	n := len(curves[0])
	for i, c := range curves {
		if len(c) != n {
			return nil, fmt.Errorf("%w: curve %d has %d points, want %d",
				common.ErrorLengthMismatch, i, len(c), n)
		}
	}

	res := curves[0].Clone()
	if res == nil {
		res = model.Curve{}
	}
	for _, c := range curves[1:] {
		for i := range res {
			res[i] = math.Min(res[i], c[i])
		}
	}
	return res, nil
}

// Mean is NaN for an empty curve.
func Mean(c model.Curve) float64 {
	if len(c) == 0 {
		return math.NaN()
	}
	return stat.Mean(c, nil)
}

// Cap clips every value above upper and reports which indexes were clipped.
func Cap(c model.Curve, upper float64) (model.Curve, []int) {
	res := c.Clone()
	clipped := []int{}
	for i, v := range res {
		if v > upper {
			res[i] = upper
			clipped = append(clipped, i)
		}
	}
	return res, clipped
}

// RelativeChange returns the change of value against base in percent.
func RelativeChange(value, base float64) float64 {
	if base == 0 {
		return math.NaN()
	}
	return (value/base - 1) * 100
}

func Equal(a, b model.Curve) bool {
	return floats.Equal(a, b)
}

// MaxOf returns the largest value over all curves, 0 when they are all empty.
func MaxOf(curves ...model.Curve) float64 {
	res := 0.0
	for _, c := range curves {
		if len(c) == 0 {
			continue
		}
		res = math.Max(res, floats.Max(c))
	}
	return res
}
