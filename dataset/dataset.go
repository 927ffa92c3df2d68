package dataset

import (
	"context"
	"fmt"

	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/derive"
	"github.com/uyouii/latency-figures/model"
	"github.com/uyouii/latency-figures/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Dataset is an ordered, append-only set of policies sharing the same
// station-count sample points.
type Dataset struct {
	Name          string
	stationCounts []float64
	policies      []*model.Policy
	index         map[string]*model.Policy
}

func NewDataset(name string, stationCounts []float64) *Dataset {
	counts := make([]float64, len(stationCounts))
	copy(counts, stationCounts)
	return &Dataset{
		Name:          name,
		stationCounts: counts,
		policies:      []*model.Policy{},
		index:         map[string]*model.Policy{},
	}
}

func (d *Dataset) StationCounts() []float64 {
	res := make([]float64, len(d.stationCounts))
	copy(res, d.stationCounts)
	return res
}

func (d *Dataset) Size() int {
	return len(d.policies)
}

// Policies returns the policies in insertion order.
func (d *Dataset) Policies() []*model.Policy {
	res := make([]*model.Policy, len(d.policies))
	copy(res, d.policies)
	return res
}

func (d *Dataset) Policy(name string) (*model.Policy, error) {
	policy, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrorUnknownPolicy, name)
	}
	return policy, nil
}

// MustPolicy is Policy for names the caller knows are present.
func (d *Dataset) MustPolicy(name string) *model.Policy {
	policy, err := d.Policy(name)
	if err != nil {
		panic(err)
	}
	return policy
}

func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

func (d *Dataset) Add(policy *model.Policy) error {
	if policy == nil || policy.Name == "" {
		return fmt.Errorf("%w: policy without name", common.ErrorInvalidValue)
	}
	if d.Has(policy.Name) {
		return fmt.Errorf("%w: %q", common.ErrorDuplicatePolicy, policy.Name)
	}
	if err := d.checkPolicy(policy); err != nil {
		return err
	}
	d.policies = append(d.policies, policy)
	d.index[policy.Name] = policy
	return nil
}

func (d *Dataset) checkPolicy(policy *model.Policy) error {
	var err error
	check := func(kind string, cc model.ClassCurves) {
		for i, n := range cc.Lengths() {
			if n != len(d.stationCounts) {
				err = multierr.Append(err, fmt.Errorf("%w: %s %s %s has %d points, want %d",
					common.ErrorLengthMismatch, policy.Name, kind, model.AllTrafficClasses[i], n, len(d.stationCounts)))
			}
		}
		for _, class := range model.AllTrafficClasses {
			for j, v := range cc.Get(class) {
				if v < 0 {
					err = multierr.Append(err, fmt.Errorf("%w: %s %s %s[%d] = %v is negative",
						common.ErrorInvalidValue, policy.Name, kind, class, j, v))
				}
			}
		}
	}
	check("latency", policy.Latency)
	if policy.Jitter != nil {
		check("jitter", *policy.Jitter)
	}
	return err
}

// Validate reports every malformed policy at once.
func (d *Dataset) Validate() error {
	var err error
	for _, policy := range d.policies {
		err = multierr.Append(err, d.checkPolicy(policy))
	}
	return err
}

// Synthesize derives one synthetic policy per spec and adds it to the
// dataset. Specs may only reference policies already present.
func (d *Dataset) Synthesize(ctx context.Context, specs []model.BaselineSpec) error {
	logger := utils.GetLogger(ctx)

	for _, spec := range specs {
		policy, err := d.synthesize(spec)
		if err != nil {
			logger.Error("synthesize baseline failed", zap.String("baseline", spec.Name), zap.Error(err))
			return err
		}
		if err := d.Add(policy); err != nil {
			logger.Error("add baseline failed", zap.String("baseline", spec.Name), zap.Error(err))
			return err
		}
		logger.Info("synthesized baseline", zap.String("baseline", spec.Name),
			zap.Strings("teachers", spec.Teachers), zap.Float64("accuracy", spec.Accuracy))
		logger.Debug("synthesized curves", zap.String("policy", policy.DebugString()))
	}
	return nil
}

func (d *Dataset) synthesize(spec model.BaselineSpec) (*model.Policy, error) {
	if len(spec.Teachers) == 0 {
		return nil, fmt.Errorf("baseline %s: %w: no teacher", spec.Name, common.ErrorInvalidValue)
	}

	teachers := make([]*model.Policy, 0, len(spec.Teachers))
	for _, name := range spec.Teachers {
		teacher, err := d.Policy(name)
		if err != nil {
			return nil, fmt.Errorf("baseline %s: %w", spec.Name, err)
		}
		teachers = append(teachers, teacher)
	}

	latency := model.ClassCurves{}
	for _, class := range model.AllTrafficClasses {
		curves := make([]model.Curve, 0, len(teachers))
		for _, teacher := range teachers {
			curves = append(curves, teacher.Latency.Get(class))
		}
		best, err := derive.BestOf(curves...)
		if err != nil {
			return nil, fmt.Errorf("baseline %s %s: %w", spec.Name, class, err)
		}
		estimated, err := derive.EstimateLatency(best, spec.Accuracy, spec.Degradation.Get(class))
		if err != nil {
			return nil, fmt.Errorf("baseline %s %s: %w", spec.Name, class, err)
		}
		setClass(&latency, class, estimated)
	}

	teacherNames := make([]string, len(spec.Teachers))
	copy(teacherNames, spec.Teachers)

	return &model.Policy{
		Name:        spec.Name,
		Kind:        model.Synthetic,
		Description: spec.Description,
		Latency:     latency,
		Accuracy:    spec.Accuracy,
		Teachers:    teacherNames,
		Degradation: spec.Degradation,
	}, nil
}

func setClass(cc *model.ClassCurves, class model.TrafficClass, curve model.Curve) {
	switch class {
	case model.ClassLP:
		cc.BK = curve
	case model.ClassMP:
		cc.VI = curve
	case model.ClassHP:
		cc.VO = curve
	}
}

// WeightedLatencies computes the weighted latency of the named policies,
// keyed by name.
func (d *Dataset) WeightedLatencies(names ...string) (map[string]model.Curve, error) {
	res := make(map[string]model.Curve, len(names))
	for _, name := range names {
		policy, err := d.Policy(name)
		if err != nil {
			return nil, err
		}
		weighted, err := derive.PolicyWeightedLatency(policy)
		if err != nil {
			return nil, err
		}
		res[name] = weighted
	}
	return res, nil
}

// Synthetics returns the synthetic policies in insertion order.
func (d *Dataset) Synthetics() []*model.Policy {
	res := []*model.Policy{}
	for _, policy := range d.policies {
		if policy.Kind == model.Synthetic {
			res = append(res, policy)
		}
	}
	return res
}
