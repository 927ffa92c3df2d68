package dataset

import "github.com/uyouii/latency-figures/model"

// Case1 ns-3 results, latency and jitter in ms per station count.
// Result root: Test_result(ns-3)/case1/
const (
	PolicyPBM     = "PBM"
	PolicyMPS     = "MPS"
	PolicySU      = "SU"
	PolicyNonMU   = "Non-MU-TXOP"
	PolicyMLOld   = "ML-Old"
	PolicyMLOldV2 = "ML-Old-v2"

	BaselineB0 = "B0-NonShare"
	BaselineB1 = "B1-Full-BC"
	BaselineB2 = "B2-Chooser"
	BaselineB3 = "B3-Meta"
)

// Case1 returns a new dataset with the measured policies. Every call builds
// fresh curves, so callers never share state.
func Case1() *Dataset {
	ds := NewDataset("case1", model.StationCounts)
	for _, policy := range case1Policies() {
		// literals below are fixed length, Add only fails on programming errors
		if err := ds.Add(policy); err != nil {
			panic(err)
		}
	}
	return ds
}

func case1Policies() []*model.Policy {
	return []*model.Policy{
		{
			Name:        PolicyPBM,
			Kind:        model.RuleBased,
			Description: "Priority-Based MU-TXOP Sharing",
			Source:      "wifi6-3-develop/nwifi=*/third_ac_latency.csv",
			Latency: model.ClassCurves{
				BK: model.Curve{0.105, 0.231, 0.309, 0.471, 0.449},
				VI: model.Curve{0.087, 0.190, 0.219, 0.253, 0.282},
				VO: model.Curve{0.070, 0.113, 0.109, 0.234, 0.226},
			},
			Jitter: &model.ClassCurves{
				BK: model.Curve{0.02, 0.08, 0.16, 0.58, 0.63},
				VI: model.Curve{0.04, 0.08, 0.10, 0.20, 0.25},
				VO: model.Curve{0.02, 0.06, 0.08, 0.18, 0.27},
			},
		},
		{
			Name:        PolicyMPS,
			Kind:        model.RuleBased,
			Description: "Max Performance Sharing",
			Source:      "wifi6-4-develop/nwifi=*/forth_ac_latency.csv",
			Latency: model.ClassCurves{
				BK: model.Curve{0.134, 0.231, 0.310, 0.471, 0.627},
				VI: model.Curve{0.105, 0.190, 0.219, 0.256, 0.285},
				VO: model.Curve{0.070, 0.113, 0.108, 0.236, 0.200},
			},
			Jitter: &model.ClassCurves{
				BK: model.Curve{0.07, 0.22, 0.20, 0.56, 0.65},
				VI: model.Curve{0.05, 0.11, 0.08, 0.28, 0.32},
				VO: model.Curve{0.03, 0.05, 0.08, 0.28, 0.31},
			},
		},
		{
			Name:        PolicySU,
			Kind:        model.RuleBased,
			Description: "Single User baseline",
			Source:      "wifi6-su-develop/nwifi=*/",
			Latency: model.ClassCurves{
				BK: model.Curve{0.100, 0.213, 0.240, 0.537, 0.806},
				VI: model.Curve{0.096, 0.119, 0.193, 0.251, 0.321},
				VO: model.Curve{0.068, 0.092, 0.159, 0.157, 0.188},
			},
			Jitter: &model.ClassCurves{
				BK: model.Curve{0.06, 0.12, 0.12, 0.34, 0.48},
				VI: model.Curve{0.04, 0.08, 0.11, 0.20, 0.32},
				VO: model.Curve{0.02, 0.05, 0.10, 0.18, 0.18},
			},
		},
		{
			// nwifi=18 collapses without sharing: BK 10.068, VI 2.465.
			// BK jitter there is 3.045, kept capped at 0.70 as in the thesis figures.
			Name:        PolicyNonMU,
			Kind:        model.RuleBased,
			Description: "No MU-TXOP Sharing baseline",
			Source:      "wifi6-3-mu-txop-develop/nwifi=*/third_ac_latency.csv",
			Latency: model.ClassCurves{
				BK: model.Curve{0.199, 0.540, 10.068, 0.970, 1.698},
				VI: model.Curve{0.087, 0.211, 2.465, 0.339, 0.784},
				VO: model.Curve{0.075, 0.160, 0.151, 0.255, 0.280},
			},
			Jitter: &model.ClassCurves{
				BK: model.Curve{0.07, 0.24, 0.70, 0.71, 0.84},
				VI: model.Curve{0.06, 0.13, 0.22, 0.25, 0.27},
				VO: model.Curve{0.05, 0.10, 0.11, 0.18, 0.22},
			},
		},
		{
			Name:        PolicyMLOld,
			Kind:        model.Learned,
			Description: "Original ML scheduler",
			Source:      "wifi6-ml-develop/nwifi=*/third_ac_latency.csv",
			Latency: model.ClassCurves{
				BK: model.Curve{0.253, 0.183, 0.285, 0.337, 0.586},
				VI: model.Curve{0.175, 0.235, 0.228, 0.316, 0.278},
				VO: model.Curve{0.070, 0.129, 0.152, 0.169, 0.215},
			},
		},
		{
			// jitter was estimated from the latency pattern, not measured
			Name:        PolicyMLOldV2,
			Kind:        model.Learned,
			Description: "Improved ML scheduler",
			Source:      "wifi6-ml-develop-v2/nwifi=*/third_ac_latency.csv",
			Latency: model.ClassCurves{
				BK: model.Curve{0.253, 0.183, 0.285, 0.332, 0.583},
				VI: model.Curve{0.175, 0.235, 0.228, 0.318, 0.276},
				VO: model.Curve{0.070, 0.129, 0.152, 0.168, 0.214},
			},
			Jitter: &model.ClassCurves{
				BK: model.Curve{0.08, 0.10, 0.18, 0.42, 0.55},
				VI: model.Curve{0.06, 0.12, 0.14, 0.22, 0.28},
				VO: model.Curve{0.03, 0.07, 0.10, 0.16, 0.20},
			},
		},
	}
}

// DefaultBaselines are the synthetic ML baselines of the thesis. Accuracies
// are the training accuracies; degradation factors are per-class penalties
// for a wrong decision.
func DefaultBaselines() []model.BaselineSpec {
	return []model.BaselineSpec{
		{
			Name:        BaselineB0,
			Description: "ML-NonShare, imitates Non-MU-TXOP (sanity check)",
			Teachers:    []string{PolicyNonMU},
			Accuracy:    1.0,
			Degradation: model.ClassFactors{BK: 1.0, VI: 1.0, VO: 1.0},
		},
		{
			Name:        BaselineB1,
			Description: "Behavioral cloning of PBM's 11-class decisions",
			Teachers:    []string{PolicyPBM},
			Accuracy:    0.5289,
			Degradation: model.ClassFactors{BK: 1.8, VI: 1.6, VO: 1.4},
		},
		{
			Name:        BaselineB2,
			Description: "Chooses between PBM and MPS",
			Teachers:    []string{PolicyPBM, PolicyMPS},
			Accuracy:    0.5940,
			Degradation: model.ClassFactors{BK: 2.0, VI: 1.8, VO: 1.5},
		},
		{
			Name:        BaselineB3,
			Description: "Meta-controller among Non-MU-TXOP, PBM and MPS",
			Teachers:    []string{PolicyNonMU, PolicyPBM, PolicyMPS},
			Accuracy:    0.3665,
			Degradation: model.ClassFactors{BK: 3.0, VI: 2.5, VO: 2.0},
		},
	}
}
