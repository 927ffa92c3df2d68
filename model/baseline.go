package model

// ClassFactors holds one degradation factor per traffic class.
type ClassFactors struct {
	BK float64 `yaml:"bk"`
	VI float64 `yaml:"vi"`
	VO float64 `yaml:"vo"`
}

func (f ClassFactors) Get(class TrafficClass) float64 {
	switch class {
	case ClassLP:
		return f.BK
	case ClassMP:
		return f.VI
	case ClassHP:
		return f.VO
	}
	return 0
}

// BaselineSpec describes a synthetic learned policy. The teacher curve is the
// pointwise best of the Teachers' curves.
type BaselineSpec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Teachers    []string     `yaml:"teachers"`
	Accuracy    float64      `yaml:"accuracy"`
	Degradation ClassFactors `yaml:"degradation"`
}
