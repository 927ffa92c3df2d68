package model

import (
	"fmt"
	"strings"
)

// StationCounts are the ns-3 sample points every Curve is indexed by.
var StationCounts = []float64{6, 12, 18, 24, 30}

// Curve holds one measurement per station-count sample point.
type Curve []float64

func (c Curve) Clone() Curve {
	if c == nil {
		return nil
	}
	res := make(Curve, len(c))
	copy(res, c)
	return res
}

func (c Curve) Len() int {
	return len(c)
}

func (c Curve) DebugString() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type TrafficClass int

const (
	ClassLP TrafficClass = 1 // AC_BK
	ClassMP TrafficClass = 2 // AC_VI
	ClassHP TrafficClass = 3 // AC_VO
)

var AllTrafficClasses = []TrafficClass{ClassLP, ClassMP, ClassHP}

func (c TrafficClass) String() string {
	switch c {
	case ClassLP:
		return "LP"
	case ClassMP:
		return "MP"
	case ClassHP:
		return "HP"
	}
	return fmt.Sprintf("TrafficClass(%d)", int(c))
}

// AccessCategory returns the 802.11 access category name, like "AC_BK".
func (c TrafficClass) AccessCategory() string {
	switch c {
	case ClassLP:
		return "AC_BK"
	case ClassMP:
		return "AC_VI"
	case ClassHP:
		return "AC_VO"
	}
	return ""
}

// ClassCurves keeps the three per-class curves of one policy together.
type ClassCurves struct {
	BK Curve `json:"bk" yaml:"bk"`
	VI Curve `json:"vi" yaml:"vi"`
	VO Curve `json:"vo" yaml:"vo"`
}

func (cc ClassCurves) Get(class TrafficClass) Curve {
	switch class {
	case ClassLP:
		return cc.BK
	case ClassMP:
		return cc.VI
	case ClassHP:
		return cc.VO
	}
	return nil
}

func (cc ClassCurves) Clone() ClassCurves {
	return ClassCurves{BK: cc.BK.Clone(), VI: cc.VI.Clone(), VO: cc.VO.Clone()}
}

// Lengths reports the curve length of every class, in LP, MP, HP order.
func (cc ClassCurves) Lengths() []int {
	return []int{len(cc.BK), len(cc.VI), len(cc.VO)}
}

type PolicyKind int

const (
	RuleBased PolicyKind = 1
	Learned   PolicyKind = 2 // ML scheduler measured in ns-3
	Synthetic PolicyKind = 3 // estimated from a teacher and a training accuracy
)

func (k PolicyKind) String() string {
	switch k {
	case RuleBased:
		return "rule"
	case Learned:
		return "learned"
	case Synthetic:
		return "synthetic"
	}
	return "unknown"
}

type Policy struct {
	Name        string
	Kind        PolicyKind
	Description string
	// Source is the ns-3 result directory the literals were copied from.
	Source  string
	Latency ClassCurves
	Jitter  *ClassCurves

	// synthetic policies only
	Accuracy    float64
	Teachers    []string
	Degradation ClassFactors
}

func (p *Policy) HasJitter() bool {
	return p != nil && p.Jitter != nil
}

// AccuracyLabel is the short label used in result tables.
func (p *Policy) AccuracyLabel() string {
	switch p.Kind {
	case RuleBased:
		return "Rule"
	case Learned:
		return "ns-3"
	}
	return fmt.Sprintf("%.0f%%", p.Accuracy*100)
}

func (p *Policy) DebugString() string {
	return fmt.Sprintf("name: %v, kind: %v, bk: %v, vi: %v, vo: %v",
		p.Name, p.Kind, p.Latency.BK.DebugString(), p.Latency.VI.DebugString(), p.Latency.VO.DebugString())
}
