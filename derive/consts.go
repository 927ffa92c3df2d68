package derive

const (
	// HP = AC_VO, MP = AC_VI is weighted like HP, LP = AC_BK
	WeightHigh = 1.5
	WeightMid  = 1.5
	WeightLow  = 0.5

	// MinDegradation keeps the estimator a penalty model, never an improvement.
	MinDegradation = 1.0
)
