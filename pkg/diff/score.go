package diff

// ScoreConfig holds the banded compatibility-score constants. The values
// are empirically chosen and may need recalibration per suite, so they are
// configuration rather than hard-coded.
type ScoreConfig struct {
	// CriticalBase/CriticalPenalty cap the score when critical issues
	// exist: max(0, CriticalBase - CriticalPenalty*criticalCount).
	CriticalBase    int
	CriticalPenalty int

	// GoodMax is the largest difference count still in the good band;
	// FairMax the largest still in fair. Above FairMax is poor.
	GoodMax int
	FairMax int

	// GoodBase/GoodStep grade the good band: GoodBase - GoodStep*n.
	GoodBase int
	GoodStep int

	// FairBase/FairStep grade the fair band: FairBase - FairStep*(n-GoodMax).
	FairBase int
	FairStep int

	// PoorBase/PoorStep/PoorFloor grade the poor band:
	// max(PoorFloor, PoorBase - PoorStep*n).
	PoorBase  int
	PoorStep  int
	PoorFloor int
}

// DefaultScoreConfig returns the standard band constants.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		CriticalBase:    30,
		CriticalPenalty: 10,
		GoodMax:         5,
		FairMax:         10,
		GoodBase:        95,
		GoodStep:        5,
		FairBase:        70,
		FairStep:        4,
		PoorBase:        60,
		PoorStep:        2,
		PoorFloor:       20,
	}
}

// Grade maps (criticalCount, totalDifferences) to a score and band label.
// Any critical issue forces the critical band; otherwise the score degrades
// stepwise with the total difference count.
func (c ScoreConfig) Grade(criticalCount, totalDifferences int) (int, Health) {
	if criticalCount > 0 {
		score := c.CriticalBase - c.CriticalPenalty*criticalCount
		if score < 0 {
			score = 0
		}
		return score, HealthCritical
	}

	switch {
	case totalDifferences == 0:
		return 100, HealthExcellent
	case totalDifferences <= c.GoodMax:
		return c.GoodBase - c.GoodStep*totalDifferences, HealthGood
	case totalDifferences <= c.FairMax:
		return c.FairBase - c.FairStep*(totalDifferences-c.GoodMax), HealthFair
	default:
		score := c.PoorBase - c.PoorStep*totalDifferences
		if score < c.PoorFloor {
			score = c.PoorFloor
		}
		return score, HealthPoor
	}
}
