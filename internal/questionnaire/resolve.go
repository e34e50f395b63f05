package questionnaire

const (
	// BalancedMinScore is the balanced score needed to classify a
	// respondent as balanced.
	BalancedMinScore = 60.0

	// DeviationCeiling must strictly exceed every deviation score for the
	// balanced classification to apply.
	DeviationCeiling = 30.0
)

// ResolvePrimary returns the dominant category of a completed score map.
//
// The respondent is balanced when the balanced score is at least
// BalancedMinScore and every deviation score is below DeviationCeiling.
// Otherwise the deviation category with the highest score wins; ties go
// to the category declared first.
func ResolvePrimary(m ScoreMap) Category {
	best := Category(-1)
	maxDeviation := 0.0
	for _, c := range Categories() {
		if c.IsNeutral() {
			continue
		}
		if best < 0 || m[c] > maxDeviation {
			best = c
			maxDeviation = m[c]
		}
	}

	if m[Balanced] >= BalancedMinScore && maxDeviation < DeviationCeiling {
		return Balanced
	}
	return best
}
