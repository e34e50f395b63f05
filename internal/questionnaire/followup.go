package questionnaire

const (
	// FollowUpThreshold is the core answer ("sometimes") at or above which
	// a deviation category is probed further.
	FollowUpThreshold = 3

	// MaxFollowUpCategories caps the probed categories so a session never
	// exceeds nine core plus four follow-up questions.
	MaxFollowUpCategories = 2
)

// SelectFollowUps returns the follow-up questions to append after the
// core tier. Deviation categories whose core answer reached
// FollowUpThreshold are taken in core order, at most
// MaxFollowUpCategories of them, and all their follow-ups are returned in
// bank order. The result is empty when no category qualifies.
func SelectFollowUps(bank *Bank, answers Answers) []Question {
	var selected [numCategories]bool
	n := 0
	for _, q := range bank.questions {
		if n == MaxFollowUpCategories {
			break
		}
		if q.Tier != TierCore || q.Category.IsNeutral() || selected[q.Category] {
			continue
		}
		if v, ok := answers[q.ID]; ok && v >= FollowUpThreshold {
			selected[q.Category] = true
			n++
		}
	}
	if n == 0 {
		return nil
	}

	var out []Question
	for _, q := range bank.questions {
		if q.Tier == TierFollowUp && selected[q.Category] {
			out = append(out, q)
		}
	}
	return out
}
