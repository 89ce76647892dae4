package sim

// reputationAlpha controls how strongly one day's outcome moves the
// session reputation. Matches the rating smoothing used elsewhere in
// the platform.
const reputationAlpha = 0.3

// AdjustReputation folds a finished day into the session's reputation
// score. A day with no customers leaves the score untouched. The
// result stays within [0, 5].
func AdjustReputation(current float64, summary DaySummary) float64 {
	total := summary.CustomersServed + summary.CustomersLost
	if total == 0 {
		return current
	}

	dayScore := 5.0 * float64(summary.CustomersServed) / float64(total)
	updated := reputationAlpha*dayScore + (1-reputationAlpha)*current

	if updated < 0 {
		return 0
	}
	if updated > 5 {
		return 5
	}
	return updated
}
