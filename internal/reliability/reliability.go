// Package reliability scores how reliably a member returns books on time.
package reliability

// Compute returns the on-time return percentage (0-100) over completed loans.
// A member without completed loans scores 0.
func Compute(onTime, completed uint32) float64 {
	if completed == 0 {
		return 0
	}
	if onTime > completed {
		onTime = completed
	}
	return float64(onTime) / float64(completed) * 100
}

// Eligible reports whether a member may borrow again.
// Members without any loan record are always eligible regardless of their score.
func Eligible(loanCount int64, score, threshold float64) bool {
	if loanCount == 0 {
		return true
	}
	return score >= threshold
}
