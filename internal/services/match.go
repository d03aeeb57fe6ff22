package services

import "github.com/imaditya55/RoomMateMatcher/internal/models"

// MatchThreshold is the minimum score for a user to appear in match results.
const MatchThreshold = 15

// MatchResult is one scored candidate.
type MatchResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// withDefault treats a zero value as "not filled in yet" and substitutes the
// scale midpoint, so empty preference forms don't tank every comparison.
func withDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// MatchScore computes the compatibility score between two preference sets.
// Pure and stateless; the weights mirror the product's matching formula.
func MatchScore(a, b models.Preferences) MatchResult {
	score := 0
	reasons := []string{}

	cleanDiff := abs(withDefault(a.Cleanliness, 5) - withDefault(b.Cleanliness, 5))
	if cleanDiff <= 3 {
		score += 10 - cleanDiff
		reasons = append(reasons, "Similar cleanliness habits")
	}

	noiseDiff := abs(withDefault(a.Noise, 5) - withDefault(b.Noise, 5))
	if noiseDiff <= 3 {
		score += 10 - noiseDiff
		reasons = append(reasons, "Similar noise tolerance")
	}

	sleepDiff := abs(withDefault(a.SleepTime, 1) - withDefault(b.SleepTime, 1))
	if sleepDiff <= 1 {
		score += 8
		reasons = append(reasons, "Similar sleep schedule")
	}

	studyDiff := abs(withDefault(a.StudyTime, 1) - withDefault(b.StudyTime, 1))
	if studyDiff <= 1 {
		score += 8
		reasons = append(reasons, "Same study routine")
	}

	if a.Food == b.Food {
		score += 6
		reasons = append(reasons, "Same food preference")
	}

	overlap := min(a.BudgetMax, b.BudgetMax) - max(a.BudgetMin, b.BudgetMin)
	if overlap > 0 {
		score += 10
		reasons = append(reasons, "Compatible budget range")
	}

	if a.Location == b.Location {
		score += 6
		reasons = append(reasons, "Same hostel block")
	}

	if b.Smokes && !a.OkayWithSmoking {
		score -= 10
	}
	if b.Drinks && !a.OkayWithDrinking {
		score -= 8
	}

	if score < 0 {
		score = 0
	}

	return MatchResult{Score: score, Reasons: reasons}
}
