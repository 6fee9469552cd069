package engine

// DefaultThresholds are the minimum scores for levels 1 through 11.
var DefaultThresholds = []int{0, 500, 1200, 2500, 4500, 7500, 12000, 18000, 26000, 36000, 50000}

// LevelFor returns the level reached at the given score: the 1-based index of
// the highest threshold not above score.
func LevelFor(thresholds []int, score int) int {
	level := 1
	for i, t := range thresholds {
		if score >= t {
			level = i + 1
		}
	}
	return level
}

// NextThreshold returns the score needed for the level after the given one,
// or 0 when level is already the last.
func NextThreshold(thresholds []int, level int) int {
	if level < 1 || level >= len(thresholds) {
		return 0
	}
	return thresholds[level]
}
