package match

import "math"

// MaxScore is the fair-play score of a clean round.
const MaxScore = 100.0

// redCardWeight is how many yellow cards one red card counts as.
const redCardWeight = 10

// FairPlayScore halves the score for every ten yellow-card equivalents collected.
//
// Parameters:
//   - yellow: yellow cards hit this round
//   - red: red cards hit this round
//
// Returns:
//   - float64: 100 * 2^(-(yellow + 10*red) / 10)
func FairPlayScore(yellow, red int) float64 {
	return MaxScore * math.Pow(2, -float64(yellow+red*redCardWeight)/10)
}
