package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity     float64 // time decay exponent
	WeightView  float64
	PinBoost    float64 // flat bonus while a post is pinned
	ScaleFactor float64 // spreads scores over a 0-100 "temperature" range
}

var DefaultRankConfig = RankConfig{
	Gravity:     1.5,
	WeightView:  1.0,
	PinBoost:    10.0,
	ScaleFactor: 100.0,
}

// CalculatePopularity scores a post from its engagement with log smoothing
// and time decay, so a burst of old views cannot outrank fresh activity.
func CalculatePopularity(createdAt time.Time, views int, pinned bool) float64 {
	hours := time.Since(createdAt).Hours()

	weightedSum := float64(views) * DefaultRankConfig.WeightView
	if weightedSum < 0 {
		weightedSum = 0
	}

	// log10(sum + 1) keeps zero engagement at exactly zero
	logScore := math.Log10(weightedSum + 1)

	numerator := logScore * DefaultRankConfig.ScaleFactor
	decay := math.Pow(hours+2, DefaultRankConfig.Gravity)

	score := numerator / decay
	if pinned {
		score += DefaultRankConfig.PinBoost
	}
	return score
}
