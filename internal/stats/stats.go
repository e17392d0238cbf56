package stats

import (
	"math"
	"sort"

	"jacktrack.app/internal/scoring"
)

// Statistics aggregates a player's round history.
type Statistics struct {
	TotalRounds  int     `json:"totalRounds"`
	AverageScore int     `json:"averageScore"`
	BestRound    int     `json:"bestRound"`
	AverageToPar float64 `json:"averageToPar"`
	// Trend is the mean score of the newer half of rounds minus the older
	// half. Negative means the player is improving.
	Trend float64 `json:"improvementTrend"`
}

// Compute derives statistics from round summaries in any order.
func Compute(rounds []scoring.Summary) Statistics {
	if len(rounds) == 0 {
		return Statistics{}
	}

	sorted := make([]scoring.Summary, len(rounds))
	copy(sorted, rounds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.Before(sorted[j].StartedAt)
	})

	st := Statistics{TotalRounds: len(sorted), BestRound: sorted[0].TotalStrokes}
	total, toPar := 0, 0
	for _, r := range sorted {
		total += r.TotalStrokes
		toPar += r.ToPar()
		if r.TotalStrokes < st.BestRound {
			st.BestRound = r.TotalStrokes
		}
	}
	n := float64(len(sorted))
	st.AverageScore = int(math.Round(float64(total) / n))
	st.AverageToPar = round1(float64(toPar) / n)
	st.Trend = trend(sorted)
	return st
}

func trend(sorted []scoring.Summary) float64 {
	if len(sorted) < 2 {
		return 0
	}
	half := len(sorted) / 2
	older := sorted[:half]
	newer := sorted[len(sorted)-half:]
	return round1(mean(newer) - mean(older))
}

func mean(rs []scoring.Summary) float64 {
	total := 0
	for _, r := range rs {
		total += r.TotalStrokes
	}
	return float64(total) / float64(len(rs))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Recent returns summaries newest first, at most limit (all when limit <= 0).
func Recent(rounds []scoring.Summary, limit int) []scoring.Summary {
	out := make([]scoring.Summary, len(rounds))
	copy(out, rounds)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
