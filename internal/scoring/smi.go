package scoring

import (
	"math"

	"github.com/oakhavenpractice/intake-backend/internal/catalog"
)

// ModeScore is the scored result for one SMI mode.
type ModeScore struct {
	Average float64 `json:"average"`
	Label   string  `json:"label"`
}

// ComputeSMIScores reduces raw per-item answers into per-mode averages and
// severity labels. Items are grouped by category; answers are numerically
// coerced with missing values counting as 0; the average is rounded to two
// decimals and classified against the mode's boundary table.
//
// A mode absent from modeKeys, or whose key has no boundary table, still
// averages normally but labels as "Unknown".
func ComputeSMIScores(answers map[string]any, items []catalog.Item, modeKeys map[string]string, tables map[string][]float64) map[string]ModeScore {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, item := range items {
		sums[item.Category] += NumericAnswer(answers[item.ID])
		counts[item.Category]++
	}

	scores := make(map[string]ModeScore, len(counts))
	for mode, count := range counts {
		avg := round2(sums[mode] / float64(count))

		label := LabelUnknown
		if key, ok := modeKeys[mode]; ok {
			if boundaries, ok := tables[key]; ok {
				label = ClassifyScore(avg, boundaries)
			}
		}

		scores[mode] = ModeScore{Average: avg, Label: label}
	}
	return scores
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
