package scoring

import "math"

// SeverityLabels are the six qualitative bands, index-aligned with the
// 6-value boundary arrays in the catalog.
var SeverityLabels = []string{"Very Low", "Average", "Moderate", "High", "Very High", "Severe"}

// LabelUnknown is the degradation label for scores whose category has no
// boundary table. Deliberate fallback, not an error.
const LabelUnknown = "Unknown"

// ClassifyScore returns the label whose boundary value is numerically nearest
// to score. Ties resolve to the lowest index. This is nearest-neighbor
// classification, not interval bucketing: a score can land on a non-adjacent
// boundary's label, and downstream displays depend on that.
func ClassifyScore(score float64, boundaries []float64) string {
	if len(boundaries) == 0 {
		return LabelUnknown
	}
	n := len(boundaries)
	if n > len(SeverityLabels) {
		n = len(SeverityLabels)
	}
	best := 0
	bestDist := math.Abs(score - boundaries[0])
	for i := 1; i < n; i++ {
		if d := math.Abs(score - boundaries[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return SeverityLabels[best]
}
