package scoring

import (
	"math"
	"strconv"
	"strings"
)

// MatrixColumns are the five band headings of the SMI summary-sheet matrix,
// one per adjacent boundary pair.
var MatrixColumns = []string{
	"Very Low - Average",
	"Average - Moderate",
	"Moderate - High",
	"High - Very High",
	"Very High - Severe",
}

const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Placement locates a mode score within the summary matrix. Both fields are
// nil when the score cannot be placed.
type Placement struct {
	Column    *string `json:"column"`
	Alignment *string `json:"alignment"`
}

// ClassifyBandAlignment places a score string within the 5-band summary
// matrix for the given mode key. The score string may carry a textual suffix
// after a "-" separator; only the leading numeric part is read.
//
// The score is matched against adjacent boundary pairs in index order,
// inclusively (min <= s <= max of the raw pair); the first matching band
// wins. Within the band, alignment compares the distances to the band's left
// value, right value and midpoint (mid of the raw, unordered pair). Center
// wins on a tie or better; otherwise the strictly closer side wins. For
// descending boundary tables (adaptive modes) left and right swap.
//
// Unparsable input, an unknown mode key or a score outside every band
// yields a nil-field Placement.
func ClassifyBandAlignment(scoreStr, categoryKey string, tables map[string][]float64) Placement {
	if scoreStr == "" || categoryKey == "" {
		return Placement{}
	}

	numPart := strings.TrimSpace(strings.SplitN(scoreStr, "-", 2)[0])
	score, err := strconv.ParseFloat(numPart, 64)
	if err != nil || math.IsNaN(score) {
		return Placement{}
	}

	boundaries, ok := tables[categoryKey]
	if !ok || len(boundaries) < 2 {
		return Placement{}
	}

	ascending := boundaries[0] < boundaries[len(boundaries)-1]

	for i := 0; i+1 < len(boundaries) && i < len(MatrixColumns); i++ {
		a, b := boundaries[i], boundaries[i+1]
		lo, hi := math.Min(a, b), math.Max(a, b)
		if score < lo || score > hi {
			continue
		}

		leftVal, rightVal := lo, hi
		if !ascending {
			leftVal, rightVal = hi, lo
		}
		mid := (a + b) / 2

		dLeft := math.Abs(score - leftVal)
		dRight := math.Abs(score - rightVal)
		dMid := math.Abs(score - mid)

		alignment := AlignCenter
		if dMid > math.Min(dLeft, dRight) {
			if dLeft < dRight {
				alignment = AlignLeft
			} else {
				alignment = AlignRight
			}
		}

		column := MatrixColumns[i]
		return Placement{Column: &column, Alignment: &alignment}
	}

	return Placement{}
}
