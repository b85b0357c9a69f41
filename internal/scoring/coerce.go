package scoring

import (
	"encoding/json"
	"strconv"
)

// NumericAnswer coerces a decoded JSON answer to a number. Missing, null and
// non-numeric values all score as 0; submissions are never rejected over a
// bad answer.
func NumericAnswer(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
