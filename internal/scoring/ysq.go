package scoring

import "github.com/oakhavenpractice/intake-backend/internal/catalog"

// BuildYSQAnswerArrays produces the per-schema parallel answer arrays. Every
// schema is present in the result and every array has exactly the schema's
// item count, with unanswered items coerced to 0.
func BuildYSQAnswerArrays(answers map[string]any, schemas []catalog.YSQSchema) map[string][]float64 {
	arrays := make(map[string][]float64, len(schemas))
	for _, schema := range schemas {
		values := make([]float64, len(schema.ItemIDs))
		for i, id := range schema.ItemIDs {
			values[i] = NumericAnswer(answers[id])
		}
		arrays[schema.Code] = values
	}
	return arrays
}

// SchemaScore is the scored result for one YSQ schema.
type SchemaScore struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Raw      float64 `json:"raw"`
	Count456 int     `json:"count_456"`
	Max      int     `json:"max"`
	Label    string  `json:"label"`
}

// ScoreYSQ computes, per schema, the raw sum, the 4/5/6 count (items answered
// 4 or higher) and the rating label from the schema's boundary table.
func ScoreYSQ(arrays map[string][]float64, schemas []catalog.YSQSchema) []SchemaScore {
	scores := make([]SchemaScore, 0, len(schemas))
	for _, schema := range schemas {
		var raw float64
		count456 := 0
		for _, v := range arrays[schema.Code] {
			raw += v
			if v >= 4 {
				count456++
			}
		}
		scores = append(scores, SchemaScore{
			Code:     schema.Code,
			Name:     schema.Name,
			Raw:      raw,
			Count456: count456,
			Max:      schema.Max,
			Label:    ClassifyScore(raw, schema.Boundaries),
		})
	}
	return scores
}
