package scoring

import (
	"testing"

	"github.com/oakhavenpractice/intake-backend/internal/catalog"
)

func ysqTestSchemas() []catalog.YSQSchema {
	return []catalog.YSQSchema{
		{Code: "ed", Name: "Emotional Deprivation", ItemIDs: []string{"y1", "y2", "y3"}, Max: 18, Boundaries: []float64{3, 6, 9, 12, 15, 18}},
		{Code: "ab", Name: "Abandonment", ItemIDs: []string{"y4", "y5"}, Max: 12, Boundaries: []float64{2, 4, 6, 8, 10, 12}},
	}
}

func TestBuildYSQAnswerArrays(t *testing.T) {
	schemas := ysqTestSchemas()
	answers := map[string]any{"y1": 4.0, "y3": 6.0, "y5": 2.0}

	arrays := BuildYSQAnswerArrays(answers, schemas)
	if len(arrays) != 2 {
		t.Fatalf("got %d schemas, want 2", len(arrays))
	}

	ed := arrays["ed"]
	if len(ed) != 3 {
		t.Fatalf("ed array length=%d, want 3", len(ed))
	}
	if ed[0] != 4 || ed[1] != 0 || ed[2] != 6 {
		t.Fatalf("ed=%v, want [4 0 6]", ed)
	}

	ab := arrays["ab"]
	if len(ab) != 2 || ab[0] != 0 || ab[1] != 2 {
		t.Fatalf("ab=%v, want [0 2]", ab)
	}
}

func TestBuildYSQAnswerArraysEmptySubmission(t *testing.T) {
	arrays := BuildYSQAnswerArrays(nil, ysqTestSchemas())
	for code, values := range arrays {
		for i, v := range values {
			if v != 0 {
				t.Fatalf("%s[%d]=%v, want 0", code, i, v)
			}
		}
	}
}

func TestScoreYSQ(t *testing.T) {
	schemas := ysqTestSchemas()
	arrays := map[string][]float64{
		"ed": {4, 5, 6},
		"ab": {1, 3},
	}

	scores := ScoreYSQ(arrays, schemas)
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}

	ed := scores[0]
	if ed.Code != "ed" || ed.Raw != 15 || ed.Count456 != 3 || ed.Max != 18 {
		t.Fatalf("ed score: %+v", ed)
	}
	if want := ClassifyScore(15, schemas[0].Boundaries); ed.Label != want {
		t.Fatalf("ed label=%q, want %q", ed.Label, want)
	}

	ab := scores[1]
	if ab.Raw != 4 || ab.Count456 != 0 {
		t.Fatalf("ab score: %+v", ab)
	}
}

func TestScoreYSQFullCatalog(t *testing.T) {
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	schemas := c.YSQSchemas()

	answers := make(map[string]any)
	for _, item := range c.ItemsFor(catalog.TypeYSQ) {
		answers[item.ID] = 5.0
	}

	arrays := BuildYSQAnswerArrays(answers, schemas)
	scores := ScoreYSQ(arrays, schemas)
	if len(scores) != 18 {
		t.Fatalf("got %d schema scores, want 18", len(scores))
	}
	for _, s := range scores {
		if s.Raw != 25 {
			t.Errorf("%s: raw=%v, want 25", s.Code, s.Raw)
		}
		if s.Count456 != 5 {
			t.Errorf("%s: count456=%d, want 5", s.Code, s.Count456)
		}
	}
}
