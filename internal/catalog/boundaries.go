package catalog

// ModeKeys maps SMI mode display names (item categories) to the short keys
// used by the boundary tables and the summary-sheet matrix.
var ModeKeys = map[string]string{
	"Vulnerable Child":      "vc",
	"Angry Child":           "ac",
	"Enraged Child":         "ec",
	"Impulsive Child":       "ic",
	"Undisciplined Child":   "uc",
	"Happy Child":           "hc",
	"Compliant Surrenderer": "cs",
	"Detached Protector":    "dp",
	"Detached Self-Soother": "dss",
	"Self-Aggrandizer":      "sa",
	"Bully and Attack":      "ba",
	"Punitive Parent":       "pp",
	"Demanding Parent":      "dem",
	"Healthy Adult":         "ha",
}

// SMIBoundaries holds the 6-value clinical boundary table per mode key.
// Maladaptive modes ascend; the adaptive modes (Happy Child, Healthy Adult)
// descend, since a high average there means low severity.
var SMIBoundaries = map[string][]float64{
	"vc":  {1.22, 1.93, 2.64, 3.35, 4.06, 4.77},
	"ac":  {1.24, 1.88, 2.52, 3.16, 3.80, 4.44},
	"ec":  {1.05, 1.47, 1.89, 2.31, 2.73, 3.15},
	"ic":  {1.33, 1.95, 2.57, 3.19, 3.81, 4.43},
	"uc":  {1.41, 2.02, 2.63, 3.24, 3.85, 4.46},
	"hc":  {5.31, 4.63, 3.95, 3.27, 2.59, 1.91},
	"cs":  {1.74, 2.41, 3.08, 3.75, 4.42, 5.09},
	"dp":  {1.19, 1.83, 2.47, 3.11, 3.75, 4.39},
	"dss": {1.56, 2.25, 2.94, 3.63, 4.32, 5.01},
	"sa":  {1.62, 2.23, 2.84, 3.45, 4.06, 4.67},
	"ba":  {1.26, 1.84, 2.42, 3.00, 3.58, 4.16},
	"pp":  {1.18, 1.77, 2.36, 2.95, 3.54, 4.13},
	"dem": {1.65, 2.37, 3.09, 3.81, 4.53, 5.25},
	"ha":  {5.44, 4.82, 4.20, 3.58, 2.96, 2.34},
}

// ysqSchemaDefs fixes the 18-schema registry order and each schema's raw-sum
// boundary table.
var ysqSchemaDefs = []struct {
	code       string
	name       string
	boundaries []float64
}{
	{"ed", "Emotional Deprivation", []float64{5, 9, 13, 17, 21, 25}},
	{"ab", "Abandonment / Instability", []float64{5, 10, 14, 18, 22, 26}},
	{"ma", "Mistrust / Abuse", []float64{5, 9, 13, 17, 21, 25}},
	{"si", "Social Isolation / Alienation", []float64{5, 9, 14, 18, 22, 26}},
	{"ds", "Defectiveness / Shame", []float64{5, 8, 12, 16, 20, 24}},
	{"fa", "Failure to Achieve", []float64{5, 9, 13, 17, 21, 25}},
	{"di", "Dependence / Incompetence", []float64{5, 8, 12, 16, 20, 24}},
	{"vu", "Vulnerability to Harm or Illness", []float64{5, 9, 13, 17, 21, 25}},
	{"em", "Enmeshment / Undeveloped Self", []float64{5, 8, 12, 16, 20, 24}},
	{"sb", "Subjugation", []float64{5, 9, 13, 17, 21, 25}},
	{"ss", "Self-Sacrifice", []float64{5, 11, 16, 20, 24, 28}},
	{"ei", "Emotional Inhibition", []float64{5, 9, 13, 17, 21, 25}},
	{"us", "Unrelenting Standards / Hypercriticalness", []float64{5, 11, 16, 20, 24, 28}},
	{"et", "Entitlement / Grandiosity", []float64{5, 10, 15, 19, 23, 27}},
	{"is", "Insufficient Self-Control / Self-Discipline", []float64{5, 10, 14, 18, 22, 26}},
	{"as", "Approval-Seeking / Recognition-Seeking", []float64{5, 10, 15, 19, 23, 27}},
	{"np", "Negativity / Pessimism", []float64{5, 10, 14, 18, 22, 26}},
	{"pu", "Punitiveness", []float64{5, 10, 14, 18, 22, 26}},
}

// SeverityRange is one interval of an inventory severity table.
type SeverityRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
}

// BecksSeverity holds the BDI-II style total-score ranges.
var BecksSeverity = []SeverityRange{
	{0, 13, "Minimal depression"},
	{14, 19, "Mild depression"},
	{20, 28, "Moderate depression"},
	{29, 63, "Severe depression"},
}

// BurnsSeverity holds the Burns Anxiety Inventory total-score ranges.
var BurnsSeverity = []SeverityRange{
	{0, 4, "Minimal or no anxiety"},
	{5, 10, "Borderline anxiety"},
	{11, 20, "Mild anxiety"},
	{21, 30, "Moderate anxiety"},
	{31, 50, "Severe anxiety"},
	{51, 99, "Extreme anxiety or panic"},
}
