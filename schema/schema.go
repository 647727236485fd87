// Package schema has models, constants and errors shared by all parts of scorecard.
package schema

// Criterion is a named scoring dimension.
// Weights are not normalized: they need not sum to 1 and may fall outside [0, 1].
type Criterion struct {
	Name     string  `json:"name" yaml:"name"`
	Weight   float64 `json:"weight" yaml:"weight"`
	MaxScore float64 `json:"maxScore" yaml:"max_score"`
}

// Criteria is the ordered criteria registry. Order drives every column and chart axis.
type Criteria []Criterion

// Entry is a named subject with one numeric value per criterion.
type Entry struct {
	ID      string             `json:"id"`                // Stable identifier assigned on append
	Name    string             `json:"name"`              // Entity name, not required to be unique
	Values  map[string]float64 `json:"values"`            // Criterion name to value
	Missing []string           `json:"missing,omitempty"` // Criteria whose source value was absent or non-numeric
	Source  string             `json:"source,omitempty"`  // File path, or "manual"
}

// Contribution is one criterion's share of an entry's score.
type Contribution struct {
	Criterion string  `json:"criterion"`
	Value     float64 `json:"value"`
	Weight    float64 `json:"weight"`
	Points    float64 `json:"points"`
}

// ScoredEntry is an entry together with its computed score.
type ScoredEntry struct {
	Entry
	Score     float64        `json:"score"`
	Label     string         `json:"label,omitempty"`
	Breakdown []Contribution `json:"breakdown,omitempty"`
}

// RadarPoint is one axis of the category performance chart.
type RadarPoint struct {
	Subject   string  `json:"subject"`   // Title-cased criterion name
	Criterion string  `json:"criterion"` // Registry key
	Average   float64 `json:"average"`
}

// Dashboard is the derived overview of the whole entry store.
type Dashboard struct {
	Criteria  Criteria           `json:"criteria"`
	ScoreMode ScoreMode          `json:"scoreMode"`
	Entries   []ScoredEntry      `json:"entries"`  // Overall performance bars, store order
	Averages  map[string]float64 `json:"averages"` // Empty when the store is empty
	Radar     []RadarPoint       `json:"radar"`    // Category performance, registry order
}

// ComparisonRow is one radar axis of a comparison, with a value per selected entity.
type ComparisonRow struct {
	Subject   string             `json:"subject"`
	Criterion string             `json:"criterion"`
	Values    map[string]float64 `json:"values"`
}

// Ranking is one line of a comparison ranking.
type Ranking struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Comparison is the derived side-by-side view of selected entities.
type Comparison struct {
	Options   []string        `json:"options"`  // Every entry name, store order
	Selected  []string        `json:"selected"` // Requested names
	Rows      []ComparisonRow `json:"rows"`
	Rankings  []Ranking       `json:"rankings"` // Non-increasing by score
	ScoreMode ScoreMode       `json:"scoreMode"`
}

// FileImport summarizes the ingestion of one file.
type FileImport struct {
	Path     string `json:"path"`
	Rows     int    `json:"rows"`
	Appended int    `json:"appended"`
	Skipped  int    `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// ImportReport summarizes a bulk ingestion, one record per input file in input order.
type ImportReport struct {
	Files []FileImport `json:"files"`
}

// Appended returns the total number of entries appended across files.
func (r ImportReport) Appended() int {
	total := 0
	for _, f := range r.Files {
		total += f.Appended
	}
	return total
}

// Failed returns the number of files that could not be imported.
func (r ImportReport) Failed() int {
	failed := 0
	for _, f := range r.Files {
		if f.Error != "" {
			failed++
		}
	}
	return failed
}

// ExportTable is the tabular shape shared by every export format.
type ExportTable struct {
	Header   []string    // Name, one column per criterion, Total Score
	Criteria []string    // Registry keys matching the value columns
	Rows     []ExportRow // Store order
}

// ExportRow is one exported entry.
type ExportRow struct {
	Name   string
	Values []float64 // Registry order
	Score  float64
}
