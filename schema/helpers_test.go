package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "productivity", "Productivity"},
		{"already capitalized", "Quality", "Quality"},
		{"camel case keeps tail", "timeToMarket", "TimeToMarket"},
		{"multi word keeps tail", "code review", "Code review"},
		{"unicode", "émotion", "Émotion"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TitleCase(tt.input))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{"integer", "80", 80, false},
		{"decimal with spaces", "  0.35 ", 0.35, false},
		{"negative", "-1.5", -1.5, false},
		{"empty", "", 0, true},
		{"word", "abc", 0, true},
		{"nan literal", "NaN", 0, true},
		{"infinity", "+Inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseNumber(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNonNumeric)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, v, 1e-12)
		})
	}
}

func TestCriteriaHelpers(t *testing.T) {
	c := DefaultCriteria()
	assert.Equal(t, []string{"productivity", "quality", "timeliness"}, c.Names())
	assert.Equal(t, 1, c.Index("quality"))
	assert.Equal(t, -1, c.Index("speed"))
	assert.InDelta(t, 1.0, c.TotalWeight(), 1e-12)

	clone := c.Clone()
	clone[0].Weight = 9
	assert.InDelta(t, 0.4, c[0].Weight, 1e-12, "clone must not alias the original")
	assert.Nil(t, Criteria(nil).Clone())
}

func TestDefaultCriteriaIsFresh(t *testing.T) {
	a := DefaultCriteria()
	a[0].Weight = 42
	assert.InDelta(t, 0.4, DefaultCriteria()[0].Weight, 1e-12)
}

func TestCriteriaValidate(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		target   error
	}{
		{"defaults", DefaultCriteria(), nil},
		{"weights need not sum to one", Criteria{{Name: "a", Weight: 2, MaxScore: 10}, {Name: "b", Weight: -0.5, MaxScore: 10}}, nil},
		{"empty registry", Criteria{}, ErrInvalidCriterion},
		{"empty name", Criteria{{Name: "", Weight: 1, MaxScore: 1}}, ErrInvalidCriterion},
		{"padded name", Criteria{{Name: " a", Weight: 1, MaxScore: 1}}, ErrInvalidCriterion},
		{"reserved name", Criteria{{Name: "Name", Weight: 1, MaxScore: 1}}, ErrInvalidCriterion},
		{"duplicate", Criteria{{Name: "a", Weight: 1, MaxScore: 1}, {Name: "a", Weight: 1, MaxScore: 1}}, ErrDuplicateCriterion},
		{"zero max score", Criteria{{Name: "a", Weight: 1, MaxScore: 0}}, ErrInvalidCriterion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestImportReportTotals(t *testing.T) {
	r := ImportReport{Files: []FileImport{
		{Path: "a.csv", Rows: 3, Appended: 3},
		{Path: "b.xlsx", Error: "boom"},
		{Path: "c.csv", Rows: 2, Appended: 1, Skipped: 1},
	}}
	assert.Equal(t, 4, r.Appended())
	assert.Equal(t, 1, r.Failed())
}
