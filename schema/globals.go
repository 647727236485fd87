package schema

// Default criteria values for a fresh session.
const (
	DefaultMaxScore = 100.0
)

// DefaultCriteria returns a fresh copy of the built-in criteria registry.
func DefaultCriteria() Criteria {
	return Criteria{
		{Name: "productivity", Weight: 0.4, MaxScore: DefaultMaxScore},
		{Name: "quality", Weight: 0.3, MaxScore: DefaultMaxScore},
		{Name: "timeliness", Weight: 0.3, MaxScore: DefaultMaxScore},
	}
}
