package events

const (
	StreamName   = "SCORECARD_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectEntriesAppended(sessionID string) string { return "scorecard." + sessionID + ".entries.appended" }
func SubjectCriteriaUpdated(sessionID string) string { return "scorecard." + sessionID + ".criteria.updated" }
func SubjectExportCompleted(sessionID string) string { return "scorecard." + sessionID + ".export.completed" }
