package models

// Stats is the derived count-by-status summary shown on the console
// dashboard. It is never mutated independently: every collection change
// recomputes it from scratch. The JSON field names match the persisted
// shape the console has always written.
//
// ANSWERED messages count in Total only; they have no sub-counter.
type Stats struct {
	Total      int `json:"total"`
	Read       int `json:"lus"`
	Unread     int `json:"nonLus"`
	Archived   int `json:"archives"`
	InProgress int `json:"enCours"`
	Completed  int `json:"executes"`
	Urgent     int `json:"urgents"`
}

// ComputeStats folds a message collection into its Stats summary.
// It is pure and order-independent: element order never changes the result.
func ComputeStats(messages []Message) Stats {
	stats := Stats{Total: len(messages)}
	for _, m := range messages {
		switch m.Status {
		case StatusRead:
			stats.Read++
		case StatusUnread:
			stats.Unread++
		case StatusArchived:
			stats.Archived++
		case StatusInProgress:
			stats.InProgress++
		case StatusCompleted:
			stats.Completed++
		case StatusUrgent:
			stats.Urgent++
		}
	}
	return stats
}
