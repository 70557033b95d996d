package model

import "time"

// HistoryOutcome is the terminal verdict recorded for a resolved order.
type HistoryOutcome string

const (
	HistoryOutcomeSuccess HistoryOutcome = "success"
	HistoryOutcomeFailure HistoryOutcome = "failure"
)

// HistoryEntry is an immutable fact: one row appended exactly once when an
// order reaches a terminal state. Never updated afterwards.
type HistoryEntry struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	ServiceName string         `json:"service_name"`
	Price       uint           `json:"price"`
	Outcome     HistoryOutcome `json:"outcome"`
	CreatedAt   time.Time      `json:"created_at"`
}
