package entity

import "time"

// Group is an announcement target: a messaging-platform group an operator can
// dispatch to. Preset groups are seeded by migration; custom ones are added
// through the API.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	GroupID   string    `json:"group_id"`
	IsPreset  bool      `json:"is_preset"`
	CreatedAt time.Time `json:"created_at"`
}

// Delivery is one row of the append-only delivery log. Every dispatch attempt
// is recorded, successful or not; nothing deduplicates or retries based on it.
type Delivery struct {
	ID      int64     `json:"id"`
	GroupID string    `json:"group_id"`
	Kind    string    `json:"kind"`
	Duty    string    `json:"duty,omitempty"`
	OK      bool      `json:"ok"`
	Error   string    `json:"error,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}
