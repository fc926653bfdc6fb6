package entity

import "time"

type ActionType string

const (
	ActionCreate ActionType = "Create"
	ActionUpdate ActionType = "Update"
	ActionDelete ActionType = "Delete"
)

// TaskAudit is the persisted audit row, written by the worker.
type TaskAudit struct {
	ID         int        `json:"id"`
	UserID     string     `json:"user_id"`
	Action     ActionType `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	OldValues  *string    `json:"old_values"`
	NewValues  *string    `json:"new_values"`
	Changes    *string    `json:"changes"`
	ChangedAt  time.Time  `json:"changed_at"`
}

// AuditMessage is the wire form published to RabbitMQ on every task mutation.
type AuditMessage struct {
	UserID    string         `json:"user_id"`
	Action    ActionType     `json:"action"`
	EntityID  string         `json:"entity_id"`
	OldValues map[string]any `json:"old_values,omitempty"`
	NewValues map[string]any `json:"new_values,omitempty"`
	Changes   map[string]any `json:"changes,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
