package models

import "time"

// ToolEvent records the outcome of a tool call that changed remote state
type ToolEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	Tool       string    `json:"tool"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToolEventType is the Type value carried by every published ToolEvent
const ToolEventType = "tool_event"
