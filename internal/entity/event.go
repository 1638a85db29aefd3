package entity

import (
	"time"
)

type EventType string

const (
	EventTypePageView    EventType = "page_view"
	EventTypeFormSubmit  EventType = "form_submit"
	EventTypeVideoView   EventType = "video_view"
	EventTypeCourseClick EventType = "course_click"
)

// ValidEventType reports whether t is one of the tracked event kinds.
func ValidEventType(t EventType) bool {
	switch t {
	case EventTypePageView, EventTypeFormSubmit, EventTypeVideoView, EventTypeCourseClick:
		return true
	}
	return false
}

// Event is a timestamped occurrence tied to a funnel. LeadID is a weak
// reference, set only when the lead created in the same flow was
// durably persisted first.
type Event struct {
	ID        string    `json:"id"`
	EventType EventType `json:"event_type"`
	FunnelID  string    `json:"funnel_id"`
	PageID    *string   `json:"page_id"`
	LeadID    *string   `json:"lead_id"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
