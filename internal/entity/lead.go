package entity

import (
	"time"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusUnqualified LeadStatus = "unqualified"
)

// Metadata is an open key/value bag attached to leads and events.
// Recognized keys: user_agent, referrer, timestamp.
type Metadata map[string]any

const (
	MetaUserAgent = "user_agent"
	MetaReferrer  = "referrer"
	MetaTimestamp = "timestamp"
)

// Lead is a visitor's submitted contact record. Optional fields are
// pointers so an absent value serializes as an explicit null instead of
// silently changing the record shape.
type Lead struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	FunnelID    string     `json:"funnel_id"`
	PageID      *string    `json:"page_id"`
	UTMSource   *string    `json:"utm_source"`
	UTMMedium   *string    `json:"utm_medium"`
	UTMCampaign *string    `json:"utm_campaign"`
	UTMContent  *string    `json:"utm_content"`
	UTMTerm     *string    `json:"utm_term"`
	Status      LeadStatus `json:"status"` // set once at creation; advanced only by the back office
	Metadata    Metadata   `json:"metadata"`
	CreatedAt   time.Time  `json:"created_at"`
}
