package entity

import (
	"time"
)

// Funnel is a named landing-page campaign. The catalog is read-only
// from the capture pipeline's point of view.
type Funnel struct {
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Headline         string    `json:"headline"`
	VideoURL         string    `json:"video_url,omitempty"`
	ConfirmationPath string    `json:"confirmation_path"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}
