package attribution

import (
	"net/http"
	"net/url"
	"time"

	"github.com/calemorrison/funnel-api/internal/entity"
)

// UTM holds the five standard marketing attribution parameters. A nil
// field means the parameter was not present on the landing URL.
type UTM struct {
	Source   *string `json:"utm_source"`
	Medium   *string `json:"utm_medium"`
	Campaign *string `json:"utm_campaign"`
	Content  *string `json:"utm_content"`
	Term     *string `json:"utm_term"`
}

// Context is everything captured about the visitor at submission time.
type Context struct {
	UTM       UTM
	UserAgent string
	Referrer  string
	Timestamp time.Time
}

// FromQuery reads the utm_* parameters out of a query string. Empty
// values count as absent.
func FromQuery(q url.Values) UTM {
	return UTM{
		Source:   optional(q.Get("utm_source")),
		Medium:   optional(q.Get("utm_medium")),
		Campaign: optional(q.Get("utm_campaign")),
		Content:  optional(q.Get("utm_content")),
		Term:     optional(q.Get("utm_term")),
	}
}

// FromRequest bundles UTM parameters with the browser context of an
// incoming request.
func FromRequest(r *http.Request) Context {
	return Context{
		UTM:       FromQuery(r.URL.Query()),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
		Timestamp: time.Now().UTC(),
	}
}

// Metadata renders the browser context as a lead/event metadata bag.
func (c Context) Metadata() entity.Metadata {
	m := entity.Metadata{}
	if c.UserAgent != "" {
		m[entity.MetaUserAgent] = c.UserAgent
	}
	if c.Referrer != "" {
		m[entity.MetaReferrer] = c.Referrer
	}
	if !c.Timestamp.IsZero() {
		m[entity.MetaTimestamp] = c.Timestamp.Format(time.RFC3339)
	}
	return m
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
