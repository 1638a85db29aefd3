package form

import (
	"context"
	"strings"
	"sync"

	"github.com/calemorrison/funnel-api/internal/attribution"
	"github.com/calemorrison/funnel-api/internal/entity"
	"github.com/calemorrison/funnel-api/internal/usecase"
)

// Submitter is satisfied by *usecase.SubmitLeadUseCase; the controller
// never persists anything directly.
type Submitter interface {
	Execute(ctx context.Context, input usecase.SubmitLeadInput) (*entity.Lead, error)
}

// Navigator performs the post-success redirect on the default path.
type Navigator interface {
	Navigate(path string)
}

type Config struct {
	FunnelID         string
	PageID           string
	ConfirmationPath string // default "/thank-you"
	// OnSuccess, when set, replaces the default clear-and-navigate
	// behavior; the UI decides what happens next.
	OnSuccess func(*entity.Lead)
	// ContextFn captures UTM params and browser context at submission
	// time. Optional.
	ContextFn func() attribution.Context
}

// Controller models the embedded lead form's state machine:
// idle → submitting → idle-with-error | idle-cleared-success.
// The submitting flag is the only concurrency control; a second Submit
// while one is in flight is a no-op.
type Controller struct {
	mu         sync.Mutex
	fields     map[string]string
	submitting bool
	lastErr    string

	cfg       Config
	submitter Submitter
	nav       Navigator
}

func NewController(submitter Submitter, nav Navigator, cfg Config) *Controller {
	if cfg.ConfirmationPath == "" {
		cfg.ConfirmationPath = "/thank-you"
	}
	return &Controller{
		fields:    make(map[string]string),
		cfg:       cfg,
		submitter: submitter,
		nav:       nav,
	}
}

// UpdateField is a plain assignment; no validation happens here.
func (c *Controller) UpdateField(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields[field] = value
}

func (c *Controller) Field(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields[field]
}

func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Submit kicks off an asynchronous submission. While one is in flight
// further calls do nothing. The local required-field check only avoids
// a round-trip that the canonical path would reject anyway.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return
	}
	c.lastErr = ""

	name := strings.TrimSpace(c.fields["name"])
	email := strings.TrimSpace(c.fields["email"])
	if name == "" || email == "" || strings.TrimSpace(c.cfg.FunnelID) == "" {
		c.lastErr = "Please fill in all required fields"
		c.mu.Unlock()
		return
	}

	c.submitting = true

	var actx attribution.Context
	if c.cfg.ContextFn != nil {
		actx = c.cfg.ContextFn()
	}

	input := usecase.SubmitLeadInput{
		Name:     name,
		Email:    email,
		Phone:    c.fields["phone"],
		FunnelID: c.cfg.FunnelID,
		PageID:   c.cfg.PageID,
		UTM:      actx.UTM,
		Metadata: actx.Metadata(),
	}
	c.mu.Unlock()

	go c.run(ctx, input)
}

func (c *Controller) run(ctx context.Context, input usecase.SubmitLeadInput) {
	lead, err := c.submitter.Execute(ctx, input)

	c.mu.Lock()
	c.submitting = false

	if err != nil {
		// Fields stay put so the visitor can correct and resubmit.
		c.lastErr = err.Error()
		c.mu.Unlock()
		return
	}

	if c.cfg.OnSuccess != nil {
		c.mu.Unlock()
		c.cfg.OnSuccess(lead)
		return
	}

	// Default path: clear and move to the confirmation page.
	c.fields = make(map[string]string)
	dest := c.cfg.ConfirmationPath
	c.mu.Unlock()

	if c.nav != nil {
		c.nav.Navigate(dest)
	}
}
