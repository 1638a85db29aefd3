package usecase

import (
	"context"

	"github.com/calemorrison/funnel-api/internal/attribution"
	"github.com/calemorrison/funnel-api/internal/entity"
	"github.com/calemorrison/funnel-api/internal/infra/queue"
)

// SubmitLeadInput carries the validated form fields plus the
// attribution context captured at submission time.
type SubmitLeadInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	FunnelID string          `json:"funnel_id"`
	PageID   string          `json:"page_id"`
	UTM      attribution.UTM `json:"utm_data"`
	Metadata entity.Metadata `json:"metadata"`
}

type TrackEventInput struct {
	EventType entity.EventType `json:"event_type"`
	FunnelID  string           `json:"funnel_id"`
	PageID    string           `json:"page_id"`
	LeadID    string           `json:"lead_id"`
	Metadata  entity.Metadata  `json:"metadata"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.Lead) error
}

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) error
}

type FunnelRepositoryInterface interface {
	FindBySlug(ctx context.Context, slug string) (*entity.Funnel, error)
	ListActive(ctx context.Context) ([]entity.Funnel, error)
}

// AnalyticsSink is the tag queue. Pushes are fire-and-forget; the
// returned error only feeds the caller's log.
type AnalyticsSink interface {
	Push(ctx context.Context, tag queue.TagPayload) error
}

type LeadNotifier interface {
	NotifyNewLead(to string, lead *entity.Lead) error
}
