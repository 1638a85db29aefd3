package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/calemorrison/funnel-api/internal/entity"
	"github.com/calemorrison/funnel-api/internal/infra/queue"
)

// SubmitLeadUseCase is the canonical lead insertion path. The HTTP
// handler and the client-side form controller are both thin adapters
// over Execute.
type SubmitLeadUseCase struct {
	Leads    LeadRepositoryInterface
	Events   EventRepositoryInterface
	Tags     AnalyticsSink
	Mail     LeadNotifier
	NotifyTo string
}

func NewSubmitLeadUseCase(
	leads LeadRepositoryInterface,
	events EventRepositoryInterface,
	tags AnalyticsSink,
	mail LeadNotifier,
	notifyTo string,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Leads:    leads,
		Events:   events,
		Tags:     tags,
		Mail:     mail,
		NotifyTo: notifyTo,
	}
}

// Execute validates, persists the lead, and on success kicks off the
// detached follow-ups (form_submit event record, tag push, owner
// email). Follow-up failures never surface to the caller and never
// roll the lead back.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*entity.Lead, error) {
	if errs := ValidateSubmitLeadInput(input); len(errs) > 0 {
		return nil, &DomainError{
			Code:    "MISSING_REQUIRED_FIELDS",
			Message: "Missing required fields",
		}
	}

	lead := &entity.Lead{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       optional(input.Phone),
		FunnelID:    input.FunnelID,
		PageID:      optional(input.PageID),
		UTMSource:   input.UTM.Source,
		UTMMedium:   input.UTM.Medium,
		UTMCampaign: input.UTM.Campaign,
		UTMContent:  input.UTM.Content,
		UTMTerm:     input.UTM.Term,
		Status:      entity.LeadStatusNew,
		Metadata:    input.Metadata,
	}
	if lead.Metadata == nil {
		lead.Metadata = entity.Metadata{}
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		log.Printf("❌ lead insert failed (funnel=%s): %v", input.FunnelID, err)
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "Could not save your information. Please try again.",
		}
	}

	// Detached from the request context on purpose: the caller's
	// response does not wait on any of this.
	go uc.emitFollowUps(context.Background(), lead, input)

	return lead, nil
}

func (uc *SubmitLeadUseCase) emitFollowUps(ctx context.Context, lead *entity.Lead, input SubmitLeadInput) {
	meta := entity.Metadata{
		"name":  lead.Name,
		"email": lead.Email,
	}
	if lead.Phone != nil {
		meta["phone"] = *lead.Phone
	}
	for k, v := range utmParams(lead) {
		meta[k] = v
	}
	for k, v := range input.Metadata {
		meta[k] = v
	}

	event := &entity.Event{
		EventType: entity.EventTypeFormSubmit,
		FunnelID:  lead.FunnelID,
		PageID:    lead.PageID,
		LeadID:    &lead.ID,
		Metadata:  meta,
	}
	if err := uc.Events.Create(ctx, event); err != nil {
		log.Printf("⚠️ form_submit event insert failed (lead=%s): %v", lead.ID, err)
	}

	if uc.Tags != nil {
		tag := queue.TagPayload{
			Event:    string(entity.EventTypeFormSubmit),
			FunnelID: lead.FunnelID,
			PageID:   lead.PageID,
			LeadID:   &lead.ID,
			Params:   meta,
		}
		if err := uc.Tags.Push(ctx, tag); err != nil {
			log.Printf("⚠️ tag push failed (lead=%s): %v", lead.ID, err)
		}
	}

	if uc.Mail != nil && uc.NotifyTo != "" {
		if err := uc.Mail.NotifyNewLead(uc.NotifyTo, lead); err != nil {
			log.Printf("⚠️ lead notification email failed (lead=%s): %v", lead.ID, err)
		}
	}
}

func utmParams(lead *entity.Lead) map[string]any {
	out := map[string]any{}
	put := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	put("utm_source", lead.UTMSource)
	put("utm_medium", lead.UTMMedium)
	put("utm_campaign", lead.UTMCampaign)
	put("utm_content", lead.UTMContent)
	put("utm_term", lead.UTMTerm)
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
