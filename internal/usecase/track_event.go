package usecase

import (
	"context"
	"log"

	"github.com/calemorrison/funnel-api/internal/entity"
	"github.com/calemorrison/funnel-api/internal/infra/queue"
)

// TrackEventUseCase records page_view / video_view / course_click
// occurrences. The event record is the primary write; the matching tag
// push is best-effort.
type TrackEventUseCase struct {
	Events EventRepositoryInterface
	Tags   AnalyticsSink
}

func NewTrackEventUseCase(events EventRepositoryInterface, tags AnalyticsSink) *TrackEventUseCase {
	return &TrackEventUseCase{
		Events: events,
		Tags:   tags,
	}
}

func (uc *TrackEventUseCase) Execute(ctx context.Context, input TrackEventInput) (*entity.Event, error) {
	if errs := ValidateTrackEventInput(input); len(errs) > 0 {
		return nil, &DomainError{
			Code:    "MISSING_REQUIRED_FIELDS",
			Message: "Missing required fields",
		}
	}
	if !entity.ValidEventType(input.EventType) {
		return nil, &DomainError{
			Code:    "UNKNOWN_EVENT_TYPE",
			Message: "Unknown event type",
		}
	}
	// form_submit events only ever come out of the lead pipeline, after
	// the lead itself is durably persisted.
	if input.EventType == entity.EventTypeFormSubmit {
		return nil, &DomainError{
			Code:    "RESERVED_EVENT_TYPE",
			Message: "form_submit events are created by the lead submission flow",
		}
	}

	event := &entity.Event{
		EventType: input.EventType,
		FunnelID:  input.FunnelID,
		PageID:    optional(input.PageID),
		LeadID:    optional(input.LeadID),
		Metadata:  input.Metadata,
	}
	if event.Metadata == nil {
		event.Metadata = entity.Metadata{}
	}

	if err := uc.Events.Create(ctx, event); err != nil {
		log.Printf("❌ %s event insert failed (funnel=%s): %v", input.EventType, input.FunnelID, err)
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "Could not record the event. Please try again.",
		}
	}

	if uc.Tags != nil {
		tag := queue.TagPayload{
			Event:    string(event.EventType),
			FunnelID: event.FunnelID,
			PageID:   event.PageID,
			LeadID:   event.LeadID,
			Params:   event.Metadata,
		}
		go func() {
			if err := uc.Tags.Push(context.Background(), tag); err != nil {
				log.Printf("⚠️ tag push failed (event=%s funnel=%s): %v", event.EventType, event.FunnelID, err)
			}
		}()
	}

	return event, nil
}
