package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/calemorrison/funnel-api/internal/entity"
	"github.com/calemorrison/funnel-api/internal/infra/analytics"
	"github.com/calemorrison/funnel-api/internal/usecase"
)

func TestTrackEventUnknownType(t *testing.T) {
	eventRepo := new(MockEventRepository)
	sink := analytics.NewDataLayer()

	uc := usecase.NewTrackEventUseCase(eventRepo, sink)

	event, err := uc.Execute(context.Background(), usecase.TrackEventInput{
		EventType: "newsletter_open",
		FunnelID:  "first-time-buyers",
	})

	assert.Nil(t, event)
	assert.True(t, usecase.IsDomainError(err))
	eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 0, sink.Len())
}

func TestTrackEventFormSubmitReserved(t *testing.T) {
	eventRepo := new(MockEventRepository)
	sink := analytics.NewDataLayer()

	uc := usecase.NewTrackEventUseCase(eventRepo, sink)

	// A form_submit without a lead behind it must never reach the store.
	event, err := uc.Execute(context.Background(), usecase.TrackEventInput{
		EventType: entity.EventTypeFormSubmit,
		FunnelID:  "first-time-buyers",
	})

	assert.Nil(t, event)
	assert.True(t, usecase.IsDomainError(err))
	eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 0, sink.Len())
}

func TestTrackEventMissingFunnel(t *testing.T) {
	eventRepo := new(MockEventRepository)
	uc := usecase.NewTrackEventUseCase(eventRepo, analytics.NewDataLayer())

	event, err := uc.Execute(context.Background(), usecase.TrackEventInput{
		EventType: entity.EventTypePageView,
	})

	assert.Nil(t, event)
	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, "Missing required fields", err.Error())
}

func TestTrackEventSuccess(t *testing.T) {
	eventRepo := new(MockEventRepository)
	sink := analytics.NewDataLayer()

	eventRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewTrackEventUseCase(eventRepo, sink)

	event, err := uc.Execute(context.Background(), usecase.TrackEventInput{
		EventType: entity.EventTypeVideoView,
		FunnelID:  "first-time-buyers",
		PageID:    "vsl",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.EventTypeVideoView, event.EventType)
	assert.NotNil(t, event.PageID)
	assert.Equal(t, "vsl", *event.PageID)
	assert.Nil(t, event.LeadID)

	assert.Eventually(t, func() bool {
		return sink.Len() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "video_view", sink.Tags()[0].Event)
}

func TestTrackEventPersistenceFailure(t *testing.T) {
	eventRepo := new(MockEventRepository)
	sink := analytics.NewDataLayer()

	eventRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("boom"))

	uc := usecase.NewTrackEventUseCase(eventRepo, sink)

	event, err := uc.Execute(context.Background(), usecase.TrackEventInput{
		EventType: entity.EventTypePageView,
		FunnelID:  "first-time-buyers",
	})

	assert.Nil(t, event)
	assert.True(t, usecase.IsTechnicalError(err))
	assert.Equal(t, 0, sink.Len())
}
