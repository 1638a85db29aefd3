package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/calemorrison/funnel-api/internal/entity"
	"github.com/calemorrison/funnel-api/internal/infra/analytics"
	"github.com/calemorrison/funnel-api/internal/infra/http/handlers"
	"github.com/calemorrison/funnel-api/internal/usecase"
)

func newEventHandler(eventRepo *MockEventRepository) *handlers.EventHandler {
	uc := usecase.NewTrackEventUseCase(eventRepo, analytics.NewDataLayer())
	return handlers.NewEventHandler(uc)
}

func postEvents(t *testing.T, h *handlers.EventHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/events", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestTrackEventHandlerPageView(t *testing.T) {
	eventRepo := new(MockEventRepository)
	eventRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Event).ID = "ev-1"
		}).
		Return(nil)

	h := newEventHandler(eventRepo)

	w := postEvents(t, h, `{"event_type":"page_view","funnel_id":"first-time-buyers","page_id":"landing"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "page_view", resp.Data["event_type"])
	assert.Nil(t, resp.Data["lead_id"])
}

func TestTrackEventHandlerUnknownType(t *testing.T) {
	eventRepo := new(MockEventRepository)
	h := newEventHandler(eventRepo)

	w := postEvents(t, h, `{"event_type":"pixel_fire","funnel_id":"first-time-buyers"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTrackEventHandlerRejectsFormSubmit(t *testing.T) {
	eventRepo := new(MockEventRepository)
	h := newEventHandler(eventRepo)

	w := postEvents(t, h, `{"event_type":"form_submit","funnel_id":"first-time-buyers"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTrackEventHandlerMissingFunnel(t *testing.T) {
	h := newEventHandler(new(MockEventRepository))

	w := postEvents(t, h, `{"event_type":"page_view"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	assert.Equal(t, "Missing required fields", resp["error"])
}
