package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/calemorrison/funnel-api/internal/attribution"
	"github.com/calemorrison/funnel-api/internal/infra/http/middleware"
	"github.com/calemorrison/funnel-api/internal/usecase"
)

type EventHandler struct {
	trackUC *usecase.TrackEventUseCase
}

func NewEventHandler(trackUC *usecase.TrackEventUseCase) *EventHandler {
	return &EventHandler{trackUC: trackUC}
}

// Handle is POST /api/events, used by the landing pages for page_view,
// video_view and course_click beacons.
func (h *EventHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.TrackEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if input.Metadata == nil {
		input.Metadata = attribution.FromRequest(r).Metadata()
	}

	event, err := h.trackUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RecordEventTracked(string(event.EventType))
	writeSuccess(w, event)
}
