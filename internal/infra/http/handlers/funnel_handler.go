package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calemorrison/funnel-api/internal/entity"
	"github.com/calemorrison/funnel-api/internal/usecase"
)

type FunnelHandler struct {
	funnelRepo usecase.FunnelRepositoryInterface
}

func NewFunnelHandler(funnelRepo usecase.FunnelRepositoryInterface) *FunnelHandler {
	return &FunnelHandler{funnelRepo: funnelRepo}
}

// HandleGet is GET /api/funnels/{slug}.
func (h *FunnelHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "Missing funnel slug")
		return
	}

	funnel, err := h.funnelRepo.FindBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Funnel not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not load funnel")
		return
	}

	writeSuccess(w, funnel)
}

// HandleList is GET /api/funnels.
func (h *FunnelHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	funnels, err := h.funnelRepo.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load funnels")
		return
	}
	if funnels == nil {
		funnels = []entity.Funnel{}
	}

	writeSuccess(w, funnels)
}
