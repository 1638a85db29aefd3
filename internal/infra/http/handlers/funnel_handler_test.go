package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/calemorrison/funnel-api/internal/entity"
	"github.com/calemorrison/funnel-api/internal/infra/http/handlers"
)

type MockFunnelRepository struct {
	mock.Mock
}

func (m *MockFunnelRepository) FindBySlug(ctx context.Context, slug string) (*entity.Funnel, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Funnel), args.Error(1)
}

func (m *MockFunnelRepository) ListActive(ctx context.Context) ([]entity.Funnel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Funnel), args.Error(1)
}

func getFunnel(t *testing.T, h *handlers.FunnelHandler, slug string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/funnels/"+slug, nil)

	chiCtx := chi.NewRouteContext()
	chiCtx.URLParams.Add("slug", slug)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))

	w := httptest.NewRecorder()
	h.HandleGet(w, req)
	return w
}

func TestGetFunnelSuccess(t *testing.T) {
	repo := new(MockFunnelRepository)
	repo.On("FindBySlug", mock.Anything, "first-time-buyers").Return(&entity.Funnel{
		Slug:             "first-time-buyers",
		Name:             "First Time Buyers",
		ConfirmationPath: "/thank-you",
		Active:           true,
	}, nil)

	h := handlers.NewFunnelHandler(repo)
	w := getFunnel(t, h, "first-time-buyers")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "first-time-buyers", resp.Data["slug"])
	assert.Equal(t, "/thank-you", resp.Data["confirmation_path"])
}

func TestGetFunnelNotFound(t *testing.T) {
	repo := new(MockFunnelRepository)
	repo.On("FindBySlug", mock.Anything, "retired-campaign").Return(nil, sql.ErrNoRows)

	h := handlers.NewFunnelHandler(repo)
	w := getFunnel(t, h, "retired-campaign")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFunnelsEmpty(t *testing.T) {
	repo := new(MockFunnelRepository)
	repo.On("ListActive", mock.Anything).Return(nil, nil)

	h := handlers.NewFunnelHandler(repo)
	req := httptest.NewRequest("GET", "/api/funnels", nil)
	w := httptest.NewRecorder()
	h.HandleList(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool  `json:"success"`
		Data    []any `json:"data"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}
