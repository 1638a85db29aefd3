package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/calemorrison/funnel-api/internal/attribution"
	"github.com/calemorrison/funnel-api/internal/infra/http/middleware"
	"github.com/calemorrison/funnel-api/internal/usecase"
)

type LeadHandler struct {
	submitUC    *usecase.SubmitLeadUseCase
	rateLimiter *RateLimiter
}

func NewLeadHandler(submitUC *usecase.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{
		submitUC:    submitUC,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

// Handle is POST /api/leads. Thin adapter: required-field rules and the
// insert itself live in the use case.
func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// UTM params on the request URL win only when the body carried none;
	// the client-side extractor already put them in utm_data.
	if input.UTM == (attribution.UTM{}) {
		input.UTM = attribution.FromQuery(r.URL.Query())
	}
	if input.Metadata == nil {
		input.Metadata = attribution.FromRequest(r).Metadata()
	}

	lead, err := h.submitUC.Execute(ctx, input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RecordLeadCaptured(lead.FunnelID)
	writeSuccess(w, lead)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
