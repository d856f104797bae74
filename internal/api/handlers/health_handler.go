package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"likebot-api/internal/services"
)

type HealthHandler struct {
	usage   services.UsageService
	started time.Time
}

func NewHealthHandler(usage services.UsageService) *HealthHandler {
	return &HealthHandler{
		usage:   usage,
		started: time.Now(),
	}
}

// Home is the keep-alive endpoint hosting platforms poll.
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "alive",
		"message": "Free Fire like bot is running",
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.usage.AggregateStats()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"service":        "Free Fire like bot",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"users_tracked":  stats.TotalUsers,
		"endpoints":      []string{"/", "/health"},
	})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
