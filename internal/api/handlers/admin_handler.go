package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"likebot-api/internal/logger"
	"likebot-api/internal/middleware"
	"likebot-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const statsCacheKey = "stats:aggregate"

// AdminHandler exposes the privileged operations the Discord admin
// commands also reach: limit overrides, channel policy, resets, stats.
type AdminHandler struct {
	policy   services.PolicyService
	usage    services.UsageService
	cache    services.CacheService
	statsTTL time.Duration
}

func NewAdminHandler(policy services.PolicyService, usage services.UsageService, cache services.CacheService, statsTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		policy:   policy,
		usage:    usage,
		cache:    cache,
		statsTTL: statsTTL,
	}
}

type setLimitRequest struct {
	Limit int `json:"limit"`
}

func (h *AdminHandler) SetDailyLimit(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	var req setLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Limit < 0 {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	if err := h.policy.SetDailyLimitFor(userID, req.Limit); err != nil {
		// The override is live in memory; only the durable copy failed.
		logger.Logger.WithFields(logrus.Fields{"error": err, "user": userID}).Error("Limit override not persisted")
	}

	adminID, _ := middleware.AdminFromContext(r.Context())
	logger.Logger.WithFields(logrus.Fields{
		"admin": adminID,
		"user":  userID,
		"limit": req.Limit,
	}).Info("Daily limit override applied")

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"limit":   req.Limit,
	})
}

func (h *AdminHandler) ResetDaily(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	if err := h.usage.ResetDaily(userID); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err, "user": userID}).Error("Daily reset not persisted")
	}
	h.invalidateStats(r)

	adminID, _ := middleware.AdminFromContext(r.Context())
	logger.Logger.WithFields(logrus.Fields{
		"admin": adminID,
		"user":  userID,
	}).Info("Daily usage reset")

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"reset":   true,
	})
}

func (h *AdminHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	respondWithJSON(w, http.StatusOK, h.usage.UserStats(userID))
}

func (h *AdminHandler) AddChannel(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelID"]

	if err := h.policy.AddAllowedChannel(channelID); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err, "channel": channelID}).Error("Channel add not persisted")
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"allowed_channels": h.policy.AllowedChannels(),
	})
}

func (h *AdminHandler) RemoveChannel(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelID"]

	if err := h.policy.RemoveAllowedChannel(channelID); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err, "channel": channelID}).Error("Channel remove not persisted")
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"allowed_channels": h.policy.AllowedChannels(),
	})
}

func (h *AdminHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"allowed_channels": h.policy.AllowedChannels(),
	})
}

// AggregateStats serves the store-wide summary, via redis when a cache
// is configured.
func (h *AdminHandler) AggregateStats(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), statsCacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	stats := h.usage.AggregateStats()
	if h.cache != nil {
		if err := h.cache.Set(r.Context(), statsCacheKey, stats, h.statsTTL); err != nil {
			logger.Logger.WithFields(logrus.Fields{"error": err}).Warn("Failed to cache aggregate stats")
		}
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) invalidateStats(r *http.Request) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(r.Context(), statsCacheKey); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err}).Warn("Failed to invalidate stats cache")
	}
}
