package api

import (
	"likebot-api/internal/api/handlers"
	"likebot-api/internal/middleware"
	"likebot-api/internal/services"

	"github.com/gorilla/mux"
)

func SetupRoutes(
	health *handlers.HealthHandler,
	admin *handlers.AdminHandler,
	tokens services.TokenService,
	policy services.PolicyService,
) *mux.Router {
	router := mux.NewRouter()

	// Public liveness endpoints
	router.HandleFunc("/", health.Home).Methods("GET")
	router.HandleFunc("/health", health.Health).Methods("GET")

	// Admin routes (protected)
	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminMiddleware(tokens, policy))

	adminRouter.HandleFunc("/stats", admin.AggregateStats).Methods("GET")
	adminRouter.HandleFunc("/channels", admin.ListChannels).Methods("GET")
	adminRouter.HandleFunc("/channels/{channelID}", admin.AddChannel).Methods("POST")
	adminRouter.HandleFunc("/channels/{channelID}", admin.RemoveChannel).Methods("DELETE")
	adminRouter.HandleFunc("/users/{userID}/limit", admin.SetDailyLimit).Methods("POST")
	adminRouter.HandleFunc("/users/{userID}/reset", admin.ResetDaily).Methods("POST")
	adminRouter.HandleFunc("/users/{userID}/stats", admin.GetUserStats).Methods("GET")

	return router
}
