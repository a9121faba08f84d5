// Package httpapi assembles the REST surface under /api.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"skillnaav/internal/common"
	"skillnaav/internal/config"
	"skillnaav/internal/notif"
	"skillnaav/internal/offer"
	"skillnaav/internal/ratelimit"
	"skillnaav/internal/savedjob"
)

const serviceName = "skillnaav-lifecycle"

type Handlers struct {
	Notifications *notif.NotificationHandler
	SavedJobs     *savedjob.Handler
	Offers        *offer.Handler
}

// NewRouter mounts every handler under /api. Mutating endpoints are
// throttled per caller by limiter.
func NewRouter(cfg *config.Config, tm *common.TokenManager, limiter ratelimit.Limiter, h Handlers) *mux.Router {
	router := mux.NewRouter()

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// preflight requests never match a route's method otherwise
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/api/health", healthCheckHandler).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware(tm, cfg.Auth.Required))

	limit := ratelimit.RateLimit(limiter, ratelimit.NewKeyer(cfg.RateLimit.TrustedProxies).CallerKey, cfg.RateLimit.Requests, cfg.RateLimitWindow())

	if h.Notifications != nil {
		h.Notifications.RegisterRoutes(api.PathPrefix("/notifications").Subrouter(), limit)
	}
	if h.SavedJobs != nil {
		h.SavedJobs.RegisterRoutes(api.PathPrefix("/savedJobs").Subrouter(), limit)
	}
	if h.Offers != nil {
		h.Offers.RegisterRoutes(api.PathPrefix("/offer-letters").Subrouter(), limit)
	}

	return router
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}
