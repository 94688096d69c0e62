package restapi

import (
	"net/http"
	"time"

	"subwaymap.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Close releases the background resources of the middleware chain.
func (api *RestAPI) Close() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

// limited applies per-client rate limiting to h.
func (api *RestAPI) limited(h http.HandlerFunc) http.Handler {
	if api.rateLimiter == nil {
		return h
	}
	return api.rateLimiter.Handler(h)
}
