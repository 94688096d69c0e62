package restapi

import (
	"context"
	"net/http"
	"time"

	"subwaymap.org/internal/models"
)

const healthCheckTimeout = 2 * time.Second

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := api.Store.Ping(ctx); err != nil {
		api.Logger.Warn("health check failed", "error", err)
		api.sendResponse(w, r, models.NewResponse(http.StatusServiceUnavailable, nil, "store unavailable"))
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(map[string]string{
		"status": "ok",
		"store":  api.Config.Store,
	}))
}
