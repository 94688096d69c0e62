package restapi

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodPost, "/paths", api.limited(api.postPathHandler))
	router.Handler(http.MethodGet, "/api/where/path.json", api.limited(api.pathHandler))
	router.Handler(http.MethodGet, "/api/where/stations.json", api.limited(api.stationsHandler))
	router.Handler(http.MethodGet, "/api/where/station/:name", api.limited(api.stationHandler))
	router.Handler(http.MethodGet, "/api/where/lines.json", api.limited(api.linesHandler))

	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		api.serverErrorResponse(w, r, fmt.Errorf("panic: %v", v))
	}
}

// Handler returns the router wrapped in the full middleware chain.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = api.Metrics.Instrument(handler)
	handler = CompressionMiddleware(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = api.WithSecurityHeaders(handler)
	return handler
}
