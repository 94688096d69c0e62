package restapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"subwaymap.org/internal/logging"
	"subwaymap.org/internal/models"
	"subwaymap.org/internal/network"
	"subwaymap.org/internal/utils"
)

const maxRequestBodyBytes = 64 << 10

type pathRequest struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Criteria string `json:"criteria"`
}

// postPathHandler answers POST /paths with a JSON body.
func (api *RestAPI) postPathHandler(w http.ResponseWriter, r *http.Request) {
	var req pathRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := dec.Decode(&req); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		api.validationErrorResponse(w, r, map[string][]string{"body": {msg}})
		return
	}

	api.findPath(w, r, req)
}

// pathHandler answers GET /api/where/path.json?source=&target=&criteria=.
func (api *RestAPI) pathHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	api.findPath(w, r, pathRequest{
		Source:   query.Get("source"),
		Target:   query.Get("target"),
		Criteria: query.Get("criteria"),
	})
}

func (api *RestAPI) findPath(w http.ResponseWriter, r *http.Request, req pathRequest) {
	if fieldErrors := utils.ValidatePathParams(req.Source, req.Target, req.Criteria); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	query := network.Query{
		Source:   utils.SanitizeInput(req.Source),
		Target:   utils.SanitizeInput(req.Target),
		Criteria: req.Criteria,
	}
	criteria := criteriaLabel(query.Criteria)
	start := time.Now()

	result, err := api.PathService.FindPath(r.Context(), query)
	if err != nil {
		kind := network.KindUnavailable
		var qerr *network.QueryError
		if errors.As(err, &qerr) {
			kind = qerr.Kind
		}
		api.Metrics.ObservePathQueryError(criteria, string(kind), time.Since(start))

		logger := logging.FromContext(r.Context())
		if kind == network.KindUnavailable {
			logging.LogError(logger, "path query failed", err,
				slog.String("component", "rest_api"),
				slog.String("kind", string(kind)))
		} else {
			logger.Info("path query rejected",
				slog.String("component", "rest_api"),
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
		}

		api.pathQueryFailedResponse(w, r)
		return
	}

	api.Metrics.ObservePathQuery(criteria, len(result.Stations), time.Since(start))
	api.sendResponse(w, r, models.NewEntryResponse(models.NewPath(result)))
}

// criteriaLabel bounds the metric label set to the known criteria.
func criteriaLabel(criteria string) string {
	c, err := network.ParseCriterion(criteria)
	if err != nil {
		return "invalid"
	}
	return c.String()
}
