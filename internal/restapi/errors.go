package restapi

import (
	"log/slog"
	"net/http"

	"subwaymap.org/internal/logging"
	"subwaymap.org/internal/models"
)

const pathQueryFailedText = "path query failed"

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("component", "rest_api"),
		slog.String("path", r.URL.Path))

	api.writeJSON(w, r, http.StatusInternalServerError,
		models.NewResponse(http.StatusInternalServerError, nil, "internal server error"))
}

// pathQueryFailedResponse collapses every path query failure into one 500 response.
func (api *RestAPI) pathQueryFailedResponse(w http.ResponseWriter, r *http.Request) {
	api.writeJSON(w, r, http.StatusInternalServerError,
		models.NewResponse(http.StatusInternalServerError, nil, pathQueryFailedText))
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}
	api.writeJSON(w, r, http.StatusBadRequest, response)
}
