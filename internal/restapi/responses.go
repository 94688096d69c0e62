package restapi

import (
	"encoding/json"
	"net/http"

	"subwaymap.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	api.writeJSON(w, r, response.Code, response)
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.writeJSON(w, r, http.StatusNotFound, models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}

func (api *RestAPI) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	setJSONResponseType(w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		api.Logger.Error("failed to encode response",
			"error", err,
			"path", r.URL.Path)
	}
}

func setJSONResponseType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
}
