package restapi

import (
	"errors"
	"net/http"

	"subwaymap.org/internal/models"
	"subwaymap.org/internal/network"
	"subwaymap.org/internal/utils"
)

// stationsHandler lists every known station name, sorted.
func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	names, err := api.PathService.KnownStationNames(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(names))
}

func (api *RestAPI) stationHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractParam(r, "name")

	if err := utils.ValidateStationName(name); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"name": {err.Error()},
		})
		return
	}

	station, err := api.Store.FindStationByName(r.Context(), utils.SanitizeInput(name))
	if errors.Is(err, network.ErrStationNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewStation(station)))
}
