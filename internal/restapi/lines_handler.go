package restapi

import (
	"net/http"

	"subwaymap.org/internal/models"
	"subwaymap.org/internal/network"
)

func (api *RestAPI) linesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stations, err := api.Store.ListStations(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	lines, err := api.Store.ListLines(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	names := make(map[network.StationID]string, len(stations))
	for _, st := range stations {
		names[st.ID] = st.Name
	}

	list := make([]models.Line, len(lines))
	for i, line := range lines {
		list[i] = models.NewLine(line, names)
	}
	api.sendResponse(w, r, models.NewListResponse(list))
}
