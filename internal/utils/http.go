package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractParam retrieves a path parameter from the request context and removes a ".json" suffix.
func ExtractParam(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return strings.TrimSuffix(params.ByName(paramName), ".json")
}
