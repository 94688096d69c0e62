package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"subwaymap.org/internal/app"
	"subwaymap.org/internal/appconf"
	"subwaymap.org/internal/logging"
	"subwaymap.org/subwaydb"
)

// createTestApi creates a RestAPI over an in-memory store loaded with the fixture network.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	client, err := subwaydb.NewClient(subwaydb.NewConfig(":memory:", appconf.Test, nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.ImportNetworkFile(context.Background(), filepath.Join("..", "..", "testdata", "network.yaml")))

	return createTestApiWithStore(t, client)
}

func createTestApiWithStore(t *testing.T, store app.Store) *RestAPI {
	t.Helper()

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.RateLimit = 0

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)
	api := NewRestAPI(app.New(cfg, logger, store))
	t.Cleanup(api.Close)
	return api
}

// serveApiAndRetrieveEndpoint serves the full handler chain, performs the request and decodes the
// JSON body into out when out is not nil.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, method, endpoint string, body io.Reader, header http.Header, out interface{}) *http.Response {
	t.Helper()

	server := httptest.NewServer(api.Handler())
	defer server.Close()

	req, err := http.NewRequest(method, server.URL+endpoint, body)
	require.NoError(t, err)
	for key, values := range header {
		req.Header[key] = values
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func getEndpoint(t *testing.T, api *RestAPI, endpoint string, out interface{}) *http.Response {
	t.Helper()
	return serveApiAndRetrieveEndpoint(t, api, http.MethodGet, endpoint, nil, nil, out)
}

func postJSON(t *testing.T, api *RestAPI, endpoint, body string, out interface{}) *http.Response {
	t.Helper()
	header := http.Header{"Content-Type": {"application/json"}}
	return serveApiAndRetrieveEndpoint(t, api, http.MethodPost, endpoint, bytes.NewBufferString(body), header, out)
}
