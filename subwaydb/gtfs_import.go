package subwaydb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"

	"subwaymap.org/internal/logging"
	"subwaymap.org/internal/network"
	"subwaymap.org/internal/utils"
)

const maxGTFSDownloadBytes = 512 << 20

var gtfsHTTPClient = &http.Client{Timeout: 2 * time.Minute}

// ImportGTFSFile reads a static GTFS zip from path and stores one line per route.
func (c *Client) ImportGTFSFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading GTFS file: %w", err)
	}
	return c.ImportGTFS(ctx, data)
}

// ImportGTFSSource imports a feed from an http(s) URL or a local path.
func (c *Client) ImportGTFSSource(ctx context.Context, source string) error {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return c.DownloadAndImportGTFS(ctx, source)
	}
	return c.ImportGTFSFile(ctx, source)
}

// DownloadAndImportGTFS fetches a static GTFS zip and imports it.
func (c *Client) DownloadAndImportGTFS(ctx context.Context, url string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error building GTFS request: %w", err)
	}

	resp, err := gtfsHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.HandleDeferredError(&err, resp.Body.Close, c.logger, "gtfs_download_body")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error downloading GTFS data: %s returned %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxGTFSDownloadBytes))
	if err != nil {
		return fmt.Errorf("error reading GTFS data: %w", err)
	}
	return c.ImportGTFS(ctx, data)
}

// ImportGTFS converts a static GTFS feed into lines. Each route becomes a line following
// its trip with the most stops. Stations are keyed by stop name so that platforms sharing
// a name become one interchange. Segment duration is the scheduled running time in whole
// minutes and distance the great-circle distance in metres, both at least 1.
func (c *Client) ImportGTFS(ctx context.Context, data []byte) error {
	start := time.Now()

	static, err := gtfs.ParseStatic(data, gtfs.ParseStaticOptions{})
	if err != nil {
		return fmt.Errorf("error parsing GTFS data: %w", err)
	}

	nf := NetworkFile{}
	names := make(map[string]bool)
	for _, trip := range longestTripPerRoute(static.Trips) {
		lf, ok := lineFromTrip(trip)
		if !ok {
			continue
		}
		if names[lf.Name] {
			lf.Name = fmt.Sprintf("%s (%s)", lf.Name, trip.Route.Id)
		}
		names[lf.Name] = true
		nf.Lines = append(nf.Lines, lf)
	}

	if err := c.ImportNetwork(ctx, nf); err != nil {
		return fmt.Errorf("error storing GTFS network: %w", err)
	}

	logging.LogOperation(c.logger, "gtfs_imported",
		slog.Int("routes", len(static.Routes)),
		slog.Int("lines", len(nf.Lines)),
		slog.Int("warnings", len(static.Warnings)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func longestTripPerRoute(trips []gtfs.ScheduledTrip) []gtfs.ScheduledTrip {
	best := make(map[string]gtfs.ScheduledTrip)
	var order []string
	for _, trip := range trips {
		if trip.Route == nil {
			continue
		}
		current, seen := best[trip.Route.Id]
		if !seen {
			order = append(order, trip.Route.Id)
		}
		if !seen || len(trip.StopTimes) > len(current.StopTimes) {
			best[trip.Route.Id] = trip
		}
	}

	result := make([]gtfs.ScheduledTrip, 0, len(order))
	for _, routeID := range order {
		result = append(result, best[routeID])
	}
	return result
}

func lineFromTrip(trip gtfs.ScheduledTrip) (LineFile, bool) {
	stopTimes := append([]gtfs.ScheduledStopTime(nil), trip.StopTimes...)
	sort.SliceStable(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	lf := LineFile{Name: routeName(trip.Route)}
	seen := make(map[string]bool)
	var prev *gtfs.ScheduledStopTime
	for i := range stopTimes {
		st := &stopTimes[i]
		if st.Stop == nil || strings.TrimSpace(st.Stop.Name) == "" || seen[st.Stop.Name] {
			continue
		}
		seen[st.Stop.Name] = true

		stop := StopFile{Station: st.Stop.Name}
		if prev != nil {
			stop.Distance = segmentDistance(prev.Stop, st.Stop)
			stop.Duration = segmentMinutes(prev.DepartureTime, st.ArrivalTime)
		}
		lf.Stops = append(lf.Stops, stop)
		prev = st
	}
	return lf, len(lf.Stops) >= 2
}

func routeName(route *gtfs.Route) string {
	for _, name := range []string{route.ShortName, route.LongName, route.Id} {
		if strings.TrimSpace(name) != "" {
			return name
		}
	}
	return route.Id
}

func segmentDistance(from, to *gtfs.Stop) int {
	if from.Latitude == nil || from.Longitude == nil || to.Latitude == nil || to.Longitude == nil {
		return 1
	}
	metres := utils.Haversine(*from.Latitude, *from.Longitude, *to.Latitude, *to.Longitude)
	return max(1, int(math.Round(metres)))
}

func segmentMinutes(departure, arrival time.Duration) int {
	return max(1, int(math.Round((arrival - departure).Minutes())))
}

var _ network.Repository = (*Client)(nil)
