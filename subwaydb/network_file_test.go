package subwaydb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subwaymap.org/internal/network"
)

func TestParseNetworkFile(t *testing.T) {
	t.Run("fixture", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join("..", "testdata", "network.yaml"))
		require.NoError(t, err)

		nf, err := ParseNetworkFile(data)
		require.NoError(t, err)
		assert.Len(t, nf.Stations, 7)
		require.Len(t, nf.Lines, 4)
		assert.Equal(t, "Bundang", nf.Lines[1].Name)
		assert.Equal(t, StopFile{Station: "SeokchonGobun", Distance: 1, Duration: 10}, nf.Lines[1].Stops[2])
	})

	t.Run("invalid documents", func(t *testing.T) {
		for name, doc := range map[string]string{
			"line without name":  "lines:\n  - stops:\n      - station: A\n",
			"line without stops": "lines:\n  - name: L\n",
			"stop without name":  "lines:\n  - name: L\n    stops:\n      - distance: 3\n",
			"negative weight":    "lines:\n  - name: L\n    stops:\n      - station: A\n      - station: B\n        distance: -1\n        duration: 1\n",
			"blank station":      "stations: ['']\n",
			"not yaml":           "lines: [",
		} {
			_, err := ParseNetworkFile([]byte(doc))
			assert.Error(t, err, name)
		}
	})
}

func TestImportNetworkFile(t *testing.T) {
	client := newFixtureClient(t)
	ctx := context.Background()

	counts, err := client.TableCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, counts["stations"])
	assert.Equal(t, 4, counts["lines"])
	assert.Equal(t, 10, counts["line_stations"])

	lines, err := client.ListLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 4)

	stations, err := client.ListStations(ctx)
	require.NoError(t, err)
	index := network.NewStationIndex(stations)
	names := func(line network.Line) []string {
		var out []string
		for _, id := range line.StationIDs() {
			st, ok := index.Station(id)
			require.True(t, ok)
			out = append(out, st.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Jamsil", "Jamsilsaenae", "Playground"}, names(lines[0]))
	assert.Equal(t, []string{"Playground", "Samjeon", "SeokchonGobun", "Seokchon"}, names(lines[1]))
	assert.Equal(t, []string{"Jamsil", "Seokchon"}, names(lines[2]))
	assert.Equal(t, []string{"Songnae"}, names(lines[3]))

	t.Run("importing twice changes nothing", func(t *testing.T) {
		require.NoError(t, client.ImportNetworkFile(ctx, filepath.Join("..", "testdata", "network.yaml")))

		again, err := client.TableCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, counts, again)
	})

	t.Run("failed import is rolled back", func(t *testing.T) {
		err := client.ImportNetwork(ctx, NetworkFile{Lines: []LineFile{{
			Name: "Broken",
			Stops: []StopFile{
				{Station: "Hanam"},
				{Station: "Misa", Distance: 0, Duration: 3},
			},
		}}})
		require.ErrorIs(t, err, ErrInvalidWeight)

		_, err = client.FindStationByName(ctx, "Hanam")
		assert.ErrorIs(t, err, network.ErrStationNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, client.ImportNetworkFile(ctx, filepath.Join(t.TempDir(), "none.yaml")))
	})
}

func TestStoreAnswersPathQueries(t *testing.T) {
	svc := network.NewPathService(newFixtureClient(t), nil)
	ctx := context.Background()

	res, err := svc.FindPath(ctx, network.Query{Source: "Jamsil", Target: "Samjeon", Criteria: "distance"})
	require.NoError(t, err)
	assert.Len(t, res.Stations, 4)
	assert.Equal(t, 3, res.Distance)
	assert.Equal(t, 30, res.Duration)

	res, err = svc.FindPath(ctx, network.Query{Source: "Jamsil", Target: "SeokchonGobun", Criteria: "duration"})
	require.NoError(t, err)
	assert.Len(t, res.Stations, 5)
	assert.Equal(t, 31, res.Distance)
	assert.Equal(t, 13, res.Duration)

	_, err = svc.FindPath(ctx, network.Query{Source: "Jamsil", Target: "Songnae", Criteria: "distance"})
	assert.ErrorIs(t, err, network.ErrPathNotFound)
}
