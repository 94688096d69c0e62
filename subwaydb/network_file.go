package subwaydb

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"subwaymap.org/internal/logging"
	"subwaymap.org/internal/network"
)

// NetworkFile is the YAML description of a subway network.
//
//	stations: [Jamsil, Seokchon]
//	lines:
//	  - name: Line 3
//	    stops:
//	      - station: Jamsil
//	      - station: Seokchon
//	        distance: 1
//	        duration: 10
type NetworkFile struct {
	Stations []string   `yaml:"stations" validate:"dive,required"`
	Lines    []LineFile `yaml:"lines" validate:"dive"`
}

// LineFile lists the stops of one line in order. The first stop only marks the line start.
type LineFile struct {
	Name  string     `yaml:"name" validate:"required"`
	Stops []StopFile `yaml:"stops" validate:"min=1,dive"`
}

// StopFile is a stop on a line with the weights of the segment reaching it.
type StopFile struct {
	Station  string `yaml:"station" validate:"required"`
	Distance int    `yaml:"distance" validate:"gte=0"`
	Duration int    `yaml:"duration" validate:"gte=0"`
}

// ParseNetworkFile decodes and validates a network description.
func ParseNetworkFile(data []byte) (NetworkFile, error) {
	var nf NetworkFile
	if err := yaml.Unmarshal(data, &nf); err != nil {
		return NetworkFile{}, fmt.Errorf("error parsing network file: %w", err)
	}
	if err := validator.New().Struct(nf); err != nil {
		return NetworkFile{}, fmt.Errorf("invalid network file: %w", err)
	}
	return nf, nil
}

// ImportNetworkFile reads a YAML network description from path and stores it.
func (c *Client) ImportNetworkFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading network file: %w", err)
	}
	nf, err := ParseNetworkFile(data)
	if err != nil {
		return err
	}
	return c.ImportNetwork(ctx, nf)
}

// ImportNetwork stores every station and line of nf in one transaction.
// Lines that already have stations are left untouched, so importing the same file twice is harmless.
func (c *Client) ImportNetwork(ctx context.Context, nf NetworkFile) error {
	start := time.Now()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "import_network")

	ids := make(map[string]network.StationID)
	station := func(name string) (network.StationID, error) {
		if id, ok := ids[name]; ok {
			return id, nil
		}
		st, err := createStation(ctx, tx, name)
		if err != nil {
			return network.NoStation, err
		}
		ids[name] = st.ID
		return st.ID, nil
	}

	for _, name := range nf.Stations {
		if _, err := station(name); err != nil {
			return err
		}
	}

	for _, lf := range nf.Lines {
		lineID, err := createLine(ctx, tx, lf.Name)
		if err != nil {
			return err
		}

		_, lastSeq, _, err := lineState(ctx, tx, lineID)
		if err != nil {
			return err
		}
		if lastSeq > 0 {
			c.logger.Info("line already stored, skipping", slog.String("line", lf.Name))
			continue
		}

		prev := network.NoStation
		for _, stop := range lf.Stops {
			id, err := station(stop.Station)
			if err != nil {
				return err
			}
			if err := addSegment(ctx, tx, lineID, prev, id, stop.Distance, stop.Duration); err != nil {
				return fmt.Errorf("line %q stop %q: %w", lf.Name, stop.Station, err)
			}
			prev = id
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	logging.LogOperation(c.logger, "network_imported",
		slog.Int("stations", len(ids)),
		slog.Int("lines", len(nf.Lines)),
		slog.Duration("duration", time.Since(start)))
	return nil
}
