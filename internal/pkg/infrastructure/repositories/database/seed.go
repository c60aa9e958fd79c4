package database

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/shopspring/decimal"
)

// SeedNodes adds nodes that do not already exist. Existing nodes keep their
// stored status and last contact time.
func (r *greenhouseRepository) SeedNodes(ctx context.Context, nodes []Node) error {
	log := logging.GetLoggerFromContext(ctx)

	for i := range nodes {
		node := nodes[i]

		_, err := r.GetNodeByID(ctx, node.NodeID)
		if errors.Is(err, ErrNodeNotFound) {
			if err = r.SaveNode(ctx, &node); err != nil {
				log.Error().Err(err).Str("node_id", node.NodeID).Msg("could not seed node")
				return err
			}
		} else if err != nil {
			log.Error().Err(err).Str("node_id", node.NodeID).Msg("unable to check if node exists")
			return err
		}
	}

	log.Info().Msgf("seeded %d nodes", len(nodes))

	return nil
}

func (r *greenhouseRepository) SeedSensors(ctx context.Context, reader io.Reader) error {
	sensors, err := ParseSensors(reader)
	if err != nil {
		return err
	}

	log := logging.GetLoggerFromContext(ctx)
	log.Info().Msgf("loaded %d sensors from file", len(sensors))

	for i := range sensors {
		s := sensors[i]

		if _, err := r.GetNodeByID(ctx, s.NodeID); err != nil {
			return fmt.Errorf("sensor %s refers to unknown node %s: %w", s.SensorID, s.NodeID, err)
		}

		if err := r.SaveSensor(ctx, &s); err != nil {
			log.Error().Err(err).Str("sensor_id", s.SensorID).Msg("could not seed sensor")
			return err
		}
	}

	return nil
}

// ParseSensors reads semicolon separated sensor rows. The first row is a header.
//
//	sensorID;nodeID;zoneID;kind;offset;multiplier;active
func ParseSensors(reader io.Reader) ([]Sensor, error) {
	r := csv.NewReader(reader)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv data from file: %s", err.Error())
	}

	sensors := []Sensor{}
	seen := map[string]bool{}

	for idx, row := range rows {
		if idx == 0 {
			continue
		}

		if len(row) < 7 {
			return nil, fmt.Errorf("too few fields on line %d in sensors config", idx+1)
		}

		sensorID := strings.TrimSpace(row[0])
		if sensorID == "" {
			return nil, fmt.Errorf("missing sensor id on line %d in sensors config", idx+1)
		}

		if seen[sensorID] {
			return nil, fmt.Errorf("duplicate sensor id %s found on line %d in sensors config", sensorID, idx+1)
		}
		seen[sensorID] = true

		kind := strings.ToLower(strings.TrimSpace(row[3]))
		if !IsSensorKind(kind) {
			return nil, fmt.Errorf("bad sensor kind specified for sensor %s on line %d in config (\"%s\" not in %v)", sensorID, idx+1, kind, SensorKinds)
		}

		s := NewSensor(sensorID, strings.TrimSpace(row[1]), SensorKind(kind))

		if zone := strings.TrimSpace(row[2]); zone != "" {
			s.ZoneID = &zone
		}

		if offset := strings.TrimSpace(row[4]); offset != "" {
			s.CalibrationOffset, err = decimal.NewFromString(offset)
			if err != nil {
				return nil, fmt.Errorf("failed to parse calibration offset for sensor %s: %s", sensorID, err.Error())
			}
		}

		if multiplier := strings.TrimSpace(row[5]); multiplier != "" {
			s.CalibrationMultiplier, err = decimal.NewFromString(multiplier)
			if err != nil {
				return nil, fmt.Errorf("failed to parse calibration multiplier for sensor %s: %s", sensorID, err.Error())
			}
		}

		s.Active, err = strconv.ParseBool(strings.TrimSpace(row[6]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse active for sensor %s: %s", sensorID, err.Error())
		}

		sensors = append(sensors, s)
	}

	return sensors, nil
}
