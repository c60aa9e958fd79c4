package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/calibration"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/events"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var ErrNoValidSensorData = errors.New("no valid sensor data found to process")
var ErrPersistenceFailed = errors.New("failed to persist sensor readings")

const notificationTimeout = 10 * time.Second

//go:generate moq -rm -out ingestion_mock.go . ReadingStore EventPublisher Pipeline

type ReadingStore interface {
	GetActiveSensor(ctx context.Context, nodeID string, kind database.SensorKind) (database.Sensor, error)
	AddReading(ctx context.Context, reading *database.Reading) error
	UpdateLastSeen(ctx context.Context, nodeID string, seen time.Time) (bool, error)
}

type EventPublisher interface {
	PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error
}

type Input struct {
	Fields     map[string]any
	Timestamp  *time.Time
	ZoneID     *string
	DeviceMeta map[string]any
}

type Result struct {
	ReadingsCreated     int
	Readings            []database.Reading
	Errors              []string
	PersistenceFailures int
}

type Pipeline interface {
	Ingest(ctx context.Context, node database.Node, in Input) (Result, error)
}

type Option func(*pipeline)

func WithPublisher(p EventPublisher) Option {
	return func(pl *pipeline) {
		pl.publisher = p
	}
}

func WithEventSender(s events.EventSender) Option {
	return func(pl *pipeline) {
		pl.sender = s
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(pl *pipeline) {
		pl.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(pl *pipeline) {
		pl.now = now
	}
}

type pipeline struct {
	store     ReadingStore
	publisher EventPublisher
	sender    events.EventSender
	metrics   *metrics.Metrics
	now       func() time.Time
}

func New(store ReadingStore, opts ...Option) Pipeline {
	p := &pipeline{
		store: store,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Ingest calibrates and stores one reading per recognised, non-null field.
// Readings are stored one at a time and a failed write does not stop the
// remaining fields from being processed.
func (p *pipeline) Ingest(ctx context.Context, node database.Node, in Input) (Result, error) {
	log := logging.GetLoggerFromContext(ctx).With().Str("node_id", node.NodeID).Logger()

	submissionTime := p.now().UTC()
	readingTime := submissionTime
	if in.Timestamp != nil {
		readingTime = in.Timestamp.UTC()
	}

	result := Result{}

	for _, kind := range database.SensorKinds {
		raw, ok := in.Fields[string(kind)]
		if !ok || raw == nil {
			continue
		}

		value, err := toDecimal(raw)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", kind, err.Error()))
			log.Warn().Str("field", string(kind)).Msg("skipping non numeric sensor value")
			continue
		}

		sensor, err := p.store.GetActiveSensor(ctx, node.NodeID, kind)
		if err != nil {
			if errors.Is(err, database.ErrSensorNotFound) {
				log.Debug().Str("field", string(kind)).Msg("no active sensor for field, skipping")
				continue
			}

			result.PersistenceFailures++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: sensor lookup failed", kind))
			log.Error().Err(err).Str("field", string(kind)).Msg("sensor lookup failed")
			continue
		}

		calibrated, unit := calibration.Calibrate(sensor, value)

		zone := sensor.ZoneID
		if in.ZoneID != nil {
			zone = in.ZoneID
		}

		reading := database.Reading{
			Time:       readingTime,
			NodeID:     node.NodeID,
			ZoneID:     zone,
			SensorID:   sensor.SensorID,
			SensorKind: kind,
			Value:      calibrated,
			Unit:       unit,
			Quality:    database.QualityGood,
			Metadata: map[string]any{
				"raw_value":              value.String(),
				"calibration_offset":     sensor.CalibrationOffset.String(),
				"calibration_multiplier": sensor.CalibrationMultiplier.String(),
				"calibrated":             true,
				"node_firmware":          node.FirmwareVersion,
				"submission_time":        submissionTime.Format(time.RFC3339Nano),
			},
		}

		if len(in.DeviceMeta) > 0 {
			reading.Metadata["device_meta"] = in.DeviceMeta
		}

		if err := p.store.AddReading(ctx, &reading); err != nil {
			result.PersistenceFailures++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: failed to store reading", kind))
			log.Error().Err(err).Str("sensor_id", sensor.SensorID).Msg("failed to store reading")
			continue
		}

		result.Readings = append(result.Readings, reading)
		result.ReadingsCreated++
	}

	p.metrics.AddReadings(result.ReadingsCreated)

	if result.ReadingsCreated > 0 {
		p.afterReadingsCreated(ctx, node, readingTime, in.ZoneID, result.Readings)
	}

	if result.PersistenceFailures > 0 {
		return result, fmt.Errorf("%w: %d of %d readings stored", ErrPersistenceFailed, result.ReadingsCreated, result.ReadingsCreated+result.PersistenceFailures)
	}

	if result.ReadingsCreated == 0 {
		return result, ErrNoValidSensorData
	}

	log.Info().Int("readings", result.ReadingsCreated).Msg("sensor readings stored")

	return result, nil
}

func (p *pipeline) afterReadingsCreated(ctx context.Context, node database.Node, seen time.Time, zoneID *string, readings []database.Reading) {
	log := logging.GetLoggerFromContext(ctx).With().Str("node_id", node.NodeID).Logger()

	reactivated, err := p.store.UpdateLastSeen(ctx, node.NodeID, seen)
	if err != nil {
		log.Warn().Err(err).Msg("failed to update last seen")
	}

	msg := types.ReadingsCreated{
		NodeID:    node.NodeID,
		ZoneID:    lo.FromPtr(zoneID),
		Readings:  lo.Map(readings, func(r database.Reading, _ int) types.Reading { return ToReading(r) }),
		Timestamp: seen,
	}

	var statusMsg *types.NodeStatusChanged
	if reactivated {
		p.metrics.IncNodeStatus(string(database.NodeStatusActive))
		statusMsg = &types.NodeStatusChanged{
			NodeID:    node.NodeID,
			Status:    string(database.NodeStatusActive),
			Previous:  string(database.NodeStatusInactive),
			Timestamp: seen,
		}
		log.Info().Msg("inactive node reported readings and was reactivated")
	}

	if p.publisher != nil {
		if err := p.publisher.PublishOnTopic(ctx, &msg); err != nil {
			log.Warn().Err(err).Msg("failed to publish readings created")
		}
		if statusMsg != nil {
			if err := p.publisher.PublishOnTopic(ctx, statusMsg); err != nil {
				log.Warn().Err(err).Msg("failed to publish node status change")
			}
		}
	}

	if p.sender != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
			defer cancel()

			if err := p.sender.SendReadings(ctx, msg); err != nil {
				log.Warn().Err(err).Msg("failed to send readings notification")
			}
			if statusMsg != nil {
				if err := p.sender.SendNodeStatus(ctx, *statusMsg); err != nil {
					log.Warn().Err(err).Msg("failed to send node status notification")
				}
			}
		}()
	}
}

// ToReading converts a stored reading to its wire representation.
func ToReading(r database.Reading) types.Reading {
	return types.Reading{
		SensorID:   r.SensorID,
		SensorKind: string(r.SensorKind),
		ZoneID:     r.ZoneID,
		Value:      r.Value.String(),
		Unit:       r.Unit,
		Quality:    string(r.Quality),
		Time:       r.Time,
		Metadata:   r.Metadata,
	}
}

var errNotNumeric = errors.New("value is not numeric")

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Decimal{}, errNotNumeric
		}
		return d, nil
	default:
		return decimal.Decimal{}, errNotNumeric
	}
}
