package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

//go:generate moq -rm -out repository_mock.go . GreenhouseRepository

type GreenhouseRepository interface {
	GetNodeByAPIKey(ctx context.Context, apiKey string) (Node, error)
	GetNodeByID(ctx context.Context, nodeID string) (Node, error)
	GetNodes(ctx context.Context) ([]Node, error)
	GetStaleNodes(ctx context.Context, seenBefore time.Time) ([]Node, error)
	SaveNode(ctx context.Context, node *Node) error
	UpdateLastSeen(ctx context.Context, nodeID string, seen time.Time) (bool, error)
	UpdateNodeStatus(ctx context.Context, nodeID string, status NodeStatus) error
	MergeNodeConfiguration(ctx context.Context, nodeID string, cfg map[string]any) error

	GetActiveSensor(ctx context.Context, nodeID string, kind SensorKind) (Sensor, error)
	SaveSensor(ctx context.Context, sensor *Sensor) error

	AddReading(ctx context.Context, reading *Reading) error
	GetLatestReadings(ctx context.Context, nodeID string) ([]Reading, error)

	SeedNodes(ctx context.Context, nodes []Node) error
	SeedSensors(ctx context.Context, reader io.Reader) error
}

var ErrNodeNotFound = fmt.Errorf("node not found")
var ErrSensorNotFound = fmt.Errorf("sensor not found")
var ErrRepositoryError = fmt.Errorf("could not fetch data from repository")

const latestReadingsWindow int = 500

type greenhouseRepository struct {
	db *gorm.DB
}

func New(connect ConnectorFunc) (GreenhouseRepository, error) {
	impl, _, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&Node{}, &Sensor{}, &Reading{})
	if err != nil {
		return nil, err
	}

	return &greenhouseRepository{
		db: impl,
	}, nil
}

func (r *greenhouseRepository) GetNodeByAPIKey(ctx context.Context, apiKey string) (Node, error) {
	node := Node{}
	result := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&node)

	if result.Error != nil {
		return Node{}, mapError(ctx, result.Error, ErrNodeNotFound)
	}

	return node, nil
}

func (r *greenhouseRepository) GetNodeByID(ctx context.Context, nodeID string) (Node, error) {
	node := Node{}
	result := r.db.WithContext(ctx).Where("node_id = ?", nodeID).First(&node)

	if result.Error != nil {
		return Node{}, mapError(ctx, result.Error, ErrNodeNotFound)
	}

	return node, nil
}

func (r *greenhouseRepository) GetNodes(ctx context.Context) ([]Node, error) {
	var nodes []Node
	result := r.db.WithContext(ctx).Order("node_id").Find(&nodes)
	return nodes, result.Error
}

func (r *greenhouseRepository) GetStaleNodes(ctx context.Context, seenBefore time.Time) ([]Node, error) {
	var nodes []Node

	result := r.db.WithContext(ctx).
		Where("status = ? AND last_seen IS NOT NULL AND last_seen < ?", NodeStatusActive, seenBefore.UTC()).
		Order("node_id").
		Find(&nodes)

	return nodes, result.Error
}

func (r *greenhouseRepository) SaveNode(ctx context.Context, node *Node) error {
	if node.Status == "" {
		node.Status = NodeStatusActive
	}
	return r.db.WithContext(ctx).Save(node).Error
}

// UpdateLastSeen stores seen as the node's last contact time and reactivates an
// inactive node. It reports whether the node was reactivated.
func (r *greenhouseRepository) UpdateLastSeen(ctx context.Context, nodeID string, seen time.Time) (bool, error) {
	reactivated := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Node{}).Where("node_id = ?", nodeID).Update("last_seen", seen.UTC())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNodeNotFound
		}

		result = tx.Model(&Node{}).
			Where("node_id = ? AND status = ?", nodeID, NodeStatusInactive).
			Update("status", NodeStatusActive)
		if result.Error != nil {
			return result.Error
		}

		reactivated = result.RowsAffected > 0
		return nil
	})

	if err != nil {
		return false, mapError(ctx, err, ErrNodeNotFound)
	}

	return reactivated, nil
}

func (r *greenhouseRepository) UpdateNodeStatus(ctx context.Context, nodeID string, status NodeStatus) error {
	result := r.db.WithContext(ctx).Model(&Node{}).Where("node_id = ?", nodeID).Update("status", status)
	if result.Error != nil {
		return mapError(ctx, result.Error, ErrNodeNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrNodeNotFound
	}
	return nil
}

func (r *greenhouseRepository) MergeNodeConfiguration(ctx context.Context, nodeID string, cfg map[string]any) error {
	if len(cfg) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		node := Node{}
		if err := tx.Where("node_id = ?", nodeID).First(&node).Error; err != nil {
			return mapError(ctx, err, ErrNodeNotFound)
		}

		node.Configuration = lo.Assign(node.Configuration, cfg)

		return tx.Model(&node).Select("configuration").Updates(&node).Error
	})
}

// GetActiveSensor returns the active sensor of the given kind on a node. When
// several match, the one with the lowest sensor id wins.
func (r *greenhouseRepository) GetActiveSensor(ctx context.Context, nodeID string, kind SensorKind) (Sensor, error) {
	sensor := Sensor{}

	result := r.db.WithContext(ctx).
		Where("node_id = ? AND kind = ? AND active = ?", nodeID, kind, true).
		Order("sensor_id").
		First(&sensor)

	if result.Error != nil {
		return Sensor{}, mapError(ctx, result.Error, ErrSensorNotFound)
	}

	return sensor, nil
}

func (r *greenhouseRepository) SaveSensor(ctx context.Context, sensor *Sensor) error {
	return r.db.WithContext(ctx).Save(sensor).Error
}

func (r *greenhouseRepository) AddReading(ctx context.Context, reading *Reading) error {
	reading.Time = reading.Time.UTC()
	return r.db.WithContext(ctx).Create(reading).Error
}

// GetLatestReadings returns the most recent reading of every sensor that has
// reported for the node, newest first.
func (r *greenhouseRepository) GetLatestReadings(ctx context.Context, nodeID string) ([]Reading, error) {
	var readings []Reading

	result := r.db.WithContext(ctx).
		Where("node_id = ?", nodeID).
		Order("time desc").
		Order("id desc").
		Limit(latestReadingsWindow).
		Find(&readings)

	if result.Error != nil {
		return nil, mapError(ctx, result.Error, ErrNodeNotFound)
	}

	return lo.UniqBy(readings, func(r Reading) string {
		return r.SensorID
	}), nil
}

func mapError(ctx context.Context, err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, notFound) {
		return notFound
	}

	logger := logging.GetLoggerFromContext(ctx)
	logger.Error().Err(err).Msg("gorm error")

	return fmt.Errorf("%w: %s", ErrRepositoryError, err.Error())
}
