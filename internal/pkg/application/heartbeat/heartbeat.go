package heartbeat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/events"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/ingestion"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// TopicName is the routing key gateways use to relay node heartbeats.
const TopicName string = "node.heartbeat"

var ErrUnknownNode = errors.New("unknown node")

//go:generate moq -rm -out heartbeat_mock.go . NodeStore Service

type NodeStore interface {
	GetNodeByID(ctx context.Context, nodeID string) (database.Node, error)
	SaveNode(ctx context.Context, node *database.Node) error
	UpdateLastSeen(ctx context.Context, nodeID string, seen time.Time) (bool, error)
	MergeNodeConfiguration(ctx context.Context, nodeID string, cfg map[string]any) error
}

type Service interface {
	Beat(ctx context.Context, hb types.Heartbeat) error
}

type service struct {
	store     NodeStore
	publisher ingestion.EventPublisher
	sender    events.EventSender
	metrics   *metrics.Metrics
	now       func() time.Time
}

func New(store NodeStore, publisher ingestion.EventPublisher, sender events.EventSender, m *metrics.Metrics) Service {
	return &service{
		store:     store,
		publisher: publisher,
		sender:    sender,
		metrics:   m,
		now:       time.Now,
	}
}

// Beat records that a node is alive. Firmware version and configuration are
// updated from the heartbeat when present.
func (s *service) Beat(ctx context.Context, hb types.Heartbeat) error {
	log := logging.GetLoggerFromContext(ctx).With().Str("node_id", hb.NodeID).Logger()

	node, err := s.store.GetNodeByID(ctx, hb.NodeID)
	if err != nil {
		if errors.Is(err, database.ErrNodeNotFound) {
			return ErrUnknownNode
		}
		return err
	}

	if hb.FirmwareVersion != "" && hb.FirmwareVersion != node.FirmwareVersion {
		node.FirmwareVersion = hb.FirmwareVersion
		if err := s.store.SaveNode(ctx, &node); err != nil {
			return fmt.Errorf("failed to update firmware version: %w", err)
		}
		log.Info().Str("firmware", hb.FirmwareVersion).Msg("node firmware version changed")
	}

	seen := s.now().UTC()

	reactivated, err := s.store.UpdateLastSeen(ctx, node.NodeID, seen)
	if err != nil {
		return err
	}

	if err := s.store.MergeNodeConfiguration(ctx, node.NodeID, hb.Configuration); err != nil {
		return fmt.Errorf("failed to merge node configuration: %w", err)
	}

	if reactivated {
		s.metrics.IncNodeStatus(string(database.NodeStatusActive))
		log.Info().Msg("inactive node sent heartbeat and was reactivated")
		s.statusChanged(ctx, log, types.NodeStatusChanged{
			NodeID:    node.NodeID,
			Status:    string(database.NodeStatusActive),
			Previous:  string(database.NodeStatusInactive),
			Timestamp: seen,
		})
	}

	log.Debug().Msg("heartbeat handled")

	return nil
}

func (s *service) statusChanged(ctx context.Context, log zerolog.Logger, msg types.NodeStatusChanged) {
	if s.publisher != nil {
		if err := s.publisher.PublishOnTopic(ctx, &msg); err != nil {
			log.Warn().Err(err).Msg("failed to publish node status change")
		}
	}

	if s.sender != nil {
		if err := s.sender.SendNodeStatus(ctx, msg); err != nil {
			log.Warn().Err(err).Msg("failed to send node status notification")
		}
	}
}

// NewTopicMessageHandler handles heartbeats relayed over the message bus.
// Messages on the bus are trusted and carry no api key.
func NewTopicMessageHandler(svc Service) messaging.TopicMessageHandler {
	return func(ctx context.Context, msg amqp.Delivery, logger zerolog.Logger) {
		hb := types.Heartbeat{}

		err := json.Unmarshal(msg.Body, &hb)
		if err != nil {
			logger.Error().Err(err).Msgf("failed to unmarshal message from %s", msg.RoutingKey)
			return
		}

		if hb.NodeID == "" {
			logger.Warn().Msg("heartbeat without node id")
			return
		}

		logger = logger.With().Str("node_id", hb.NodeID).Logger()
		ctx = logging.NewContextWithLogger(ctx, logger)

		err = svc.Beat(ctx, hb)
		if err != nil {
			logger.Error().Err(err).Msg("could not handle heartbeat")
		}
	}
}
