package watchdog

import (
	"context"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/events"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/ingestion"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/samber/lo"
)

const DefaultOfflineThreshold = 10 * time.Minute

type NodeStore interface {
	GetStaleNodes(ctx context.Context, seenBefore time.Time) ([]database.Node, error)
	UpdateNodeStatus(ctx context.Context, nodeID string, status database.NodeStatus) error
}

type Watchdog interface {
	Start(ctx context.Context)
	Stop()
	Check(ctx context.Context) int
}

type Config struct {
	OfflineThreshold time.Duration
	Interval         time.Duration
}

type watchdogImpl struct {
	store     NodeStore
	publisher ingestion.EventPublisher
	sender    events.EventSender
	metrics   *metrics.Metrics
	cfg       Config
	now       func() time.Time
	done      chan bool
}

func New(store NodeStore, publisher ingestion.EventPublisher, sender events.EventSender, m *metrics.Metrics, cfg Config) Watchdog {
	if cfg.OfflineThreshold <= 0 {
		cfg.OfflineThreshold = DefaultOfflineThreshold
	}
	if cfg.Interval <= 0 {
		cfg.Interval = cfg.OfflineThreshold / 2
	}

	return &watchdogImpl{
		store:     store,
		publisher: publisher,
		sender:    sender,
		metrics:   m,
		cfg:       cfg,
		now:       time.Now,
		done:      make(chan bool),
	}
}

func (w *watchdogImpl) Start(ctx context.Context) {
	go w.backgroundWorker(ctx)
}

func (w *watchdogImpl) Stop() {
	select {
	case w.done <- true:
	case <-time.After(time.Second):
	}
}

func (w *watchdogImpl) backgroundWorker(ctx context.Context) {
	log := logging.GetLoggerFromContext(ctx)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	log.Info().Msgf("watching for nodes silent longer than %s", w.cfg.OfflineThreshold)

	for {
		select {
		case <-w.done:
			log.Debug().Msg("watchdog stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check marks every active node whose last contact is older than the offline
// threshold as inactive, and returns how many nodes were changed.
func (w *watchdogImpl) Check(ctx context.Context) int {
	log := logging.GetLoggerFromContext(ctx)

	now := w.now().UTC()

	nodes, err := w.store.GetStaleNodes(ctx, now.Add(-w.cfg.OfflineThreshold))
	if err != nil {
		log.Error().Err(err).Msg("could not list stale nodes")
		return 0
	}

	changed := 0

	for _, n := range nodes {
		nodeLog := log.With().Str("node_id", n.NodeID).Logger()

		if err := w.store.UpdateNodeStatus(ctx, n.NodeID, database.NodeStatusInactive); err != nil {
			nodeLog.Error().Err(err).Msg("could not mark node inactive")
			continue
		}

		changed++
		w.metrics.IncNodeStatus(string(database.NodeStatusInactive))
		nodeLog.Warn().Time("last_seen", lo.FromPtr(n.LastSeen)).Msg("node went silent and was marked inactive")

		msg := types.NodeStatusChanged{
			NodeID:    n.NodeID,
			Status:    string(database.NodeStatusInactive),
			Previous:  string(n.Status),
			Timestamp: now,
		}

		if w.publisher != nil {
			if err := w.publisher.PublishOnTopic(ctx, &msg); err != nil {
				nodeLog.Warn().Err(err).Msg("failed to publish node status change")
			}
		}

		if w.sender != nil {
			if err := w.sender.SendNodeStatus(ctx, msg); err != nil {
				nodeLog.Warn().Err(err).Msg("failed to send node status notification")
			}
		}
	}

	return changed
}
