package nodeauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/cache"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
)

var ErrMissingCredentials = errors.New("missing api key or node id")
var ErrInvalidCredentials = errors.New("invalid api key or node id")
var ErrAuthUnavailable = errors.New("authentication backend unavailable")

const DefaultCacheTTL = 300 * time.Second

//go:generate moq -rm -out nodeauth_mock.go . NodeRegistry Authenticator

type NodeRegistry interface {
	GetNodeByAPIKey(ctx context.Context, apiKey string) (database.Node, error)
	GetNodeByID(ctx context.Context, nodeID string) (database.Node, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, apiKey, claimedNodeID string) (database.Node, error)
}

type authenticator struct {
	registry NodeRegistry
	cache    cache.Cache
	ttl      time.Duration
	metrics  *metrics.Metrics
}

func New(registry NodeRegistry, c cache.Cache, ttl time.Duration, m *metrics.Metrics) Authenticator {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &authenticator{
		registry: registry,
		cache:    c,
		ttl:      ttl,
		metrics:  m,
	}
}

func CacheKey(apiKey string) string {
	return "api_key:" + apiKey
}

// Authenticate resolves the node that owns apiKey and checks that it is the
// node the caller claims to be. A failing cache only costs a registry lookup.
func (a *authenticator) Authenticate(ctx context.Context, apiKey, claimedNodeID string) (database.Node, error) {
	if apiKey == "" || claimedNodeID == "" {
		return database.Node{}, ErrMissingCredentials
	}

	log := logging.GetLoggerFromContext(ctx).With().
		Str("node_id", claimedNodeID).
		Str("api_key", logging.MaskSecret(apiKey)).
		Logger()

	key := CacheKey(apiKey)

	if a.cache != nil {
		cachedNodeID, found, err := a.cache.Get(ctx, key)
		if err != nil {
			a.metrics.IncCacheLookup("error")
			log.Warn().Err(err).Msg("api key cache lookup failed, using registry")
		} else if found {
			a.metrics.IncCacheLookup("hit")
			return a.fromCachedNodeID(ctx, cachedNodeID, apiKey, claimedNodeID)
		} else {
			a.metrics.IncCacheLookup("miss")
		}
	}

	node, err := a.registry.GetNodeByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, database.ErrNodeNotFound) {
			log.Debug().Msg("no node registered for api key")
			return database.Node{}, ErrInvalidCredentials
		}

		log.Error().Err(err).Msg("node registry lookup failed")
		return database.Node{}, fmt.Errorf("%w: %s", ErrAuthUnavailable, err.Error())
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, node.NodeID, a.ttl); err != nil {
			log.Warn().Err(err).Msg("failed to cache api key")
		}
	}

	if node.NodeID != claimedNodeID {
		log.Debug().Str("owner", node.NodeID).Msg("api key belongs to another node")
		return database.Node{}, ErrInvalidCredentials
	}

	return node, nil
}

func (a *authenticator) fromCachedNodeID(ctx context.Context, cachedNodeID, apiKey, claimedNodeID string) (database.Node, error) {
	log := logging.GetLoggerFromContext(ctx).With().
		Str("node_id", claimedNodeID).
		Str("api_key", logging.MaskSecret(apiKey)).
		Logger()

	if cachedNodeID != claimedNodeID {
		log.Debug().Str("owner", cachedNodeID).Msg("api key belongs to another node")
		return database.Node{}, ErrInvalidCredentials
	}

	node, err := a.registry.GetNodeByID(ctx, cachedNodeID)
	if err != nil {
		if errors.Is(err, database.ErrNodeNotFound) {
			log.Debug().Msg("cached node no longer exists, evicting")
			a.evict(ctx, apiKey)
			return database.Node{}, ErrInvalidCredentials
		}

		log.Error().Err(err).Msg("node registry lookup failed")
		return database.Node{}, fmt.Errorf("%w: %s", ErrAuthUnavailable, err.Error())
	}

	if node.APIKey != apiKey {
		log.Debug().Msg("api key has been rotated, evicting")
		a.evict(ctx, apiKey)
		return database.Node{}, ErrInvalidCredentials
	}

	return node, nil
}

func (a *authenticator) evict(ctx context.Context, apiKey string) {
	if err := a.cache.Delete(ctx, CacheKey(apiKey)); err != nil {
		log := logging.GetLoggerFromContext(ctx)
		log.Warn().Err(err).Msg("failed to evict api key from cache")
	}
}
