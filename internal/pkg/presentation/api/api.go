package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/heartbeat"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/ingestion"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/nodeauth"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/submission"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-greenhouse-ingest/api")

const maxPayloadBytes int64 = 64 * 1024

const apiKeyHeader string = "X-API-Key"

type ReadingQuery interface {
	GetLatestReadings(ctx context.Context, nodeID string) ([]database.Reading, error)
}

type Config struct {
	RequestTimeout time.Duration
}

func RegisterHandlers(log zerolog.Logger, router *chi.Mux, cfg Config, handler submission.Handler, auth nodeauth.Authenticator, hb heartbeat.Service, readings ReadingQuery) *chi.Mux {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v0", func(r chi.Router) {
		r.Post("/sensor-data", NewSubmitSensorDataHandler(log, handler, cfg.RequestTimeout))
		r.Get("/sensor-data/latest", NewQueryLatestReadingsHandler(log, auth, readings))
		r.Post("/nodes/heartbeat", NewHeartbeatHandler(log, auth, hb))
	})

	return router
}

func NewSubmitSensorDataHandler(log zerolog.Logger, handler submission.Handler, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "submit-sensor-data")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		requestLogger := log.With().Str("traceID", span.SpanContext().TraceID().String()).Logger()
		ctx = logging.NewContextWithLogger(ctx, requestLogger)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
		if err != nil {
			requestLogger.Warn().Err(err).Msg("unable to read body")
			writeJSON(w, http.StatusBadRequest, types.Response{
				Status:    types.StatusError,
				Message:   "Unable to read request body",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		query := r.URL.Query()

		resp := handler.Handle(ctx, submission.Request{
			Transport: "http",
			Path:      r.URL.Path,
			Remote:    r.RemoteAddr,
			Credentials: submission.Credentials{
				HeaderAPIKey: r.Header.Get(apiKeyHeader),
				QueryAPIKey:  query.Get("api_key"),
				QueryNodeID:  query.Get("node_id"),
			},
			Payload: body,
		})

		if resp.Outcome != submission.Created {
			err = errors.New(resp.Body.Message)
		}

		writeJSON(w, toStatusCode(resp.Outcome), resp.Body)
	}
}

func NewHeartbeatHandler(log zerolog.Logger, auth nodeauth.Authenticator, svc heartbeat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "node-heartbeat")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		requestLogger := log.With().Str("traceID", span.SpanContext().TraceID().String()).Logger()
		ctx = logging.NewContextWithLogger(ctx, requestLogger)

		hb := types.Heartbeat{}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
		if err == nil {
			err = json.Unmarshal(body, &hb)
		}
		if err != nil {
			requestLogger.Warn().Err(err).Msg("unable to unmarshal heartbeat")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		hb.NodeID = lo.Ternary(hb.NodeID != "", hb.NodeID, r.URL.Query().Get("node_id"))

		node, err := auth.Authenticate(ctx, apiKey(r), hb.NodeID)
		if err != nil {
			w.WriteHeader(authFailureStatus(requestLogger, err))
			return
		}

		err = svc.Beat(ctx, types.Heartbeat{
			NodeID:          node.NodeID,
			FirmwareVersion: hb.FirmwareVersion,
			Configuration:   hb.Configuration,
		})
		if err != nil {
			requestLogger.Error().Err(err).Msg("failed to handle heartbeat")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func NewQueryLatestReadingsHandler(log zerolog.Logger, auth nodeauth.Authenticator, q ReadingQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-latest-readings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		requestLogger := log.With().Str("traceID", span.SpanContext().TraceID().String()).Logger()
		ctx = logging.NewContextWithLogger(ctx, requestLogger)

		nodeID := r.URL.Query().Get("node_id")

		node, err := auth.Authenticate(ctx, apiKey(r), nodeID)
		if err != nil {
			w.WriteHeader(authFailureStatus(requestLogger, err))
			return
		}

		latest, err := q.GetLatestReadings(ctx, node.NodeID)
		if err != nil {
			requestLogger.Error().Err(err).Msg("could not fetch latest readings")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, lo.Map(latest, func(r database.Reading, _ int) types.Reading {
			return ingestion.ToReading(r)
		}))
	}
}

func apiKey(r *http.Request) string {
	if key := r.Header.Get(apiKeyHeader); key != "" {
		return key
	}
	return r.URL.Query().Get("api_key")
}

func authFailureStatus(log zerolog.Logger, err error) int {
	if errors.Is(err, nodeauth.ErrMissingCredentials) || errors.Is(err, nodeauth.ErrInvalidCredentials) {
		log.Debug().Err(err).Msg("request not authorized")
		return http.StatusUnauthorized
	}

	log.Error().Err(err).Msg("authentication failed")
	return http.StatusInternalServerError
}

func toStatusCode(o submission.Outcome) int {
	switch o {
	case submission.Created:
		return http.StatusCreated
	case submission.BadRequest:
		return http.StatusBadRequest
	case submission.Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
