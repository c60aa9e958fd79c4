package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/ingestion"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/nodeauth"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Outcome int

const (
	Created Outcome = iota
	BadRequest
	Unauthorized
	ServerError
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case BadRequest:
		return "bad_request"
	case Unauthorized:
		return "unauthorized"
	default:
		return "server_error"
	}
}

const (
	MsgEmptyPayload        = "Empty payload"
	MsgInvalidEncoding     = "Invalid UTF-8 encoding in payload"
	MsgInvalidJSON         = "Invalid JSON payload"
	MsgInvalidTimestamp    = "Invalid timestamp format"
	MsgMissingCredentials  = "Missing API key or node ID. Use query parameters: ?api_key=KEY&node_id=NODE"
	MsgInvalidCredentials  = "Invalid API key or node ID"
	MsgAuthUnavailable     = "Authentication service unavailable"
	MsgNoValidSensorData   = "No valid sensor data found to process"
	MsgPersistenceFailed   = "Failed to store sensor readings"
	MsgRequestTimedOut     = "Request timed out"
	MsgInternalServerError = "Internal server error"
)

type Request struct {
	Transport   string
	Path        string
	Remote      string
	Credentials Credentials
	Payload     []byte
}

type Response struct {
	Outcome Outcome
	Body    types.Response
}

//go:generate moq -rm -out handler_mock.go . Handler

type Handler interface {
	Handle(ctx context.Context, req Request) Response
}

type handler struct {
	auth     nodeauth.Authenticator
	pipeline ingestion.Pipeline
	rl       *logging.RateLimitedLogger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewHandler(auth nodeauth.Authenticator, pipeline ingestion.Pipeline, rl *logging.RateLimitedLogger, m *metrics.Metrics) Handler {
	return &handler{
		auth:     auth,
		pipeline: pipeline,
		rl:       rl,
		metrics:  m,
		now:      time.Now,
	}
}

// Handle runs one submission through parsing, authentication and ingestion.
// Every failure is turned into a response, nothing is returned to the caller
// as an error.
func (h *handler) Handle(ctx context.Context, req Request) Response {
	started := time.Now()

	log := logging.GetLoggerFromContext(ctx).With().
		Str("request_id", uuid.NewString()).
		Str("transport", req.Transport).
		Str("path", req.Path).
		Str("remote", req.Remote).
		Logger()
	ctx = logging.NewContextWithLogger(ctx, log)

	resp := h.handle(ctx, log, req)

	if ctx.Err() != nil && resp.Outcome == ServerError {
		resp = h.failure(ServerError, MsgRequestTimedOut, nil)
	}

	h.metrics.IncRequest(req.Transport, resp.Outcome.String())
	h.metrics.ObserveRequest(req.Transport, started)

	return resp
}

func (h *handler) handle(ctx context.Context, log zerolog.Logger, req Request) Response {
	sub, err := Parse(req.Credentials, req.Payload)
	if err != nil {
		return h.parseFailure(req, err)
	}

	log = log.With().Str("node_id", sub.NodeID).Str("api_key", logging.MaskSecret(sub.APIKey)).Logger()
	ctx = logging.NewContextWithLogger(ctx, log)

	node, err := h.auth.Authenticate(ctx, sub.APIKey, sub.NodeID)
	if err != nil {
		switch {
		case errors.Is(err, nodeauth.ErrMissingCredentials):
			log.Warn().Msg("submission without credentials")
			return h.failure(Unauthorized, MsgMissingCredentials, nil)
		case errors.Is(err, nodeauth.ErrInvalidCredentials):
			log.Warn().Msg("submission with invalid credentials")
			return h.failure(Unauthorized, MsgInvalidCredentials, nil)
		default:
			log.Error().Err(err).Msg("authentication failed")
			return h.failure(ServerError, MsgAuthUnavailable, nil)
		}
	}

	in := ingestion.Input{
		Fields:     sub.Fields,
		ZoneID:     sub.ZoneID,
		DeviceMeta: sub.MetaData,
	}

	if sub.Timestamp != "" {
		ts, err := ingestion.ParseTimestamp(sub.Timestamp)
		if err != nil {
			log.Warn().Err(err).Msg("rejecting submission with invalid timestamp")
			return h.failure(BadRequest, MsgInvalidTimestamp, nil)
		}
		in.Timestamp = &ts
	}

	result, err := h.pipeline.Ingest(ctx, node, in)
	count := result.ReadingsCreated

	if err != nil {
		switch {
		case errors.Is(err, ingestion.ErrNoValidSensorData):
			log.Warn().Strs("errors", result.Errors).Msg("no valid sensor data in submission")
			return h.failure(ServerError, MsgNoValidSensorData, &count)
		case errors.Is(err, ingestion.ErrPersistenceFailed):
			log.Error().Err(err).Msg("failed to store all readings")
			return h.failure(ServerError, MsgPersistenceFailed, &count)
		default:
			log.Error().Err(err).Msg("ingestion failed")
			return h.failure(ServerError, MsgInternalServerError, &count)
		}
	}

	return Response{
		Outcome: Created,
		Body: types.Response{
			Status:          types.StatusSuccess,
			Message:         fmt.Sprintf("Processed %d sensor readings", count),
			ReadingsCreated: &count,
			Timestamp:       h.now().UTC(),
		},
	}
}

func (h *handler) parseFailure(req Request, err error) Response {
	switch {
	case errors.Is(err, ErrEmptyPayload):
		h.rl.Event("empty-payload", zerolog.WarnLevel).
			Str("path", req.Path).Str("remote", req.Remote).
			Msg("received request with empty payload")
		return h.failure(BadRequest, MsgEmptyPayload, nil)

	case errors.Is(err, ErrInvalidEncoding):
		h.rl.Event("invalid-encoding", zerolog.WarnLevel).
			Str("path", req.Path).Str("remote", req.Remote).
			Msg("received payload that is not valid utf-8")
		h.rl.LogIfAllowed("invalid-encoding-tip", zerolog.InfoLevel,
			"binary payloads usually mean a non-JSON client or a protocol scanner is talking to this port")
		return h.failure(BadRequest, MsgInvalidEncoding, nil)

	case errors.Is(err, ErrInvalidTimestamp):
		h.rl.Event("invalid-timestamp", zerolog.WarnLevel).
			Str("path", req.Path).Str("remote", req.Remote).
			Msg("received timestamp that is not a string")
		return h.failure(BadRequest, MsgInvalidTimestamp, nil)

	default:
		h.rl.Event("invalid-payload", zerolog.WarnLevel).
			Str("path", req.Path).Str("remote", req.Remote).Err(err).
			Msg("received payload that is not a json object")
		return h.failure(BadRequest, MsgInvalidJSON, nil)
	}
}

func (h *handler) failure(outcome Outcome, message string, readings *int) Response {
	return Response{
		Outcome: outcome,
		Body: types.Response{
			Status:          types.StatusError,
			Message:         message,
			ReadingsCreated: readings,
			Timestamp:       h.now().UTC(),
		},
	}
}
