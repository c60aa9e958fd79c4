package coap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/submission"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/codes"
	"github.com/plgd-dev/go-coap/v3/mux"
	"github.com/rs/zerolog"
)

const (
	ErrorClassEncoding = "encoding"
	ErrorClassNetwork  = "network"
	ErrorClassOther    = "other"
)

var discovery = types.DiscoveryDocument{
	Service: "Smart Greenhouse CoAP Server",
	Version: "1.0",
	Endpoints: map[string]string{
		"POST /sensor/send-data": "Send sensor data with auth in query params",
		"POST /sensor/data":      "Alternative sensor data endpoint",
		"POST /data":             "Simple data endpoint",
		"POST /sensor":           "Sensor endpoint",
		"POST /":                 "Root endpoint",
	},
	Diagnostics: submission.DiagnosticPaths,
	Auth:        "Use query parameters ?api_key=KEY&node_id=NODE_ID, or api_key and node_id fields in the JSON body. Query parameters win.",
	Payload:     `JSON with sensor values: {"temperature":22.5,"humidity":65.0}`,
}

func (s *Server) serveIngestion(w mux.ResponseWriter, r *mux.Message) {
	path, _ := r.Path()
	if path == "" {
		path = "/"
	}

	remote := remoteAddr(w)

	log := s.log.With().Str("path", path).Str("remote", remote).Str("method", r.Code().String()).Logger()

	switch r.Code() {
	case codes.GET:
		log.Debug().Msg("serving discovery document")
		s.respond(w, log, codes.Content, discovery)
		return
	case codes.POST, codes.PUT:
	default:
		s.respond(w, log, codes.MethodNotAllowed, types.Response{Status: types.StatusError, Message: "Method not allowed"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()
	ctx = logging.NewContextWithLogger(ctx, log)

	queries, err := r.Queries()
	if err != nil && !errors.Is(err, message.ErrOptionNotFound) {
		log.Debug().Err(err).Msg("failed to read query options")
	}

	payload, err := readBody(r)
	if err != nil {
		log.Debug().Err(err).Msg("failed to read request body")
	}

	creds := submission.ParseQueryTokens(queries)

	log.Debug().
		Int("payload_bytes", len(payload)).
		Str("api_key", logging.MaskSecret(creds.QueryAPIKey)).
		Str("node_id", creds.QueryNodeID).
		Msg("coap submission received")

	resp := s.handler.Handle(ctx, submission.Request{
		Transport:   "coap",
		Path:        path,
		Remote:      remote,
		Credentials: creds,
		Payload:     payload,
	})

	s.respond(w, log, toCode(resp.Outcome), resp.Body)
}

func (s *Server) serveDiagnostic(w mux.ResponseWriter, r *mux.Message) {
	path, _ := r.Path()
	remote := remoteAddr(w)

	requestDetails(s.rl.Event("diagnostic-path:"+path, zerolog.WarnLevel), r).
		Str("path", path).
		Str("remote", remote).
		Msgf("node posted to %s, configure it to use one of %s", path, strings.Join(submission.IngestionPaths, ", "))

	s.respond(w, s.log, codes.NotFound, types.Response{Status: types.StatusError, Message: "Not found"})
}

// serveDefault catches requests without a registered route. A request with
// no path options is treated as a post to the root alias.
func (s *Server) serveDefault(w mux.ResponseWriter, r *mux.Message) {
	path, err := r.Path()
	if err != nil || path == "" || path == "/" {
		s.serveIngestion(w, r)
		return
	}

	requestDetails(s.rl.Event("unmatched-path", zerolog.WarnLevel), r).
		Str("path", path).
		Str("remote", remoteAddr(w)).
		Msg("request for unknown coap path")

	s.respond(w, s.log, codes.NotFound, types.Response{Status: types.StatusError, Message: "Not found"})
}

func (s *Server) respond(w mux.ResponseWriter, log zerolog.Logger, code codes.Code, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal coap response")
		code = codes.InternalServerError
		b = []byte(`{"status":"error","message":"Internal server error"}`)
	}

	if err := w.SetResponse(code, message.AppJSON, bytes.NewReader(b)); err != nil {
		log.Debug().Err(err).Msg("failed to set coap response")
	}
}

func (s *Server) recoverer(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next mux.Handler) mux.Handler {
		return mux.HandlerFunc(func(w mux.ResponseWriter, r *mux.Message) {
			defer func() {
				if rec := recover(); rec != nil {
					s.metrics.IncProtocolError(ErrorClassOther)
					log.Error().
						Str("panic", fmt.Sprint(rec)).
						Bytes("stack", debug.Stack()).
						Msg("recovered from panic in coap handler")
					s.respond(w, log, codes.InternalServerError, types.Response{Status: types.StatusError, Message: submission.MsgInternalServerError})
				}
			}()

			next.ServeCOAP(w, r)
		})
	}
}

// transportError receives errors go-coap could not attribute to a request,
// such as datagrams that do not decode as CoAP.
func (s *Server) transportError(log zerolog.Logger) func(error) {
	return func(err error) {
		if err == nil {
			return
		}

		class := ClassifyError(err)
		s.metrics.IncProtocolError(class)

		switch class {
		case ErrorClassEncoding, ErrorClassNetwork:
			log.Debug().Err(err).Str("class", class).Msg("coap transport error")

			if s.cfg.SuppressProtocolWarnings {
				return
			}

			s.rl.Event(class+"-error", zerolog.WarnLevel).Err(err).Str("class", class).
				Msg("ignoring malformed or interrupted coap traffic")
		default:
			log.Error().Err(err).Str("class", class).Msg("unexpected coap transport error")
		}
	}
}

var encodingErrors = []error{
	message.ErrInvalidOptionHeaderExt,
	message.ErrInvalidTokenLen,
	message.ErrInvalidValueLength,
	message.ErrShortRead,
	message.ErrOptionTruncated,
	message.ErrOptionUnexpectedExtendMarker,
	message.ErrInvalidEncoding,
}

var encodingMarkers = []string{"unmarshal", "decode", "invalid", "utf-8", "malformed", "short read"}
var networkMarkers = []string{"connection", "network", "closed", "reset", "refused", "timeout", "broken pipe"}

// ClassifyError sorts transport errors into encoding, network or other.
func ClassifyError(err error) string {
	for _, target := range encodingErrors {
		if errors.Is(err, target) {
			return ErrorClassEncoding
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return ErrorClassNetwork
	}

	msg := strings.ToLower(err.Error())

	for _, m := range encodingMarkers {
		if strings.Contains(msg, m) {
			return ErrorClassEncoding
		}
	}

	for _, m := range networkMarkers {
		if strings.Contains(msg, m) {
			return ErrorClassNetwork
		}
	}

	return ErrorClassOther
}

func toCode(o submission.Outcome) codes.Code {
	switch o {
	case submission.Created:
		return codes.Created
	case submission.BadRequest:
		return codes.BadRequest
	case submission.Unauthorized:
		return codes.Unauthorized
	default:
		return codes.InternalServerError
	}
}

func readBody(r *mux.Message) ([]byte, error) {
	if r.Body() == nil {
		return nil, nil
	}
	return r.ReadBody()
}

const payloadPreviewBytes int = 100

// requestDetails adds method, content format, masked query and a payload
// preview to a diagnostic log event. A nil event is passed through.
func requestDetails(e *zerolog.Event, r *mux.Message) *zerolog.Event {
	if e == nil {
		return nil
	}

	e = e.Str("method", r.Code().String())

	if cf, err := r.ContentFormat(); err == nil {
		e = e.Str("content_format", cf.String())
	}

	if queries, err := r.Queries(); err == nil {
		masked := make([]string, 0, len(queries))
		for _, q := range queries {
			if key, value, ok := strings.Cut(q, "="); ok && key == "api_key" {
				q = key + "=" + logging.MaskSecret(value)
			}
			masked = append(masked, q)
		}
		e = e.Strs("query", masked)
	}

	if body, err := readBody(r); err == nil && len(body) > 0 {
		if len(body) > payloadPreviewBytes {
			body = body[:payloadPreviewBytes]
		}
		e = e.Str("payload_preview", string(body))
	}

	return e
}

func remoteAddr(w mux.ResponseWriter) string {
	if w.Conn() == nil || w.Conn().RemoteAddr() == nil {
		return "unknown"
	}
	return w.Conn().RemoteAddr().String()
}
