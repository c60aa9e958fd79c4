package coap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/submission"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/matryer/is"
	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/codes"
	"github.com/plgd-dev/go-coap/v3/udp"
	"github.com/rs/zerolog"
)

const validPayload = `{"temperature":21.5,"humidity":60}`

func TestEveryIngestionAliasAcceptsTheSamePayload(t *testing.T) {
	is, ctx, srv, h := testSetup(t)

	for _, path := range submission.IngestionPaths {
		resp, body := post(t, ctx, srv, path, validPayload, "api_key=gh001_api_key_abc123", "node_id=greenhouse_001")
		is.Equal(codes.Created, resp)
		is.Equal(types.StatusSuccess, body.Status)
	}

	is.Equal(len(submission.IngestionPaths), len(h.HandleCalls()))

	for _, call := range h.HandleCalls() {
		is.Equal("coap", call.Req.Transport)
		is.Equal("gh001_api_key_abc123", call.Req.Credentials.QueryAPIKey)
		is.Equal("greenhouse_001", call.Req.Credentials.QueryNodeID)
		is.Equal(validPayload, string(call.Req.Payload))
	}
}

func TestGarbageDatagramsDoNotStopTheServer(t *testing.T) {
	is, ctx, srv, _ := testSetup(t)

	conn, err := net.Dial("udp", srv.Addr().String())
	is.NoErr(err)

	for _, garbage := range [][]byte{
		{0xff, 0xff, 0xff},
		[]byte("GET / HTTP/1.1\r\nHost: greenhouse\r\n\r\n"),
		{0x40},
		{},
	} {
		_, err = conn.Write(garbage)
		is.NoErr(err)
	}
	conn.Close()

	time.Sleep(50 * time.Millisecond)

	code, _ := post(t, ctx, srv, "/sensor/send-data", validPayload, "api_key=gh001_api_key_abc123", "node_id=greenhouse_001")
	is.Equal(codes.Created, code)
	is.Equal(Running, srv.State())
}

func TestOutcomesMapToCoapCodes(t *testing.T) {
	is, ctx, srv, _ := testSetup(t)

	code, body := post(t, ctx, srv, "/data", validPayload)
	is.Equal(codes.Unauthorized, code)
	is.Equal(types.StatusError, body.Status)

	code, _ = post(t, ctx, srv, "/data", "", "api_key=gh001_api_key_abc123", "node_id=greenhouse_001")
	is.Equal(codes.BadRequest, code)

	code, body = post(t, ctx, srv, "/data", `{"humidity":null}`, "api_key=gh001_api_key_abc123", "node_id=greenhouse_001")
	is.Equal(codes.InternalServerError, code)
	is.Equal(0, *body.ReadingsCreated)
}

func TestGetReturnsDiscoveryDocument(t *testing.T) {
	is, ctx, srv, h := testSetup(t)

	conn, err := udp.Dial(srv.Addr().String())
	is.NoErr(err)
	defer conn.Close()

	resp, err := conn.Get(ctx, "/sensor/send-data")
	is.NoErr(err)
	is.Equal(codes.Content, resp.Code())

	b, err := resp.ReadBody()
	is.NoErr(err)

	doc := types.DiscoveryDocument{}
	is.NoErr(json.Unmarshal(b, &doc))
	is.Equal("Smart Greenhouse CoAP Server", doc.Service)
	is.Equal("1.0", doc.Version)
	is.Equal(5, len(doc.Endpoints))
	is.Equal(submission.DiagnosticPaths, doc.Diagnostics)
	is.True(strings.Contains(doc.Auth, "JSON body"))

	is.Equal(0, len(h.HandleCalls()))
}

func TestDiagnosticAndUnknownPathsAreNotFound(t *testing.T) {
	is, ctx, srv, h := testSetup(t)

	paths := []string{"/no/such/path"}
	paths = append(paths, submission.DiagnosticPaths...)

	for _, path := range paths {
		code, _ := post(t, ctx, srv, path, validPayload, "api_key=gh001_api_key_abc123", "node_id=greenhouse_001")
		is.Equal(codes.NotFound, code)
	}

	is.Equal(0, len(h.HandleCalls()))
}

func TestUnknownPathsShareOneRateLimitKey(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	buf := &lockedBuffer{}
	rl := logging.NewRateLimitedLogger(zerolog.New(buf).Level(zerolog.WarnLevel), time.Minute)

	srv := NewServer(Config{Host: "127.0.0.1", Port: 0}, &submission.HandlerMock{HandleFunc: acceptAll}, rl, nil)
	is.NoErr(srv.Start(ctx))
	t.Cleanup(srv.Stop)

	for i := 0; i < 50; i++ {
		code, _ := post(t, ctx, srv, fmt.Sprintf("/scan%d", i), validPayload)
		is.Equal(codes.NotFound, code)
	}

	is.Equal(1, buf.Count("request for unknown coap path"))
}

func TestPanicInHandlerIsContained(t *testing.T) {
	is, ctx, srv, _ := testSetupWithHandler(t, func(ctx context.Context, req submission.Request) submission.Response {
		if req.Path == "/sensor" {
			panic("boom")
		}
		return acceptAll(ctx, req)
	})

	code, _ := post(t, ctx, srv, "/sensor", validPayload)
	is.Equal(codes.InternalServerError, code)

	code, _ = post(t, ctx, srv, "/data", validPayload, "api_key=gh001_api_key_abc123", "node_id=greenhouse_001")
	is.Equal(codes.Created, code)
}

func TestRequestsRunWithDeadline(t *testing.T) {
	hasDeadline := make(chan bool, 1)

	is, ctx, srv, _ := testSetupWithHandler(t, func(ctx context.Context, req submission.Request) submission.Response {
		_, ok := ctx.Deadline()
		hasDeadline <- ok
		return acceptAll(ctx, req)
	})

	post(t, ctx, srv, "/data", validPayload, "api_key=gh001_api_key_abc123", "node_id=greenhouse_001")
	is.True(<-hasDeadline)
}

func TestStopIsIdempotent(t *testing.T) {
	is, _, srv, _ := testSetup(t)

	srv.Stop()
	is.Equal(Stopped, srv.State())
	is.True(srv.Addr() == nil)

	srv.Stop()
	is.Equal(Stopped, srv.State())
}

func TestStartTwiceFails(t *testing.T) {
	is, ctx, srv, _ := testSetup(t)

	err := srv.Start(ctx)
	is.True(errors.Is(err, ErrAlreadyStarted))
}

func TestCancelledContextStopsServer(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(Config{Host: "127.0.0.1"}, &submission.HandlerMock{HandleFunc: acceptAll}, testLimiter(), nil)
	is.NoErr(srv.Start(ctx))

	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for srv.State() != Stopped && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	is.Equal(Stopped, srv.State())
}

func TestClassifyError(t *testing.T) {
	is := is.New(t)

	is.Equal(ErrorClassEncoding, ClassifyError(fmt.Errorf("127.0.0.1:4000: %w", message.ErrShortRead)))
	is.Equal(ErrorClassEncoding, ClassifyError(errors.New("cannot unmarshal message")))
	is.Equal(ErrorClassNetwork, ClassifyError(&net.OpError{Op: "read", Net: "udp", Err: errors.New("x")}))
	is.Equal(ErrorClassNetwork, ClassifyError(fmt.Errorf("read: %w", io.EOF)))
	is.Equal(ErrorClassNetwork, ClassifyError(errors.New("connection reset by peer")))
	is.Equal(ErrorClassOther, ClassifyError(errors.New("something odd")))
}

func TestTransportErrorsAreCountedAndRateLimited(t *testing.T) {
	is := is.New(t)

	buf := &bytes.Buffer{}
	rl := logging.NewRateLimitedLogger(zerolog.New(buf).Level(zerolog.WarnLevel), time.Minute)
	m := metrics.New()

	srv := NewServer(Config{}, &submission.HandlerMock{HandleFunc: acceptAll}, rl, m)
	report := srv.transportError(zerolog.Nop())

	for i := 0; i < 20; i++ {
		report(fmt.Errorf("%w", message.ErrInvalidValueLength))
	}

	is.Equal(1, bytes.Count(buf.Bytes(), []byte("ignoring malformed")))
}

func TestSuppressedProtocolWarnings(t *testing.T) {
	is := is.New(t)

	buf := &bytes.Buffer{}
	rl := logging.NewRateLimitedLogger(zerolog.New(buf).Level(zerolog.WarnLevel), time.Minute)

	srv := NewServer(Config{SuppressProtocolWarnings: true}, &submission.HandlerMock{HandleFunc: acceptAll}, rl, nil)
	srv.transportError(zerolog.Nop())(message.ErrShortRead)

	is.Equal(0, buf.Len())
}

func post(t *testing.T, ctx context.Context, srv *Server, path, payload string, queries ...string) (codes.Code, types.Response) {
	is := is.New(t)

	conn, err := udp.Dial(srv.Addr().String())
	is.NoErr(err)
	defer conn.Close()

	opts := make([]message.Option, 0, len(queries))
	for _, q := range queries {
		opts = append(opts, message.Option{ID: message.URIQuery, Value: []byte(q)})
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := conn.Post(ctx, path, message.AppJSON, bytes.NewReader([]byte(payload)), opts...)
	is.NoErr(err)

	body := types.Response{}
	if b, err := resp.ReadBody(); err == nil && len(b) > 0 {
		is.NoErr(json.Unmarshal(b, &body))
	}

	return resp.Code(), body
}

func acceptAll(ctx context.Context, req submission.Request) submission.Response {
	creds := req.Credentials
	if creds.QueryAPIKey == "" || creds.QueryNodeID == "" {
		return submission.Response{Outcome: submission.Unauthorized, Body: types.Response{Status: types.StatusError, Message: submission.MsgMissingCredentials}}
	}

	if len(req.Payload) == 0 {
		return submission.Response{Outcome: submission.BadRequest, Body: types.Response{Status: types.StatusError, Message: submission.MsgEmptyPayload}}
	}

	fields := map[string]any{}
	_ = json.Unmarshal(req.Payload, &fields)

	n := 0
	for _, v := range fields {
		if v != nil {
			n++
		}
	}

	if n == 0 {
		return submission.Response{Outcome: submission.ServerError, Body: types.Response{Status: types.StatusError, Message: submission.MsgNoValidSensorData, ReadingsCreated: &n}}
	}

	return submission.Response{
		Outcome: submission.Created,
		Body:    types.Response{Status: types.StatusSuccess, Message: fmt.Sprintf("Processed %d sensor readings", n), ReadingsCreated: &n},
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Count(s string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), s)
}

func testLimiter() *logging.RateLimitedLogger {
	return logging.NewRateLimitedLogger(zerolog.Nop(), time.Minute)
}

func testSetup(t *testing.T) (*is.I, context.Context, *Server, *submission.HandlerMock) {
	return testSetupWithHandler(t, acceptAll)
}

func testSetupWithHandler(t *testing.T, fn func(context.Context, submission.Request) submission.Response) (*is.I, context.Context, *Server, *submission.HandlerMock) {
	is := is.New(t)
	ctx := context.Background()

	h := &submission.HandlerMock{HandleFunc: fn}

	srv := NewServer(Config{Host: "127.0.0.1", Port: 0}, h, testLimiter(), nil)
	is.NoErr(srv.Start(ctx))
	t.Cleanup(srv.Stop)

	return is, ctx, srv, h
}
