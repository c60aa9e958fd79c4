package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var ErrUnauthorized = errors.New("unauthorized")
var ErrRejected = errors.New("submission rejected")
var ErrServerError = errors.New("server error")

type GreenhouseClient interface {
	SubmitSensorData(ctx context.Context, apiKey string, data types.SensorData) (*types.Response, error)
	SendHeartbeat(ctx context.Context, apiKey string, hb types.Heartbeat) error
	LatestReadings(ctx context.Context, apiKey, nodeID string) ([]types.Reading, error)
}

type greenhouseClient struct {
	url        string
	httpClient http.Client
}

var tracer = otel.Tracer("greenhouse-ingest-client")

func New(baseURL string) GreenhouseClient {
	return &greenhouseClient{
		url: strings.TrimSuffix(baseURL, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *greenhouseClient) SubmitSensorData(ctx context.Context, apiKey string, data types.SensorData) (*types.Response, error) {
	var err error
	ctx, span := tracer.Start(ctx, "submit-sensor-data")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetLoggerFromContext(ctx)

	b, err := json.Marshal(data)
	if err != nil {
		err = fmt.Errorf("failed to marshal sensor data: %w", err)
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, c.url+"/api/v0/sensor-data", apiKey, b)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	result := &types.Response{}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return nil, err
	}

	if len(respBody) > 0 {
		if jsonErr := json.Unmarshal(respBody, result); jsonErr != nil {
			log.Warn().Err(jsonErr).Msg("failed to unmarshal response body")
		}
	}

	err = statusToError(resp.StatusCode, result.Message)
	if err != nil {
		return result, err
	}

	return result, nil
}

func (c *greenhouseClient) SendHeartbeat(ctx context.Context, apiKey string, hb types.Heartbeat) error {
	var err error
	ctx, span := tracer.Start(ctx, "send-heartbeat")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := json.Marshal(hb)
	if err != nil {
		err = fmt.Errorf("failed to marshal heartbeat: %w", err)
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, c.url+"/api/v0/nodes/heartbeat", apiKey, b)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	err = statusToError(resp.StatusCode, "")
	return err
}

func (c *greenhouseClient) LatestReadings(ctx context.Context, apiKey, nodeID string) ([]types.Reading, error) {
	var err error
	ctx, span := tracer.Start(ctx, "latest-readings")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	u := c.url + "/api/v0/sensor-data/latest?node_id=" + url.QueryEscape(nodeID)

	resp, err := c.do(ctx, http.MethodGet, u, apiKey, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err = statusToError(resp.StatusCode, ""); err != nil {
		return nil, err
	}

	readings := []types.Reading{}

	err = json.NewDecoder(resp.Body).Decode(&readings)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return nil, err
	}

	return readings, nil
}

func (c *greenhouseClient) do(ctx context.Context, method, u, apiKey string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("X-API-Key", apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

func statusToError(code int, message string) error {
	switch {
	case code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code < 500:
		return fmt.Errorf("%w: %d %s", ErrRejected, code, message)
	default:
		return fmt.Errorf("%w: %d %s", ErrServerError, code, message)
	}
}
