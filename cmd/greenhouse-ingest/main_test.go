package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	app "github.com/diwise/iot-greenhouse-ingest/internal/pkg/application"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/matryer/is"
	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/codes"
	"github.com/plgd-dev/go-coap/v3/udp"
	"github.com/rs/zerolog"
)

func TestFlagDurations(t *testing.T) {
	is := is.New(t)

	flags := flagMap{
		apiKeyCacheTTL:       "300",
		requestTimeout:       "2.5",
		nodeOfflineThreshold: "90s",
		logRateInterval:      "soon",
	}

	is.Equal(300*time.Second, flags.duration(apiKeyCacheTTL, time.Second))
	is.Equal(2500*time.Millisecond, flags.duration(requestTimeout, time.Second))
	is.Equal(90*time.Second, flags.duration(nodeOfflineThreshold, time.Minute))
	is.Equal(time.Duration(0), flags.duration(logRateInterval, time.Second))
}

func TestCommandLineOverridesDefaults(t *testing.T) {
	is := is.New(t)

	flags := parseExternalConfig(zerolog.Nop(), defaultFlags(), []string{"-coap-port", "15683", "-devmode", "true"})

	is.Equal(15683, flags.port(coapPort))
	is.True(flags.enabled(devmode))
	is.Equal("8080", flags[servicePort])
}

func TestControlRouterServesHealthAndMetrics(t *testing.T) {
	is, _, svc := testSetup(t)

	ts := httptest.NewServer(svc.control.Handler)
	defer ts.Close()

	resp, _ := testRequest(is, ts, http.MethodGet, "/health", nil, "")
	is.Equal(resp.StatusCode, http.StatusNoContent)

	resp, body := testRequest(is, ts, http.MethodGet, "/metrics", nil, "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "greenhouse_"))
}

func TestSubmitOverHttpAndQueryLatestReadings(t *testing.T) {
	is, _, svc := testSetup(t)

	ts := httptest.NewServer(svc.public.Handler)
	defer ts.Close()

	payload := `{"node_id":"greenhouse_001","temperature":21.5,"humidity":60}`
	resp, body := testRequest(is, ts, http.MethodPost, "/api/v0/sensor-data", bytes.NewBufferString(payload), "gh001_api_key_abc123")
	is.Equal(resp.StatusCode, http.StatusCreated)

	r := types.Response{}
	is.NoErr(json.Unmarshal([]byte(body), &r))
	is.Equal(types.StatusSuccess, r.Status)
	is.Equal(2, *r.ReadingsCreated)

	resp, body = testRequest(is, ts, http.MethodGet, "/api/v0/sensor-data/latest?node_id=greenhouse_001", nil, "gh001_api_key_abc123")
	is.Equal(resp.StatusCode, http.StatusOK)

	readings := []types.Reading{}
	is.NoErr(json.Unmarshal([]byte(body), &readings))
	is.Equal(2, len(readings))
}

func TestSubmitWithUnknownKeyIsUnauthorized(t *testing.T) {
	is, _, svc := testSetup(t)

	ts := httptest.NewServer(svc.public.Handler)
	defer ts.Close()

	resp, _ := testRequest(is, ts, http.MethodPost, "/api/v0/sensor-data", bytes.NewBufferString(`{"temperature":21.5}`), "nosuchkey")
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
}

func TestSubmitOverCoap(t *testing.T) {
	is, ctx, svc := testSetup(t)

	is.NoErr(svc.coap.Start(ctx))
	t.Cleanup(svc.coap.Stop)

	conn, err := udp.Dial(svc.coap.Addr().String())
	is.NoErr(err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := conn.Post(ctx, "/sensor-data", message.AppJSON, bytes.NewReader([]byte(`{"temperature":19.0}`)),
		message.Option{ID: message.URIQuery, Value: []byte("api_key=gh001_api_key_abc123")},
		message.Option{ID: message.URIQuery, Value: []byte("node_id=greenhouse_001")},
	)
	is.NoErr(err)
	is.Equal(codes.Created, resp.Code())

	b, err := resp.ReadBody()
	is.NoErr(err)
	is.True(strings.Contains(string(b), "Processed 1 sensor readings"))
}

func testSetup(t *testing.T) (*is.I, context.Context, *service) {
	is := is.New(t)
	ctx := context.Background()

	flags := defaultFlags()
	flags[coapHost] = "127.0.0.1"
	flags[coapPort] = "0"

	cfg, err := app.LoadConfiguration(strings.NewReader(configYaml))
	is.NoErr(err)

	repo, err := database.New(database.NewSQLiteConnector(zerolog.Nop()))
	is.NoErr(err)

	svc, err := initialize(ctx, flags, cfg, repo, strings.NewReader(sensorsCSV), nil)
	is.NoErr(err)

	t.Cleanup(func() { svc.cache.Close() })

	return is, ctx, svc
}

func testRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader, apiKey string) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)

	respBody, _ := io.ReadAll(resp.Body)
	defer resp.Body.Close()

	return resp, string(respBody)
}

const configYaml string = `
nodes:
  - nodeID: greenhouse_001
    apiKey: gh001_api_key_abc123
    name: North house
  - nodeID: greenhouse_002
    apiKey: gh002_api_key_def456
`

const sensorsCSV string = `sensorID;nodeID;zoneID;kind;offset;multiplier;active
gh001-temp;greenhouse_001;zone_a;temperature;0.5;1;true
gh001-hum;greenhouse_001;zone_a;humidity;;;true
gh002-temp;greenhouse_002;;temperature;0;1;true`
