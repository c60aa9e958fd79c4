package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/heartbeat"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/nodeauth"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/submission"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/router"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func TestHealth(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/health", nil, "")
	is.Equal(http.StatusNoContent, resp.StatusCode)
}

func TestSubmitSensorDataUsesHeaderAndQueryCredentials(t *testing.T) {
	is, server, mocks := setupTest(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/sensor-data?api_key=query_key&node_id=greenhouse_001", strings.NewReader(`{"temperature":21.5}`), "header_key")
	is.Equal(http.StatusCreated, resp.StatusCode)
	is.Equal("application/json", resp.Header.Get("Content-Type"))

	r := types.Response{}
	is.NoErr(json.Unmarshal([]byte(body), &r))
	is.Equal(types.StatusSuccess, r.Status)
	is.Equal(1, *r.ReadingsCreated)

	call := mocks.handler.HandleCalls()[0]
	is.Equal("http", call.Req.Transport)
	is.Equal("header_key", call.Req.Credentials.HeaderAPIKey)
	is.Equal("query_key", call.Req.Credentials.QueryAPIKey)
	is.Equal("greenhouse_001", call.Req.Credentials.QueryNodeID)
	is.Equal(`{"temperature":21.5}`, string(call.Req.Payload))
}

func TestSubmitSensorDataMapsOutcomesToStatusCodes(t *testing.T) {
	outcomes := map[string]submission.Outcome{
		"bad":    submission.BadRequest,
		"unauth": submission.Unauthorized,
		"error":  submission.ServerError,
	}

	is, server, _ := setupTestWith(t, func(m *testMocks) {
		m.handler.HandleFunc = func(ctx context.Context, req submission.Request) submission.Response {
			return submission.Response{Outcome: outcomes[string(req.Payload)], Body: types.Response{Status: types.StatusError, Message: "nope"}}
		}
	})
	defer server.Close()

	statuses := map[string]int{
		"bad":    http.StatusBadRequest,
		"unauth": http.StatusUnauthorized,
		"error":  http.StatusInternalServerError,
	}

	for payload, status := range statuses {
		resp, body := testRequest(is, server, http.MethodPost, "/api/v0/sensor-data", strings.NewReader(payload), "")
		is.Equal(status, resp.StatusCode)
		is.True(strings.Contains(body, `"status":"error"`))
	}
}

func TestHeartbeat(t *testing.T) {
	is, server, mocks := setupTest(t)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/nodes/heartbeat", strings.NewReader(`{"node_id":"greenhouse_001","firmware_version":"1.3.0","configuration":{"interval":30}}`), "gh001_api_key_abc123")
	is.Equal(http.StatusNoContent, resp.StatusCode)

	is.Equal(1, len(mocks.hb.BeatCalls()))
	is.Equal("greenhouse_001", mocks.hb.BeatCalls()[0].Hb.NodeID)
	is.Equal("1.3.0", mocks.hb.BeatCalls()[0].Hb.FirmwareVersion)
}

func TestHeartbeatWithWrongKeyIsUnauthorized(t *testing.T) {
	is, server, mocks := setupTest(t)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/nodes/heartbeat", strings.NewReader(`{"node_id":"greenhouse_001"}`), "gh002_api_key_def456")
	is.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, _ = testRequest(is, server, http.MethodPost, "/api/v0/nodes/heartbeat", strings.NewReader(`not json`), "gh001_api_key_abc123")
	is.Equal(http.StatusBadRequest, resp.StatusCode)

	is.Equal(0, len(mocks.hb.BeatCalls()))
}

func TestHeartbeatWhenAuthIsUnavailable(t *testing.T) {
	is, server, _ := setupTestWith(t, func(m *testMocks) {
		m.auth.AuthenticateFunc = func(ctx context.Context, apiKey, claimedNodeID string) (database.Node, error) {
			return database.Node{}, nodeauth.ErrAuthUnavailable
		}
	})
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/nodes/heartbeat?node_id=greenhouse_001", strings.NewReader(`{}`), "gh001_api_key_abc123")
	is.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func TestLatestReadings(t *testing.T) {
	is, server, mocks := setupTest(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/sensor-data/latest?node_id=greenhouse_001", nil, "gh001_api_key_abc123")
	is.Equal(http.StatusOK, resp.StatusCode)

	readings := []types.Reading{}
	is.NoErr(json.Unmarshal([]byte(body), &readings))
	is.Equal(1, len(readings))
	is.Equal("gh001-temp", readings[0].SensorID)
	is.Equal("temperature", readings[0].SensorKind)
	is.Equal("22.5", readings[0].Value)

	is.Equal("greenhouse_001", mocks.readings.GetLatestReadingsCalls()[0].NodeID)
}

func TestLatestReadingsForAnotherNodeIsUnauthorized(t *testing.T) {
	is, server, mocks := setupTest(t)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/api/v0/sensor-data/latest?node_id=greenhouse_002", nil, "gh001_api_key_abc123")
	is.Equal(http.StatusUnauthorized, resp.StatusCode)
	is.Equal(0, len(mocks.readings.GetLatestReadingsCalls()))
}

type testMocks struct {
	handler  *submission.HandlerMock
	auth     *nodeauth.AuthenticatorMock
	hb       *heartbeat.ServiceMock
	readings *database.GreenhouseRepositoryMock
}

func setupTest(t *testing.T) (*is.I, *httptest.Server, *testMocks) {
	return setupTestWith(t, func(*testMocks) {})
}

func setupTestWith(t *testing.T, configure func(*testMocks)) (*is.I, *httptest.Server, *testMocks) {
	is := is.New(t)

	mocks := &testMocks{
		handler: &submission.HandlerMock{
			HandleFunc: func(ctx context.Context, req submission.Request) submission.Response {
				n := 1
				return submission.Response{
					Outcome: submission.Created,
					Body:    types.Response{Status: types.StatusSuccess, Message: "Processed 1 sensor readings", ReadingsCreated: &n},
				}
			},
		},
		auth: &nodeauth.AuthenticatorMock{
			AuthenticateFunc: func(ctx context.Context, apiKey, claimedNodeID string) (database.Node, error) {
				if apiKey == "" || claimedNodeID == "" {
					return database.Node{}, nodeauth.ErrMissingCredentials
				}
				if apiKey == "gh001_api_key_abc123" && claimedNodeID == "greenhouse_001" {
					return database.Node{NodeID: claimedNodeID, APIKey: apiKey}, nil
				}
				return database.Node{}, nodeauth.ErrInvalidCredentials
			},
		},
		hb: &heartbeat.ServiceMock{
			BeatFunc: func(ctx context.Context, hb types.Heartbeat) error {
				return nil
			},
		},
		readings: &database.GreenhouseRepositoryMock{
			GetLatestReadingsFunc: func(ctx context.Context, nodeID string) ([]database.Reading, error) {
				return []database.Reading{
					{
						Time:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
						NodeID:     nodeID,
						SensorID:   "gh001-temp",
						SensorKind: database.Temperature,
						Value:      decimal.RequireFromString("22.5"),
						Unit:       "°C",
						Quality:    database.QualityGood,
					},
				}, nil
			},
		},
	}

	configure(mocks)

	r := RegisterHandlers(zerolog.Nop(), router.New("test"), Config{}, mocks.handler, mocks.auth, mocks.hb, mocks.readings)

	return is, httptest.NewServer(r), mocks
}

func testRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader, apiKey string) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	is.NoErr(err)

	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}
