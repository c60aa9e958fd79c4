package database

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/schema"
)

func TestGetNodeByAPIKey(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	node, err := r.GetNodeByAPIKey(ctx, "gh001_api_key_abc123")
	is.NoErr(err)
	is.Equal("greenhouse_001", node.NodeID)
	is.Equal(NodeStatusActive, node.Status)

	_, err = r.GetNodeByAPIKey(ctx, "no_such_key")
	is.True(errors.Is(err, ErrNodeNotFound))

	_, err = r.GetNodeByAPIKey(ctx, "")
	is.True(errors.Is(err, ErrNodeNotFound))
}

func TestSeedNodesKeepsExistingState(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	is.NoErr(r.UpdateNodeStatus(ctx, "greenhouse_001", NodeStatusMaintenance))
	is.NoErr(r.SeedNodes(ctx, testNodes()))

	node, err := r.GetNodeByID(ctx, "greenhouse_001")
	is.NoErr(err)
	is.Equal(NodeStatusMaintenance, node.Status)

	nodes, err := r.GetNodes(ctx)
	is.NoErr(err)
	is.Equal(3, len(nodes))
}

func TestActiveSensorTieBreakUsesLowestSensorID(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	for _, id := range []string{"temp-c", "temp-a", "temp-b"} {
		s := NewSensor(id, "greenhouse_001", Temperature)
		is.NoErr(r.SaveSensor(ctx, &s))
	}

	inactive := NewSensor("temp-0", "greenhouse_001", Temperature)
	inactive.Active = false
	is.NoErr(r.SaveSensor(ctx, &inactive))

	for i := 0; i < 5; i++ {
		s, err := r.GetActiveSensor(ctx, "greenhouse_001", Temperature)
		is.NoErr(err)
		is.Equal("temp-a", s.SensorID)
	}

	_, err := r.GetActiveSensor(ctx, "greenhouse_001", PH)
	is.True(errors.Is(err, ErrSensorNotFound))
}

func TestSensorCalibrationRoundTrips(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	s := NewSensor("hum-1", "greenhouse_002", Humidity)
	s.CalibrationOffset = decimal.RequireFromString("-1.25")
	s.CalibrationMultiplier = decimal.RequireFromString("1.1")
	is.NoErr(r.SaveSensor(ctx, &s))

	fromDb, err := r.GetActiveSensor(ctx, "greenhouse_002", Humidity)
	is.NoErr(err)
	is.True(fromDb.CalibrationOffset.Equal(decimal.RequireFromString("-1.25")))
	is.True(fromDb.CalibrationMultiplier.Equal(decimal.RequireFromString("1.1")))
}

func TestUpdateLastSeenReactivatesInactiveNode(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	is.NoErr(r.UpdateNodeStatus(ctx, "greenhouse_003", NodeStatusInactive))

	seen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	reactivated, err := r.UpdateLastSeen(ctx, "greenhouse_003", seen)
	is.NoErr(err)
	is.True(reactivated)

	node, _ := r.GetNodeByID(ctx, "greenhouse_003")
	is.Equal(NodeStatusActive, node.Status)
	is.True(node.LastSeen.Equal(seen))

	reactivated, err = r.UpdateLastSeen(ctx, "greenhouse_003", seen.Add(time.Minute))
	is.NoErr(err)
	is.True(!reactivated)
}

func TestUpdateLastSeenDoesNotReactivateMaintenance(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	is.NoErr(r.UpdateNodeStatus(ctx, "greenhouse_001", NodeStatusMaintenance))

	reactivated, err := r.UpdateLastSeen(ctx, "greenhouse_001", time.Now())
	is.NoErr(err)
	is.True(!reactivated)

	node, _ := r.GetNodeByID(ctx, "greenhouse_001")
	is.Equal(NodeStatusMaintenance, node.Status)
}

func TestUpdateLastSeenOnUnknownNode(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	_, err := r.UpdateLastSeen(ctx, "greenhouse_999", time.Now())
	is.True(errors.Is(err, ErrNodeNotFound))
}

func TestGetStaleNodes(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err := r.UpdateLastSeen(ctx, "greenhouse_001", now.Add(-30*time.Minute))
	is.NoErr(err)
	_, err = r.UpdateLastSeen(ctx, "greenhouse_002", now.Add(-time.Minute))
	is.NoErr(err)

	stale, err := r.GetStaleNodes(ctx, now.Add(-10*time.Minute))
	is.NoErr(err)
	is.Equal(1, len(stale))
	is.Equal("greenhouse_001", stale[0].NodeID)
}

func TestMergeNodeConfiguration(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	is.NoErr(r.MergeNodeConfiguration(ctx, "greenhouse_001", map[string]any{"interval": "60"}))
	is.NoErr(r.MergeNodeConfiguration(ctx, "greenhouse_001", map[string]any{"mode": "eco"}))

	node, err := r.GetNodeByID(ctx, "greenhouse_001")
	is.NoErr(err)
	is.Equal("60", node.Configuration["interval"])
	is.Equal("eco", node.Configuration["mode"])

	err = r.MergeNodeConfiguration(ctx, "greenhouse_999", map[string]any{"mode": "eco"})
	is.True(errors.Is(err, ErrNodeNotFound))
}

func TestGetLatestReadingsReturnsOnePerSensor(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	is.NoErr(r.AddReading(ctx, newReading("temp-1", Temperature, t0, "20.1")))
	is.NoErr(r.AddReading(ctx, newReading("temp-1", Temperature, t0.Add(time.Minute), "20.7")))
	is.NoErr(r.AddReading(ctx, newReading("hum-1", Humidity, t0, "55")))

	latest, err := r.GetLatestReadings(ctx, "greenhouse_001")
	is.NoErr(err)
	is.Equal(2, len(latest))
	is.Equal("temp-1", latest[0].SensorID)
	is.True(latest[0].Value.Equal(decimal.RequireFromString("20.7")))
	is.Equal("raw", latest[0].Metadata["source"])
}

func TestDecimalColumnsHoldLargeAndPreciseValues(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	for _, model := range []any{&Reading{}, &Sensor{}} {
		sch, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		is.NoErr(err)

		for _, f := range sch.Fields {
			if f.FieldType == reflectDecimal {
				is.Equal("numeric(18,6)", f.TagSettings["TYPE"])
			}
		}
	}

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	is.NoErr(r.AddReading(ctx, newReading("light-1", Light, t0, "1234567.891234")))

	latest, err := r.GetLatestReadings(ctx, "greenhouse_001")
	is.NoErr(err)
	is.True(latest[0].Value.Equal(decimal.RequireFromString("1234567.891234")))
}

var reflectDecimal = reflect.TypeOf(decimal.Decimal{})

func TestSeedSensors(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	is.NoErr(r.SeedSensors(ctx, strings.NewReader(sensorsCSV)))

	s, err := r.GetActiveSensor(ctx, "greenhouse_001", Temperature)
	is.NoErr(err)
	is.Equal("gh001-temp", s.SensorID)
	is.Equal("zone_a", *s.ZoneID)
	is.True(s.CalibrationOffset.Equal(decimal.RequireFromString("0.5")))

	_, err = r.GetActiveSensor(ctx, "greenhouse_001", Light)
	is.True(errors.Is(err, ErrSensorNotFound))
}

func TestSeedSensorsFailsOnUnknownNode(t *testing.T) {
	is, ctx, r := testSetupRepository(t)

	err := r.SeedSensors(ctx, strings.NewReader("sensorID;nodeID;zoneID;kind;offset;multiplier;active\ns1;nope;;ph;;;true"))
	is.True(errors.Is(err, ErrNodeNotFound))
}

func TestParseSensorsRejectsBadInput(t *testing.T) {
	is := is.New(t)

	header := "sensorID;nodeID;zoneID;kind;offset;multiplier;active\n"

	_, err := ParseSensors(strings.NewReader(header + "s1;n1;;ph;;;true\ns1;n1;;ec;;;true"))
	is.True(err != nil)

	_, err = ParseSensors(strings.NewReader(header + "s1;n1;;co2;;;true"))
	is.True(err != nil)

	_, err = ParseSensors(strings.NewReader(header + "s1;n1;;ph;gurka;;true"))
	is.True(err != nil)

	_, err = ParseSensors(strings.NewReader(header + "s1;n1;;ph;;;maybe"))
	is.True(err != nil)

	sensors, err := ParseSensors(strings.NewReader(header + "s1;n1;;PH;;;true"))
	is.NoErr(err)
	is.True(sensors[0].CalibrationMultiplier.Equal(decimal.NewFromInt(1)))
	is.True(sensors[0].CalibrationOffset.IsZero())
	is.True(sensors[0].ZoneID == nil)
}

const sensorsCSV string = `sensorID;nodeID;zoneID;kind;offset;multiplier;active
gh001-temp;greenhouse_001;zone_a;temperature;0.5;1;true
gh001-hum;greenhouse_001;zone_a;humidity;;;true
gh001-light;greenhouse_001;;light;0;1;false`

func newReading(sensorID string, kind SensorKind, at time.Time, value string) *Reading {
	return &Reading{
		Time:       at,
		NodeID:     "greenhouse_001",
		SensorID:   sensorID,
		SensorKind: kind,
		Value:      decimal.RequireFromString(value),
		Quality:    QualityGood,
		Metadata:   map[string]any{"source": "raw"},
	}
}

func testNodes() []Node {
	return []Node{
		{NodeID: "greenhouse_001", APIKey: "gh001_api_key_abc123", Name: "Greenhouse 1"},
		{NodeID: "greenhouse_002", APIKey: "gh002_api_key_def456", Name: "Greenhouse 2"},
		{NodeID: "greenhouse_003", APIKey: "gh003_api_key_ghi789", Name: "Greenhouse 3"},
	}
}

func testSetupRepository(t *testing.T) (*is.I, context.Context, GreenhouseRepository) {
	is, ctx, conn := setup(t)

	r, err := New(conn)
	is.NoErr(err)
	is.NoErr(r.SeedNodes(ctx, testNodes()))

	return is, ctx, r
}

func setup(t *testing.T) (*is.I, context.Context, ConnectorFunc) {
	is := is.New(t)
	ctx := context.Background()
	conn := NewSQLiteConnector(zerolog.Logger{})

	return is, ctx, conn
}
