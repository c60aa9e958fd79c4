package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/events"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestValidFieldsAreCalibratedAndStored(t *testing.T) {
	is, ctx, store, pub := testSetup(t)
	p := New(store, WithPublisher(pub), WithClock(func() time.Time { return testNow }))

	result, err := p.Ingest(ctx, testNode(), Input{
		Fields: map[string]any{
			"temperature": json.Number("21.5"),
			"humidity":    json.Number("60"),
		},
	})

	is.NoErr(err)
	is.Equal(2, result.ReadingsCreated)
	is.Equal(2, len(store.AddReadingCalls()))

	temp := store.AddReadingCalls()[0].Reading
	is.Equal(database.Temperature, temp.SensorKind)
	is.Equal("22", temp.Value.String())
	is.Equal("°C", temp.Unit)
	is.Equal("21.5", temp.Metadata["raw_value"])
	is.Equal(true, temp.Metadata["calibrated"])
	is.Equal("1.2.0", temp.Metadata["node_firmware"])
	is.True(temp.Time.Equal(testNow))

	hum := store.AddReadingCalls()[1].Reading
	is.Equal("60", hum.Value.String())
	is.Equal("%", hum.Unit)
	is.Equal("zone_a", *hum.ZoneID)

	is.Equal(1, len(store.UpdateLastSeenCalls()))
	is.True(store.UpdateLastSeenCalls()[0].Seen.Equal(testNow))

	is.Equal(1, len(pub.PublishOnTopicCalls()))
	is.Equal("sensor.readingsCreated", pub.PublishOnTopicCalls()[0].Message.TopicName())
}

func TestSubmittedTimestampAndZoneAreUsed(t *testing.T) {
	is, ctx, store, _ := testSetup(t)
	p := New(store, WithClock(func() time.Time { return testNow }))

	ts := time.Date(2024, 4, 30, 8, 15, 0, 0, time.UTC)
	zone := "zone_b"

	_, err := p.Ingest(ctx, testNode(), Input{
		Fields:     map[string]any{"ph": json.Number("6.8")},
		Timestamp:  &ts,
		ZoneID:     &zone,
		DeviceMeta: map[string]any{"rssi_src": "lora"},
	})
	is.NoErr(err)

	r := store.AddReadingCalls()[0].Reading
	is.True(r.Time.Equal(ts))
	is.Equal("zone_b", *r.ZoneID)
	is.Equal("lora", r.Metadata["device_meta"].(map[string]any)["rssi_src"])
	is.Equal(testNow.Format(time.RFC3339Nano), r.Metadata["submission_time"])
}

func TestNullAndUnknownFieldsAreSkipped(t *testing.T) {
	is, ctx, store, _ := testSetup(t)
	p := New(store)

	result, err := p.Ingest(ctx, testNode(), Input{
		Fields: map[string]any{
			"temperature": nil,
			"co2":         json.Number("400"),
			"light":       json.Number("12000"),
		},
	})

	is.NoErr(err)
	is.Equal(1, result.ReadingsCreated)
	is.Equal(database.Light, store.AddReadingCalls()[0].Reading.SensorKind)
}

func TestNonNumericValueIsRecordedAndSkipped(t *testing.T) {
	is, ctx, store, _ := testSetup(t)
	p := New(store)

	result, err := p.Ingest(ctx, testNode(), Input{
		Fields: map[string]any{
			"temperature": "warm",
			"humidity":    true,
			"ec":          "1250.5",
		},
	})

	is.NoErr(err)
	is.Equal(1, result.ReadingsCreated)
	is.Equal(2, len(result.Errors))
}

func TestFieldWithoutActiveSensorIsSkipped(t *testing.T) {
	is, ctx, store, _ := testSetup(t)
	p := New(store)

	_, err := p.Ingest(ctx, testNode(), Input{
		Fields: map[string]any{"voltage": json.Number("3.3")},
	})

	is.True(errors.Is(err, ErrNoValidSensorData))
	is.Equal(0, len(store.AddReadingCalls()))
	is.Equal(0, len(store.UpdateLastSeenCalls()))
}

func TestPartialPersistenceFailureIsReported(t *testing.T) {
	is, ctx, store, pub := testSetup(t)
	store.AddReadingFunc = func(ctx context.Context, reading *database.Reading) error {
		if reading.SensorKind == database.Humidity {
			return database.ErrRepositoryError
		}
		return nil
	}

	p := New(store, WithPublisher(pub))

	result, err := p.Ingest(ctx, testNode(), Input{
		Fields: map[string]any{
			"temperature": json.Number("20"),
			"humidity":    json.Number("50"),
			"ph":          json.Number("7"),
		},
	})

	is.True(errors.Is(err, ErrPersistenceFailed))
	is.Equal(2, result.ReadingsCreated)
	is.Equal(1, result.PersistenceFailures)
	is.Equal(1, len(store.UpdateLastSeenCalls()))
}

func TestReactivatedNodePublishesStatusChange(t *testing.T) {
	is, ctx, store, pub := testSetup(t)
	store.UpdateLastSeenFunc = func(ctx context.Context, nodeID string, seen time.Time) (bool, error) {
		return true, nil
	}

	sent := make(chan types.NodeStatusChanged, 1)
	sender := &events.EventSenderMock{
		SendReadingsFunc: func(ctx context.Context, message types.ReadingsCreated) error {
			return nil
		},
		SendNodeStatusFunc: func(ctx context.Context, message types.NodeStatusChanged) error {
			sent <- message
			return nil
		},
	}

	p := New(store, WithPublisher(pub), WithEventSender(sender))

	_, err := p.Ingest(ctx, testNode(), Input{Fields: map[string]any{"temperature": json.Number("20")}})
	is.NoErr(err)

	is.Equal(2, len(pub.PublishOnTopicCalls()))
	is.Equal("node.statusChanged", pub.PublishOnTopicCalls()[1].Message.TopicName())

	select {
	case msg := <-sent:
		is.Equal("active", msg.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("node status notification was not sent")
	}
}

func TestPublishFailureDoesNotFailIngestion(t *testing.T) {
	is, ctx, store, pub := testSetup(t)
	pub.PublishOnTopicFunc = func(ctx context.Context, message messaging.TopicMessage) error {
		return errors.New("broker down")
	}

	p := New(store, WithPublisher(pub))

	result, err := p.Ingest(ctx, testNode(), Input{Fields: map[string]any{"temperature": json.Number("20")}})
	is.NoErr(err)
	is.Equal(1, result.ReadingsCreated)
}

func TestIngestWithSQLite(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	repo, err := database.New(database.NewSQLiteConnector(zerolog.Nop()))
	is.NoErr(err)
	is.NoErr(repo.SeedNodes(ctx, []database.Node{testNode()}))

	s := database.NewSensor("gh001-temp", "greenhouse_001", database.Temperature)
	s.CalibrationMultiplier = decimal.RequireFromString("2")
	is.NoErr(repo.SaveSensor(ctx, &s))

	p := New(repo, WithClock(func() time.Time { return testNow }))

	result, err := p.Ingest(ctx, testNode(), Input{Fields: map[string]any{"temperature": json.Number("10.25")}})
	is.NoErr(err)
	is.Equal(1, result.ReadingsCreated)

	latest, err := repo.GetLatestReadings(ctx, "greenhouse_001")
	is.NoErr(err)
	is.Equal(1, len(latest))
	is.True(latest[0].Value.Equal(decimal.RequireFromString("20.5")))

	node, err := repo.GetNodeByID(ctx, "greenhouse_001")
	is.NoErr(err)
	is.True(node.LastSeen.Equal(testNow))
}

func testNode() database.Node {
	return database.Node{
		NodeID:          "greenhouse_001",
		APIKey:          "gh001_api_key_abc123",
		FirmwareVersion: "1.2.0",
		Status:          database.NodeStatusActive,
	}
}

func testSetup(t *testing.T) (*is.I, context.Context, *ReadingStoreMock, *EventPublisherMock) {
	is := is.New(t)

	zoneA := "zone_a"

	sensors := map[database.SensorKind]database.Sensor{}
	for _, k := range []database.SensorKind{database.Temperature, database.Humidity, database.Light, database.PH, database.EC} {
		s := database.NewSensor("gh001-"+string(k), "greenhouse_001", k)
		s.ZoneID = &zoneA
		sensors[k] = s
	}

	temp := sensors[database.Temperature]
	temp.CalibrationOffset = decimal.RequireFromString("0.5")
	sensors[database.Temperature] = temp

	store := &ReadingStoreMock{
		GetActiveSensorFunc: func(ctx context.Context, nodeID string, kind database.SensorKind) (database.Sensor, error) {
			if s, ok := sensors[kind]; ok {
				return s, nil
			}
			return database.Sensor{}, database.ErrSensorNotFound
		},
		AddReadingFunc: func(ctx context.Context, reading *database.Reading) error {
			return nil
		},
		UpdateLastSeenFunc: func(ctx context.Context, nodeID string, seen time.Time) (bool, error) {
			return false, nil
		},
	}

	pub := &EventPublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	return is, context.Background(), store, pub
}
