package events

import (
	"context"
	"errors"
	"fmt"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/pkg/types"
	"golang.org/x/sys/unix"
)

const (
	SensorReadingType string = "greenhouse.sensorReading"
	NodeStatusType    string = "greenhouse.nodeStatus"
	eventSource       string = "github.com/diwise/iot-greenhouse-ingest"
)

//go:generate moq -rm -out events_mock.go . EventSender

type EventSender interface {
	SendReadings(ctx context.Context, message types.ReadingsCreated) error
	SendNodeStatus(ctx context.Context, message types.NodeStatusChanged) error
}

type eventSender struct {
	subscribers map[string][]SubscriberConfig
	client      cloudevents.Client
}

func New(cfg *Config) (EventSender, error) {
	e := &eventSender{
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			e.subscribers[s.Type] = append(e.subscribers[s.Type], s.Subscribers...)
		}
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, err
	}
	e.client = c

	return e, nil
}

func (e *eventSender) SendReadings(ctx context.Context, message types.ReadingsCreated) error {
	if len(e.subscribers[SensorReadingType]) == 0 {
		return nil
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%d", message.NodeID, message.Timestamp.UnixNano()))
	event.SetTime(message.Timestamp)
	event.SetSource(eventSource)
	event.SetType(SensorReadingType)

	if err := event.SetData(cloudevents.ApplicationJSON, message); err != nil {
		return err
	}

	return e.send(ctx, SensorReadingType, message.NodeID, event)
}

func (e *eventSender) SendNodeStatus(ctx context.Context, message types.NodeStatusChanged) error {
	if len(e.subscribers[NodeStatusType]) == 0 {
		return nil
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%s:%d", message.NodeID, message.Status, message.Timestamp.Unix()))
	event.SetTime(message.Timestamp)
	event.SetSource(eventSource)
	event.SetType(NodeStatusType)

	if err := event.SetData(cloudevents.ApplicationJSON, message); err != nil {
		return err
	}

	return e.send(ctx, NodeStatusType, message.NodeID, event)
}

func (e *eventSender) send(ctx context.Context, eventType, nodeID string, event cloudevents.Event) error {
	var err error

	logger := logging.GetLoggerFromContext(ctx)

	for _, s := range e.subscribers[eventType] {
		if !s.wants(nodeID) {
			continue
		}

		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := e.client.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error().Err(result).Msgf("failed to send event to %s", s.Endpoint)
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}
