package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/doingharm/go-joystick-events/internal/influxdb"
	"github.com/doingharm/go-joystick-events/internal/mqtt"
)

// Sink receives every event the bridge delivers.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event) error

// Publish calls f(ctx, e).
func (f SinkFunc) Publish(ctx context.Context, e Event) error { return f(ctx, e) }

// Publisher is the subset of the MQTT client used by MQTTSink.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	QoS() byte
}

// MQTTSink publishes events as JSON to <prefix>/<joystick>/<kind>.
type MQTTSink struct {
	client Publisher
	topics mqtt.Topics
}

// NewMQTTSink returns a sink publishing through client.
func NewMQTTSink(client Publisher, topics mqtt.Topics) *MQTTSink {
	return &MQTTSink{client: client, topics: topics}
}

// Publish implements Sink.
func (s *MQTTSink) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshalling %s event: %w", e.Kind, err)
	}

	return s.client.Publish(s.topics.Event(e.JoystickID, string(e.Kind)), payload, s.client.QoS(), false)
}

// EventWriter is the subset of the InfluxDB client used by InfluxSink.
type EventWriter interface {
	WriteJoystickEvent(e influxdb.JoystickEvent)
}

// InfluxSink records events as time-series points.
type InfluxSink struct {
	writer EventWriter
}

// NewInfluxSink returns a sink writing through w.
func NewInfluxSink(w EventWriter) *InfluxSink {
	return &InfluxSink{writer: w}
}

// Publish implements Sink. Writes are batched by the client, so Publish
// never fails.
func (s *InfluxSink) Publish(_ context.Context, e Event) error {
	s.writer.WriteJoystickEvent(influxdb.JoystickEvent{
		JoystickID: e.JoystickID,
		Kind:       string(e.Kind),
		X:          e.X,
		Y:          e.Y,
		UserID:     e.UserID,
		UserState:  e.UserState,
		Idle:       e.Idle,
		Time:       e.Time,
	})
	return nil
}

// LogSink logs every event at debug level.
type LogSink struct {
	logger Logger
}

// NewLogSink returns a sink logging to logger.
func NewLogSink(logger Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Publish implements Sink.
func (s *LogSink) Publish(_ context.Context, e Event) error {
	s.logger.Debug("joystick event",
		"kind", e.Kind,
		"joystick_id", e.JoystickID,
		"x", e.X,
		"y", e.Y,
		"idle", e.Idle,
		"user_state", e.UserState,
	)
	return nil
}
