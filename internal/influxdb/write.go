package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// measurementJoystickEvents is the measurement all joystick events are
// written to.
const measurementJoystickEvents = "joystick_events"

// JoystickEvent is one dispatched joystick event.
type JoystickEvent struct {
	JoystickID string
	Kind       string
	X, Y       int16
	UserID     uint
	UserState  uint
	Idle       bool
	Time       time.Time
}

// WriteJoystickEvent queues e for the next batch. It does nothing when the
// client is not connected.
func (c *Client) WriteJoystickEvent(e JoystickEvent) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(newEventPoint(e))
}

// newEventPoint tags by joystick and kind; positions and state are fields.
func newEventPoint(e JoystickEvent) *write.Point {
	ts := e.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	return write.NewPoint(
		measurementJoystickEvents,
		map[string]string{
			"joystick_id": e.JoystickID,
			"kind":        e.Kind,
		},
		map[string]interface{}{
			"x":          int64(e.X),
			"y":          int64(e.Y),
			"user_id":    int64(e.UserID),
			"user_state": int64(e.UserState),
			"idle":       e.Idle,
		},
		ts,
	)
}
