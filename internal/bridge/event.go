package bridge

import (
	"time"

	joystick "github.com/doingharm/go-joystick-events"
)

// Kind names the joystick event that produced an Event.
type Kind string

const (
	// KindChanged is emitted when either axis moved to a new increment.
	KindChanged Kind = "changed"

	// KindIdle is emitted once when the joystick enters idle.
	KindIdle Kind = "idle"
)

// Event is a snapshot of a joystick taken when a handler fired.
type Event struct {
	Kind       Kind      `json:"kind"`
	JoystickID string    `json:"joystick_id"`
	UserID     uint      `json:"user_id"`
	UserState  uint      `json:"user_state"`
	X          int16     `json:"x"`
	Y          int16     `json:"y"`
	Idle       bool      `json:"idle"`
	Time       time.Time `json:"timestamp"`
}

// PositionReader is implemented by axes that expose their increment
// position, such as analog.Axis.
type PositionReader interface {
	Position() int16
}

func position(a joystick.Axis) int16 {
	if p, ok := a.(PositionReader); ok {
		return p.Position()
	}
	return 0
}

func snapshot(kind Kind, id string, j *joystick.Joystick, now time.Time) Event {
	return Event{
		Kind:       kind,
		JoystickID: id,
		UserID:     j.UserID(),
		UserState:  j.UserState(),
		X:          position(j.X()),
		Y:          position(j.Y()),
		Idle:       j.IsIdle(),
		Time:       now,
	}
}
