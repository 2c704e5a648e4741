package jsdev

import (
	"encoding/binary"
	"fmt"
)

type EventType uint8

const (
	ConnectEventType EventType = iota
	DisconnectEventType
)

func (t EventType) String() string {
	switch t {
	case ConnectEventType:
		return "connect"
	case DisconnectEventType:
		return "disconnect"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// Event reports a joystick device node appearing or disappearing.
type Event struct {
	Type EventType
	Name string
	Path string
}

// FilterFunc decides whether an Event is delivered. All filters must pass.
type FilterFunc func(e Event) bool

type ControlType uint8

const (
	Button       ControlType = 0x01
	Axes         ControlType = 0x02
	InitialState ControlType = 0x80
)

// eventSize is the size of struct js_event.
const eventSize = 8

// controlEvent mirrors struct js_event.
type controlEvent struct {
	Timestamp uint32
	Value     int16
	Type      ControlType
	Index     uint8
}

func (e controlEvent) isAxis() bool {
	return e.Type&^InitialState == Axes
}

func (e controlEvent) isInit() bool {
	return e.Type&InitialState != 0
}

func decodeEvent(b []byte) (controlEvent, error) {
	if len(b) < eventSize {
		return controlEvent{}, fmt.Errorf("short js event: %d bytes", len(b))
	}
	return controlEvent{
		Timestamp: binary.LittleEndian.Uint32(b[0:4]),
		Value:     int16(binary.LittleEndian.Uint16(b[4:6])),
		Type:      ControlType(b[6]),
		Index:     b[7],
	}, nil
}

// Resolution is the full scale of a Channel reading.
const Resolution = 1024

// scale maps a signed device axis value onto 0..Resolution-1.
func scale(v int16) uint16 {
	return uint16((int32(v) + 32768) >> 6)
}
