package jsdev

import "errors"

var (
	ErrOsNotSupported = errors.New("jsdev: os is not supported (yet)")
	ErrNotJoystick    = errors.New("jsdev: not a joystick device")
	ErrDeviceClosed   = errors.New("jsdev: device closed")
	ErrAxisOutOfRange = errors.New("jsdev: axis out of range")
)
