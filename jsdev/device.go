package jsdev

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Device is an open joystick device. A reader goroutine keeps the latest
// value of every axis so Channels can be sampled from a polling loop
// without blocking.
type Device struct {
	info Info
	rc   io.ReadCloser

	axes []atomic.Int32

	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}

	mu     sync.Mutex
	err    error
	closed bool
}

func newDevice(info Info, rc io.ReadCloser) *Device {
	d := &Device{
		info:  info,
		rc:    rc,
		axes:  make([]atomic.Int32, info.Axes),
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
	if info.Axes == 0 {
		d.markReady()
	}
	go d.read()
	return d
}

func (d *Device) markReady() {
	d.readyOnce.Do(func() { close(d.ready) })
}

// read decodes js events until the device is closed or unplugged. The
// kernel sends one InitialState event per axis first; Ready is closed once
// all of them arrived or a live event shows up.
func (d *Device) read() {
	defer close(d.done)
	defer d.markReady()

	seen := make([]bool, len(d.axes))
	pending := len(d.axes)
	buf := make([]byte, eventSize)

	for {
		if _, err := io.ReadFull(d.rc, buf); err != nil {
			d.setErr(err)
			return
		}
		e, err := decodeEvent(buf)
		if err != nil {
			d.setErr(err)
			return
		}

		if !e.isInit() {
			d.markReady()
		}
		if !e.isAxis() || int(e.Index) >= len(d.axes) {
			continue
		}
		d.axes[e.Index].Store(int32(e.Value))

		if e.isInit() && !seen[e.Index] {
			seen[e.Index] = true
			pending--
			if pending == 0 {
				d.markReady()
			}
		}
	}
}

func (d *Device) setErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || errors.Is(err, os.ErrClosed) {
		return
	}
	d.err = err
}

// Info returns the device description queried at Open.
func (d *Device) Info() Info { return d.info }

// Ready is closed once the initial value of every axis has been read.
func (d *Device) Ready() <-chan struct{} { return d.ready }

// Done is closed when the reader stops, on Close or when the device goes
// away.
func (d *Device) Done() <-chan struct{} { return d.done }

// Err returns the error that stopped the reader, if any. It is nil after a
// normal Close.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Close stops the reader and releases the device.
func (d *Device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDeviceClosed
	}
	d.closed = true
	d.mu.Unlock()

	return d.rc.Close()
}

// Channel returns axis index as an analog channel.
func (d *Device) Channel(index int) (*Channel, error) {
	if index < 0 || index >= len(d.axes) {
		return nil, ErrAxisOutOfRange
	}
	return &Channel{dev: d, index: index}, nil
}

// Raw returns the last signed value reported for axis index.
func (d *Device) Raw(index int) int16 {
	if index < 0 || index >= len(d.axes) {
		return 0
	}
	return int16(d.axes[index].Load())
}
