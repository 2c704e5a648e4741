package jsdev

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// pollTimeoutMs bounds how long the watcher waits before checking ctx.
const pollTimeoutMs = 250

// Watch reports joystick nodes under /dev/input. Nodes present when Watch
// is called are reported as connected first, then hot-plug events follow
// until ctx is cancelled. Both channels are closed when the watcher stops.
func Watch(ctx context.Context, filters ...FilterFunc) (<-chan Event, <-chan error, error) {
	return watch(ctx, inputPath, filters...)
}

func watch(ctx context.Context, root string, filters ...FilterFunc) (<-chan Event, <-chan error, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, nil, fmt.Errorf("inotify init failed: %w", err)
	}

	wd, err := unix.InotifyAddWatch(fd, root, unix.IN_CREATE|unix.IN_DELETE)
	if err != nil {
		_ = unix.Close(fd)
		return nil, nil, fmt.Errorf("inotify add watch failed: %w", err)
	}

	current, err := os.ReadDir(root)
	if err != nil {
		_, _ = unix.InotifyRmWatch(fd, uint32(wd))
		_ = unix.Close(fd)
		return nil, nil, err
	}

	events := make(chan Event)
	errs := make(chan error, 1)

	w := &watcher{
		ctx:     ctx,
		root:    root,
		fd:      fd,
		events:  events,
		errs:    errs,
		filters: filters,
	}

	go func() {
		defer close(errs)
		defer close(events)
		defer func() {
			_, _ = unix.InotifyRmWatch(fd, uint32(wd))
			_ = unix.Close(fd)
		}()

		for _, entry := range current {
			if isJoystickName(entry.Name()) && !w.emit(ConnectEventType, entry.Name()) {
				return
			}
		}
		w.loop()
	}()

	return events, errs, nil
}

type watcher struct {
	ctx     context.Context
	root    string
	fd      int
	events  chan<- Event
	errs    chan<- error
	filters []FilterFunc
}

func (w *watcher) loop() {
	buf := make([]byte, 4096)
	fds := []unix.PollFd{{Fd: int32(w.fd), Events: unix.POLLIN}}

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		n, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			w.fail(fmt.Errorf("poll failed: %w", err))
			return
		}
		if n == 0 {
			continue
		}

		n, err = unix.Read(w.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			w.fail(fmt.Errorf("read failed: %w", err))
			return
		}

		for _, ev := range parseInotify(buf[:n]) {
			t, ok := eventTypeFor(ev.mask)
			if !ok || !isJoystickName(ev.name) {
				continue
			}
			if !w.emit(t, ev.name) {
				return
			}
		}
	}
}

// emit delivers an event unless a filter rejects it. It returns false once
// ctx is done.
func (w *watcher) emit(t EventType, name string) bool {
	e := Event{Type: t, Name: name, Path: filepath.Join(w.root, name)}
	for _, filter := range w.filters {
		if !filter(e) {
			return true
		}
	}
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- e:
		return true
	}
}

func (w *watcher) fail(err error) {
	select {
	case w.errs <- err:
	default:
	}
}

func eventTypeFor(mask uint32) (EventType, bool) {
	switch {
	case mask&unix.IN_CREATE != 0:
		return ConnectEventType, true
	case mask&unix.IN_DELETE != 0:
		return DisconnectEventType, true
	default:
		return 0, false
	}
}

type inotifyEvent struct {
	mask uint32
	name string
}

// parseInotify splits a read buffer into inotify records.
func parseInotify(buf []byte) (out []inotifyEvent) {
	var offset int
	for offset+unix.SizeofInotifyEvent <= len(buf) {
		mask := binary.NativeEndian.Uint32(buf[offset+4:])
		nameLen := int(binary.NativeEndian.Uint32(buf[offset+12:]))
		start := offset + unix.SizeofInotifyEvent
		end := start + nameLen
		if end > len(buf) {
			return
		}
		out = append(out, inotifyEvent{
			mask: mask,
			name: escapeString(buf[start:end]),
		})
		offset = end
	}
	return
}
