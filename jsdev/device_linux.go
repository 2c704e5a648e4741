package jsdev

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	jsName    = 0x80006a13 + (128 << 16)
	jsAxes    = 0x80016a11 /* get number of axes */
	jsButtons = 0x80016a12
	jsVersion = 0x80046a01
	jsAxesMap = 0x80406a32
)

// Open opens a joystick device node such as /dev/input/js0 and starts
// reading it.
func Open(path string) (*Device, error) {
	name := filepath.Base(path)
	if !isJoystickName(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotJoystick, path)
	}

	f, err := openFilePersistent(path)
	if err != nil {
		return nil, err
	}

	info, err := queryInfo(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	info.Name = name
	info.Path = path

	return newDevice(info, f), nil
}

func queryInfo(f *os.File) (info Info, err error) {
	var (
		axes    uint8
		buttons uint8
		axesMap [64]uint8
	)

	if info.Model, err = ioctlStr(f, jsName); err != nil {
		return
	}
	if err = ioctl(f, jsAxes, unsafe.Pointer(&axes)); err != nil {
		return
	}
	if err = ioctl(f, jsButtons, unsafe.Pointer(&buttons)); err != nil {
		return
	}
	if err = ioctl(f, jsVersion, unsafe.Pointer(&info.Version)); err != nil {
		return
	}
	if err = ioctl(f, jsAxesMap, unsafe.Pointer(&axesMap)); err != nil {
		return
	}

	info.Axes = int(axes)
	info.Buttons = int(buttons)
	info.AxesMap = parseAxesMap(axesMap, info.Axes)
	return
}

// ioctl runs through SyscallConn so the file stays in non-blocking mode
// and Close can interrupt the reader.
func ioctl(f *os.File, req uint, dest unsafe.Pointer) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}

	var errno unix.Errno
	err = rc.Control(func(fd uintptr) {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(dest))
	})
	if err != nil {
		return err
	}
	if errno != 0 {
		return fmt.Errorf("ioctl error: %w", errno)
	}
	return nil
}

func ioctlStr(f *os.File, req uint) (string, error) {
	info := make([]byte, 128)
	if err := ioctl(f, req, unsafe.Pointer(&info[0])); err != nil {
		return "", err
	}
	return escapeString(info), nil
}
