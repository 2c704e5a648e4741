package jsdev

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const inputPath = "/dev/input"

func escapeString(src []byte) string {
	n := 0
	for _, b := range src {
		if b != 0 {
			src[n] = b
			n++
		}
	}
	return string(src[:n])
}

// isJoystickName reports whether a /dev/input entry is a js device node.
func isJoystickName(name string) bool {
	if !strings.HasPrefix(name, "js") || len(name) == 2 {
		return false
	}
	for _, r := range name[2:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DevicePath returns the device node path for a js entry name.
func DevicePath(name string) string {
	return filepath.Join(inputPath, name)
}

// openFilePersistent retries while udev has not yet applied permissions to
// a freshly created node.
func openFilePersistent(path string) (f *os.File, err error) {

	for i := 0; i < 5; i++ {
		if f, err = os.OpenFile(path, os.O_RDONLY, 0); err != nil {
			if errors.Is(err, os.ErrPermission) {
				if i == 4 {
					return
				}
				timer := time.NewTimer(200 * time.Millisecond)
				<-timer.C
				timer.Stop()
				continue
			} else {
				return
			}
		}
		break
	}
	return
}

// parseAxesMap returns the ABS_* code of each of the first count axes.
func parseAxesMap(mp [64]uint8, count int) (dest []int) {
	if count > len(mp) {
		count = len(mp)
	}
	for _, m := range mp[:count] {
		dest = append(dest, int(m))
	}
	return
}
