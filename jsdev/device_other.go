//go:build !linux

package jsdev

import "context"

// Open is only implemented on Linux.
func Open(path string) (*Device, error) {
	return nil, ErrOsNotSupported
}

// Watch is only implemented on Linux.
func Watch(ctx context.Context, filters ...FilterFunc) (<-chan Event, <-chan error, error) {
	return nil, nil, ErrOsNotSupported
}
