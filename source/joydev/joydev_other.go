//go:build !linux

package joydev

import (
	"errors"
	"io"
)

func openDevice(path, id string) (*device, error) {
	return nil, errors.ErrUnsupported
}

func startWatch(dir string, handle func(watchEvent)) (io.Closer, error) {
	return nil, errors.ErrUnsupported
}
