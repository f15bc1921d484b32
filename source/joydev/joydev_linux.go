//go:build linux

package joydev

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	nameLen      = 128
	jsiocgAxes   = 0x80016a11
	jsiocgButton = 0x80016a12
	jsiocgName   = 0x80006a13 + (nameLen << 16)
)

func openDevice(path, id string) (*device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	var buttons, axes uint8
	name := make([]byte, nameLen)
	rc, err := f.SyscallConn()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	var ioctlErr error
	err = rc.Control(func(fd uintptr) {
		if ioctlErr = ioctl(fd, jsiocgButton, unsafe.Pointer(&buttons)); ioctlErr != nil {
			return
		}
		if ioctlErr = ioctl(fd, jsiocgAxes, unsafe.Pointer(&axes)); ioctlErr != nil {
			return
		}
		ioctlErr = ioctl(fd, jsiocgName, unsafe.Pointer(&name[0]))
	})
	if err == nil {
		err = ioctlErr
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("query %s: %w", path, err)
	}

	return newDevice(id, trimName(name), int(buttons), int(axes), f), nil
}

func ioctl(fd uintptr, req uint, dest unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(dest))
	if errno != 0 {
		return errno
	}
	return nil
}

func startWatch(dir string, handle func(watchEvent)) (io.Closer, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, fmt.Errorf("inotify init failed: %w", err)
	}
	if _, err := unix.InotifyAddWatch(fd, dir, unix.IN_CREATE|unix.IN_DELETE|unix.IN_ATTRIB); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("inotify add watch failed: %w", err)
	}

	f := os.NewFile(uintptr(fd), "inotify")
	go watch(f, handle)
	return f, nil
}

func watch(f *os.File, handle func(watchEvent)) {
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		if err != nil {
			return
		}

		var offset uint32
		for offset+unix.SizeofInotifyEvent <= uint32(n) {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			start := offset + unix.SizeofInotifyEvent
			end := start + event.Len
			if end > uint32(n) {
				break
			}
			name := trimName(buf[start:end])
			offset = end

			switch {
			case event.Mask&unix.IN_CREATE != 0:
				handle(watchEvent{op: opCreate, name: name})
			case event.Mask&unix.IN_DELETE != 0:
				handle(watchEvent{op: opDelete, name: name})
			case event.Mask&unix.IN_ATTRIB != 0:
				handle(watchEvent{op: opAttrib, name: name})
			}
		}
	}
}
