package joydev

type watchOp uint8

const (
	opCreate watchOp = iota
	opDelete
	opAttrib
)

type watchEvent struct {
	op   watchOp
	name string
}

// trimName drops the NUL padding inotify appends to file names.
func trimName(src []byte) string {
	n := 0
	for _, b := range src {
		if b != 0 {
			src[n] = b
			n++
		}
	}
	return string(src[:n])
}
