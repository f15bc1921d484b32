package testing

import "sync"

// Recorder collects labelled callback invocations.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// Func returns a callback that records label each time it runs.
func (r *Recorder) Func(label string) func() {
	return func() {
		r.mu.Lock()
		r.events = append(r.events, label)
		r.mu.Unlock()
	}
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Count reports how many times label was recorded.
func (r *Recorder) Count(label string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == label {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
