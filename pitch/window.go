// SPDX-License-Identifier: EPL-2.0

package pitch

import "sync"

// Window is a fixed-size ring of the most recent mono samples.
// Writes and snapshots may come from different goroutines.
type Window struct {
	data     []float32
	writePos int
	size     int
	total    uint64

	mu sync.Mutex
}

// NewWindow returns a window holding the last capacity samples.
func NewWindow(capacity int) *Window {
	return &Window{data: make([]float32, max(capacity, 1))}
}

// Write appends samples, overwriting the oldest once full.
func (w *Window) Write(samples []float32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(samples)
	if n == 0 {
		return
	}
	w.total += uint64(n)

	capacity := len(w.data)
	if n >= capacity {
		copy(w.data, samples[n-capacity:])
		w.writePos = 0
		w.size = capacity
		return
	}

	spaceToEnd := capacity - w.writePos
	if n <= spaceToEnd {
		copy(w.data[w.writePos:], samples)
		w.writePos = (w.writePos + n) % capacity
	} else {
		copy(w.data[w.writePos:], samples[:spaceToEnd])
		copy(w.data, samples[spaceToEnd:])
		w.writePos = n - spaceToEnd
	}

	w.size = min(w.size+n, capacity)
}

// Snapshot copies the buffered samples, oldest first, into dst and returns
// the filled prefix. dst is grown when too small.
func (w *Window) Snapshot(dst []float32) []float32 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if cap(dst) < w.size {
		dst = make([]float32, w.size)
	}
	dst = dst[:w.size]

	if w.size < len(w.data) {
		copy(dst, w.data[:w.size])
		return dst
	}
	n := copy(dst, w.data[w.writePos:])
	copy(dst[n:], w.data[:w.writePos])
	return dst
}

// Full reports whether the window holds Capacity samples.
func (w *Window) Full() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size == len(w.data)
}

// Written returns the total number of samples ever written.
func (w *Window) Written() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

// Reset empties the window.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writePos = 0
	w.size = 0
	w.total = 0
}

// Capacity returns the window length.
func (w *Window) Capacity() int {
	return len(w.data)
}
