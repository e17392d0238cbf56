package tracking

import "sync"

// SignalRing is a fixed-size circular buffer of signal readings.
type SignalRing struct {
	buf   []float64
	pos   int
	count int
}

// NewSignalRing creates a ring holding at most capacity readings.
func NewSignalRing(capacity int) *SignalRing {
	if capacity < 1 {
		capacity = 1
	}
	return &SignalRing{buf: make([]float64, capacity)}
}

// Push records a reading, overwriting the oldest once full.
func (r *SignalRing) Push(val float64) {
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns the readings oldest first.
func (r *SignalRing) Values() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	if r.count < len(r.buf) {
		copy(out, r.buf[:r.count])
		return out
	}
	n := copy(out, r.buf[r.pos:])
	copy(out[n:], r.buf[:r.pos])
	return out
}

// Last returns the newest reading, or 0 if empty.
func (r *SignalRing) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.buf[(r.pos-1+len(r.buf))%len(r.buf)]
}

// Len returns the number of stored readings.
func (r *SignalRing) Len() int {
	return r.count
}

// SignalHistory keeps one ring per ball id.
type SignalHistory struct {
	mu       sync.Mutex
	capacity int
	rings    map[string]*SignalRing
}

// NewSignalHistory creates per-ball histories of the given capacity.
func NewSignalHistory(capacity int) *SignalHistory {
	return &SignalHistory{capacity: capacity, rings: make(map[string]*SignalRing)}
}

// Record appends the current signal of every ball and drops histories of
// balls no longer connected.
func (h *SignalHistory) Record(balls []TrackedBall) {
	h.mu.Lock()
	defer h.mu.Unlock()

	live := make(map[string]bool, len(balls))
	for _, b := range balls {
		live[b.ID] = true
		r, ok := h.rings[b.ID]
		if !ok {
			r = NewSignalRing(h.capacity)
			h.rings[b.ID] = r
		}
		r.Push(float64(b.SignalDBm))
	}
	for id := range h.rings {
		if !live[id] {
			delete(h.rings, id)
		}
	}
}

// Values returns the readings for id oldest first.
func (h *SignalHistory) Values(id string) []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rings[id]
	if !ok {
		return nil
	}
	return r.Values()
}
