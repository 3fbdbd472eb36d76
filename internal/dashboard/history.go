package dashboard

import "sync"

// DefaultHistorySize is the default number of data points to retain per metric.
const DefaultHistorySize = 60

// History keeps recent values per metric in ring buffers for sparklines.
// It is safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	size    int
	metrics map[string]*ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a new history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:    size,
		metrics: make(map[string]*ringBuffer),
	}
}

// Push records a value for the metric.
func (h *History) Push(id string, v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf, ok := h.metrics[id]
	if !ok {
		buf = newRingBuffer(h.size)
		h.metrics[id] = buf
	}
	buf.push(v)
}

// Last returns up to count of the most recent values, oldest first.
func (h *History) Last(id string, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.metrics[id]
	if !ok {
		return nil
	}
	return buf.getLast(count)
}

// Len returns how many values are stored for the metric.
func (h *History) Len(id string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if buf, ok := h.metrics[id]; ok {
		return buf.count
	}
	return 0
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value, overwriting the oldest once full.
func (r *ringBuffer) push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last n values in chronological order.
func (r *ringBuffer) getLast(n int) []float64 {
	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}

	out := make([]float64, n)
	start := (r.head - n + r.size) % r.size
	for i := 0; i < n; i++ {
		out[i] = r.data[(start+i)%r.size]
	}
	return out
}
