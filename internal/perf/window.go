package perf

// DefaultWindowSize is the frame window capacity used by the monitor.
const DefaultWindowSize = 120

// FrameWindow is a fixed-capacity ring of the most recent frame entries,
// plus the running stutter count for the monitoring session. Oldest entries
// are evicted first once the window is full.
//
// Single-writer: mutated only by the monitor that owns it, once per tick.
type FrameWindow struct {
	entries  []FrameEntry
	head     int // index of the oldest entry
	size     int
	stutters int
}

// NewFrameWindow creates a window holding at most capacity entries.
// A non-positive capacity falls back to DefaultWindowSize.
func NewFrameWindow(capacity int) *FrameWindow {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &FrameWindow{entries: make([]FrameEntry, capacity)}
}

// Capacity returns the fixed window capacity.
func (w *FrameWindow) Capacity() int {
	return len(w.entries)
}

// Len returns the number of entries currently held.
func (w *FrameWindow) Len() int {
	return w.size
}

// AddEntry appends a frame entry, evicting the oldest entry first when the
// window is at capacity. O(1).
func (w *FrameWindow) AddEntry(e FrameEntry) {
	if w.size == len(w.entries) {
		w.entries[w.head] = e
		w.head = (w.head + 1) % len(w.entries)
		return
	}
	w.entries[(w.head+w.size)%len(w.entries)] = e
	w.size++
}

// Entries returns the current entries oldest-first as a copy.
func (w *FrameWindow) Entries() []FrameEntry {
	out := make([]FrameEntry, w.size)
	for i := 0; i < w.size; i++ {
		out[i] = w.entries[(w.head+i)%len(w.entries)]
	}
	return out
}

// AverageFrameTime returns the arithmetic mean frame time in milliseconds.
// An empty window yields 0.
func (w *FrameWindow) AverageFrameTime() float64 {
	if w.size == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < w.size; i++ {
		sum += w.entries[(w.head+i)%len(w.entries)].FrameTime
	}
	return sum / float64(w.size)
}

// AverageFPS returns the arithmetic mean FPS over the window.
// An empty window yields 0.
func (w *FrameWindow) AverageFPS() float64 {
	if w.size == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < w.size; i++ {
		sum += w.entries[(w.head+i)%len(w.entries)].FPS
	}
	return sum / float64(w.size)
}

// RecordStutter increments the session stutter count.
func (w *FrameWindow) RecordStutter() {
	w.stutters++
}

// StutterCount returns the stutters recorded since creation or Clear.
func (w *FrameWindow) StutterCount() int {
	return w.stutters
}

// Clear drops all entries and resets the stutter count.
// Capacity is configuration and survives.
func (w *FrameWindow) Clear() {
	w.head = 0
	w.size = 0
	w.stutters = 0
}
