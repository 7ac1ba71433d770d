package perf

import (
	"runtime"
	"time"
)

// Monitor ties the frame window, detector, and analyzer into the per-frame
// pipeline: sample, detect, record. It is driven once per tick from the
// platform loop; nothing here is safe for concurrent use and nothing needs
// to be.
type Monitor struct {
	window      *FrameWindow
	detector    *Detector
	analyzer    *Analyzer
	heapBudget  uint64 // bytes; 0 disables memory pressure detection
	lastStutter time.Time
}

// NewMonitor creates a monitor with the given thresholds and window size.
func NewMonitor(t Thresholds, windowSize int) *Monitor {
	return &Monitor{
		window:   NewFrameWindow(windowSize),
		detector: NewDetector(t),
		analyzer: NewAnalyzer(t),
	}
}

// SetHeapBudget sets the soft heap budget used to derive the memory usage
// fraction. Zero means "unknown": usage reports 0 and memory pressure
// never fires, rather than false-positiving on a missing signal.
func (m *Monitor) SetHeapBudget(bytes uint64) {
	m.heapBudget = bytes
}

// SetThresholds replaces the thresholds on the detector and analyzer.
func (m *Monitor) SetThresholds(t Thresholds) {
	m.detector.SetThresholds(t)
	m.analyzer.SetThresholds(t)
}

// Thresholds returns the currently active thresholds.
func (m *Monitor) Thresholds() Thresholds {
	return m.detector.Thresholds()
}

// Window exposes the frame window, primarily for the HUD overlay.
func (m *Monitor) Window() *FrameWindow {
	return m.window
}

// Analyzer exposes the analyzer for reports and summaries.
func (m *Monitor) Analyzer() *Analyzer {
	return m.analyzer
}

// Sample records one frame: builds the entry, updates the window, derives a
// metrics snapshot, runs detection, and feeds the analyzer. The detected
// issues (possibly none) are returned for immediate reaction, e.g. dropping
// a quality tier.
func (m *Monitor) Sample(now time.Time, delta time.Duration) (Metrics, []Issue) {
	deltaMs := float64(delta) / float64(time.Millisecond)
	fps := 0.0
	if deltaMs > 0 {
		fps = 1000 / deltaMs
	}

	entry := FrameEntry{
		Timestamp: now,
		FrameTime: deltaMs,
		DeltaTime: deltaMs,
		FPS:       fps,
	}
	m.window.AddEntry(entry)

	metrics := Metrics{
		CurrentFPS:       fps,
		AverageFrameTime: m.window.AverageFrameTime(),
		MemoryUsage:      m.memoryUsage(),
		StutterCount:     m.window.StutterCount(),
		LastStutterTime:  m.lastStutter,
		PerformanceScore: m.analyzer.PerformanceScore(m.window),
	}

	issues := m.detector.DetectIssues(metrics, entry)
	for _, is := range issues {
		if is.Type == IssueStutter {
			m.window.RecordStutter()
			m.lastStutter = now
		}
	}

	m.analyzer.AddMetrics(now, metrics)
	m.analyzer.AddIssues(issues)
	return metrics, issues
}

// Reset clears the window, detector counters, and analyzer histories.
func (m *Monitor) Reset() {
	m.window.Clear()
	m.detector.Reset()
	m.analyzer.ClearHistory()
	m.lastStutter = time.Time{}
}

// memoryUsage returns the current heap allocation as a fraction of the
// configured budget, or 0 when no budget is set.
func (m *Monitor) memoryUsage() float64 {
	if m.heapBudget == 0 {
		return 0
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	usage := float64(ms.HeapAlloc) / float64(m.heapBudget)
	if usage > 1 {
		usage = 1
	}
	return usage
}
