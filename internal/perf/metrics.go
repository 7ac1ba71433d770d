// Package perf tracks rolling frame-time statistics for the running game,
// flags anomalies against configurable thresholds, and aggregates flagged
// issues into time-bounded analyses with tuning recommendations.
package perf

import "time"

// FrameEntry is one rendered frame's timing sample. Immutable once created.
type FrameEntry struct {
	Timestamp time.Time
	FrameTime float64 // milliseconds spent producing the frame
	DeltaTime float64 // milliseconds since the previous frame
	FPS       float64 // instantaneous rate derived from DeltaTime
}

// Metrics is a per-tick snapshot of derived performance state.
type Metrics struct {
	CurrentFPS       float64
	AverageFrameTime float64 // milliseconds, over the current window
	MemoryUsage      float64 // heap fraction in [0, 1]; 0 means unknown
	StutterCount     int
	LastStutterTime  time.Time
	PerformanceScore float64 // 0-100
}

// IssueType classifies a detected performance anomaly.
type IssueType string

const (
	IssueStutter        IssueType = "stutter"
	IssueLowFPS         IssueType = "low_fps"
	IssueCriticalFPS    IssueType = "critical_fps"
	IssueMemoryPressure IssueType = "memory_pressure"
)

// Severity grades how urgent an issue is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is a single detected anomaly. It carries the metrics snapshot that
// triggered it so the analyzer can aggregate without re-deriving state.
// Never mutated after creation.
type Issue struct {
	Type      IssueType
	Severity  Severity
	Timestamp time.Time
	Metrics   Metrics
}
