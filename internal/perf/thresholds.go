package perf

import "time"

// Thresholds is the configuration value object the detector evaluates
// samples against. Fields are plain values; no range validation is applied
// beyond what YAML decoding enforces.
type Thresholds struct {
	MinFPS                  float64       `yaml:"min_fps"`
	MaxFrameTime            float64       `yaml:"max_frame_time_ms"`
	StutterThreshold        float64       `yaml:"stutter_threshold_ms"`
	MemoryPressureThreshold float64       `yaml:"memory_pressure_threshold"` // heap fraction 0..1
	PerformanceIssueWindow  time.Duration `yaml:"performance_issue_window"`
	LowFPSThreshold         float64       `yaml:"low_fps_threshold"`
	CriticalFPSThreshold    float64       `yaml:"critical_fps_threshold"`
}

// DefaultThresholds returns the stock threshold set, tuned for a 60 FPS
// terminal client.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinFPS:                  30,
		MaxFrameTime:            33.4,
		StutterThreshold:        50,
		MemoryPressureThreshold: 0.8,
		PerformanceIssueWindow:  10 * time.Second,
		LowFPSThreshold:         45,
		CriticalFPSThreshold:    15,
	}
}

// ThresholdOverrides is a partial threshold update. Nil fields leave the
// prior value untouched; set fields win unconditionally.
type ThresholdOverrides struct {
	MinFPS                  *float64       `yaml:"min_fps"`
	MaxFrameTime            *float64       `yaml:"max_frame_time_ms"`
	StutterThreshold        *float64       `yaml:"stutter_threshold_ms"`
	MemoryPressureThreshold *float64       `yaml:"memory_pressure_threshold"`
	PerformanceIssueWindow  *time.Duration `yaml:"performance_issue_window"`
	LowFPSThreshold         *float64       `yaml:"low_fps_threshold"`
	CriticalFPSThreshold    *float64       `yaml:"critical_fps_threshold"`
}

// Merge applies the provided overrides field by field and returns the result.
func (t Thresholds) Merge(o ThresholdOverrides) Thresholds {
	if o.MinFPS != nil {
		t.MinFPS = *o.MinFPS
	}
	if o.MaxFrameTime != nil {
		t.MaxFrameTime = *o.MaxFrameTime
	}
	if o.StutterThreshold != nil {
		t.StutterThreshold = *o.StutterThreshold
	}
	if o.MemoryPressureThreshold != nil {
		t.MemoryPressureThreshold = *o.MemoryPressureThreshold
	}
	if o.PerformanceIssueWindow != nil {
		t.PerformanceIssueWindow = *o.PerformanceIssueWindow
	}
	if o.LowFPSThreshold != nil {
		t.LowFPSThreshold = *o.LowFPSThreshold
	}
	if o.CriticalFPSThreshold != nil {
		t.CriticalFPSThreshold = *o.CriticalFPSThreshold
	}
	return t
}
