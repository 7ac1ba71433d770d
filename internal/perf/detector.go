package perf

// Detector evaluates metric snapshots against the current thresholds and
// produces issues. Detection is a pure function of (thresholds, sample):
// identical inputs always yield identical issues, and tightening a
// threshold can only add or escalate issues for the same sample.
type Detector struct {
	thresholds Thresholds
	detected   int // informational counter, does not influence detection
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(t Thresholds) *Detector {
	return &Detector{thresholds: t}
}

// Thresholds returns the thresholds currently in force.
func (d *Detector) Thresholds() Thresholds {
	return d.thresholds
}

// SetThresholds replaces the thresholds for subsequent detection calls.
func (d *Detector) SetThresholds(t Thresholds) {
	d.thresholds = t
}

// Detected returns the total number of issues produced since the last Reset.
func (d *Detector) Detected() int {
	return d.detected
}

// Reset clears the informational counters. Thresholds are untouched.
func (d *Detector) Reset() {
	d.detected = 0
}

// DetectIssues checks every condition independently and returns all that
// fire; nothing short-circuits and no matched condition is dropped.
// A single frame can produce several issues.
func (d *Detector) DetectIssues(m Metrics, e FrameEntry) []Issue {
	t := d.thresholds
	var issues []Issue

	if e.FrameTime > t.StutterThreshold {
		sev := SeverityMedium
		if e.FrameTime > 2*t.StutterThreshold {
			sev = SeverityHigh
		}
		issues = append(issues, Issue{
			Type:      IssueStutter,
			Severity:  sev,
			Timestamp: e.Timestamp,
			Metrics:   m,
		})
	}

	if m.CurrentFPS < t.MinFPS {
		// Below the critical floor the issue escalates: it is reported as
		// critical_fps at high severity instead of a plain low_fps.
		if m.CurrentFPS < t.CriticalFPSThreshold {
			issues = append(issues, Issue{
				Type:      IssueCriticalFPS,
				Severity:  SeverityHigh,
				Timestamp: e.Timestamp,
				Metrics:   m,
			})
		} else {
			issues = append(issues, Issue{
				Type:      IssueLowFPS,
				Severity:  SeverityMedium,
				Timestamp: e.Timestamp,
				Metrics:   m,
			})
		}
	}

	if m.MemoryUsage > t.MemoryPressureThreshold {
		sev := SeverityMedium
		if m.MemoryUsage > 0.95 {
			sev = SeverityHigh
		}
		issues = append(issues, Issue{
			Type:      IssueMemoryPressure,
			Severity:  sev,
			Timestamp: e.Timestamp,
			Metrics:   m,
		})
	}

	d.detected += len(issues)
	return issues
}
