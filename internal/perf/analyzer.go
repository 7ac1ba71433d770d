package perf

import (
	"time"
)

// maxHistory caps both analyzer histories; monitoring for hours must not
// grow memory without bound.
const maxHistory = 1000

// metricSample is one ingested metrics snapshot with its ingestion time.
type metricSample struct {
	At time.Time
	M  Metrics
}

// Analysis is the result of analyzing a trailing time window.
type Analysis struct {
	OverallScore    float64
	Recommendations []string
}

// Summary aggregates a trailing time window into plain counters.
type Summary struct {
	AverageFPS           float64
	StutterEvents        int
	LowFPSEvents         int
	MemoryPressureEvents int
	TotalFrames          int
	PerformanceScore     float64
}

// Analyzer accumulates metric samples and issues and answers time-bounded
// aggregation queries. Both histories are capped with oldest-first eviction.
type Analyzer struct {
	thresholds Thresholds
	metrics    []metricSample
	issues     []Issue
}

// NewAnalyzer creates an analyzer scoring against the given thresholds.
func NewAnalyzer(t Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// SetThresholds replaces the thresholds used for scoring.
func (a *Analyzer) SetThresholds(t Thresholds) {
	a.thresholds = t
}

// AddMetrics ingests one metrics snapshot taken at the given time.
func (a *Analyzer) AddMetrics(at time.Time, m Metrics) {
	a.metrics = append(a.metrics, metricSample{At: at, M: m})
	if len(a.metrics) > maxHistory {
		a.metrics = a.metrics[len(a.metrics)-maxHistory:]
	}
}

// AddIssues ingests detected issues.
func (a *Analyzer) AddIssues(issues []Issue) {
	a.issues = append(a.issues, issues...)
	if len(a.issues) > maxHistory {
		a.issues = a.issues[len(a.issues)-maxHistory:]
	}
}

// HistorySize returns the number of retained metric samples and issues.
func (a *Analyzer) HistorySize() (metrics, issues int) {
	return len(a.metrics), len(a.issues)
}

// ClearHistory drops both histories.
func (a *Analyzer) ClearHistory() {
	a.metrics = nil
	a.issues = nil
}

// PerformanceScore derives a 0-100 score from the window's recent average
// FPS and stutter rate. An empty window is "no evidence of problems" and
// scores a perfect 100.
func (a *Analyzer) PerformanceScore(w *FrameWindow) float64 {
	if w == nil || w.Len() == 0 {
		return 100
	}

	target := a.thresholds.MinFPS * 2 // full marks at twice the floor
	if target <= 0 {
		target = 60
	}
	fpsScore := w.AverageFPS() / target * 100
	if fpsScore > 100 {
		fpsScore = 100
	}

	stutterRate := float64(w.StutterCount()) / float64(w.Len())
	penalty := stutterRate * 50
	if penalty > 50 {
		penalty = 50
	}

	score := fpsScore - penalty
	if score < 0 {
		score = 0
	}
	return score
}

// Analyze filters the histories to the trailing window ending at now,
// computes an aggregate score, and emits recommendations. Rules are ordered
// by urgency; the most severe matching rule always leads the list.
func (a *Analyzer) Analyze(now time.Time, window time.Duration) Analysis {
	cutoff := now.Add(-window)

	var (
		samples  []metricSample
		scoreSum float64
	)
	for _, s := range a.metrics {
		if !s.At.Before(cutoff) {
			samples = append(samples, s)
			scoreSum += s.M.PerformanceScore
		}
	}

	counts := map[IssueType]int{}
	highSeverity := 0
	total := 0
	for _, is := range a.issues {
		if is.Timestamp.Before(cutoff) {
			continue
		}
		counts[is.Type]++
		total++
		if is.Severity == SeverityHigh {
			highSeverity++
		}
	}

	score := 100.0
	if len(samples) > 0 {
		score = scoreSum / float64(len(samples))
	}
	// Each recent issue costs a little on top of the sampled score.
	score -= float64(total) * 0.5
	if score < 0 {
		score = 0
	}

	var recs []string
	switch {
	case total == 0:
		recs = append(recs, "Performance is stable; no issues detected in the analysis window.")
	default:
		if counts[IssueCriticalFPS] > 0 || (total > 0 && highSeverity*2 >= total) {
			recs = append(recs, "Critical performance issues detected; drop to the minimal quality tier immediately.")
		}
		if counts[IssueStutter] >= 5 {
			recs = append(recs, "Frequent stutters detected; reduce per-frame work or enable update batching.")
		}
		if counts[IssueLowFPS]*2 > total {
			recs = append(recs, "Consider reducing visual effects to improve frame rate.")
		}
		if counts[IssueMemoryPressure] > 0 {
			recs = append(recs, "Memory pressure detected; shrink particle budgets and clear cached baselines.")
		}
		if len(recs) == 0 {
			recs = append(recs, "Minor performance issues detected; monitoring continues.")
		}
	}

	return Analysis{OverallScore: score, Recommendations: recs}
}

// SummarizeWindow aggregates the trailing window into counters. Zero input
// yields neutral defaults: no frames, perfect score.
func (a *Analyzer) SummarizeWindow(now time.Time, window time.Duration) Summary {
	cutoff := now.Add(-window)

	var (
		fpsSum   float64
		scoreSum float64
		frames   int
	)
	for _, s := range a.metrics {
		if !s.At.Before(cutoff) {
			fpsSum += s.M.CurrentFPS
			scoreSum += s.M.PerformanceScore
			frames++
		}
	}

	sum := Summary{TotalFrames: frames, PerformanceScore: 100}
	if frames > 0 {
		sum.AverageFPS = fpsSum / float64(frames)
		sum.PerformanceScore = scoreSum / float64(frames)
	}

	for _, is := range a.issues {
		if is.Timestamp.Before(cutoff) {
			continue
		}
		switch is.Type {
		case IssueStutter:
			sum.StutterEvents++
		case IssueLowFPS, IssueCriticalFPS:
			sum.LowFPSEvents++
		case IssueMemoryPressure:
			sum.MemoryPressureEvents++
		}
	}
	return sum
}
