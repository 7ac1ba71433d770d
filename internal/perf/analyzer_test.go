package perf

import (
	"strings"
	"testing"
	"time"
)

func TestAnalyzerHistoryCap(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	base := time.UnixMilli(0)

	for i := 0; i < maxHistory+200; i++ {
		at := base.Add(time.Duration(i) * time.Millisecond)
		a.AddMetrics(at, Metrics{CurrentFPS: float64(i)})
		a.AddIssues([]Issue{{Type: IssueStutter, Timestamp: at}})
	}

	metrics, issues := a.HistorySize()
	if metrics != maxHistory {
		t.Errorf("metrics history = %d, expected %d", metrics, maxHistory)
	}
	if issues != maxHistory {
		t.Errorf("issues history = %d, expected %d", issues, maxHistory)
	}
}

func TestPerformanceScoreEmptyWindow(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	if got := a.PerformanceScore(NewFrameWindow(10)); got != 100 {
		t.Errorf("PerformanceScore(empty) = %v, expected 100", got)
	}
	if got := a.PerformanceScore(nil); got != 100 {
		t.Errorf("PerformanceScore(nil) = %v, expected 100", got)
	}
}

func TestPerformanceScoreOrdering(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())

	fast := NewFrameWindow(10)
	slow := NewFrameWindow(10)
	for i := 0; i < 10; i++ {
		fast.AddEntry(FrameEntry{FrameTime: 16.7, FPS: 60})
		slow.AddEntry(FrameEntry{FrameTime: 50, FPS: 20})
	}

	if a.PerformanceScore(fast) <= a.PerformanceScore(slow) {
		t.Errorf("60 FPS window should outscore 20 FPS window: %v vs %v",
			a.PerformanceScore(fast), a.PerformanceScore(slow))
	}

	// Stutters lower the score for otherwise identical windows.
	clean := a.PerformanceScore(fast)
	fast.RecordStutter()
	fast.RecordStutter()
	if a.PerformanceScore(fast) >= clean {
		t.Errorf("stutters should lower score: %v >= %v", a.PerformanceScore(fast), clean)
	}
}

func TestAnalyzeNoIssuesIsStable(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	now := time.UnixMilli(10_000)
	a.AddMetrics(now, Metrics{CurrentFPS: 60, PerformanceScore: 95})

	res := a.Analyze(now, 5*time.Second)
	if len(res.Recommendations) != 1 || !strings.Contains(res.Recommendations[0], "stable") {
		t.Errorf("expected single stable recommendation, got %v", res.Recommendations)
	}
	if res.OverallScore < 90 {
		t.Errorf("OverallScore = %v, expected near 95", res.OverallScore)
	}
}

func TestAnalyzeCriticalTakesPrecedence(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	now := time.UnixMilli(10_000)

	// A burst of everything: critical, stutters, and low FPS.
	for i := 0; i < 6; i++ {
		at := now.Add(-time.Duration(i) * 100 * time.Millisecond)
		a.AddIssues([]Issue{
			{Type: IssueCriticalFPS, Severity: SeverityHigh, Timestamp: at},
			{Type: IssueStutter, Severity: SeverityMedium, Timestamp: at},
		})
	}

	res := a.Analyze(now, 5*time.Second)
	if len(res.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
	if !strings.Contains(res.Recommendations[0], "Critical") {
		t.Errorf("critical rule must lead, got %q first", res.Recommendations[0])
	}

	// Frequent stutters still reported, after the critical line.
	found := false
	for _, r := range res.Recommendations[1:] {
		if strings.Contains(r, "stutter") {
			found = true
		}
	}
	if !found {
		t.Errorf("stutter recommendation missing from %v", res.Recommendations)
	}
}

func TestAnalyzeLowFPSPredominance(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	now := time.UnixMilli(10_000)

	for i := 0; i < 8; i++ {
		a.AddIssues([]Issue{{Type: IssueLowFPS, Severity: SeverityMedium, Timestamp: now}})
	}
	a.AddIssues([]Issue{{Type: IssueStutter, Severity: SeverityMedium, Timestamp: now}})

	res := a.Analyze(now, time.Second)
	found := false
	for _, r := range res.Recommendations {
		if strings.Contains(r, "reducing visual effects") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected visual-effects recommendation, got %v", res.Recommendations)
	}
}

func TestAnalyzeWindowFiltering(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	now := time.UnixMilli(60_000)

	// Old issue outside the analysis window is ignored.
	a.AddIssues([]Issue{{Type: IssueStutter, Severity: SeverityHigh, Timestamp: now.Add(-time.Minute)}})

	res := a.Analyze(now, 5*time.Second)
	if !strings.Contains(res.Recommendations[0], "stable") {
		t.Errorf("stale issues must not affect the window, got %v", res.Recommendations)
	}
}

func TestSummaryZeroInput(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	sum := a.SummarizeWindow(time.UnixMilli(1000), time.Second)

	if sum.TotalFrames != 0 {
		t.Errorf("TotalFrames = %d, expected 0", sum.TotalFrames)
	}
	if sum.PerformanceScore != 100 {
		t.Errorf("PerformanceScore = %v, expected 100", sum.PerformanceScore)
	}
	if sum.AverageFPS != 0 || sum.StutterEvents != 0 {
		t.Errorf("expected neutral defaults, got %+v", sum)
	}
}

func TestSummaryAggregation(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	now := time.UnixMilli(10_000)

	a.AddMetrics(now, Metrics{CurrentFPS: 60, PerformanceScore: 90})
	a.AddMetrics(now, Metrics{CurrentFPS: 30, PerformanceScore: 70})
	a.AddIssues([]Issue{
		{Type: IssueStutter, Timestamp: now},
		{Type: IssueLowFPS, Timestamp: now},
		{Type: IssueCriticalFPS, Timestamp: now},
		{Type: IssueMemoryPressure, Timestamp: now},
	})

	sum := a.SummarizeWindow(now, time.Second)
	if sum.TotalFrames != 2 || sum.AverageFPS != 45 {
		t.Errorf("frames/fps = %d/%v, expected 2/45", sum.TotalFrames, sum.AverageFPS)
	}
	if sum.StutterEvents != 1 || sum.LowFPSEvents != 2 || sum.MemoryPressureEvents != 1 {
		t.Errorf("event counts wrong: %+v", sum)
	}
	if sum.PerformanceScore != 80 {
		t.Errorf("PerformanceScore = %v, expected 80", sum.PerformanceScore)
	}
}

func TestThresholdsMerge(t *testing.T) {
	base := DefaultThresholds()
	min := 45.0
	stutter := 40.0

	merged := base.Merge(ThresholdOverrides{MinFPS: &min, StutterThreshold: &stutter})

	if merged.MinFPS != 45 || merged.StutterThreshold != 40 {
		t.Errorf("overridden fields wrong: %+v", merged)
	}
	if merged.MemoryPressureThreshold != base.MemoryPressureThreshold ||
		merged.CriticalFPSThreshold != base.CriticalFPSThreshold {
		t.Errorf("unset fields must keep prior values: %+v", merged)
	}
}
