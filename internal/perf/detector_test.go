package perf

import (
	"reflect"
	"testing"
	"time"
)

func TestDetectorStutter(t *testing.T) {
	d := NewDetector(DefaultThresholds())

	m := Metrics{CurrentFPS: 60}
	e := FrameEntry{Timestamp: time.UnixMilli(100), FrameTime: 80, FPS: 60}

	issues := d.DetectIssues(m, e)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Type != IssueStutter {
		t.Errorf("issue type = %s, expected stutter", issues[0].Type)
	}
	if issues[0].Metrics != m {
		t.Error("issue must carry the triggering metrics snapshot")
	}
}

func TestDetectorLowAndCriticalFPS(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	e := FrameEntry{FrameTime: 16.7}

	low := d.DetectIssues(Metrics{CurrentFPS: 25}, e)
	if len(low) != 1 || low[0].Type != IssueLowFPS || low[0].Severity != SeverityMedium {
		t.Errorf("FPS 25: got %+v, expected one medium low_fps", low)
	}

	// Below the critical floor the issue escalates instead of duplicating.
	crit := d.DetectIssues(Metrics{CurrentFPS: 10}, e)
	if len(crit) != 1 || crit[0].Type != IssueCriticalFPS || crit[0].Severity != SeverityHigh {
		t.Errorf("FPS 10: got %+v, expected one high critical_fps", crit)
	}
}

func TestDetectorMultipleIssuesOneFrame(t *testing.T) {
	d := NewDetector(DefaultThresholds())

	m := Metrics{CurrentFPS: 10, MemoryUsage: 0.9}
	e := FrameEntry{FrameTime: 120}

	issues := d.DetectIssues(m, e)
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues (stutter, critical_fps, memory_pressure), got %d", len(issues))
	}

	types := map[IssueType]bool{}
	for _, is := range issues {
		types[is.Type] = true
	}
	for _, want := range []IssueType{IssueStutter, IssueCriticalFPS, IssueMemoryPressure} {
		if !types[want] {
			t.Errorf("missing issue type %s", want)
		}
	}
}

func TestDetectorIsPure(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	m := Metrics{CurrentFPS: 20, MemoryUsage: 0.85}
	e := FrameEntry{Timestamp: time.UnixMilli(5), FrameTime: 60}

	first := d.DetectIssues(m, e)
	second := d.DetectIssues(m, e)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different issues:\n%+v\n%+v", first, second)
	}
}

func TestDetectorTighteningOnlyAddsIssues(t *testing.T) {
	m := Metrics{CurrentFPS: 40, MemoryUsage: 0.6}
	e := FrameEntry{FrameTime: 40}

	loose := NewDetector(DefaultThresholds())
	before := loose.DetectIssues(m, e)

	// Tighten every threshold against the same unchanged sample.
	tight := DefaultThresholds()
	tight.StutterThreshold = 30
	tight.MinFPS = 50
	tight.MemoryPressureThreshold = 0.5
	strict := NewDetector(tight)
	after := strict.DetectIssues(m, e)

	if len(after) < len(before) {
		t.Errorf("tightening removed issues: before %d, after %d", len(before), len(after))
	}

	beforeTypes := map[IssueType]bool{}
	for _, is := range before {
		beforeTypes[is.Type] = true
	}
	// stutter stays a stutter, low_fps may appear or escalate, but nothing
	// previously flagged disappears entirely.
	for bt := range beforeTypes {
		found := false
		for _, is := range after {
			if is.Type == bt || (bt == IssueLowFPS && is.Type == IssueCriticalFPS) {
				found = true
			}
		}
		if !found {
			t.Errorf("issue type %s vanished after tightening", bt)
		}
	}
}

func TestDetectorResetClearsCounter(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	d.DetectIssues(Metrics{CurrentFPS: 5}, FrameEntry{FrameTime: 200})

	if d.Detected() == 0 {
		t.Fatal("expected detection counter to advance")
	}
	d.Reset()
	if d.Detected() != 0 {
		t.Errorf("Detected() after Reset = %d", d.Detected())
	}
}
