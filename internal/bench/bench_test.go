package bench

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/registry"
)

func init() {
	registry.RegisterScenario("test-text", func(dst *core.Screen, frame int) {
		dst.DrawText(2, 2, fmt.Sprintf("frame %04d", frame))
	})
	registry.RegisterScenario("test-fill", func(dst *core.Screen, frame int) {
		dst.DrawRect(core.NewRect(0, 0, dst.Width(), dst.Height()), '#')
	})
	registry.RegisterScenario("test-slow", func(dst *core.Screen, frame int) {
		time.Sleep(2 * time.Millisecond)
	})
}

func TestRunMeasuresCompletedIterations(t *testing.T) {
	h := NewHarness(40, 12, 0)

	res, err := h.Run("test-text", 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Completed != 20 || res.Partial {
		t.Errorf("expected 20 complete iterations, got %+v", res)
	}
	if res.PerOp <= 0 || res.Total < res.PerOp {
		t.Errorf("timing should be positive and consistent, got %+v", res)
	}
}

func TestRunUnknownScenario(t *testing.T) {
	h := NewHarness(40, 12, 0)
	if _, err := h.Run("no-such-scenario", 10); err == nil {
		t.Error("unknown scenario must be an error")
	}
	if _, err := h.Run("test-text", 0); err == nil {
		t.Error("non-positive iteration count must be an error")
	}
}

func TestBudgetStopsEarlyWithPartialResults(t *testing.T) {
	h := NewHarness(40, 12, 6*time.Millisecond)

	res, err := h.Run("test-slow", 1000)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Partial {
		t.Fatal("budget run should report partial results")
	}
	if res.Completed == 0 || res.Completed >= 1000 {
		t.Errorf("partial run completed %d of 1000", res.Completed)
	}
}

func TestResultsAccumulate(t *testing.T) {
	h := NewHarness(40, 12, 0)
	h.Run("test-text", 5)
	h.Run("test-fill", 5)

	results := h.Results()
	if len(results) != 2 {
		t.Fatalf("recorded %d results, expected 2", len(results))
	}
	if results[0].Scenario != "test-text" || results[1].Scenario != "test-fill" {
		t.Errorf("results out of order: %+v", results)
	}
}

func TestBaselineCaptureAndCompare(t *testing.T) {
	set := NewBaselineSet()
	screen := core.NewScreen(20, 5)

	screen.DrawText(1, 1, "hello")
	set.Capture("greeting", screen)

	if err := set.TestAgainst("greeting", screen); err != nil {
		t.Errorf("identical frame should match its baseline: %v", err)
	}

	screen.DrawText(1, 1, "HELLO")
	if err := set.TestAgainst("greeting", screen); err == nil {
		t.Error("changed frame must fail the baseline check")
	}
}

func TestBaselineMissing(t *testing.T) {
	set := NewBaselineSet()
	if set.Get("nope") != nil {
		t.Error("Get on a missing id must return nil")
	}
	if err := set.TestAgainst("nope", core.NewScreen(4, 4)); err == nil {
		t.Error("TestAgainst on a missing id must return an error")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	h := NewHarness(40, 12, 0)
	h.Run("test-text", 3)

	set := NewBaselineSet()
	a := core.NewScreen(10, 3)
	a.DrawText(0, 0, "aaa")
	set.Capture("frame-a", a)

	b := core.NewScreen(10, 3)
	b.DrawText(0, 1, "bbb")
	set.Capture("frame-b", b)

	exported, err := Export(h.Results(), set)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	set.Clear()
	if len(set.Keys()) != 0 {
		t.Fatal("Clear must empty the set")
	}

	report, err := Import(exported)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	set.ImportInto(report)

	if !reflect.DeepEqual(set.Keys(), []string{"frame-a", "frame-b"}) {
		t.Errorf("imported keys = %v", set.Keys())
	}
	if set.Get("frame-a").Frame != a.String() {
		t.Error("imported baseline frame differs from the captured one")
	}
	if len(report.Results) != 1 || report.Results[0].Scenario != "test-text" {
		t.Errorf("imported results = %+v", report.Results)
	}

	// Comparing against an imported baseline works the same as a live one.
	if err := set.TestAgainst("frame-b", b); err != nil {
		t.Errorf("imported baseline should match the original frame: %v", err)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	if _, err := Import("{broken"); err == nil {
		t.Error("garbage input must be an import error")
	}
}
