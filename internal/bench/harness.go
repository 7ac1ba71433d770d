// Package bench measures render scenario throughput against an in-memory
// screen and keeps visual baselines for regression checks. Scenarios come
// from the registry; the harness never knows what they draw.
package bench

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/registry"
)

// DefaultBudget caps a single scenario run's wall-clock time. A run that
// hits the budget stops early and reports partial results.
const DefaultBudget = 5 * time.Second

// Result is the measurement of one scenario run.
type Result struct {
	Scenario   string        `json:"scenario"`
	Iterations int           `json:"iterations"` // requested
	Completed  int           `json:"completed"`  // actually executed
	Total      time.Duration `json:"total"`
	PerOp      time.Duration `json:"per_op"`
	Partial    bool          `json:"partial"`
	RanAt      time.Time     `json:"ran_at"`
}

// Harness runs registered scenarios against a fixed-size screen.
type Harness struct {
	screen  *core.Screen
	budget  time.Duration
	results []Result
}

// NewHarness creates a harness rendering into a w×h screen. A zero or
// negative budget falls back to DefaultBudget.
func NewHarness(w, h int, budget time.Duration) *Harness {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Harness{
		screen: core.NewScreen(w, h),
		budget: budget,
	}
}

// Screen exposes the render target, e.g. to capture a baseline right
// after a run.
func (h *Harness) Screen() *core.Screen { return h.screen }

// Run executes the named scenario for up to iterations frames, stopping
// early when the wall-clock budget runs out.
func (h *Harness) Run(name string, iterations int) (Result, error) {
	scenario := registry.ScenarioByName(name)
	if scenario == nil {
		return Result{}, fmt.Errorf("bench: unknown scenario %q", name)
	}
	if iterations <= 0 {
		return Result{}, fmt.Errorf("bench: iterations must be positive, got %d", iterations)
	}

	res := Result{
		Scenario:   name,
		Iterations: iterations,
		RanAt:      time.Now(),
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if time.Since(start) > h.budget {
			res.Partial = true
			log.Warn("benchmark budget exhausted, reporting partial results",
				"scenario", name, "completed", res.Completed, "requested", iterations, "budget", h.budget)
			break
		}

		h.screen.Clear()
		frameStart := time.Now()
		scenario(h.screen, i)
		res.Total += time.Since(frameStart)
		res.Completed++
	}

	if res.Completed > 0 {
		res.PerOp = res.Total / time.Duration(res.Completed)
	}

	h.results = append(h.results, res)
	return res, nil
}

// RunAll runs every registered scenario in name order.
func (h *Harness) RunAll(iterations int) []Result {
	out := make([]Result, 0)
	for _, name := range registry.Scenarios() {
		res, err := h.Run(name, iterations)
		if err != nil {
			log.Error("benchmark scenario failed", "scenario", name, "err", err)
			continue
		}
		out = append(out, res)
	}
	return out
}

// Results returns every result recorded by this harness, in run order.
func (h *Harness) Results() []Result {
	out := make([]Result, len(h.results))
	copy(out, h.results)
	return out
}
