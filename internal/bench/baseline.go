package bench

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/topple-run/internal/core"
)

// Baseline is one captured reference frame, keyed by id.
type Baseline struct {
	ID         string    `json:"id"`
	Frame      string    `json:"frame"` // Screen.String() at capture time
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	CapturedAt time.Time `json:"captured_at"`
}

// BaselineSet holds visual baselines for regression comparison.
type BaselineSet struct {
	baselines map[string]*Baseline
}

// NewBaselineSet returns an empty set.
func NewBaselineSet() *BaselineSet {
	return &BaselineSet{baselines: make(map[string]*Baseline)}
}

// Capture stores the screen's current content under id, replacing any
// previous baseline with the same id.
func (s *BaselineSet) Capture(id string, screen *core.Screen) *Baseline {
	b := &Baseline{
		ID:         id,
		Frame:      screen.String(),
		Width:      screen.Width(),
		Height:     screen.Height(),
		CapturedAt: time.Now(),
	}
	s.baselines[id] = b
	return b
}

// Get returns the baseline for id, or nil when none was captured.
func (s *BaselineSet) Get(id string) *Baseline {
	return s.baselines[id]
}

// TestAgainst compares the screen's current content with the stored
// baseline. A missing baseline and a mismatching frame are both errors;
// nil means the frame matches.
func (s *BaselineSet) TestAgainst(id string, screen *core.Screen) error {
	b := s.baselines[id]
	if b == nil {
		return fmt.Errorf("bench: no baseline captured for %q", id)
	}
	if got := screen.String(); got != b.Frame {
		return fmt.Errorf("bench: frame for %q differs from its baseline", id)
	}
	return nil
}

// Keys returns all baseline ids, sorted.
func (s *BaselineSet) Keys() []string {
	keys := make([]string, 0, len(s.baselines))
	for id := range s.baselines {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}

// Clear drops every baseline.
func (s *BaselineSet) Clear() {
	s.baselines = make(map[string]*Baseline)
}

// Report bundles benchmark results and baselines into one exportable
// document.
type Report struct {
	Results   []Result             `json:"results"`
	Baselines map[string]*Baseline `json:"baselines"`
}

// Export serializes results and baselines as one JSON string. Importing
// that string into a cleared set restores every baseline exactly by key.
func Export(results []Result, set *BaselineSet) (string, error) {
	report := Report{
		Results:   results,
		Baselines: set.baselines,
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("bench: export failed: %w", err)
	}
	return string(raw), nil
}

// Import parses an exported report. The returned baseline set contains
// exactly the exported keys; results come back in export order.
func Import(data string) (*Report, error) {
	var report Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("bench: import failed: %w", err)
	}
	if report.Baselines == nil {
		report.Baselines = make(map[string]*Baseline)
	}
	return &report, nil
}

// ImportInto replaces the set's content with the report's baselines.
func (s *BaselineSet) ImportInto(report *Report) {
	s.baselines = make(map[string]*Baseline, len(report.Baselines))
	for id, b := range report.Baselines {
		s.baselines[id] = b
	}
}
