package registry

import (
	"testing"

	"github.com/vovakirdan/topple-run/internal/core"
)

type stubGame struct{ id, title string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-a", func() Game { return &stubGame{id: "stub-a", title: "Stub A"} })

	if !Exists("stub-a") {
		t.Fatal("registered game not found")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Stub A" {
		t.Errorf("title = %q", g.Title())
	}

	if _, err := Create("nope"); err == nil {
		t.Error("creating an unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()

	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}

func TestScenarioRegistry(t *testing.T) {
	RegisterScenario("blank", func(dst *core.Screen, frame int) {})

	if ScenarioByName("blank") == nil {
		t.Fatal("registered scenario not found")
	}
	if ScenarioByName("missing") != nil {
		t.Error("unknown scenario should be nil")
	}

	names := Scenarios()
	found := false
	for _, n := range names {
		if n == "blank" {
			found = true
		}
	}
	if !found {
		t.Errorf("Scenarios() = %v, missing \"blank\"", names)
	}
}
