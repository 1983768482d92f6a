package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/planloom/planloom/internal/plan"
	"github.com/planloom/planloom/internal/tui/msgs"
)

// stubGenerator records calls and returns a canned plan or error.
type stubGenerator struct {
	calls  []string
	result *plan.Plan
	err    error
}

func (s *stubGenerator) GeneratePlan(_ context.Context, prompt string) (*plan.Plan, error) {
	s.calls = append(s.calls, prompt)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestModel(gen PlanGenerator) Model {
	return newModel(Options{Generator: gen, Logger: zerolog.Nop()})
}

func testPlan() *plan.Plan {
	return &plan.Plan{
		Title: "Add login",
		Tasks: []plan.Task{
			{ID: 1, Title: "Create form", Description: "...", Status: plan.TaskStatusTodo},
		},
	}
}

func TestGeneratePlan_EmptyPromptIsNoOp(t *testing.T) {
	gen := &stubGenerator{result: testPlan()}
	m := newTestModel(gen)

	for _, text := range []string{"", "   ", "\n\t "} {
		updated, cmd := m.Update(msgs.SubmitPromptMsg{Text: text})
		newM := updated.(Model)

		if cmd != nil {
			t.Errorf("expected no command for blank prompt %q", text)
		}
		if newM.phase != phaseIdle {
			t.Errorf("expected phase to stay idle for blank prompt %q, got %d", text, newM.phase)
		}
	}

	if len(gen.calls) != 0 {
		t.Errorf("expected no generator calls, got %d", len(gen.calls))
	}
}

func TestGeneratePlan_StartsLoadingAndClearsState(t *testing.T) {
	gen := &stubGenerator{result: testPlan()}
	m := newTestModel(gen)

	// Seed stale error state from a previous attempt
	m.phase = phaseError
	m.errorMsg = "old failure"
	m.plan = *testPlan()

	updated, cmd := m.Update(msgs.SubmitPromptMsg{Text: "  add a login page  "})
	newM := updated.(Model)

	if cmd == nil {
		t.Fatal("expected a command to be issued")
	}
	if newM.phase != phaseLoading {
		t.Errorf("expected loading phase, got %d", newM.phase)
	}
	if newM.errorMsg != "" {
		t.Errorf("expected error to be cleared, got %q", newM.errorMsg)
	}
	if len(newM.plan.Tasks) != 0 {
		t.Error("expected previous plan to be cleared")
	}

	// Executing the command hits the generator with the trimmed prompt
	cmd()
	if len(gen.calls) != 1 || gen.calls[0] != "add a login page" {
		t.Errorf("expected one call with trimmed prompt, got %v", gen.calls)
	}
}

func TestGeneratePlan_IgnoredWhileLoading(t *testing.T) {
	gen := &stubGenerator{result: testPlan()}
	m := newTestModel(gen)

	updated, first := m.Update(msgs.SubmitPromptMsg{Text: "first"})
	m = updated.(Model)

	_, second := m.Update(msgs.SubmitPromptMsg{Text: "second"})

	if first == nil {
		t.Fatal("expected first submission to issue a command")
	}
	if second != nil {
		t.Error("expected second submission to be ignored while loading")
	}
}

func TestUpdate_PlanGenerated(t *testing.T) {
	m := newTestModel(&stubGenerator{})
	m.phase = phaseLoading

	updated, _ := m.Update(planGeneratedMsg{Plan: testPlan()})
	newM := updated.(Model)

	if newM.phase != phaseSuccess {
		t.Errorf("expected success phase, got %d", newM.phase)
	}
	if newM.plan.Title != "Add login" {
		t.Errorf("expected plan title 'Add login', got %q", newM.plan.Title)
	}
	if !newM.checklist.Focused() {
		t.Error("expected checklist to take focus on success")
	}
	if newM.prompt.Focused() {
		t.Error("expected prompt to lose focus on success")
	}
}

func TestUpdate_PlanFailed(t *testing.T) {
	m := newTestModel(&stubGenerator{})
	m.phase = phaseLoading

	updated, _ := m.Update(planFailedMsg{Err: errors.New("model request failed: 500 Internal Server Error")})
	newM := updated.(Model)

	if newM.phase != phaseError {
		t.Errorf("expected error phase, got %d", newM.phase)
	}
	if !strings.Contains(newM.errorMsg, "500") {
		t.Errorf("expected error message to contain status code, got %q", newM.errorMsg)
	}
	if len(newM.plan.Tasks) != 0 {
		t.Error("expected plan to stay empty on error")
	}
}

func TestUpdate_ToggleTask(t *testing.T) {
	m := newTestModel(&stubGenerator{})
	updated, _ := m.Update(planGeneratedMsg{Plan: testPlan()})
	m = updated.(Model)

	updated, _ = m.Update(msgs.ToggleTaskMsg{ID: 1})
	m = updated.(Model)

	if m.phase != phaseSuccess {
		t.Errorf("toggling should stay in success, got %d", m.phase)
	}
	if m.plan.Tasks[0].Status != plan.TaskStatusDone {
		t.Errorf("expected task 1 to be done, got %s", m.plan.Tasks[0].Status)
	}

	updated, _ = m.Update(msgs.ToggleTaskMsg{ID: 1})
	m = updated.(Model)

	if m.plan.Tasks[0].Status != plan.TaskStatusTodo {
		t.Errorf("expected task 1 back to todo, got %s", m.plan.Tasks[0].Status)
	}
}

func TestUpdate_ToggleIgnoredOutsideSuccess(t *testing.T) {
	m := newTestModel(&stubGenerator{})

	updated, _ := m.Update(msgs.ToggleTaskMsg{ID: 1})
	newM := updated.(Model)

	if newM.phase != phaseIdle {
		t.Errorf("expected phase to stay idle, got %d", newM.phase)
	}
}

func TestFullGenerationFlow(t *testing.T) {
	p, err := plan.Decode([]byte(`{"title":"Add login","tasks":[{"id":1,"title":"Create form","description":"...","status":"todo"}]}`))
	if err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	gen := &stubGenerator{result: p}
	m := newTestModel(gen)

	updated, cmd := m.Update(msgs.SubmitPromptMsg{Text: "add a login page"})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected generation command")
	}

	// Run the command and feed its message back, as the Bubble Tea runtime would
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.phase != phaseSuccess {
		t.Fatalf("expected success phase, got %d", m.phase)
	}
	if m.plan.Title != "Add login" {
		t.Errorf("plan title = %q, want 'Add login'", m.plan.Title)
	}
	if m.plan.Tasks[0].Status != plan.TaskStatusTodo {
		t.Errorf("expected fresh task to be todo, got %s", m.plan.Tasks[0].Status)
	}

	updated, _ = m.Update(msgs.ToggleTaskMsg{ID: 1})
	m = updated.(Model)
	if m.plan.Tasks[0].Status != plan.TaskStatusDone {
		t.Errorf("expected toggled task to be done, got %s", m.plan.Tasks[0].Status)
	}
}

func TestFullGenerationFlow_Failure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("Invalid response structure from AI model.")}
	m := newTestModel(gen)

	updated, cmd := m.Update(msgs.SubmitPromptMsg{Text: "prompt"})
	m = updated.(Model)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.phase != phaseError {
		t.Fatalf("expected error phase, got %d", m.phase)
	}
	if m.errorMsg != "Invalid response structure from AI model." {
		t.Errorf("unexpected error message: %q", m.errorMsg)
	}
}

func TestView_ErrorReplacesPlan(t *testing.T) {
	m := newTestModel(&stubGenerator{})
	m.width = 80
	m.height = 24

	updated, _ := m.Update(planGeneratedMsg{Plan: testPlan()})
	m = updated.(Model)
	updated, _ = m.Update(msgs.SubmitPromptMsg{Text: "another feature"})
	m = updated.(Model)
	updated, _ = m.Update(planFailedMsg{Err: errors.New("boom")})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "boom") {
		t.Error("expected error message in view")
	}
	if strings.Contains(view, "Create form") {
		t.Error("expected previous plan to be gone from view")
	}
}
