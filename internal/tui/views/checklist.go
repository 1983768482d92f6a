package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planloom/planloom/internal/plan"
	"github.com/planloom/planloom/internal/tui/msgs"
	"github.com/planloom/planloom/internal/tui/styles"
)

// clipboardWriteAll is the function used to copy text to the clipboard.
// It can be replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

// ChecklistModel renders the current plan as an interactive checklist.
// It owns only presentation state (cursor, focus); the plan itself belongs to
// the application model and arrives through SetPlan.
type ChecklistModel struct {
	plan    plan.Plan
	cursor  int
	focused bool

	copiedID int // last task whose snippet was copied, 0 if none

	width  int
	height int
}

// NewChecklistModel creates an empty, unfocused checklist.
func NewChecklistModel() ChecklistModel {
	return ChecklistModel{}
}

// Init implements tea.Model.
func (m ChecklistModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ChecklistModel) Update(msg tea.Msg) (ChecklistModel, tea.Cmd) {
	switch msg := msg.(type) {
	case msgs.SnippetCopiedMsg:
		if msg.Err == nil {
			m.copiedID = msg.ID
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused || len(m.plan.Tasks) == 0 {
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.plan.Tasks)-1 {
				m.cursor++
			}
		case " ", "enter":
			id := m.plan.Tasks[m.cursor].ID
			return m, func() tea.Msg { return msgs.ToggleTaskMsg{ID: id} }
		case "y":
			task := m.plan.Tasks[m.cursor]
			if task.CodeSnippet == "" {
				return m, nil
			}
			return m, copySnippet(task.ID, task.CodeSnippet)
		}
	}

	return m, nil
}

// copySnippet copies snippet text to the clipboard off the update loop.
func copySnippet(id int, snippet string) tea.Cmd {
	return func() tea.Msg {
		err := clipboardWriteAll(snippet)
		return msgs.SnippetCopiedMsg{ID: id, Err: err}
	}
}

// View implements tea.Model.
func (m ChecklistModel) View() string {
	if len(m.plan.Tasks) == 0 {
		return ""
	}

	var b strings.Builder

	if m.plan.Title != "" {
		b.WriteString(styles.TitleStyle.Render(m.plan.Title))
		b.WriteString("\n")
		b.WriteString(styles.SubtleStyle.Render(fmt.Sprintf("%d/%d done", m.plan.DoneCount(), len(m.plan.Tasks))))
		b.WriteString("\n\n")
	}

	for i, task := range m.plan.Tasks {
		b.WriteString(m.renderTask(i, task))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTask formats one checklist row, plus detail lines for the cursored task.
func (m ChecklistModel) renderTask(index int, task plan.Task) string {
	var b strings.Builder

	cursor := "  "
	if m.focused && index == m.cursor {
		cursor = "› "
	}

	checkbox := "[ ]"
	if task.Status == plan.TaskStatusDone {
		checkbox = "[x]"
	}

	line := fmt.Sprintf("%s%s %s", cursor, checkbox, task.Title)
	if task.Status == plan.TaskStatusDone {
		line = styles.DoneStyle.Render(line)
	} else if m.focused && index == m.cursor {
		line = styles.SelectedStyle.Render(line)
	}
	b.WriteString(line)

	// Expand details under the cursored task only
	if index == m.cursor {
		if task.Description != "" {
			b.WriteString("\n")
			b.WriteString(styles.SubtleStyle.Render("      "+task.Description))
		}
		if task.FilePath != "" {
			b.WriteString("\n")
			b.WriteString(styles.SubtleStyle.Render("      "+task.FilePath))
		}
		if task.CodeSnippet != "" {
			b.WriteString("\n")
			b.WriteString(styles.SnippetStyle.Render(task.CodeSnippet))
			copied := ""
			if m.copiedID == task.ID {
				copied = " ✓ copied"
			}
			b.WriteString("\n")
			b.WriteString(styles.SubtleStyle.Render("      [y] copy snippet"+copied))
		}
	}

	return b.String()
}

// SetPlan replaces the displayed plan. The cursor is clamped so toggling keeps
// the selection in place while a fresh plan starts at the top.
func (m *ChecklistModel) SetPlan(p plan.Plan) {
	m.plan = p
	if m.cursor >= len(p.Tasks) {
		m.cursor = 0
	}
	m.copiedID = 0
}

// Clear removes the displayed plan.
func (m *ChecklistModel) Clear() {
	m.plan = plan.Plan{}
	m.cursor = 0
	m.copiedID = 0
}

// Focus gives keyboard focus to the checklist.
func (m *ChecklistModel) Focus() {
	m.focused = true
}

// Blur removes keyboard focus from the checklist.
func (m *ChecklistModel) Blur() {
	m.focused = false
}

// Focused reports whether the checklist has keyboard focus.
func (m ChecklistModel) Focused() bool {
	return m.focused
}

// Plan returns the currently displayed plan.
func (m ChecklistModel) Plan() plan.Plan {
	return m.plan
}

// Cursor returns the current cursor position.
func (m ChecklistModel) Cursor() int {
	return m.cursor
}

// SetSize updates the model dimensions.
func (m *ChecklistModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
