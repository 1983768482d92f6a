package views

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planloom/planloom/internal/tui/msgs"
)

// PromptModel wraps the feature-description textarea.
type PromptModel struct {
	input   textarea.Model
	focused bool
}

// NewPromptModel creates the prompt input with focus.
func NewPromptModel() PromptModel {
	ta := textarea.New()
	ta.Placeholder = "Describe the feature you want to build, e.g. 'Add a dark mode toggle to settings'..."
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	return PromptModel{
		input:   ta,
		focused: true,
	}
}

// Init implements tea.Model.
func (m PromptModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model. Enter submits the prompt; everything else is
// forwarded to the textarea while focused.
func (m PromptModel) Update(msg tea.Msg) (PromptModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if !m.focused {
			return m, nil
		}
		if keyMsg.Type == tea.KeyEnter {
			text := m.input.Value()
			return m, func() tea.Msg { return msgs.SubmitPromptMsg{Text: text} }
		}
	}

	if !m.focused {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m PromptModel) View() string {
	return m.input.View()
}

// Focus gives keyboard focus to the textarea.
func (m *PromptModel) Focus() {
	m.focused = true
	m.input.Focus()
}

// Blur removes keyboard focus from the textarea.
func (m *PromptModel) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused reports whether the textarea has keyboard focus.
func (m PromptModel) Focused() bool {
	return m.focused
}

// Value returns the current prompt text.
func (m PromptModel) Value() string {
	return m.input.Value()
}

// SetWidth updates the textarea width.
func (m *PromptModel) SetWidth(width int) {
	m.input.SetWidth(width)
}
