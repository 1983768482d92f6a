package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/planloom/planloom/internal/plan"
	"github.com/planloom/planloom/internal/tui/components"
	"github.com/planloom/planloom/internal/tui/msgs"
	"github.com/planloom/planloom/internal/tui/styles"
	"github.com/planloom/planloom/internal/tui/views"
)

// PlanGenerator produces a plan from a feature prompt. Satisfied by ai.Client;
// replaced in tests.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, prompt string) (*plan.Plan, error)
}

// phase is the request lifecycle of the single generation flow. Exactly one
// phase is active at a time; plan and error content only exist in the phase
// they belong to.
type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseSuccess
	phaseError
)

// Model is the main Bubble Tea model. It owns the request lifecycle and the
// single live plan value; the prompt and checklist views only present it.
type Model struct {
	phase    phase
	plan     plan.Plan
	errorMsg string

	prompt    views.PromptModel
	checklist views.ChecklistModel
	spinner   spinner.Model

	generator PlanGenerator
	logger    zerolog.Logger

	width  int
	height int
}

// planGeneratedMsg carries a successfully parsed plan.
type planGeneratedMsg struct {
	Plan *plan.Plan
}

// planFailedMsg carries the failure of a generation request.
type planFailedMsg struct {
	Err error
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(
		newModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func newModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return Model{
		phase:     phaseIdle,
		prompt:    views.NewPromptModel(),
		checklist: views.NewChecklistModel(),
		spinner:   s,
		generator: opts.Generator,
		logger:    opts.Logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.prompt.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.SetWidth(msg.Width - 4)
		m.checklist.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case spinner.TickMsg:
		// Keep the tick loop alive regardless of phase so the spinner is
		// ready whenever loading starts.
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case msgs.SubmitPromptMsg:
		if cmd := m.generatePlan(msg.Text); cmd != nil {
			return m, cmd
		}
		return m, nil

	case planGeneratedMsg:
		m.phase = phaseSuccess
		m.plan = *msg.Plan
		m.checklist.SetPlan(m.plan)
		m.prompt.Blur()
		m.checklist.Focus()
		return m, nil

	case planFailedMsg:
		m.phase = phaseError
		m.errorMsg = msg.Err.Error()
		m.logger.Error().Err(msg.Err).Msg("plan generation failed")
		return m, nil

	case msgs.ToggleTaskMsg:
		if m.phase == phaseSuccess {
			m.plan = plan.Toggle(m.plan, msg.ID)
			m.checklist.SetPlan(m.plan)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
			return m, nil
		case "esc":
			if m.checklist.Focused() {
				m.checklist.Blur()
				m.prompt.Focus()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	cmds = append(cmds, cmd)

	m.checklist, cmd = m.checklist.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// generatePlan starts a generation request for promptText. It returns nil when
// the submission is ignored: blank prompt, or a request already in flight.
func (m *Model) generatePlan(promptText string) tea.Cmd {
	trimmed := strings.TrimSpace(promptText)
	if trimmed == "" {
		return nil
	}
	if m.phase == phaseLoading {
		return nil
	}

	m.phase = phaseLoading
	m.plan = plan.Plan{}
	m.errorMsg = ""
	m.checklist.Clear()

	m.logger.Info().Int("prompt_len", len(trimmed)).Msg("generating plan")

	generator := m.generator
	return func() tea.Msg {
		p, err := generator.GeneratePlan(context.Background(), trimmed)
		if err != nil {
			return planFailedMsg{Err: err}
		}
		return planGeneratedMsg{Plan: p}
	}
}

// toggleFocus moves keyboard focus between the prompt and the checklist.
func (m *Model) toggleFocus() {
	if m.prompt.Focused() && m.phase == phaseSuccess {
		m.prompt.Blur()
		m.checklist.Focus()
	} else if m.checklist.Focused() {
		m.checklist.Blur()
		m.prompt.Focus()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("planloom")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n")

	b.WriteString(m.prompt.View())
	b.WriteString("\n\n")

	switch m.phase {
	case phaseIdle:
		b.WriteString(styles.SubtleStyle.Render("Describe a feature and press Enter to generate an implementation checklist."))
	case phaseLoading:
		b.WriteString(m.spinner.View() + " Generating plan...")
	case phaseError:
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.errorMsg))
	case phaseSuccess:
		b.WriteString(m.checklist.View())
	}
	b.WriteString("\n")

	return b.String() + "\n" + components.NewStatusBar().Render(m.width, m.statusItems())
}

// statusItems returns contextual help for the bottom bar.
func (m Model) statusItems() []string {
	switch m.phase {
	case phaseLoading:
		return []string{"Generating...", "Ctrl+C Quit"}
	case phaseSuccess:
		if m.checklist.Focused() {
			return []string{"↑↓ Navigate", "Space Toggle", "y Copy snippet", "Tab Prompt", "Ctrl+C Quit"}
		}
		return []string{"Enter Generate", "Tab Checklist", "Ctrl+C Quit"}
	default:
		return []string{"Enter Generate", "Ctrl+C Quit"}
	}
}
