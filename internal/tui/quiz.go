// Package tui hosts the interactive quiz-taking screen.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edusuite/internal/api"
	"github.com/abhisek/edusuite/internal/quiztake"
	"github.com/abhisek/edusuite/internal/ui/theme"
)

type mode int

const (
	modePick mode = iota
	modeAnswer
	modeResult
)

type quizLoadedMsg struct{ err error }

type gradedMsg struct {
	attempt *api.Attempt
	err     error
}

// Model drives the quiz flow: pick a quiz, answer its questions, submit
// for grading. All quiz state lives in the controller; the model only
// holds view concerns.
type Model struct {
	ctrl    *quiztake.Controller
	quizzes []api.Quiz

	mode    mode
	filter  textinput.Model
	cursor  int
	qIndex  int
	choice  int
	busy    bool
	status  string
	attempt *api.Attempt
	width   int
	height  int
}

// New creates the quiz screen over an already-fetched quiz list.
func New(ctrl *quiztake.Controller, quizzes []api.Quiz) Model {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Focus()
	return Model{ctrl: ctrl, quizzes: quizzes, filter: filter}
}

func (m Model) Init() tea.Cmd {
	return m.filter.Focus()
}

// visible returns the quizzes matching the current filter text.
func (m Model) visible() []api.Quiz {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		return m.quizzes
	}
	var out []api.Quiz
	for _, q := range m.quizzes {
		if strings.Contains(strings.ToLower(q.Title), query) {
			out = append(out, q)
		}
	}
	return out
}

func (m Model) selectQuiz(quiz api.Quiz) tea.Cmd {
	return func() tea.Msg {
		return quizLoadedMsg{err: m.ctrl.Select(context.Background(), quiz)}
	}
}

func (m Model) submit() tea.Cmd {
	return func() tea.Msg {
		attempt, err := m.ctrl.Submit(context.Background())
		return gradedMsg{attempt: attempt, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case quizLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.mode = modeAnswer
		m.qIndex = 0
		m.choice = 0
		m.status = ""
		return m, nil

	case gradedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.mode = modeResult
		m.attempt = msg.attempt
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case modePick:
			return m.updatePick(msg)
		case modeAnswer:
			return m.updateAnswer(msg)
		case modeResult:
			return m.updateResult(msg)
		}
	}
	return m, nil
}

func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		visible := m.visible()
		if m.cursor >= len(visible) {
			return m, nil
		}
		m.busy = true
		m.status = "loading questions..."
		return m, m.selectQuiz(visible[m.cursor])
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.cursor >= len(m.visible()) {
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateAnswer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	questions := m.ctrl.Questions()
	if len(questions) == 0 {
		m.mode = modePick
		return m, nil
	}
	current := questions[m.qIndex]

	switch msg.String() {
	case "esc":
		m.mode = modePick
		m.status = ""
		return m, nil
	case "up", "k":
		if m.choice > 0 {
			m.choice--
		}
	case "down", "j":
		if m.choice < len(current.Choices)-1 {
			m.choice++
		}
	case "left", "h":
		if m.qIndex > 0 {
			m.qIndex--
			m.choice = 0
		}
	case "right", "l", "tab":
		if m.qIndex < len(questions)-1 {
			m.qIndex++
			m.choice = 0
		}
	case "enter":
		if len(current.Choices) > 0 {
			if err := m.ctrl.Answer(current.ID, current.Choices[m.choice].ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.status = ""
		}
		if m.qIndex < len(questions)-1 {
			m.qIndex++
			m.choice = 0
		}
	case "s":
		m.busy = true
		m.status = "grading..."
		return m, m.submit()
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modePick
		m.attempt = nil
		m.status = ""
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	var b strings.Builder
	switch m.mode {
	case modePick:
		m.viewPick(&b)
	case modeAnswer:
		m.viewAnswer(&b)
	case modeResult:
		m.viewResult(&b)
	}
	if m.status != "" {
		b.WriteString("\n" + theme.Hint.Render(m.status) + "\n")
	}

	v.SetContent(b.String())
	return v
}

func (m Model) viewPick(b *strings.Builder) {
	b.WriteString(theme.Title.Render("Take a Quiz") + "\n\n")
	b.WriteString(m.filter.View() + "\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(theme.Subtitle.Render("no quizzes match") + "\n")
	}
	for i, q := range visible {
		line := fmt.Sprintf("%s  (%d questions)", q.Title, len(q.Questions))
		if i == m.cursor {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n" + theme.Hint.Render("↑↓ navigate · enter start · esc quit") + "\n")
}

func (m Model) viewAnswer(b *strings.Builder) {
	questions := m.ctrl.Questions()
	current := questions[m.qIndex]

	header := fmt.Sprintf("%s — question %d of %d · %d answered",
		m.ctrl.Quiz().Title, m.qIndex+1, len(questions), m.ctrl.Answered())
	b.WriteString(theme.Title.Render(header) + "\n\n")
	b.WriteString(theme.Body.Render(current.Text) + "\n\n")

	selected, answered := m.ctrl.Selected(current.ID)
	for i, choice := range current.Choices {
		prefix := "  "
		if i == m.choice {
			prefix = "▸ "
		}
		line := prefix + choice.Text
		switch {
		case answered && choice.ID == selected:
			b.WriteString(theme.Answered.Render(line+"  ✓") + "\n")
		case i == m.choice:
			b.WriteString(theme.Selected.Render(line) + "\n")
		default:
			b.WriteString(theme.Unselected.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + theme.Hint.Render("↑↓ choose · enter answer · ←→ question · s submit · esc back") + "\n")
}

func (m Model) viewResult(b *strings.Builder) {
	b.WriteString(theme.Title.Render(m.ctrl.Quiz().Title) + "\n\n")
	b.WriteString(theme.Score.Render(fmt.Sprintf("Score: %.1f%%", m.ctrl.Score())) + "\n")
	if m.attempt != nil {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("attempt #%d", m.attempt.ID)) + "\n")
	}
	b.WriteString("\n" + theme.Hint.Render("enter another quiz · q quit") + "\n")
}

// Run starts the quiz screen and blocks until it exits.
func Run(ctrl *quiztake.Controller, quizzes []api.Quiz) error {
	p := tea.NewProgram(New(ctrl, quizzes))
	_, err := p.Run()
	return err
}
