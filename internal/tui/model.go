// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/protype/internal/session"
	"github.com/verte-zerg/protype/internal/trainer"
)

const (
	sidebarWidth = 22
	inputWidth   = 50
	inputHeight  = 4
	targetWidth  = 60
)

const (
	readyText     = "Ready to type?"
	nextRoundText = "Next round ready!"
	confirmText   = "Reset all your lifetime statistics?"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusReset
	focusClear
	focusExit
	focusCount
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmClear
	modalResult
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cursorStyle    = pendingStyle.Underline(true)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(1, 2).
			Background(lipgloss.Color("#1E1E1E"))
	sidebarTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Bold(true)
	buttonStyle       = lipgloss.NewStyle().
				Width(sidebarWidth - 4).
				Align(lipgloss.Center).
				Foreground(lipgloss.Color("#FFFFFF")).
				MarginTop(1)
	focusedButtonStyle = buttonStyle.Bold(true).Underline(true)

	statsBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2ECC71")).
			Background(lipgloss.Color("#252525")).
			Bold(true).
			Padding(0, 2)
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	validInputStyle   = inputStyle.BorderForeground(lipgloss.Color("#2ECC71"))
	invalidInputStyle = inputStyle.BorderForeground(lipgloss.Color("#E74C3C"))
	liveStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F8C8D"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
	modalTitleStyle = lipgloss.NewStyle().Bold(true)
	newHighStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")).Bold(true)
)

var buttons = []struct {
	focus focusArea
	label string
	color lipgloss.Color
}{
	{focus: focusReset, label: "Reset Test", color: lipgloss.Color("#3498DB")},
	{focus: focusClear, label: "Clear Stats", color: lipgloss.Color("#E67E22")},
	{focus: focusExit, label: "Exit App", color: lipgloss.Color("#E74C3C")},
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	trainer *trainer.Trainer
	keys    keyMap
	help    help.Model
	input   textarea.Model

	width  int
	height int

	focus    focusArea
	modal    modalKind
	signal   session.Signal
	liveText string
	result   trainer.Outcome
	errMsg   string
}

// NewModel constructs a typing TUI model around tr.
func NewModel(tr *trainer.Trainer) *Model {
	input := textarea.New()
	input.Placeholder = "Start typing..."
	input.ShowLineNumbers = false
	input.Prompt = ""
	input.CharLimit = 0
	input.SetWidth(inputWidth)
	input.SetHeight(inputHeight)
	input.FocusedStyle.CursorLine = lipgloss.NewStyle()
	input.Focus()

	return &Model{
		trainer:  tr,
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    input,
		liveText: readyText,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m.forwardToInput(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.modal {
	case modalConfirmClear:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.modal = modalNone
			m.clearStats()
		case key.Matches(msg, m.keys.Cancel):
			m.modal = modalNone
		}
		return m, nil
	case modalResult:
		if key.Matches(msg, m.keys.Dismiss) {
			m.modal = modalNone
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reset):
		m.nextRound()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.modal = modalConfirmClear
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	if m.focus != focusInput {
		if key.Matches(msg, m.keys.Press) {
			return m.press(m.focus)
		}
		return m, nil
	}

	m.trainer.KeyDown()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.apply(m.trainer.KeyUp(m.input.Value()))
	return m, cmd
}

// forwardToInput passes non-key messages (cursor blink, clipboard paste) to
// the input and re-checks it when the text changed.
func (m *Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before && m.modal == modalNone {
		m.apply(m.trainer.KeyUp(after))
	}
	return m, cmd
}

func (m *Model) press(target focusArea) (tea.Model, tea.Cmd) {
	switch target {
	case focusReset:
		m.nextRound()
	case focusClear:
		m.modal = modalConfirmClear
	case focusExit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

func (m *Model) apply(out trainer.Outcome) {
	if out.Signal == session.SignalNone {
		return
	}
	m.errMsg = ""
	m.signal = out.Signal
	m.liveText = fmt.Sprintf("Live Speed: %d WPM", out.WPM)
	if !out.Completed {
		return
	}
	m.result = out
	m.modal = modalResult
	m.resetInput()
}

func (m *Model) nextRound() {
	m.trainer.Reset()
	m.resetInput()
	m.setFocus(focusInput)
}

func (m *Model) resetInput() {
	m.input.Reset()
	m.signal = session.SignalNone
	m.liveText = nextRoundText
}

func (m *Model) clearStats() {
	if err := m.trainer.ClearStats(); err != nil {
		m.errMsg = fmt.Sprintf("failed to clear stats: %v", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sidebar := m.renderSidebar()
	main := m.renderMain()
	if m.width == 0 || m.height == 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main) + "\n" + m.help.View(m.keys)
	}

	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	sidebar = sidebarStyle.Height(bodyHeight).Render(m.renderSidebarContent(bodyHeight - 2))
	mainWidth := m.width - lipgloss.Width(sidebar)
	if mainWidth < 1 {
		mainWidth = 1
	}
	main = lipgloss.Place(mainWidth, bodyHeight, lipgloss.Center, lipgloss.Top, main)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	if m.modal != modalNone {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderModal())
	}
	return body + "\n" + m.help.View(m.keys)
}

func (m *Model) renderSidebar() string {
	return sidebarStyle.Render(m.renderSidebarContent(0))
}

// renderSidebarContent stacks the buttons; with height > 0 the exit button
// is pushed to the bottom.
func (m *Model) renderSidebarContent(height int) string {
	top := []string{sidebarTitleStyle.Render("CONTROLS")}
	for _, b := range buttons[:len(buttons)-1] {
		top = append(top, m.renderButton(b.focus, b.label, b.color))
	}
	exit := buttons[len(buttons)-1]
	bottom := m.renderButton(exit.focus, exit.label, exit.color)
	upper := lipgloss.JoinVertical(lipgloss.Left, top...)
	gap := height - lipgloss.Height(upper) - lipgloss.Height(bottom)
	if gap < 0 {
		gap = 0
	}
	return upper + strings.Repeat("\n", gap) + bottom
}

func (m *Model) renderButton(f focusArea, label string, color lipgloss.Color) string {
	style := buttonStyle
	if m.focus == f {
		style = focusedButtonStyle
		label = "> " + label + " <"
	}
	return style.Background(color).Render(label)
}

func (m *Model) renderMain() string {
	best := statsBarStyle.Render(fmt.Sprintf("🏆 BEST: %d WPM", m.trainer.Record().HighScore))

	target := []rune(m.trainer.Target())
	typed := []rune(strings.TrimSpace(m.input.Value()))
	sample := wrapStyledRunes(buildStyledRunes(target, typed), targetWidth)

	boxStyle := inputStyle
	switch m.signal {
	case session.SignalValid, session.SignalComplete:
		boxStyle = validInputStyle
	case session.SignalInvalid:
		boxStyle = invalidInputStyle
	}
	box := boxStyle.Render(m.input.View())

	live := liveStyle.Render(m.liveText)
	if m.errMsg != "" {
		live = errorStyle.Render(m.errMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Center, best, "", "", sample, "", box, "", live)
}

func (m *Model) renderModal() string {
	switch m.modal {
	case modalConfirmClear:
		return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			modalTitleStyle.Render("Confirm"),
			"",
			confirmText,
			"",
			m.help.ShortHelpView([]key.Binding{m.keys.Confirm, m.keys.Cancel}),
		))
	case modalResult:
		lines := []string{
			modalTitleStyle.Render("Paragraph Complete"),
			"",
			fmt.Sprintf("Speed: %d WPM", m.result.WPM),
		}
		if m.result.NewHigh {
			lines = append(lines, newHighStyle.Render("🎉 NEW HIGH SCORE!"))
		}
		lines = append(lines, "", m.help.ShortHelpView([]key.Binding{m.keys.Dismiss}))
		return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	default:
		return ""
	}
}
