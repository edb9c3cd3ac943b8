package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careercompass/internal/app"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var stages = []app.Stage{app.StageSkills, app.StageJobs, app.StageGoals}

type keyMap struct {
	NextStage key.Binding
	PrevStage key.Binding
	Submit    key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	NextStage: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next stage")),
	PrevStage: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev stage")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("ctrl+c", "quit")),
}

type turnDoneMsg struct {
	text string
}

// Model is the bubbletea view over one session. It holds only view state;
// every mutation goes through the workflow controller.
type Model struct {
	application *app.Application
	session     *app.Session
	theme       Theme

	width  int
	height int
	ready  bool

	input   textarea.Model
	chatVP  viewport.Model
	spin    spinner.Model
	running bool
}

func New(application *app.Application) *Model {
	ta := textarea.New()
	ta.Placeholder = "Chat, or type /help for commands. Enter sends."
	ta.Focus()
	ta.CharLimit = 4000
	ta.SetHeight(1)
	ta.Prompt = " "
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		application: application,
		session:     application.Sessions.Get(""),
		theme:       NewTheme(),
		input:       ta,
		spin:        sp,
	}
	// Seed the opening stage with its welcome message.
	m.application.Controller.SelectStage(m.session, app.StageSkills)
	return m
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chatHeight := m.height - 8
		if chatHeight < 3 {
			chatHeight = 3
		}
		if !m.ready {
			m.chatVP = viewport.New(m.width-4, chatHeight)
			m.ready = true
		} else {
			m.chatVP.Width = m.width - 4
			m.chatVP.Height = chatHeight
		}
		m.refreshChat()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.NextStage):
			m.cycleStage(1)
			return m, nil
		case key.Matches(msg, keys.PrevStage):
			m.cycleStage(-1)
			return m, nil
		case key.Matches(msg, keys.Submit):
			return m, m.submit()
		}

	case turnDoneMsg:
		m.running = false
		m.refreshChat()
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.chatVP, cmd = m.chatVP.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) cycleStage(dir int) {
	current := m.session.Stage()
	idx := 0
	for i, st := range stages {
		if st == current {
			idx = i
		}
	}
	idx = (idx + dir + len(stages)) % len(stages)
	next := stages[idx]
	m.application.Controller.SelectStage(m.session, next)
	if next == app.StageJobs && m.input.Value() == "" {
		if q := m.application.Controller.DefaultQuery(m.session); q != "" {
			m.input.SetValue("/search " + q)
		}
	}
	m.refreshChat()
}

func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.running {
		return nil
	}
	m.input.Reset()
	m.running = true

	ctrl := m.application.Controller
	session := m.session
	stage := session.Stage()
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		if reply, handled := ctrl.ExecuteCommand(ctx, session, text); handled {
			return turnDoneMsg{text: reply}
		}
		result := ctrl.HandleTurn(ctx, session, stage, text)
		return turnDoneMsg{text: result.Display}
	}
	m.refreshChat()
	return tea.Batch(m.spin.Tick, run)
}

func (m *Model) refreshChat() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, msg := range m.session.History(m.session.Stage()) {
		label := m.theme.RoleAI.Render("Compass")
		if msg.Role == app.RoleUser {
			label = m.theme.RoleYou.Render("You")
		}
		b.WriteString(label + "\n" + msg.Content + "\n\n")
	}
	m.chatVP.SetContent(b.String())
	m.chatVP.GotoBottom()
}

func (m *Model) View() string {
	if !m.ready {
		return "starting..."
	}

	title := m.theme.TopBarTitle.Render("Career Compass 🧭")
	var tabs []string
	for _, st := range stages {
		style := m.theme.Tab
		if st == m.session.Stage() {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(st.Label()))
	}
	top := m.theme.TopBar.Render(
		lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, "")))

	chat := m.theme.Pane.Width(m.width - 2).Render(m.chatVP.View())

	status := m.statusLine()
	if m.running {
		status = m.theme.Spinner.Render(m.spin.View()) + " thinking..."
	}

	input := m.theme.InputBox.Width(m.width - 2).Render(m.input.View())
	footer := m.theme.Footer.Render(status + "  ·  tab switches stage · ctrl+c quits")

	return lipgloss.JoinVertical(lipgloss.Left, top, chat, input, footer)
}

func (m *Model) statusLine() string {
	skills := len(m.session.Skills())
	selected := len(m.session.SelectedSkills())
	saved := len(m.session.SavedJobs())
	goals := m.session.Goals.Len()
	return fmt.Sprintf("skills %d · focus %d · saved jobs %d · goals %d", skills, selected, saved, goals)
}
