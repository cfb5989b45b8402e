// internal/tui/tui.go
// Package tui provides the interactive chat interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/toolless/internal/appconfig"
	"github.com/mwiater/toolless/internal/chat"
	"github.com/mwiater/toolless/internal/conversation"
	"github.com/mwiater/toolless/internal/providers"
	"github.com/mwiater/toolless/internal/providers/ollama"
	"github.com/mwiater/toolless/internal/util"
)

// viewState represents the current view of the application.
type viewState int

const (
	// viewHostSelector is the state where the user selects a host.
	viewHostSelector viewState = iota
	// viewChat is the state where the user is interacting with the chat.
	viewChat
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	toolStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	headerStyle    = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
)

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx           context.Context
	config        *appconfig.Config
	provider      providers.ChatProvider
	session       *chat.Session
	state         viewState
	isLoading     bool
	err           error
	hostList      list.Model
	textArea      textarea.Model
	viewport      viewport.Model
	spinner       spinner.Model
	transcript    []string
	selectedHost  appconfig.Host
	width, height int
}

// item represents a selectable host in the host list.
type item struct {
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// replyMsg carries the messages a completed turn appended to history.
type replyMsg struct {
	appended []conversation.Message
}

// replyErrMsg carries a failed turn's error.
type replyErrMsg struct{ error }

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *appconfig.Config, provider providers.ChatProvider) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Focus()
	ta.Prompt = "Ask Anything: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	hostItems := make([]list.Item, len(cfg.Hosts))
	for i, h := range cfg.Hosts {
		hostItems[i] = item{title: h.Name, desc: fmt.Sprintf("%s (%s)", h.URL, h.Model)}
	}
	hostList := list.New(hostItems, list.NewDefaultDelegate(), 0, 0)
	hostList.Title = "Select a Host"

	m := &model{
		ctx:      ctx,
		config:   cfg,
		provider: provider,
		state:    viewHostSelector,
		spinner:  s,
		textArea: ta,
		hostList: hostList,
		viewport: viewport.New(100, 5),
	}
	if len(cfg.Hosts) == 1 {
		m.enterChat(cfg.Hosts[0])
	}
	return m
}

// enterChat switches to the chat view against the given host.
func (m *model) enterChat(host appconfig.Host) {
	m.selectedHost = host
	m.session = chat.NewSession(m.config, host, m.provider)
	m.state = viewChat
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.hostList.SetSize(msg.Width-4, msg.Height-4)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 5
		m.textArea.SetWidth(msg.Width - 2)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.state == viewHostSelector {
				if selected, ok := m.hostList.SelectedItem().(item); ok {
					for _, h := range m.config.Hosts {
						if h.Name == selected.title {
							m.enterChat(h)
							break
						}
					}
				}
				return m, nil
			}
			if m.state == viewChat && !m.isLoading {
				text := strings.TrimSpace(m.textArea.Value())
				if text == "" {
					return m, nil
				}
				m.textArea.Reset()
				m.isLoading = true
				m.transcript = append(m.transcript, userStyle.Render("You: ")+text)
				m.refreshViewport()
				return m, tea.Batch(m.spinner.Tick, m.sendCmd(text))
			}
		}

	case replyMsg:
		m.isLoading = false
		for _, appended := range msg.appended {
			m.renderMessage(appended)
		}
		m.refreshViewport()
		return m, nil

	case replyErrMsg:
		m.isLoading = false
		m.err = msg.error
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.state {
	case viewHostSelector:
		m.hostList, cmd = m.hostList.Update(msg)
		cmds = append(cmds, cmd)
	case viewChat:
		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// sendCmd runs one conversation turn off the UI goroutine.
func (m *model) sendCmd(text string) tea.Cmd {
	session := m.session
	ctx := m.ctx
	return func() tea.Msg {
		appended, err := session.Send(ctx, text, nil)
		if err != nil {
			return replyErrMsg{err}
		}
		return replyMsg{appended: appended}
	}
}

// renderMessage appends one history message to the transcript.
func (m *model) renderMessage(msg conversation.Message) {
	switch msg.Role {
	case conversation.RoleAssistant:
		line := assistantStyle.Render(m.selectedHost.Model+": ") + msg.Content
		if len(msg.ToolCalls) > 0 {
			names := make([]string, len(msg.ToolCalls))
			for i, call := range msg.ToolCalls {
				names[i] = call.Name
			}
			line += toolStyle.Render(fmt.Sprintf("  [calling: %s]", strings.Join(names, ", ")))
		}
		m.transcript = append(m.transcript, line)
	case conversation.RoleTool:
		m.transcript = append(m.transcript, toolStyle.Render(msg.Content))
	}
}

// refreshViewport re-renders the transcript into the viewport.
func (m *model) refreshViewport() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	m.viewport.SetContent(util.WrapToWidth(strings.Join(m.transcript, "\n\n"), width))
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m *model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress any key to exit.", m.err))
	}
	switch m.state {
	case viewHostSelector:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.hostList.View())
	case viewChat:
		header := headerStyle.Render(fmt.Sprintf("toolless chat: %s / %s", m.selectedHost.Name, m.selectedHost.Model))
		status := ""
		if m.isLoading {
			status = m.spinner.View() + " thinking..."
		}
		return fmt.Sprintf("%s\n%s\n%s\n%s", header, m.viewport.View(), status, m.textArea.View())
	}
	return ""
}

// Start launches the chat UI and blocks until it exits.
func Start(ctx context.Context, cfg *appconfig.Config) error {
	if len(cfg.Hosts) == 0 {
		return fmt.Errorf("tui: configuration defines no hosts")
	}
	provider := ollama.New(cfg)
	defer provider.Close()

	program := tea.NewProgram(initialModel(ctx, cfg, provider), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
