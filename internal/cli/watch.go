package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// watchSource is what the live view reads and writes.
type watchSource struct {
	load   func(ctx context.Context) (*app.TodayResponse, error)
	toggle func(ctx context.Context, taskID string) (*app.RecordCompletionResponse, error)
}

type watchKeyMap struct {
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Refresh, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Toggle:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "toggle habit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

type todayLoadedMsg struct {
	resp *app.TodayResponse
	err  error
}

type toggledMsg struct {
	resp *app.RecordCompletionResponse
	err  error
}

type watchTickMsg time.Time

// ── model ────────────────────────────────────────────────────────────────────

// watchModel is the `today --watch` view. It reloads on every tick so
// session statuses roll over as boundaries pass.
type watchModel struct {
	src      watchSource
	interval time.Duration
	keys     watchKeyMap
	help     help.Model

	today  *app.TodayResponse
	err    error
	status string
}

func newWatchModel(src watchSource, interval time.Duration) *watchModel {
	if interval <= 0 {
		interval = time.Minute
	}
	return &watchModel{
		src:      src,
		interval: interval,
		keys:     defaultWatchKeys(),
		help:     help.New(),
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m *watchModel) load() tea.Cmd {
	load := m.src.load
	return func() tea.Msg {
		resp, err := load(context.Background())
		return todayLoadedMsg{resp: resp, err: err}
	}
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m *watchModel) toggle(taskID string) tea.Cmd {
	toggle := m.src.toggle
	return func() tea.Msg {
		resp, err := toggle(context.Background(), taskID)
		return toggledMsg{resp: resp, err: err}
	}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case todayLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.today = msg.resp
		}
		return m, nil

	case watchTickMsg:
		return m, tea.Batch(m.load(), m.tick())

	case toggledMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.status = strings.TrimSpace(strings.SplitN(formatter.FormatRecord(msg.resp), "\n", 2)[0])
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.load()
		case key.Matches(msg, m.keys.Toggle):
			n := int(msg.Runes[0] - '0')
			if m.today == nil || n > len(m.today.Tasks) {
				m.status = formatter.Dim(fmt.Sprintf("No habit #%d", n))
				return m, nil
			}
			return m, m.toggle(m.today.Tasks[n-1].Task.ID)
		}
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.today == nil:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	default:
		b.WriteString(formatter.FormatToday(m.today) + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
