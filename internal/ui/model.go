package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/mdstatus/internal/report"
	"github.com/faizmokh/mdstatus/internal/section"
)

const (
	defaultBodyWidth  = 80
	defaultBodyHeight = 10
)

var (
	cursorStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Model owns Bubble Tea state for browsing the digest.
type Model struct {
	ctx    context.Context
	loader *section.Loader
	paths  []string
	opts   report.Options
	keys   keyMap

	sections   []section.Section
	categories []section.Marker
	current    int
	selected   int

	showBody bool
	body     viewport.Model

	loading    bool
	statusLine string
	errorLine  string
}

type sectionsLoadedMsg struct {
	sections []section.Section
	err      error
}

// NewModel seeds a Bubble Tea model that loads paths through loader.
func NewModel(ctx context.Context, loader *section.Loader, paths []string, opts report.Options) Model {
	return Model{
		ctx:        ctx,
		loader:     loader,
		paths:      paths,
		opts:       opts,
		keys:       defaultKeyMap(),
		categories: report.Categories(opts.ShowClosed),
		body:       viewport.New(defaultBodyWidth, defaultBodyHeight),
		loading:    true,
		statusLine: "Loading documents...",
	}
}

// Init loads the documents.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update wires state transitions from user input and document loads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.body.Width = msg.Width
		m.body.Height = max(msg.Height/2, 3)
		return m, nil
	case sectionsLoadedMsg:
		return m.handleLoaded(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.items())-1 {
			m.selected++
			m.syncBody()
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.syncBody()
		}
	case key.Matches(msg, m.keys.NextCategory):
		return m.gotoCategory((m.current + 1) % len(m.categories)), nil
	case key.Matches(msg, m.keys.PrevCategory):
		return m.gotoCategory((m.current + len(m.categories) - 1) % len(m.categories)), nil
	case key.Matches(msg, m.keys.ToggleBody):
		m.showBody = !m.showBody && len(m.items()) > 0
		m.syncBody()
	case key.Matches(msg, m.keys.ScrollBody):
		if m.showBody {
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.statusLine = "Reloading documents..."
		m.errorLine = ""
		return m, m.loadCmd()
	default:
		if n := digit(msg.String()); n >= 1 && n <= len(m.categories) {
			return m.gotoCategory(n - 1), nil
		}
	}
	return m, nil
}

func (m Model) handleLoaded(msg sectionsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = msg.err.Error()
		m.statusLine = ""
		return m, nil
	}

	m.sections = msg.sections
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Loaded %d section%s from %d document%s.",
		len(m.sections), plural(len(m.sections)), len(m.paths), plural(len(m.paths)))
	if n := len(m.items()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	m.syncBody()
	return m, nil
}

func (m Model) gotoCategory(index int) Model {
	m.current = index
	m.selected = 0
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("%s: %d item%s", m.categories[index], len(m.items()), plural(len(m.items())))
	if len(m.items()) == 0 {
		m.showBody = false
	}
	m.syncBody()
	return m
}

// items returns the sections of the current category in recency order.
func (m Model) items() []section.Section {
	if len(m.categories) == 0 {
		return nil
	}
	return report.Select(m.sections, m.categories[m.current])
}

func (m *Model) syncBody() {
	items := m.items()
	if !m.showBody || m.selected >= len(items) {
		m.body.SetContent("")
		return
	}
	m.body.SetContent(items[m.selected].Body)
	m.body.GotoTop()
}

func (m Model) loadCmd() tea.Cmd {
	loader := m.loader
	ctx := m.ctx
	paths := m.paths
	return func() tea.Msg {
		sections, err := loader.Load(ctx, paths)
		return sectionsLoadedMsg{sections: sections, err: err}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	for i, marker := range m.categories {
		if i > 0 {
			b.WriteString("  ")
		}
		label := fmt.Sprintf("%d %s (%d)", i+1, marker, len(report.Select(m.sections, marker)))
		if i == m.current {
			b.WriteString(lipgloss.NewStyle().Bold(true).Underline(true).Foreground(report.HeaderColor(marker)).Render(label))
		} else {
			b.WriteString(dimStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	items := m.items()
	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(items) == 0:
		b.WriteString("(no items)\n")
	default:
		for i, s := range items {
			line, err := report.Line(s, m.opts)
			if err != nil {
				line = err.Error()
			}
			if i == m.selected {
				b.WriteString(cursorStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteByte('\n')
		}
	}

	if m.showBody {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("-", max(m.body.Width, 1))))
		b.WriteString("\n")
		b.WriteString(m.body.View())
		b.WriteString("\n")
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.keys.help()))
	b.WriteByte('\n')

	return b.String()
}

func digit(s string) int {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return -1
	}
	return int(s[0] - '0')
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
