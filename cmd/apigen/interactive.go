package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/apigen"
	"github.com/wippyai/apigen/config"
	"github.com/wippyai/apigen/specs"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// listHeight is the number of entries shown at once.
const listHeight = 20

type modelState int

const (
	stateBrowse modelState = iota
	stateShowWrapper
)

type interactiveModel struct {
	err      error
	cfg      *config.Config
	api      string
	trace    string
	entries  []entry
	visible  []int
	filter   textinput.Model
	view     viewport.Model
	selected int
	state    modelState
	loaded   bool
}

func newInteractiveModel(api string, cfg *config.Config) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{
		cfg:    cfg,
		api:    api,
		filter: ti,
		view:   viewport.New(80, listHeight),
		state:  stateBrowse,
	}
}

type loadedMsg struct {
	err     error
	trace   string
	entries []entry
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load)
}

func (m *interactiveModel) load() tea.Msg {
	api, err := specs.Lookup(m.api)
	if err != nil {
		return loadedMsg{err: err}
	}
	mod, err := api.Load()
	if err != nil {
		return loadedMsg{err: err}
	}
	files, err := apigen.Generate(mod, api, m.cfg)
	if err != nil {
		return loadedMsg{err: err}
	}
	names := apigen.FileNames(api.Name, m.cfg.Dispatch.Inline)
	var src string
	for _, f := range files {
		if f.Name == names.Trace {
			src = f.Source
		}
	}
	return loadedMsg{trace: src, entries: entries(mod)}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowWrapper {
				return m, tea.Quit
			}

		case "up":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			if m.state == stateBrowse && len(m.visible) > 0 {
				e := m.entries[m.visible[m.selected]]
				body := apigen.Excerpt(m.trace, e.symbol)
				if body == "" {
					body = errorStyle.Render("no wrapper generated for " + e.symbol)
				}
				m.view.SetContent(body)
				m.view.GotoTop()
				m.state = stateShowWrapper
				return m, nil
			}

		case "esc":
			if m.state == stateShowWrapper {
				m.state = stateBrowse
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-6, 1)

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loaded = true
		m.trace = msg.trace
		m.entries = msg.entries
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateBrowse:
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != before {
			m.applyFilter()
		}
	case stateShowWrapper:
		m.view, cmd = m.view.Update(msg)
	}
	return m, cmd
}

// applyFilter keeps the entries whose symbol contains the filter text,
// ignoring case.
func (m *interactiveModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if strings.Contains(strings.ToLower(e.symbol), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err))
	}

	if !m.loaded {
		return "Generating " + m.api + "..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("apigen"))
	b.WriteString(" ")
	b.WriteString(m.api)
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		first := max(m.selected-listHeight+1, 0)
		last := min(first+listHeight, len(m.visible))
		for i := first; i < last; i++ {
			e := m.entries[m.visible[i]]
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + e.label))
			} else {
				b.WriteString("  " + m.formatEntry(e))
			}
			b.WriteString("\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("  no match"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d • ↑/↓ select • enter show wrapper • ctrl+c quit",
			len(m.visible), len(m.entries))))

	case stateShowWrapper:
		e := m.entries[m.visible[m.selected]]
		b.WriteString(funcStyle.Render(e.symbol))
		b.WriteString("\n\n")
		b.WriteString(m.view.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(e entry) string {
	if e.method {
		return typeStyle.Render(e.label)
	}
	return funcStyle.Render(e.label)
}

func runInteractive(api string, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(api, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
