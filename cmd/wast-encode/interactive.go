package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	wastencode "github.com/wippyai/wast-encode"
	"github.com/wippyai/wast-encode/stream"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	dir      string
	filename string
	entries  []entry
	visible  []int
	filter   textinput.Model
	selected int
	height   int
	state    modelState
	loaded   bool
}

type entry struct {
	res   wastencode.Result
	index int
}

// kind is the record's type tag, or a placeholder for records that are
// not command objects.
func (e entry) kind() string {
	if e.res.Command == nil {
		return "(not a command)"
	}
	return string(e.res.Command.Type)
}

// output is what the record contributed to the run: its command line, its
// diagnostic echo, or the reason it was dropped.
func (e entry) output() string {
	switch {
	case e.res.OK:
		return e.res.Line
	case e.res.Unhandled():
		return "stderr: " + e.res.Diagnostic()
	case e.res.Err != nil:
		return "skipped: " + e.res.Err.Error()
	default:
		return "module -> " + e.res.ModulePath
	}
}

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	stateDetail
)

func newInteractiveModel(dir, filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "substring"
	ti.Prompt = "filter: "
	ti.Width = 40
	return &interactiveModel{
		dir:      dir,
		filename: filename,
		filter:   ti,
		height:   20,
		state:    stateBrowse,
	}
}

type loadedMsg struct {
	err     error
	entries []entry
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadRecords
}

func (m *interactiveModel) loadRecords() tea.Msg {
	f, err := os.Open(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	defer f.Close()

	r := stream.NewReader(f)
	t := wastencode.NewTranscoder(m.dir)
	var entries []entry
	for raw := range r.All() {
		entries = append(entries, entry{res: t.Step(raw), index: len(entries)})
	}
	if err := r.Err(); err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{entries: entries}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, filter, help and spacing take six rows
		m.height = max(msg.Height-6, 1)

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.applyFilter()

	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.visible) > 0 {
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateBrowse
			}

		case "esc":
			if m.state == stateDetail {
				m.state = stateBrowse
			}
		}
	}

	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.filter.Blur()
		m.state = stateBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if needle == "" ||
			strings.Contains(strings.ToLower(e.kind()), needle) ||
			strings.Contains(strings.ToLower(e.output()), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) current() (entry, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return entry{}, false
	}
	return m.entries[m.visible[m.selected]], true
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if !m.loaded {
		return "Loading records..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("wast-encode"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf(" (%d of %d records)", len(m.visible), len(m.entries)))
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateFilter:
		start, end := m.window()
		for i := start; i < end; i++ {
			e := m.entries[m.visible[i]]
			row := fmt.Sprintf("%4d %-18s %s", e.index+1, e.kind(), e.output())
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString("  " + kindStyle.Render(row))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(m.filter.View())
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("enter/esc done"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter details • / filter • q quit"))
		}

	case stateDetail:
		e, ok := m.current()
		if !ok {
			break
		}
		b.WriteString(fmt.Sprintf("Record %d: %s\n\n", e.index+1, kindStyle.Render(e.kind())))
		b.WriteString("module path: " + e.res.ModulePath + "\n")
		if e.res.Command != nil && e.res.Command.SourceLine() > 0 {
			b.WriteString(fmt.Sprintf("wast line:   %d\n", e.res.Command.SourceLine()))
		}
		b.WriteString("\n")
		switch {
		case e.res.OK:
			b.WriteString(lineStyle.Render(e.res.Line))
		case e.res.Err != nil:
			b.WriteString(errorStyle.Render(e.output()))
		default:
			b.WriteString(e.output())
		}
		b.WriteString("\n\n")
		b.WriteString(string(e.res.Raw))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

// window returns the slice of visible rows that keeps the cursor on screen.
func (m *interactiveModel) window() (int, int) {
	n := len(m.visible)
	if n <= m.height {
		return 0, n
	}
	start := m.selected - m.height/2
	start = max(start, 0)
	start = min(start, n-m.height)
	return start, start + m.height
}

func runInteractive(dir, filename string) error {
	p := tea.NewProgram(newInteractiveModel(dir, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
