package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenoquest/xenocode/xeno"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const (
	replPrompt         = "xeno> "
	replContinuePrompt = "....> "
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

// replSession is the program built up so far. Every accepted statement is
// appended to lines and the whole program is replayed, so output and
// variables always match a single run of the session source.
type replSession struct {
	lines   []string
	inputs  []xeno.Value
	pending []string
	depth   int
	vars    map[string]xeno.Value
	printed int
	traced  int
}

func newREPLSession() *replSession {
	return &replSession{vars: make(map[string]xeno.Value)}
}

type replModel struct {
	textInput   textinput.Model
	engine      *xeno.Engine
	session     *replSession
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	showTrace   bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlH key.Binding
	CtrlT key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle vars"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
	CtrlT: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle trace"),
	),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement or expression..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = replPrompt

	engine := xeno.MustNewEngine(xeno.Config{Trace: xeno.TraceBasic})

	return replModel{
		textInput:  ti,
		engine:     engine,
		session:    newREPLSession(),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.CtrlT):
			m.showTrace = !m.showTrace
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") && len(m.session.pending) == 0 {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			if len(m.session.pending) > 0 {
				m.textInput.Prompt = replContinuePrompt
			} else {
				m.textInput.Prompt = replPrompt
			}
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":trace", ":t":
		m.showTrace = !m.showTrace
	case ":reset", ":r":
		m.session = newREPLSession()
		m.textInput.Prompt = replPrompt
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Session reset",
		})
	case ":input", ":i":
		literal := strings.TrimSpace(strings.TrimPrefix(input, cmd))
		if literal == "" {
			m.history = append(m.history, historyEntry{
				input:  input,
				output: "usage: :input <literal>",
				isErr:  true,
			})
			break
		}
		val := xeno.ParseLiteral(literal)
		m.session.inputs = append(m.session.inputs, val)
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("queued %s (%d pending)", val.Inspect(), len(m.session.inputs)),
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

var replKeywords = []string{
	xeno.KeywordTransmit, xeno.KeywordReceive, xeno.KeywordIterate, xeno.KeywordIn,
	xeno.KeywordEndIterate, xeno.KeywordIf, xeno.KeywordElse, xeno.KeywordEndIf,
	xeno.KeywordFunction, xeno.KeywordEndFunction, xeno.KeywordCall,
	xeno.KeywordCreateMap, xeno.KeywordCreateArray, xeno.KeywordNull,
	xeno.KeywordExists, xeno.KeywordTrue, xeno.KeywordFalse,
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string
	for _, k := range replKeywords {
		if strings.HasPrefix(k, lastWord) {
			completions = append(completions, k)
		}
	}
	for _, name := range sortedNames(m.session.vars) {
		if strings.HasPrefix(name, lastWord) {
			completions = append(completions, name)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

// evaluate handles one entered line. Block openers are buffered until the
// matching closer arrives; statements extend the session program; anything
// else is evaluated as an expression against the current variables.
func (m replModel) evaluate(input string) (string, bool) {
	s := m.session
	if len(s.pending) > 0 || xeno.IsBlockOpener(input) {
		s.pending = append(s.pending, input)
		switch {
		case xeno.IsBlockOpener(input):
			s.depth++
		case xeno.IsBlockCloser(input):
			s.depth--
		}
		if s.depth > 0 {
			return "…", false
		}
		block := s.pending
		s.pending = nil
		s.depth = 0
		return m.extend(block...)
	}

	if isStatementLine(input) {
		return m.extend(input)
	}

	val, err := xeno.Evaluate(input, s.vars)
	if err != nil {
		return err.Error(), true
	}
	return val.Inspect(), false
}

// extend replays the session with extra lines appended and keeps them only
// if the whole program still runs.
func (m replModel) extend(lines ...string) (string, bool) {
	s := m.session
	candidate := append(append([]string{}, s.lines...), lines...)
	result := m.engine.Execute(context.Background(), strings.Join(candidate, "\n"), s.inputs)
	if !result.Success {
		return result.Error, true
	}

	s.lines = candidate
	s.vars = result.Variables
	var out []string
	if s.printed <= len(result.Output) {
		out = append(out, result.Output[s.printed:]...)
	}
	s.printed = len(result.Output)
	if m.showTrace && s.traced <= len(result.Trace) {
		for _, entry := range result.Trace[s.traced:] {
			out = append(out, mutedStyle.Render(entry))
		}
	}
	s.traced = len(result.Trace)

	if len(out) == 0 {
		return "ok", false
	}
	return strings.Join(out, "\n"), false
}

func isStatementLine(line string) bool {
	if strings.Contains(line, xeno.SymbolAssign) {
		return true
	}
	for _, kw := range []string{xeno.KeywordTransmit, xeno.KeywordCall, xeno.KeywordElse, xeno.KeywordEndIf, xeno.KeywordEndIterate, xeno.KeywordEndFunction} {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Xenocode REPL")
	status := mutedStyle.Render(fmt.Sprintf("%d line(s), %d input(s) queued", len(m.session.lines), len(m.session.inputs)))
	b.WriteString(header + " " + status + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 12
	}
	if m.showVars {
		reservedLines += len(m.session.vars) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = max(len(m.history)-availableHeight, 0)
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(m.session.vars))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" vars  ") +
		helpKeyStyle.Render("ctrl+t") + helpDescStyle.Render(" trace  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderVarsPanel(vars map[string]xeno.Value) string {
	if len(vars) == 0 {
		return borderStyle.Render(mutedStyle.Render("No variables defined"))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Variables"))
	varNameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, name := range sortedNames(vars) {
		line := fmt.Sprintf("  %s = %s", varNameStyle.Render(name), vars[name].Inspect())
		lines = append(lines, line)
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate command history"},
		{"Tab", "Autocomplete"},
		{"Enter", "Run statement or evaluate expression"},
		{":help", "Toggle this help"},
		{":vars", "Toggle variables panel"},
		{":trace", "Toggle trace output"},
		{":input", "Queue a value for §receive"},
		{":clear", "Clear history"},
		{":reset", "Discard the session program"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
