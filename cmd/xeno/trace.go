package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenoquest/xenocode/xeno"
)

const defaultTraceWidth = 80

func traceCommand(args []string) error {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var inputs inputList
	fs.Var(&inputs, "input", "queue an input value for §receive (repeatable)")
	interactive := fs.Bool("interactive", false, "browse the report in a scrollable view")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("xeno trace: program path required")
	}
	source, _, err := readProgram(remaining[0])
	if err != nil {
		return err
	}

	engine := xeno.MustNewEngine(xeno.Config{Trace: xeno.TraceDetailed})
	result := engine.Execute(context.Background(), source, inputs.values())

	if *interactive {
		p := tea.NewProgram(newTraceModel(result), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	fmt.Println(renderTraceReport(result, defaultTraceWidth))
	if !result.Success {
		return fmt.Errorf("execution failed: %w", result.Err)
	}
	return nil
}

// renderTraceReport lays out the output, trace and final variables of one
// execution as bordered panels followed by a status line.
func renderTraceReport(result *xeno.Result, width int) string {
	panelWidth := max(width-4, 20)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	panel := func(title string, lines []string) string {
		body := mutedStyle.Render("(none)")
		if len(lines) > 0 {
			body = strings.Join(lines, "\n")
		}
		return borderStyle.Width(panelWidth).Render(titleStyle.Render(title) + "\n" + body)
	}

	varLines := make([]string, 0, len(result.Variables))
	varNameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, name := range sortedNames(result.Variables) {
		varLines = append(varLines, varNameStyle.Render(name)+" = "+result.Variables[name].Inspect())
	}

	status := resultStyle.Render(fmt.Sprintf("ok in %d step(s)", result.Steps))
	if !result.Success {
		status = errorStyle.Render(fmt.Sprintf("%s after %d step(s): %s", result.Kind, result.Steps, result.Error))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		panel("Output", result.Output),
		panel("Trace", result.Trace),
		panel("Variables", varLines),
		status,
	)
}

type traceModel struct {
	result   *xeno.Result
	viewport viewport.Model
	ready    bool
}

var traceQuit = key.NewBinding(
	key.WithKeys("q", "esc", "ctrl+c"),
	key.WithHelp("q", "quit"),
)

func newTraceModel(result *xeno.Result) traceModel {
	return traceModel{result: result}
}

func (m traceModel) Init() tea.Cmd {
	return nil
}

func (m traceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, traceQuit) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := max(msg.Height-2, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(renderTraceReport(m.result, msg.Width))
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m traceModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	footer := helpKeyStyle.Render("↑/↓") + helpDescStyle.Render(" scroll  ") +
		helpKeyStyle.Render("q") + helpDescStyle.Render(" quit  ") +
		mutedStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	return m.viewport.View() + "\n" + footer
}
