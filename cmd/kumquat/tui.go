package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/kumquat/integrate"
	"github.com/wippyai/kumquat/luaquad"
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

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive integration of Lua expressions",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("tui needs an interactive terminal")
			}
			m := newInteractiveModel(a)
			defer m.state.Close()
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type modelStage int

const (
	stageSelectMethod modelStage = iota
	stageInput
	stageShowResult
)

// Input field order.
const (
	fieldExpr = iota
	fieldBounds
	fieldOptions
)

type interactiveModel struct {
	err      error
	app      *app
	state    *luaquad.State
	result   *integrate.Result
	methods  []integrate.Method
	inputs   []textinput.Model
	selected int
	focusIdx int
	stage    modelStage
}

type callResultMsg struct {
	err    error
	result *integrate.Result
}

func newInteractiveModel(a *app) *interactiveModel {
	return &interactiveModel{
		app:     a,
		state:   luaquad.NewState(luaquad.WithOutput(a.stderr)),
		methods: integrate.Methods(),
		stage:   stageSelectMethod,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.stage != stageInput {
				return m, tea.Quit
			}

		case "up", "k":
			if m.stage == stageSelectMethod && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.stage == stageSelectMethod && m.selected < len(m.methods)-1 {
				m.selected++
			}

		case "enter":
			switch m.stage {
			case stageSelectMethod:
				m.prepareInputs()
				m.stage = stageInput
				return m, nil

			case stageInput:
				return m, m.runIntegration

			case stageShowResult:
				m.stage = stageInput
				m.result = nil
				m.err = nil
				return m, nil
			}

		case "tab":
			if m.stage == stageInput && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "esc":
			switch m.stage {
			case stageInput:
				m.stage = stageSelectMethod
				m.inputs = nil
			case stageShowResult:
				m.stage = stageSelectMethod
				m.result = nil
				m.err = nil
			}
			return m, nil
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.stage = stageShowResult
	}

	if m.stage == stageInput {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	arity, _ := integrate.Arity(m.methods[m.selected])

	fields := []struct {
		prompt, placeholder string
	}{
		{"f(x) = ", "exp(I*x)"},
		{"bounds: ", boundsPlaceholder(arity)},
		{"options: ", `{"tolerance": 1e-10}`},
	}
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.prompt
		ti.Placeholder = f.placeholder
		ti.Width = 48
		if i == fieldExpr {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = fieldExpr
}

func boundsPlaceholder(arity int) string {
	switch arity {
	case 0:
		return "none"
	case 1:
		return "0"
	default:
		return "0,1"
	}
}

func (m *interactiveModel) runIntegration() tea.Msg {
	method := m.methods[m.selected]
	bounds, err := parseBounds(m.inputs[fieldBounds].Value())
	if err != nil {
		return callResultMsg{err: err}
	}
	opts, err := parseOptions(m.inputs[fieldOptions].Value())
	if err != nil {
		return callResultMsg{err: err}
	}
	fn, err := m.state.Function(m.inputs[fieldExpr].Value())
	if err != nil {
		return callResultMsg{err: err}
	}

	opts = append(configOptions(m.app.v, method), opts...)
	res, err := integrate.Run(method, m.state.Integrand(fn, nil, nil), bounds, opts...)
	return callResultMsg{result: res, err: err}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("kumquat"))
	b.WriteString(" complex quadrature\n\n")

	switch m.stage {
	case stageSelectMethod:
		b.WriteString("Select a method:\n\n")
		for i, meth := range m.methods {
			line := m.formatMethod(meth)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stageInput:
		b.WriteString(fmt.Sprintf("Integrating with %s\n\n", funcStyle.Render(string(m.methods[m.selected]))))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter integrate • esc back"))

	case stageShowResult:
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(string(m.methods[m.selected]))))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(luaquad.FormatComplex(m.result.Value)))
			b.WriteString(typeStyle.Render(fmt.Sprintf("  ± %g", m.result.ErrorEstimate)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • esc methods • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatMethod(meth integrate.Method) string {
	arity, _ := integrate.Arity(meth)
	return funcStyle.Render(string(meth)) + " " + typeStyle.Render(boundsLabel(arity))
}
