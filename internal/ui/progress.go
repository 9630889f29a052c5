// Package ui shows live feedback while a report downloads on a TTY.
package ui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fetch runs fn in the background and shows a spinner until it returns.
// The spinner writes to stderr so stdout stays clean for the report.
// Ctrl-C cancels the download through ctx.
func Fetch(ctx context.Context, label string, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newModel(ctx, label, fn)
	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
	)
	final, err := program.Run()
	if err != nil {
		if fm, ok := final.(model); ok && fm.err != nil {
			return nil, fm.err
		}
		return nil, err
	}
	fm := final.(model)
	return fm.data, fm.err
}

type fetchDoneMsg struct {
	data []byte
	err  error
}

type model struct {
	ctx     context.Context
	label   string
	fn      func(context.Context) ([]byte, error)
	spinner spinner.Model
	data    []byte
	err     error
}

func newModel(ctx context.Context, label string, fn func(context.Context) ([]byte, error)) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	return model{ctx: ctx, label: label, fn: fn, spinner: sp}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startFetch())
}

func (m model) startFetch() tea.Cmd {
	return func() tea.Msg {
		data, err := m.fn(m.ctx)
		return fetchDoneMsg{data: data, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		m.data = msg.data
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.data != nil || m.err != nil {
		return ""
	}
	return m.spinner.View() + " downloading " + m.label + "\n"
}
