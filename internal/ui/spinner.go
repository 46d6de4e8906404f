package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type spinnerModel struct {
	title   string
	spinner spinner.Model
	start   time.Time
	width   int
	done    bool
	err     error
}

type workDoneMsg struct{ err error }

func newSpinnerModel(title string) *spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return &spinnerModel{
		title:   title,
		spinner: sp,
		start:   time.Now(),
		width:   80,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	elapsed := time.Since(m.start).Round(100 * time.Millisecond)
	title := Truncate(m.title, m.width-20)
	if m.done {
		status := "done"
		if m.err != nil {
			status = "failed"
		}
		return fmt.Sprintf("%s: %s (%s)\n", status, title, elapsed)
	}
	return fmt.Sprintf("%s %s (%s)\n", m.spinner.View(), title, elapsed)
}

// RunWithSpinner runs work while a spinner titled title is drawn on out.
// It returns work's error once work has finished.
func RunWithSpinner(ctx context.Context, out io.Writer, title string, work func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(title),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)

	done := make(chan error, 1)
	go func() {
		err := work(ctx)
		done <- err
		p.Send(workDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		// Rendering failed; the work itself is unaffected.
		return <-done
	}

	select {
	case err := <-done:
		return err
	default:
		// The program stopped before work did (interrupt): cancel and wait.
		cancel()
		if err := <-done; err != nil {
			return err
		}
		return context.Canceled
	}
}
