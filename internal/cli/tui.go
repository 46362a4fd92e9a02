package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/pacing"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// Stepper styles
var (
	stepStageStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stepDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StepModel - Interactive checkpoint stepping
// =============================================================================

// checkpointMsg carries a rendered snapshot of the state at a checkpoint.
// The snapshot is drawn on the runner goroutine so the model never reads
// the live state.
type checkpointMsg struct {
	checkpoint pipeline.Checkpoint
	view       string
	counts     pipeline.Counts
}

// runDoneMsg is sent once the runner goroutine returns.
type runDoneMsg struct {
	err error
}

// StepModel is the bubbletea model that shows a run while it advances.
// In gated mode each key press releases one checkpoint.
type StepModel struct {
	mode     pacing.Mode
	trigger  chan<- struct{}
	release  chan struct{} // closed by "c"; trigger is never closed
	finished <-chan struct{}
	cancel   context.CancelFunc

	released bool
	steps    int
	last     pipeline.Checkpoint
	view     string
	counts   pipeline.Counts
	done     bool
	err      error
}

func (m StepModel) Init() tea.Cmd {
	return nil
}

func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		case " ", "enter", "n", "right":
			if m.gated() {
				return m, advance(m.trigger, m.finished)
			}
		case "c":
			if m.gated() {
				m.released = true
				close(m.release)
			}
		}
	case checkpointMsg:
		m.steps++
		m.last = msg.checkpoint
		m.view = msg.view
		m.counts = msg.counts
	case runDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m StepModel) gated() bool {
	return m.mode == pacing.ModeGated && !m.released && !m.done
}

// advance releases one checkpoint, giving up once the run has finished.
func advance(trigger chan<- struct{}, finished <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case trigger <- struct{}{}:
		case <-finished:
		}
		return nil
	}
}

func (m StepModel) View() string {
	var b strings.Builder

	title := "waiting for first checkpoint"
	if m.steps > 0 {
		title = fmt.Sprintf("%s #%d", m.last.Stage, m.last.Index)
	}
	b.WriteString(stepStageStyle.Render(title))
	if m.last.Detail != "" {
		b.WriteString(" " + stepDimStyle.Render(m.last.Detail))
	}
	b.WriteString("\n\n")
	b.WriteString(m.view)
	b.WriteString("\n")

	c := m.counts
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Rooms", "Doors", "Nodes", "Edges", "Walls", "Walkable").
		Row(fmt.Sprint(c.Rooms), fmt.Sprint(c.Doors), fmt.Sprint(c.GraphNodes),
			fmt.Sprint(c.GraphEdges), fmt.Sprint(c.Walls), fmt.Sprint(c.TraversalNodes)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.gated() {
		b.WriteString(stepDimStyle.Render("space/⏎ step  c continue  q quit"))
	} else {
		b.WriteString(stepDimStyle.Render("q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// runStepper runs stages under a timed or gated pacer while a StepModel
// shows every checkpoint. Quitting the model cancels the run.
func runStepper(ctx context.Context, st *pipeline.State, stages []pipeline.Stage, flip bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logging to the terminal would tear the view.
	st.Options.Logger = log.New(io.Discard)
	opts := st.Options

	trigger, release := make(chan struct{}), make(chan struct{})
	pacer, err := pacing.New(opts.PacingMode(), opts.Interval.Duration(), trigger)
	if err != nil {
		return err
	}
	if g, ok := pacer.(pacing.Gated); ok {
		g.Release = release
		pacer = g
	}

	finished := make(chan struct{})
	p := tea.NewProgram(StepModel{
		mode:     opts.PacingMode(),
		trigger:  trigger,
		release:  release,
		finished: finished,
		cancel:   cancel,
	})

	runner := newRunner(opts.Logger, pacer)
	runner.Observe = func(st *pipeline.State, cp pipeline.Checkpoint) {
		p.Send(checkpointMsg{checkpoint: cp, view: renderMap(st, nil, flip), counts: st.Counts()})
	}

	var runErr error
	go func() {
		defer close(finished)
		runErr = runner.RunStages(ctx, st, stages)
		p.Send(runDoneMsg{err: runErr})
	}()

	final, err := p.Run()
	cancel()
	<-finished
	if err != nil {
		return fmt.Errorf("stepper: %w", err)
	}
	if m, ok := final.(StepModel); ok && !m.done {
		return context.Canceled
	}
	return runErr
}
