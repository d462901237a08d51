package viz

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pulselab/internal/grid"
	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/ssfm"
)

// snapshot is one completed propagation step streamed to the view.
type snapshot struct {
	u  optic.Field
	z  float64
	dz float64
}

type doneMsg struct {
	res *optic.Result
	err error
}

type tickMsg time.Time

// LiveModel streams a propagation run into an animated terminal view.
type LiveModel struct {
	grid  *grid.Grid
	total float64
	title string

	steps <-chan snapshot
	done  <-chan doneMsg

	latest   *snapshot
	result   *optic.Result
	err      error
	finished bool
}

type liveObserver struct {
	steps chan<- snapshot
}

// OnStep never blocks the propagation loop: when the view lags, frames
// are dropped rather than applying backpressure to the solver.
func (o *liveObserver) OnStep(u optic.Field, z, dz float64) {
	select {
	case o.steps <- snapshot{u: u.Clone(), z: z, dz: dz}:
	default:
	}
}

// RunLive propagates u0 while rendering each step. It blocks until the
// run and the view both finish, then returns the run's result.
func RunLive(ctx context.Context, prop *ssfm.Propagator, g *grid.Grid, u0 optic.Field, cfg optic.Config, total float64, title string) (*optic.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	steps := make(chan snapshot, 64)
	done := make(chan doneMsg, 1)

	prop.AddObserver(&liveObserver{steps: steps})
	go func() {
		res, err := prop.Run(ctx, u0, cfg)
		close(steps)
		done <- doneMsg{res: res, err: err}
	}()

	m := LiveModel{grid: g, total: total, title: title, steps: steps, done: done}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}

	fm := final.(LiveModel)
	if fm.err != nil {
		return nil, fm.err
	}
	if fm.result == nil {
		// View quit before the run finished; stop the runner.
		cancel()
		msg := <-done
		if errors.Is(msg.err, context.Canceled) {
			return nil, nil
		}
		return msg.res, msg.err
	}
	return fm.result, nil
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.drain()
		if m.finished {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

// drain pulls every pending snapshot so the view always shows the most
// recent step, then checks for completion.
func (m *LiveModel) drain() {
	for {
		select {
		case s, ok := <-m.steps:
			if !ok {
				select {
				case d := <-m.done:
					m.result = d.res
					m.err = d.err
					m.finished = true
				default:
				}
				return
			}
			m.latest = &s
		default:
			return
		}
	}
}

func (m LiveModel) View() string {
	if m.latest == nil {
		return headerStyle.Render(m.title) + "\n" + statsStyle.Render("launching...")
	}

	s := m.latest
	body := Intensity(s.u, m.grid, m.title)
	progress := statsStyle.Render("z ") +
		valueStyle.Render(fmt.Sprintf("%.4g / %.4g m", s.z, m.total)) +
		statsStyle.Render("  dz ") +
		valueStyle.Render(fmt.Sprintf("%.3g m", s.dz)) +
		statsStyle.Render(fmt.Sprintf("  (%.1f%%)", 100*s.z/m.total))
	return body + "\n" + progress + helpStyle.Render("\nq to quit")
}
