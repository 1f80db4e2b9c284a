// Package tui is the interactive dashboard for progressdemo: a bubbletea
// program showing the root progress, the message path and a sparkline of
// recent activity.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/hprogress/internal/bar"
	"github.com/agbru/hprogress/internal/format"
	"github.com/agbru/hprogress/internal/progress"
	"github.com/agbru/hprogress/internal/textutil"
	"github.com/agbru/hprogress/internal/ui"
)

const (
	tickInterval = 250 * time.Millisecond
	defaultWidth = 80
	minBarWidth  = 10
)

// Model is the root bubbletea model.
type Model struct {
	header   HeaderModel
	bar      progressbar.Model
	keymap   KeyMap
	activity *RingBuffer
	eta      *format.ETAEstimator

	snapshot progress.Snapshot
	// lastTick is the progress at the previous tick; activity records the
	// difference.
	lastTick float64
	updates  int

	width  int
	paused bool
	done   bool
	err    error
	cancel context.CancelFunc
}

// NewModel creates a dashboard. cancel is called when the user quits.
func NewModel(scenario, version string, cancel context.CancelFunc) Model {
	t := ui.GetCurrentTUITheme()
	opts := []progressbar.Option{progressbar.WithoutPercentage()}
	if t.GradientStart != "" {
		opts = append(opts, progressbar.WithGradient(t.GradientStart, t.GradientEnd))
	} else {
		opts = append(opts, progressbar.WithFillCharacters('#', '-'), progressbar.WithSolidFill(""))
	}
	m := Model{
		header:   NewHeaderModel(scenario, version),
		bar:      progressbar.New(opts...),
		keymap:   DefaultKeyMap(),
		activity: NewRingBuffer(defaultWidth),
		eta:      format.NewETAEstimator(),
		width:    defaultWidth,
		cancel:   cancel,
	}
	m.layout()
	return m
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			if m.cancel != nil {
				m.cancel()
			}
			m.header.SetDone()
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Pause):
			m.paused = !m.paused
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.layout()
		return m, nil

	case SnapshotMsg:
		m.updates++
		if !m.paused {
			m.snapshot = msg.Snapshot
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.activity.Push(max(0, m.snapshot.Progress-m.lastTick))
		m.lastTick = m.snapshot.Progress
		m.eta.Update(m.snapshot.Progress)
		return m, tickCmd()

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		m.header.SetDone()
		return m, tea.Quit
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	inner := max(minBarWidth, m.width-4)
	percent := fmt.Sprintf("%8s", bar.Percent(m.snapshot.Progress))

	status := textutil.Truncate(strings.Join(m.snapshot.Messages, bar.StatusSeparator), inner)
	if status == "" {
		status = dimStyle.Render("waiting for progress")
	} else {
		status = statusStyle.Render(status)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.bar.ViewAs(min(max(m.snapshot.Progress, 0), 1))+" "+accentStyle.Render(percent),
		status,
		dimStyle.Render(RenderSparkline(m.activity.Slice())),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(m.width),
		panelStyle.Width(max(0, m.width-2)).Render(body),
		m.footer(),
	) + "\n"
}

func (m Model) footer() string {
	switch {
	case m.done && m.err != nil:
		return errorStyle.Render("error: " + m.err.Error())
	case m.done:
		return accentStyle.Render("done") + dimStyle.Render(fmt.Sprintf(" • %d updates", m.updates))
	}
	state := "running • eta " + format.FormatETA(m.eta.ETA())
	if m.paused {
		state = "paused"
	}
	return footerKeyStyle.Render(m.keymap.Quit.Help().Key) + dimStyle.Render(" "+m.keymap.Quit.Help().Desc+" • ") +
		footerKeyStyle.Render(m.keymap.Pause.Help().Key) + dimStyle.Render(" "+m.keymap.Pause.Help().Desc+" • "+state)
}

func (m *Model) layout() {
	// Panel border and padding take 4 columns; the percentage takes 9.
	m.bar.Width = max(minBarWidth, m.width-4-9)
	m.activity.Resize(max(1, m.width-4))
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Options configures Run.
type Options struct {
	Scenario string
	Version  string
	Input    io.Reader
	Output   io.Writer
}

// Run shows the dashboard while work runs. work receives a Renderer to put
// behind a coalescer; quitting the dashboard cancels its context. Run
// returns work's error.
func Run(ctx context.Context, opts Options, work func(ctx context.Context, r progress.Renderer) error) error {
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(opts.Scenario, opts.Version, cancel)
	ref := &programRef{}
	programOpts := []tea.ProgramOption{}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(model, programOpts...)
	ref.SetProgram(p)

	result := make(chan error, 1)
	go func() {
		err := work(ctx, &Renderer{ref: ref})
		result <- err
		p.Send(DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-result
		return fmt.Errorf("dashboard failed: %w", err)
	}
	cancel()
	return <-result
}
