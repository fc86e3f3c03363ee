// Package tui draws the chat client with bubbletea. It owns no chat state:
// keys go to the app controller and every frame is drawn from a snapshot.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tOgg1/tchat/internal/app"
	"github.com/tOgg1/tchat/internal/client"
	"github.com/tOgg1/tchat/internal/logging"
)

const defaultRenderInterval = 10 * time.Millisecond

// Config tunes the renderer.
type Config struct {
	RenderInterval time.Duration
	ShowTimestamps bool
}

// Model is the bubbletea model wrapping the shared state.
type Model struct {
	ctx    context.Context
	state  *app.State
	client client.Client
	logger zerolog.Logger

	interval time.Duration
	opts     renderOptions
	colors   *senderColors

	width  int
	height int
	vm     app.ViewModel
}

type tickMsg time.Time

type requestDoneMsg struct {
	err error
}

// NewModel builds a model. Requests produced by key presses run against c
// with ctx.
func NewModel(ctx context.Context, state *app.State, c client.Client, cfg Config) *Model {
	if cfg.RenderInterval <= 0 {
		cfg.RenderInterval = defaultRenderInterval
	}
	return &Model{
		ctx:      ctx,
		state:    state,
		client:   c,
		logger:   logging.Component("tui"),
		interval: cfg.RenderInterval,
		opts:     renderOptions{showTimestamps: cfg.ShowTimestamps},
		colors:   newSenderColors(),
	}
}

// Run drives the program until the user quits or ctx ends.
func Run(ctx context.Context, state *app.State, c client.Client, cfg Config) error {
	model := NewModel(ctx, state, c, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	m.refresh()
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.refresh()
		return m, nil

	case tickMsg:
		m.refresh()
		if m.vm.Quitting {
			return m, tea.Quit
		}
		return m, m.tick()

	case tea.KeyMsg:
		var cmds []tea.Cmd
		for _, key := range translateKey(typed) {
			for _, req := range m.state.HandleKey(key) {
				cmds = append(cmds, m.execute(req))
			}
		}
		m.refresh()
		if m.vm.Quitting {
			return m, tea.Quit
		}
		return m, tea.Batch(cmds...)

	case requestDoneMsg:
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	return render(m.vm, computeLayout(m.width, m.height), m.opts, m.colors)
}

// execute runs req on bubbletea's command goroutine so the UI keeps drawing
// while the request is in flight.
func (m *Model) execute(req app.Request) tea.Cmd {
	return func() tea.Msg {
		err := m.state.Execute(m.ctx, m.client, req)
		if err != nil {
			m.logger.Debug().Err(err).Str("request", req.Describe()).Msg("request finished with error")
		}
		return requestDoneMsg{err: err}
	}
}

func (m *Model) refresh() {
	m.vm = m.state.Snapshot(computeLayout(m.width, m.height).inputColumns())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
