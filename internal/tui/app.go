package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/scoreboard/internal/command"
	"github.com/Iron-Ham/scoreboard/internal/errors"
	"github.com/Iron-Ham/scoreboard/internal/event"
	"github.com/Iron-Ham/scoreboard/internal/tui/styles"
)

// eventBuffer bounds the events queued between the board and the program.
// Events arriving while the queue is full are dropped from the feed.
const eventBuffer = 64

// App wraps the Bubbletea program
type App struct {
	model Model
	bus   *event.Bus

	mu      sync.Mutex
	program *tea.Program
}

// New creates a TUI for b. Events published on bus appear in the activity
// feed; bus may be nil.
func New(b command.Board, bus *event.Bus, opts Options) *App {
	return &App{
		model: NewModel(b, opts),
		bus:   bus,
	}
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context, progOpts ...tea.ProgramOption) error {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(a.model, progOpts...)

	a.mu.Lock()
	a.program = p
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.program = nil
		a.mu.Unlock()
	}()

	// The board publishes synchronously from inside Update, so events are
	// queued and forwarded by a separate goroutine rather than sent directly.
	done := make(chan struct{})
	var wg conc.WaitGroup
	if a.bus != nil {
		events := make(chan event.Event, eventBuffer)
		id := a.bus.SubscribeAll(func(e event.Event) {
			select {
			case events <- e:
			default:
			}
		})
		defer a.bus.Unsubscribe(id)

		wg.Go(func() {
			for {
				select {
				case e := <-events:
					p.Send(EventMsg{Event: e})
				case <-done:
					return
				}
			}
		})
	}

	_, err := p.Run()
	close(done)
	wg.Wait()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// SetTheme switches the theme of the running program. It is a no-op when
// the TUI is not running.
func (a *App) SetTheme(name styles.ThemeName) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p != nil {
		p.Send(ThemeChangedMsg{Name: name})
	}
}
