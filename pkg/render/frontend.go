package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/logging"
)

// Terminals report presses and auto-repeats but never releases, so a key
// counts as held for a while after its last event. DefaultRepeatDelay covers
// the pause before auto-repeat starts and DefaultHoldWindow the gap between
// repeats.
const (
	DefaultRepeatDelay = 500 * time.Millisecond
	DefaultHoldWindow  = 180 * time.Millisecond
)

type keyHold struct {
	last     time.Time
	repeated bool
}

// TerminalFrontend runs a game in a terminal: it polls tcell for keys, ticks
// the game at a fixed rate and redraws after every tick.
type TerminalFrontend struct {
	screen   tcell.Screen
	game     *engine.Game
	renderer *TerminalRenderer
	logger   *logging.Logger
	tracker  input.Tracker

	step        time.Duration
	repeatDelay time.Duration
	holdWindow  time.Duration
	keys        map[input.Key]keyHold
	now         func() time.Time
}

// NewTerminalFrontend wires game to an initialized screen.
func NewTerminalFrontend(screen tcell.Screen, game *engine.Game, logger *logging.Logger) *TerminalFrontend {
	return &TerminalFrontend{
		screen:     screen,
		game:       game,
		renderer:   NewTerminalRenderer(screen, float64(game.Config.Screen.Width), float64(game.Config.Screen.Height)),
		logger:     logger,
		step:        seconds(engine.DefaultTimeStep),
		repeatDelay: DefaultRepeatDelay,
		holdWindow:  DefaultHoldWindow,
		keys:        make(map[input.Key]keyHold),
		now:         time.Now,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// MapKey translates a tcell key event to a game key.
func MapKey(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.Left, true
	case tcell.KeyRight:
		return input.Right, true
	case tcell.KeyUp:
		return input.Up, true
	case tcell.KeyDown:
		return input.Down, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return input.Fire, true
		case 'r', 'R':
			return input.Restart, true
		}
	}
	return 0, false
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// window is how long a key stays held after its last event.
func (f *TerminalFrontend) window(h keyHold) time.Duration {
	if h.repeated {
		return f.holdWindow
	}
	return f.repeatDelay
}

// held returns the keys whose last event is still within their window.
func (f *TerminalFrontend) held(now time.Time) input.KeySet {
	var set input.KeySet
	for k, h := range f.keys {
		if now.Sub(h.last) < f.window(h) {
			set = set.With(k)
		} else {
			delete(f.keys, k)
		}
	}
	return set
}

// press records a key event. An event for a key that is still held is an
// auto-repeat.
func (f *TerminalFrontend) press(k input.Key, now time.Time) {
	h, ok := f.keys[k]
	repeated := ok && now.Sub(h.last) < f.window(h)
	f.keys[k] = keyHold{last: now, repeated: repeated}
}

// HandleEvent applies one tcell event. It returns false when the player
// asked to quit.
func (f *TerminalFrontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if k, ok := MapKey(ev); ok {
			f.press(k, f.now())
		}
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

// Step ticks the game once with the keys currently held and redraws.
func (f *TerminalFrontend) Step() {
	snapshot := f.tracker.Next(f.held(f.now()))
	f.game.Tick(snapshot, engine.DefaultTimeStep)
	f.Draw()
}

// Draw renders the current match.
func (f *TerminalFrontend) Draw() {
	f.renderer.SetStatus(f.game.State())
	f.game.Render(f.renderer)
}

// Run loops until ctx is cancelled or the player quits.
func (f *TerminalFrontend) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(f.step)
	defer ticker.Stop()

	f.logger.Info(f.game.Context(), "terminal frontend started", "tick", f.step.String())
	f.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !f.HandleEvent(ev) {
				f.logger.Info(f.game.Context(), "terminal frontend stopped by player")
				return nil
			}
		case <-ticker.C:
			f.Step()
		}
	}
}
