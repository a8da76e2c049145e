package render

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/logging"
)

func newTestFrontend(t *testing.T) (*TerminalFrontend, *time.Time) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Rules.Seed = 7
	game, err := engine.NewGame(cfg, engine.WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	f := NewTerminalFrontend(newSimScreen(t, 80, 25), game, logging.NewNopLogger())
	now := time.Unix(1000, 0)
	f.now = func() time.Time { return now }
	return f, &now
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want input.Key
		ok   bool
	}{
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.Left, true},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input.Right, true},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.Up, true},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), input.Down, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.Fire, true},
		{"r", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), input.Restart, true},
		{"R", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), input.Restart, true},
		{"unmapped rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapKey(tt.ev)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("MapKey() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTerminalFrontend_Quit(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), true},
		{"resize", tcell.NewEventResize(100, 30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFrontend(t)
			if got := f.HandleEvent(tt.ev); got != tt.want {
				t.Errorf("HandleEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTerminalFrontend_TickRate(t *testing.T) {
	f, _ := newTestFrontend(t)
	if f.step != time.Second/60 {
		t.Errorf("step = %v, want %v", f.step, time.Second/60)
	}
}

func TestTerminalFrontend_HoldWindow(t *testing.T) {
	up := tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)

	tests := []struct {
		name    string
		repeats []time.Duration // offsets of auto-repeat events after the press
		check   time.Duration   // offset of the check after the press
		want    bool
	}{
		{"just pressed", nil, 0, true},
		{"waiting for first repeat", nil, DefaultRepeatDelay - time.Millisecond, true},
		{"single press expires", nil, DefaultRepeatDelay, false},
		{"between repeats", []time.Duration{400 * time.Millisecond}, 400*time.Millisecond + DefaultHoldWindow - time.Millisecond, true},
		{"repeats stopped", []time.Duration{400 * time.Millisecond}, 400*time.Millisecond + DefaultHoldWindow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, now := newTestFrontend(t)
			start := *now
			f.HandleEvent(up)
			for _, at := range tt.repeats {
				*now = start.Add(at)
				f.HandleEvent(up)
			}
			*now = start.Add(tt.check)
			if got := f.held(*now).Has(input.Up); got != tt.want {
				t.Errorf("held(Up) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTerminalFrontend_HeldThroughRepeatDelay(t *testing.T) {
	f, now := newTestFrontend(t)
	up := tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	start := *now

	// Press, a 400ms pause before auto-repeat kicks in, then a repeat
	// every 30ms.
	events := []time.Duration{0}
	for at := 400 * time.Millisecond; at <= 700*time.Millisecond; at += 30 * time.Millisecond {
		events = append(events, at)
	}

	var edges input.Tracker
	next := 0
	for at := time.Duration(0); at <= 700*time.Millisecond; at += 10 * time.Millisecond {
		*now = start.Add(at)
		for next < len(events) && events[next] <= at {
			f.HandleEvent(up)
			next++
		}
		snap := edges.Next(f.held(*now))
		if snap.JustReleased(input.Up) {
			t.Fatalf("up released at %v while the key was held", at)
		}
		if at > 0 && snap.JustPressed(input.Up) {
			t.Fatalf("up pressed again at %v while the key was held", at)
		}
		f.Step()
	}

	if ship := f.game.State().Ship; ship != nil && !ship.Thrusting {
		t.Error("ship stopped thrusting while up was held")
	}
}

func TestTerminalFrontend_StepAppliesInput(t *testing.T) {
	f, _ := newTestFrontend(t)

	f.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	f.Step()

	state := f.game.State()
	if state.Tick != 1 {
		t.Errorf("Tick = %d, want 1", state.Tick)
	}
	if state.Ship == nil || state.Ship.Speed <= 0 {
		t.Errorf("ship did not accelerate: %+v", state.Ship)
	}
	if !state.Ship.Thrusting {
		t.Error("ship not thrusting while up is held")
	}
}

func TestTerminalFrontend_RunStopsOnCancel(t *testing.T) {
	f, _ := newTestFrontend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.Run(ctx); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
