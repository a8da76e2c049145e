package main

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-asteroids/pkg/autopilot"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
)

// Summary reports what happened during a headless run.
type Summary struct {
	Ticks     int
	Matches   int
	Shots     int
	Destroyed int
	BestScore int
}

func (s Summary) String() string {
	return fmt.Sprintf("ticks=%d matches=%d shots=%d destroyed=%d best_score=%d",
		s.Ticks, s.Matches, s.Shots, s.Destroyed, s.BestScore)
}

type contextSetter interface {
	SetContext(ctx context.Context)
}

// runHeadless lets pilot play for ticks fixed steps, drawing each frame
// to renderer. It stops early when ctx is cancelled. Renderers with a
// SetContext method log under the current match ID.
func runHeadless(ctx context.Context, game *engine.Game, pilot *autopilot.Pilot, renderer entity.Renderer, ticks int) Summary {
	tagged, _ := renderer.(contextSetter)
	if tagged != nil {
		tagged.SetContext(game.Context())
	}

	summary := Summary{Matches: 1}
	subs := []*event.Subscription{
		game.EventBus.Subscribe(event.MatchStarted, func(event.Event) {
			summary.Matches++
			if tagged != nil {
				tagged.SetContext(game.Context())
			}
		}),
		game.EventBus.Subscribe(event.BulletFired, func(event.Event) { summary.Shots++ }),
		game.EventBus.Subscribe(event.AsteroidDestroyed, func(event.Event) { summary.Destroyed++ }),
		game.EventBus.Subscribe(event.ScoreChanged, func(e event.Event) {
			if se, ok := e.(*event.ScoreEvent); ok && se.Score > summary.BestScore {
				summary.BestScore = se.Score
			}
		}),
	}
	defer func() {
		for _, sub := range subs {
			sub.Cancel()
		}
	}()

	for summary.Ticks < ticks {
		if ctx.Err() != nil {
			break
		}
		game.Tick(pilot.Next(game.State()), engine.DefaultTimeStep)
		game.Render(renderer)
		summary.Ticks++
	}
	return summary
}
