package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
)

// PlayFunc hands a streamer to an output.
type PlayFunc func(beep.Streamer)

// SoundManager plays effects for gameplay events.
type SoundManager struct {
	mu             sync.Mutex
	rate           beep.SampleRate
	volume         float64
	thrustInterval time.Duration
	lastThrust     time.Time
	now            func() time.Time
	play           PlayFunc
	mixer          *beep.Mixer
	subs           []*event.Subscription
	logger         *logging.Logger
}

// Option customizes a SoundManager.
type Option func(*SoundManager)

// WithPlayer sends effects to play instead of the speaker.
func WithPlayer(play PlayFunc) Option {
	return func(sm *SoundManager) { sm.play = play }
}

// WithClock replaces time.Now for thrust throttling.
func WithClock(now func() time.Time) Option {
	return func(sm *SoundManager) { sm.now = now }
}

// NewSoundManager creates a sound manager. Nothing is audible until
// Initialize opens the speaker or WithPlayer supplies an output.
func NewSoundManager(cfg config.AudioConfig, logger *logging.Logger, opts ...Option) *SoundManager {
	sm := &SoundManager{
		rate:           beep.SampleRate(cfg.SampleRate),
		volume:         cfg.Volume,
		thrustInterval: time.Duration(cfg.ThrustInterval * float64(time.Second)),
		now:            time.Now,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// Initialize opens the speaker and starts a mixer on it. It does nothing
// when an output was supplied with WithPlayer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.play != nil {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	sm.mixer = mixer
	sm.play = func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}
	return nil
}

// Play starts the named effect. It reports false for unknown names or when
// there is no output.
func (sm *SoundManager) Play(name string) bool {
	sm.mu.Lock()
	play := sm.play
	sm.mu.Unlock()
	if play == nil {
		return false
	}

	s := Effect(name, sm.rate)
	if s == nil {
		sm.logger.Warn(context.Background(), "unknown sound effect", "sound", name)
		return false
	}
	if sm.volume != 0 {
		s = newVolume(s, sm.volume)
	}
	play(s)
	return true
}

// playThrust plays the thrust hiss at most once per thrust interval.
func (sm *SoundManager) playThrust() bool {
	sm.mu.Lock()
	now := sm.now()
	if !sm.lastThrust.IsZero() && now.Sub(sm.lastThrust) < sm.thrustInterval {
		sm.mu.Unlock()
		return false
	}
	sm.lastThrust = now
	sm.mu.Unlock()
	return sm.Play(SoundThrust)
}

// Attach subscribes the manager to gameplay events on bus.
func (sm *SoundManager) Attach(bus *event.Bus) {
	subs := []*event.Subscription{
		bus.Subscribe(event.BulletFired, func(event.Event) { sm.Play(SoundLaser) }),
		bus.Subscribe(event.AsteroidDestroyed, func(event.Event) { sm.Play(SoundExplosion) }),
		bus.Subscribe(event.ThrusterFired, func(event.Event) { sm.playThrust() }),
	}
	sm.mu.Lock()
	sm.subs = append(sm.subs, subs...)
	sm.mu.Unlock()
}

// Detach removes every subscription made by Attach.
func (sm *SoundManager) Detach() {
	sm.mu.Lock()
	subs := sm.subs
	sm.subs = nil
	sm.mu.Unlock()
	for _, s := range subs {
		s.Cancel()
	}
}

// Close detaches from events and silences anything still playing.
func (sm *SoundManager) Close() {
	sm.Detach()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.mixer != nil {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
		sm.mixer = nil
	}
	sm.play = nil
}
