// Package audio synthesizes the game's sound effects with beep and plays
// them in response to gameplay events.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Sound effect names.
const (
	SoundLaser     = "laser"
	SoundExplosion = "explosion"
	SoundThrust    = "rocket_thrust"
)

// Sounds lists every effect name Effect understands.
var Sounds = []string{SoundLaser, SoundExplosion, SoundThrust}

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a wave whose frequency slides linearly from startFreq
// to endFreq over its duration.
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	wave      WaveType
	rate      beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator that glides from startFreq to endFreq.
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		startFreq: startFreq,
		endFreq:   endFreq,
		duration:  rate.N(duration),
		wave:      wave,
		rate:      rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.startFreq + (o.endFreq-o.startFreq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer      beep.Streamer
	position      int
	attack        int
	releaseStart  int
	total         int
	releaseLength int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:      s,
		attack:        att,
		releaseStart:  total - rel,
		total:         total,
		releaseLength: rel,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		gain := 1.0
		switch {
		case e.position < e.attack:
			gain = float64(e.position) / float64(e.attack)
		case e.position >= e.releaseStart && e.releaseLength > 0:
			gain = float64(e.total-e.position) / float64(e.releaseLength)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume applies a base-2 gain. A gain at or below -10 is silent.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: gain, Silent: gain <= -10}
}

// CreateLaserSound is a falling square-wave zap.
func CreateLaserSound(rate beep.SampleRate) beep.Streamer {
	const d = 180 * time.Millisecond
	zap := NewEnvelope(NewSweep(1400, 220, d, WaveSquare, rate), d, 5*time.Millisecond, 120*time.Millisecond, rate)
	return newVolume(zap, -2)
}

// CreateExplosionSound is a burst of noise over a low rumble.
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	const d = 600 * time.Millisecond
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 550*time.Millisecond, rate)
	rumble := NewEnvelope(NewSweep(90, 30, d, WaveSine, rate), d, 2*time.Millisecond, 400*time.Millisecond, rate)
	return newVolume(beep.Mix(newVolume(noise, -0.5), newVolume(rumble, -1)), -1)
}

// CreateThrustSound is a short quiet hiss, repeated while the engine runs.
func CreateThrustSound(rate beep.SampleRate) beep.Streamer {
	const d = 120 * time.Millisecond
	hiss := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 20*time.Millisecond, 60*time.Millisecond, rate)
	tone, err := generators.SineTone(rate, 55)
	if err != nil {
		tone = beep.Silence(-1)
	}
	hum := NewEnvelope(beep.Take(rate.N(d), tone), d, 20*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(beep.Mix(hiss, newVolume(hum, -2)), -5)
}

// Effect returns a new streamer for the named sound, or nil if the name is
// unknown. Streamers are single use.
func Effect(name string, rate beep.SampleRate) beep.Streamer {
	switch name {
	case SoundLaser:
		return CreateLaserSound(rate)
	case SoundExplosion:
		return CreateExplosionSound(rate)
	case SoundThrust:
		return CreateThrustSound(rate)
	default:
		return nil
	}
}
