// Package audio synthesizes the short effect sounds that accompany the
// disaster sequence. Everything is generated procedurally, no assets; the
// synth is inert until initialized so headless runs never touch the
// speaker.
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// WaveType selects the oscillator wave shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSaw
	WaveNoise
)

// Synth owns the mixer attached to the speaker. The zero value is disabled;
// call Init to bring the audio device up.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSynth returns an uninitialized synth.
func NewSynth() *Synth {
	return &Synth{mixer: &beep.Mixer{}}
}

// Init opens the speaker and attaches the mixer. Calling it twice is safe.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences the mixer. The speaker itself stays open; beep provides no
// teardown.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

func (s *Synth) play(streamer beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Rumble plays the low landslide rumble: a saw fundamental under noise.
func (s *Synth) Rumble() {
	dur := 2500 * time.Millisecond
	s.play(mix(
		shaped(newOscillator(42, dur, WaveSaw), dur, 300*time.Millisecond, 1200*time.Millisecond, 0.5),
		shaped(newOscillator(0, dur, WaveNoise), dur, 200*time.Millisecond, 1500*time.Millisecond, 0.35),
	))
}

// Splash plays the impact splash: a short noise burst.
func (s *Synth) Splash() {
	dur := 900 * time.Millisecond
	s.play(shaped(newOscillator(0, dur, WaveNoise), dur, 10*time.Millisecond, 700*time.Millisecond, 0.5))
}

// Surge plays the tsunami surge: a slow sine swell with noise on top.
func (s *Synth) Surge() {
	dur := 3 * time.Second
	s.play(mix(
		shaped(newOscillator(60, dur, WaveSine), dur, 800*time.Millisecond, 1500*time.Millisecond, 0.4),
		shaped(newOscillator(0, dur, WaveNoise), dur, 900*time.Millisecond, 1800*time.Millisecond, 0.25),
	))
}

func mix(streamers ...beep.Streamer) beep.Streamer {
	return beep.Mix(streamers...)
}

func shaped(s beep.Streamer, duration, attack, release time.Duration, gain float64) beep.Streamer {
	return newGain(newEnvelope(s, duration, attack, release), gain)
}

// oscillator generates raw waveform samples for a fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rng      *rand.Rand
}

func newOscillator(freq float64, duration time.Duration, wave WaveType) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: sampleRate.N(duration),
		wave:     wave,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSaw:
			v = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping in place.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  sampleRate.N(attack),
		releaseSamples: sampleRate.N(release),
		totalSamples:   sampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.position < e.attackSamples && e.attackSamples > 0:
			vol = float64(e.position) / float64(e.attackSamples)
		case e.position >= releaseStart && e.releaseSamples > 0:
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain scales a streamer by a constant factor.
type gain struct {
	streamer beep.Streamer
	factor   float64
}

func newGain(s beep.Streamer, factor float64) beep.Streamer {
	return &gain{streamer: s, factor: factor}
}

func (g *gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= g.factor
		samples[i][1] *= g.factor
	}
	return n, ok
}

func (g *gain) Err() error { return g.streamer.Err() }
