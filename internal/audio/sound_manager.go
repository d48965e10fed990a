// Package audio plays short synthesized effects for cannon events.
// Every operation is a no-op until Initialize succeeds, so the game runs
// unchanged on machines (or SSH sessions) without a sound device.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDurationMs = 100

	fireDurationMs     = 250
	fireFreqStartHz    = 160.0
	fireFreqEndHz      = 45.0
	fireAmplitude      = 0.45
	fireNoiseAmplitude = 0.15

	hitDurationMs  = 350
	hitFrequencyHz = 660.0
	hitOvertoneHz  = 990.0
	hitAmplitude   = 0.3
	hitDecayPerSec = 9.0

	blockerDurationMs  = 150
	blockerFrequencyHz = 120.0
	blockerAmplitude   = 0.4
)

// SoundManager mixes effect streams onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*speakerBufferDurationMs))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether sounds are actually played.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup stops all sounds. beep has no speaker Close, so the mixer is
// cleared and further calls to Play are ignored.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// Play starts the effect for e and returns immediately.
func (sm *SoundManager) Play(e cannon.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := Effect(e)
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Effect returns a finite streamer for e, or nil for events without a sound.
func Effect(e cannon.Event) beep.Streamer {
	switch e {
	case cannon.EventCannonFired:
		return beep.Take(sampleRate.N(time.Millisecond*fireDurationMs), NewBoomGenerator(sampleRate))
	case cannon.EventTargetHit:
		return beep.Take(sampleRate.N(time.Millisecond*hitDurationMs), NewChimeGenerator(sampleRate))
	case cannon.EventBlockerHit:
		return beep.Take(sampleRate.N(time.Millisecond*blockerDurationMs), NewBuzzGenerator(sampleRate, blockerFrequencyHz))
	default:
		return nil
	}
}

// BoomGenerator generates the cannon shot: a falling thump with some noise
type BoomGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewBoomGenerator creates a boom sound generator
func NewBoomGenerator(sr beep.SampleRate) *BoomGenerator {
	return &BoomGenerator{
		sr:   sr,
		seed: time.Now().UnixNano(),
	}
}

func (g *BoomGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	length := float64(g.sr.N(time.Millisecond * fireDurationMs))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		progress := math.Min(float64(g.pos)/length, 1)

		// Exponential pitch drop
		freq := fireFreqStartHz * math.Pow(fireFreqEndHz/fireFreqStartHz, progress)
		envelope := math.Exp(-progress * 5)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		sample := envelope * (fireAmplitude*math.Sin(2*math.Pi*freq*t) + fireNoiseAmplitude*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BoomGenerator) Err() error {
	return nil
}

// ChimeGenerator generates the target hit: a bright decaying two-tone bell
type ChimeGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewChimeGenerator creates a chime sound generator
func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{sr: sr}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * hitDecayPerSec)
		sample := hitAmplitude * envelope *
			(0.7*math.Sin(2*math.Pi*hitFrequencyHz*t) + 0.3*math.Sin(2*math.Pi*hitOvertoneHz*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz, used when the ball hits the blocker
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Odd harmonics for a harsh edge
		sample := 0.0
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// Short fade in
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * blockerAmplitude

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
