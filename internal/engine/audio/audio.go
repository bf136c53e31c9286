// Package audio plays short gameplay sound cues.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue identifies a gameplay sound.
type Cue int

const (
	CuePickup Cue = iota
	CuePowerUp
	CueWin
	CueTimeUp
)

// note is one step of a synthesized cue. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CuePickup:  {{880, 60 * time.Millisecond}, {1320, 90 * time.Millisecond}},
	CuePowerUp: {{523.25, 70 * time.Millisecond}, {659.25, 70 * time.Millisecond}, {783.99, 70 * time.Millisecond}, {1046.5, 140 * time.Millisecond}},
	CueWin:     {{659.25, 120 * time.Millisecond}, {0, 30 * time.Millisecond}, {659.25, 120 * time.Millisecond}, {987.77, 300 * time.Millisecond}},
	CueTimeUp:  {{392, 200 * time.Millisecond}, {261.63, 400 * time.Millisecond}},
}

// Manager handles sound effect playback for the game.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	muted       bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	// Decoded overrides for synthesized cues.
	samples map[Cue]*beep.Buffer

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		samples:      make(map[Cue]*beep.Buffer),
		sfxMixer:     &beep.Mixer{},
	}
}

// Init initializes the speaker. A muted manager never opens a device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || m.muted {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMuted toggles playback. Muting does not close the speaker.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports whether cues are suppressed.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// volumeExponent converts a 0-1 volume to an exponent for a base-2
// effects.Volume: vol=1 -> 0, vol=0.5 -> -1, vol=0 -> effectively silent.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -16
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LoadCue replaces the synthesized sound for cue with WAV data.
func (m *Manager) LoadCue(cue Cue, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
		format.SampleRate = m.sampleRate
	}

	buf := beep.NewBuffer(format)
	buf.Append(src)

	m.mu.Lock()
	m.samples[cue] = buf
	m.mu.Unlock()
	return nil
}

// Play mixes cue into the running output. It is a no-op when muted or
// when the speaker was never initialized.
func (m *Manager) Play(cue Cue) error {
	m.mu.RLock()
	active := m.initialized && !m.muted
	sfxVol := m.masterVolume * m.sfxVolLevel
	m.mu.RUnlock()

	if !active {
		return nil
	}

	s, err := m.cueStreamer(cue)
	if err != nil {
		return err
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeExponent(sfxVol),
		Silent:   sfxVol <= 0,
	})
	speaker.Unlock()
	return nil
}

// cueStreamer returns a fresh finite streamer for cue.
func (m *Manager) cueStreamer(cue Cue) (beep.Streamer, error) {
	m.mu.RLock()
	buf, ok := m.samples[cue]
	m.mu.RUnlock()
	if ok {
		return buf.Streamer(0, buf.Len()), nil
	}

	notes, ok := cueNotes[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := m.sampleRate.N(n.dur)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(m.sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", cue, err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return beep.Seq(parts...), nil
}
