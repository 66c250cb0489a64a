// Package audio plays the short sound effects triggered by game events.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(22050)

// ErrNotInitialized is returned when playing before Init succeeded.
var ErrNotInitialized = errors.New("audio not initialized")

// Effect identifies a sound effect.
type Effect int

const (
	EffectJump Effect = iota
	EffectLand
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectJump:
		return "jump"
	case EffectLand:
		return "land"
	default:
		return fmt.Sprintf("effect(%d)", int(e))
	}
}

// Manager handles sound effect playback. Effects are mixed on beep's speaker
// goroutine and never touch game state.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	sounds   map[Effect]*beep.Buffer
	sfxMixer *beep.Mixer
}

// New creates a new audio manager with synthesized default effects.
func New() *Manager {
	m := &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  0.6,
		sounds:       make(map[Effect]*beep.Buffer),
		sfxMixer:     &beep.Mixer{},
	}
	for e, tone := range defaultTones {
		m.sounds[e] = Synthesize(m.sampleRate, tone)
	}
	return m
}

// Init initializes the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
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

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
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

// LoadEffect replaces an effect with WAV data, resampled to the output rate.
func (m *Manager) LoadEffect(e Effect, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav for %s: %w", e, err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(resampled)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read wav for %s: %w", e, err)
	}
	m.sounds[e] = buf

	return nil
}

// Duration returns the length of an effect.
func (m *Manager) Duration(e Effect) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buf, ok := m.sounds[e]
	if !ok {
		return 0
	}
	return m.sampleRate.D(buf.Len())
}

// Play starts an effect. Overlapping effects are mixed.
func (m *Manager) Play(e Effect) error {
	m.mu.RLock()
	initialized := m.initialized
	sfxVol := m.masterVolume * m.sfxVolLevel
	buf, ok := m.sounds[e]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if !ok {
		return fmt.Errorf("unknown effect %s", e)
	}

	// Base 2: one volume step doubles the amplitude, about 6dB.
	vol := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToDb(sfxVol) / 6,
		Silent:   sfxVol <= 0,
	}

	speaker.Lock()
	m.sfxMixer.Add(vol)
	speaker.Unlock()

	return nil
}

// volumeToDb converts a 0-1 volume to decibel scale: 1 -> 0dB, 0.5 -> -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
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
