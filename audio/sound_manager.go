package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/engine"
)

const (
	sampleRate = beep.SampleRate(constants.AudioSampleRate)
)

// Victory arpeggio, C major
var victoryNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// SoundManager plays short cues for game events
// Without an initialized speaker every Play is a no-op, so the game runs silent
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool

	requested [soundTypeCount]atomic.Int64
}

// NewSoundManager creates a sound manager; volume is 0.0 - 1.0
func NewSoundManager(volume float64) *SoundManager {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()

	sm.initialized = false
}

// IsInitialized reports whether cues reach the speaker
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues a cue on the mixer
func (sm *SoundManager) Play(t SoundType) {
	if t < 0 || t >= soundTypeCount {
		return
	}
	sm.requested[t].Add(1)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}

	// The speaker goroutine streams the mixer; guard mutation with its lock
	speaker.Lock()
	sm.mixer.Add(sm.cue(t))
	speaker.Unlock()
}

// Requested returns how many times t was asked for, played or not
func (sm *SoundManager) Requested(t SoundType) int64 {
	if t < 0 || t >= soundTypeCount {
		return 0
	}
	return sm.requested[t].Load()
}

// cue builds a finite streamer for t
func (sm *SoundManager) cue(t SoundType) beep.Streamer {
	switch t {
	case SoundSpawn:
		return beep.Take(sampleRate.N(constants.CueDuration), NewToneGenerator(sampleRate, constants.SpawnToneHz, sm.volume))
	case SoundSettle:
		return beep.Take(sampleRate.N(constants.CueDuration*2), NewThudGenerator(sampleRate, constants.SettleToneHz, sm.volume))
	case SoundShadow:
		return beep.Take(sampleRate.N(constants.CueDuration), NewToneGenerator(sampleRate, constants.ShadowToneHz, sm.volume*0.7))
	case SoundVictory:
		notes := make([]beep.Streamer, 0, len(victoryNotes))
		for _, f := range victoryNotes {
			notes = append(notes, beep.Take(sampleRate.N(constants.VictoryNoteDuration), NewToneGenerator(sampleRate, f, sm.volume)))
		}
		return beep.Seq(notes...)
	}
	return beep.Silence(0)
}

// CueDuration returns the playing time of the cue for t
func CueDuration(t SoundType) time.Duration {
	switch t {
	case SoundSpawn, SoundShadow:
		return constants.CueDuration
	case SoundSettle:
		return constants.CueDuration * 2
	case SoundVictory:
		return constants.VictoryNoteDuration * time.Duration(len(victoryNotes))
	}
	return 0
}

// HandleEvent implements engine.EventHandler
func (sm *SoundManager) HandleEvent(ev engine.GameEvent) {
	switch ev.Type {
	case engine.EventSpawned:
		sm.Play(SoundSpawn)
	case engine.EventSettled:
		sm.Play(SoundSettle)
	case engine.EventShadowed:
		sm.Play(SoundShadow)
	case engine.EventVictory:
		sm.Play(SoundVictory)
	default:
		log.Printf("[audio] no cue for %s", ev.Type)
	}
}

// EventTypes implements engine.EventHandler
func (sm *SoundManager) EventTypes() []engine.EventType {
	return []engine.EventType{
		engine.EventSpawned,
		engine.EventSettled,
		engine.EventShadowed,
		engine.EventVictory,
	}
}
