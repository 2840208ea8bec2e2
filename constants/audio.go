package constants

import "time"

// Audio cues
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// SpawnToneHz / SettleToneHz / ShadowToneHz are the cue pitches
	SpawnToneHz  = 660
	SettleToneHz = 180
	ShadowToneHz = 990

	// CueDuration is the length of a single-tone cue
	CueDuration = 60 * time.Millisecond

	// VictoryNoteDuration is the length of each note of the victory arpeggio
	VictoryNoteDuration = 120 * time.Millisecond
)
