package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundSpawn   SoundType = iota // Block unhooked
	SoundSettle                   // Block came to rest
	SoundShadow                   // Block passed onto a target
	SoundVictory                  // Every target covered
	soundTypeCount
)

// String returns the cue name used in logs
func (s SoundType) String() string {
	switch s {
	case SoundSpawn:
		return "spawn"
	case SoundSettle:
		return "settle"
	case SoundShadow:
		return "shadow"
	case SoundVictory:
		return "victory"
	default:
		return "unknown"
	}
}
