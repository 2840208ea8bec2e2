package engine

// System is a tick participant; Update runs once per tick in priority order
type System interface {
	Update()
	Priority() int // Lower values run first
}
