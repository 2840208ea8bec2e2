package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fullkning/core"
)

// ClockScheduler emits tick signals on a fixed cadence
// It never touches the world: the main loop receives from Ticks() and runs
// GameContext.Tick itself, so all mutation stays on one goroutine
type ClockScheduler struct {
	tickInterval time.Duration
	ticks        chan uint64

	// Tick counter for debugging and metrics
	tickCount atomic.Uint64
	isPaused  atomic.Bool

	mu               sync.Mutex
	nextTickDeadline time.Time // Next tick deadline for drift correction

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler with the given tick interval
func NewClockScheduler(tickInterval time.Duration) *ClockScheduler {
	return &ClockScheduler{
		tickInterval: tickInterval,
		ticks:        make(chan uint64),
		stopChan:     make(chan struct{}),
	}
}

// Ticks delivers the sequence number of each due tick
func (cs *ClockScheduler) Ticks() <-chan uint64 {
	return cs.ticks
}

// TickCount returns the number of ticks delivered so far
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Pause suspends tick delivery; deadlines are rebased on Resume
func (cs *ClockScheduler) Pause() {
	cs.isPaused.Store(true)
}

// Resume restarts tick delivery one interval from now
func (cs *ClockScheduler) Resume() {
	cs.mu.Lock()
	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)
	cs.mu.Unlock()
	cs.isPaused.Store(false)
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		// core.Go restores the terminal if the loop panics
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
		if cs.running.CompareAndSwap(true, false) {
			cs.wg.Wait()
		}
	})
}

// schedulerLoop sleeps until each deadline and hands the tick to the consumer
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		case <-timer.C:
		}

		if cs.isPaused.Load() {
			// Poll slower while paused
			timer.Reset(cs.tickInterval * 2)
			continue
		}

		now := time.Now()
		cs.mu.Lock()
		deadline := cs.nextTickDeadline
		cs.mu.Unlock()

		if now.Before(deadline) {
			timer.Reset(deadline.Sub(now))
			continue
		}

		n := cs.tickCount.Add(1)
		select {
		case cs.ticks <- n:
		case <-cs.stopChan:
			return
		}

		cs.mu.Lock()
		cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
		// Consumer stalled (e.g. blocked on a dialog): skip missed ticks instead of bursting
		if now.Sub(cs.nextTickDeadline) > cs.tickInterval*2 {
			cs.nextTickDeadline = now.Add(cs.tickInterval)
		}
		sleep := cs.nextTickDeadline.Sub(time.Now())
		cs.mu.Unlock()

		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
