package status

import (
	"math"
	"sync/atomic"
)

// MaxLabelLen caps a label in runes so the debug line stays on one row
const MaxLabelLen = 24

// Gauge is a float64 readable from any goroutine; the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Smooth folds sample into an exponential moving average with the given weight
// in (0, 1] and returns the new value; the first sample is taken as is
func (g *Gauge) Smooth(sample, weight float64) float64 {
	for {
		old := g.bits.Load()
		next := sample
		if old != 0 {
			prev := math.Float64frombits(old)
			next = prev + weight*(sample-prev)
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Label is a short string readable from any goroutine; the zero value reads ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Store replaces the label, cut to MaxLabelLen runes
func (l *Label) Store(s string) {
	if r := []rune(s); len(r) > MaxLabelLen {
		s = string(r[:MaxLabelLen])
	}
	l.ptr.Store(&s)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
