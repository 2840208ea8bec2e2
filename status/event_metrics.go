package status

import (
	"sync/atomic"

	"github.com/lixenwraith/fullkning/engine"
)

// EventMetrics counts game events per type into a registry
type EventMetrics struct {
	counters map[engine.EventType]*atomic.Int64
	last     *Label
	victory  *atomic.Bool
}

// NewEventMetrics registers one counter per event type, named after the type
func NewEventMetrics(reg *Registry) *EventMetrics {
	m := &EventMetrics{
		counters: make(map[engine.EventType]*atomic.Int64),
		last:     reg.Labels.Get("last"),
		victory:  reg.Bools.Get("won"),
	}
	for _, t := range m.EventTypes() {
		m.counters[t] = reg.Ints.Get(t.String())
	}
	return m
}

// HandleEvent implements engine.EventHandler
func (m *EventMetrics) HandleEvent(ev engine.GameEvent) {
	if c, ok := m.counters[ev.Type]; ok {
		c.Add(1)
	}
	m.last.Store(ev.Type.String())
	if ev.Type == engine.EventVictory {
		m.victory.Store(true)
	}
}

// EventTypes implements engine.EventHandler
func (m *EventMetrics) EventTypes() []engine.EventType {
	return engine.AllEventTypes()
}
