package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry groups the metric families shown on the debug line
type Registry struct {
	Bools  *Family[atomic.Bool]
	Ints   *Family[atomic.Int64]
	Gauges *Family[Gauge]
	Labels *Family[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewFamily[atomic.Bool](),
		Ints:   NewFamily[atomic.Int64](),
		Gauges: NewFamily[Gauge](),
		Labels: NewFamily[Label](),
	}
}

// TotalCount returns the number of metrics across all families
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Gauges.Count() + r.Labels.Count()
}

// Format renders "key=value" pairs: ints, gauges, bools, then labels, each family in key order
func (r *Registry) Format() string {
	parts := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Gauges.Range(func(k string, v *Gauge) {
		parts = append(parts, fmt.Sprintf("%s=%.2f", k, v.Get()))
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		parts = append(parts, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	r.Labels.Range(func(k string, v *Label) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v.Load()))
	})
	return strings.Join(parts, " ")
}
