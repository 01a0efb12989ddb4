package measure

import (
	"sort"
	"time"
)

// StepTime is the time a step spent computing its outputs.
type StepTime struct {
	Name string
	Busy time.Duration
}

// Bottlenecks returns the steps of m from the busiest to the least busy. Steps that produced
// nothing are left out.
func Bottlenecks(m Measure) []StepTime {
	var steps []StepTime
	for name, mt := range m.AllMetrics() {
		if mt.Total() == 0 {
			continue
		}
		steps = append(steps, StepTime{
			Name: name,
			Busy: mt.AVGDuration() * time.Duration(mt.Total()),
		})
	}

	sort.Slice(steps, func(i, j int) bool {
		if steps[i].Busy != steps[j].Busy {
			return steps[i].Busy > steps[j].Busy
		}

		return steps[i].Name < steps[j].Name
	})

	return steps
}
