package timer

import "slices"

// Levels groups event names by dependency depth using Kahn's algorithm.
// Level 0 holds the roots; every event appears after all of its dependencies.
func (t *Timer) Levels() [][]string {
	inDegree := make([]int, len(t.events))
	var queue []int
	for i, ev := range t.events {
		inDegree[i] = len(ev.dependencies)
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	var levels [][]string
	for len(queue) > 0 {
		levels = append(levels, t.names(queue))

		var next []int
		for _, i := range queue {
			for _, dep := range t.events[i].dependents {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}
	return levels
}

// CriticalPath follows the forecast back from the last event to finish,
// choosing the latest-finishing dependency at each step. The result runs
// from a root to that last event. It reflects the most recent forecast.
func (t *Timer) CriticalPath() []string {
	if len(t.events) == 0 {
		return nil
	}

	last := t.events[0]
	for _, ev := range t.events[1:] {
		if ev.expectedCompleted > last.expectedCompleted {
			last = ev
		}
	}

	path := []string{last.name}
	for cur := last; len(cur.dependencies) > 0; {
		next := t.events[cur.dependencies[0]]
		for _, d := range cur.dependencies[1:] {
			if t.events[d].expectedCompleted > next.expectedCompleted {
				next = t.events[d]
			}
		}
		path = append(path, next.name)
		cur = next
	}

	slices.Reverse(path)
	return path
}
