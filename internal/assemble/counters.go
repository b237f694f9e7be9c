package assemble

import (
	"fmt"
	"strings"
)

// Counter is one progress indicator: how many pages have been produced out
// of how many are expected at one level of the tree.
type Counter struct {
	Count int
	Total int
}

func (c Counter) String() string {
	return fmt.Sprintf("%d/%d", c.Count, c.Total)
}

// Counters is the stack of progress indicators active during a walk,
// outermost first.
type Counters struct {
	levels []Counter
}

// Push adds a counter with the given total and returns the function that
// removes it. Callers defer the returned function so the stack stays
// balanced on every exit path. Calling it more than once is a no-op.
func (c *Counters) Push(total int) (pop func()) {
	c.levels = append(c.levels, Counter{Total: total})
	depth := len(c.levels)
	popped := false
	return func() {
		if popped {
			return
		}
		popped = true
		if len(c.levels) != depth {
			panic(fmt.Sprintf("assemble: counter stack popped out of order (depth %d, want %d)", len(c.levels), depth))
		}
		c.levels = c.levels[:depth-1]
	}
}

// Increment advances every counter on the stack by one.
func (c *Counters) Increment() {
	for i := range c.levels {
		c.levels[i].Count++
	}
}

// Len returns the number of counters on the stack.
func (c *Counters) Len() int { return len(c.levels) }

// Snapshot returns a copy of the stack.
func (c *Counters) Snapshot() []Counter {
	return append([]Counter(nil), c.levels...)
}

// String renders one "count/total" line per counter.
func (c *Counters) String() string {
	return formatCounters(c.levels)
}

func formatCounters(levels []Counter) string {
	var b strings.Builder
	for _, l := range levels {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}
