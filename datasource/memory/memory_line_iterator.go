package memory

import (
	"sync"

	"github.com/go-sif/siflines"
	errors "github.com/go-sif/siflines/errors"
)

type memoryLineIterator struct {
	lines        []string
	next         int
	ordering     siflines.Ordering
	lock         sync.Mutex
	endListeners []func()
	firing       []func()
}

// CreateLineIterator produces a LineIterator over an in-memory slice of lines
func CreateLineIterator(lines []string, ordering siflines.Ordering) siflines.LineIterator {
	return &memoryLineIterator{
		lines:        lines,
		ordering:     ordering,
		endListeners: []func(){},
	}
}

// OnEnd registers a listener which fires when this iterator runs out of lines.
// Listeners run after the iterator's lock is released, so they may call back into it.
func (mi *memoryLineIterator) OnEnd(onEnd func()) {
	mi.lock.Lock()
	defer mi.lock.Unlock()
	mi.endListeners = append(mi.endListeners, onEnd)
}

// HasNextLine returns true iff this LineIterator can produce another line
func (mi *memoryLineIterator) HasNextLine() bool {
	mi.lock.Lock()
	defer mi.unlock()
	if mi.next >= len(mi.lines) {
		mi.fireEnd()
		return false
	}
	return true
}

// NextLine returns the next line if one is available, or an error
func (mi *memoryLineIterator) NextLine() (string, error) {
	mi.lock.Lock()
	defer mi.unlock()
	if mi.next >= len(mi.lines) {
		mi.fireEnd()
		return "", errors.NoMoreLinesError{}
	}
	line := mi.lines[mi.next]
	mi.next++
	if mi.next == len(mi.lines) {
		mi.fireEnd()
	}
	return line, nil
}

// Ordering returns Unordered iff this iterator may be consumed in parallel
func (mi *memoryLineIterator) Ordering() siflines.Ordering {
	return mi.ordering
}

// Close discards any remaining lines
func (mi *memoryLineIterator) Close() error {
	mi.lock.Lock()
	defer mi.unlock()
	mi.lines = nil
	mi.next = 0
	mi.fireEnd()
	return nil
}

// must be called while holding the lock
func (mi *memoryLineIterator) fireEnd() {
	mi.firing = append(mi.firing, mi.endListeners...)
	mi.endListeners = []func(){}
}

// unlock releases the lock, then runs any end listeners queued while it was held
func (mi *memoryLineIterator) unlock() {
	firing := mi.firing
	mi.firing = nil
	mi.lock.Unlock()
	for _, l := range firing {
		l()
	}
}
