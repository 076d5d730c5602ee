package transform

import (
	"sync"

	"github.com/go-sif/siflines"
	errors "github.com/go-sif/siflines/errors"
	iutil "github.com/go-sif/siflines/internal/util"
)

type filterIterator struct {
	source       siflines.LineIterator
	fn           siflines.FilterOperation
	peeked       bool
	line         string
	err          error
	sourceEnded  bool
	lock         sync.Mutex
	endListeners []func()
}

// Filter lazily drops the lines of source for which fn returns false. The resulting iterator
// keeps the Ordering of source, and closing it closes source.
func Filter(source siflines.LineIterator, fn siflines.FilterOperation) (siflines.LineIterator, error) {
	if source == nil {
		return nil, errors.NilArgumentError{Name: "source"}
	}
	if fn == nil {
		return nil, errors.NilArgumentError{Name: "fn"}
	}
	fi := &filterIterator{source: source, fn: iutil.SafeFilterOperation(fn), endListeners: []func(){}}
	// source only calls this from within a call made while holding fi.lock
	source.OnEnd(func() { fi.sourceEnded = true })
	return fi, nil
}

// HasNextLine returns true iff another kept line (or an error) is available
func (fi *filterIterator) HasNextLine() bool {
	fi.lock.Lock()
	defer fi.unlock()
	return fi.advance()
}

// NextLine returns the next kept line, or an error from either source or fn
func (fi *filterIterator) NextLine() (string, error) {
	fi.lock.Lock()
	defer fi.unlock()
	if !fi.advance() {
		return "", errors.NoMoreLinesError{}
	}
	fi.peeked = false
	if fi.err != nil {
		err := fi.err
		fi.err = nil
		return "", err
	}
	return fi.line, nil
}

// OnEnd registers a listener which fires when source runs out of lines.
// Listeners run after the iterator's lock is released, so they may call back into it.
func (fi *filterIterator) OnEnd(onEnd func()) {
	fi.lock.Lock()
	defer fi.lock.Unlock()
	fi.endListeners = append(fi.endListeners, onEnd)
}

func (fi *filterIterator) Ordering() siflines.Ordering {
	return fi.source.Ordering()
}

func (fi *filterIterator) Close() error {
	fi.lock.Lock()
	defer fi.unlock()
	fi.peeked = false
	return fi.source.Close()
}

// must be called while holding the lock
func (fi *filterIterator) advance() bool {
	if fi.peeked {
		return true
	}
	for fi.source.HasNextLine() {
		line, err := fi.source.NextLine()
		if err == nil {
			var keep bool
			keep, err = fi.fn(line)
			if err == nil && !keep {
				continue
			}
		}
		fi.line, fi.err, fi.peeked = line, err, true
		return true
	}
	return false
}

// unlock releases the lock, then runs the end listeners once source has ended and no kept line is pending
func (fi *filterIterator) unlock() {
	var firing []func()
	if fi.sourceEnded && !fi.peeked {
		firing = fi.endListeners
		fi.endListeners = []func(){}
	}
	fi.lock.Unlock()
	for _, l := range firing {
		l()
	}
}
