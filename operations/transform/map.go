package transform

import (
	"github.com/go-sif/siflines"
	errors "github.com/go-sif/siflines/errors"
	iutil "github.com/go-sif/siflines/internal/util"
)

type mapIterator struct {
	source siflines.LineIterator
	fn     siflines.MapOperation
}

// Map lazily transforms every line produced by source. The resulting iterator keeps the
// Ordering of source, and closing it closes source.
func Map(source siflines.LineIterator, fn siflines.MapOperation) (siflines.LineIterator, error) {
	if source == nil {
		return nil, errors.NilArgumentError{Name: "source"}
	}
	if fn == nil {
		return nil, errors.NilArgumentError{Name: "fn"}
	}
	return &mapIterator{source: source, fn: iutil.SafeMapOperation(fn)}, nil
}

func (mi *mapIterator) HasNextLine() bool {
	return mi.source.HasNextLine()
}

// NextLine returns the next transformed line, or an error from either source or fn
func (mi *mapIterator) NextLine() (string, error) {
	line, err := mi.source.NextLine()
	if err != nil {
		return "", err
	}
	return mi.fn(line)
}

// OnEnd registers a listener on source, which never runs while this iterator holds a lock
func (mi *mapIterator) OnEnd(onEnd func()) {
	mi.source.OnEnd(onEnd)
}

func (mi *mapIterator) Ordering() siflines.Ordering {
	return mi.source.Ordering()
}

func (mi *mapIterator) Close() error {
	return mi.source.Close()
}
