package siflines

// Ordering describes whether the lines of a LineIterator must be consumed in order
type Ordering int

const (
	// Ordered iterators produce lines in file (or row) order, and must be consumed sequentially
	Ordered Ordering = iota
	// Unordered iterators are held in memory and may be consumed in parallel, without an ordering guarantee
	Unordered
)

// String returns a textual representation of this Ordering
func (o Ordering) String() string {
	if o == Unordered {
		return "unordered"
	}
	return "ordered"
}

// LineIterator is a lazy, single-pass sequence of lines, regardless of where they come from.
// A LineIterator must be closed once the caller is done with it, even if it was only
// partially consumed, so that any file handles it holds are released.
type LineIterator interface {
	HasNextLine() bool
	// NextLine returns errors.NoMoreLinesError once the iterator is exhausted or closed
	NextLine() (string, error)
	OnEnd(onEnd func())
	Ordering() Ordering
	Close() error
}
