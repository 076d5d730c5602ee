// Package memory provides a LineIterator over lines which have already been read into memory.
// Such iterators hold no file handles, and may be marked Unordered so that they can be
// consumed in parallel.
package memory
