package file

import (
	"strings"
	"sync"

	"github.com/go-sif/siflines"
	errors "github.com/go-sif/siflines/errors"
	"github.com/go-sif/siflines/internal/util"
	"github.com/go-sif/siflines/logging"
	"github.com/hashicorp/go-multierror"
)

// TraverseConf configures TraverseFiles
type TraverseConf struct {
	Separator     string // The separator placed between corresponding lines of each file
	MaxBufferSize int    // Maximum size in bytes of a single line of each file. Defaults to no limit.
	Compression   Codec  // How the files are encoded on disk. Defaults to None.
}

type traversingIterator struct {
	id           string
	separator    string
	sources      []siflines.LineIterator
	done         bool
	lock         sync.Mutex
	endListeners []func()
	firing       []func()
}

// TraverseFiles reads the given files line by line, in lockstep, producing one line per row index.
// Each produced line is the i-th line of every file, in argument order, joined with conf.Separator.
// Files with fewer lines than the longest one contribute an empty string to the remaining rows, so
// every row contains the same number of separators.
//
// A nil conf is rejected with a NilArgumentError, and an empty list of files with a
// ConfigurationError. A single file is accepted, and simply reproduces its own lines.
// Reading is sequential; the returned iterator is always Ordered. Closing it closes every file.
func TraverseFiles(conf *TraverseConf, files ...string) (siflines.LineIterator, error) {
	if conf == nil {
		return nil, errors.NilArgumentError{Name: "separator"}
	}
	if len(files) == 0 {
		return nil, errors.ConfigurationError{Msg: "There must be at least one file as a parameter"}
	}
	lineConf := LineConf{MaxBufferSize: conf.MaxBufferSize, Compression: conf.Compression}
	sources := make([]siflines.LineIterator, 0, len(files))
	for _, path := range files {
		var src *fileLineIterator
		var err error
		if path == "" {
			err = errors.IOFailureError{Op: "open", Path: path, Cause: errors.NilArgumentError{Name: "path"}}
		} else {
			src, err = openLines(path, lineConf)
		}
		if err != nil {
			closeAll(sources)
			return nil, err
		}
		sources = append(sources, src)
	}
	it := &traversingIterator{
		id:           util.NewIteratorID(),
		separator:    conf.Separator,
		sources:      sources,
		endListeners: []func(){},
	}
	logging.Logf(logging.DebugLevel, "Traversing %d files (iterator %s)", len(files), it.id)
	return it, nil
}

// closeAll releases sources after a failure, logging anything that goes wrong
func closeAll(sources []siflines.LineIterator) {
	var merr *multierror.Error
	for _, s := range sources {
		merr = util.AppendError(merr, s.Close())
	}
	if err := merr.ErrorOrNil(); err != nil {
		logging.Logf(logging.WarnLevel, "couldn't close files: %v", err)
	}
}

// OnEnd registers a listener which fires when this iterator runs out of rows, or stops on a read error.
// Listeners run after the iterator's lock is released, so they may call back into it.
func (ti *traversingIterator) OnEnd(onEnd func()) {
	ti.lock.Lock()
	defer ti.lock.Unlock()
	ti.endListeners = append(ti.endListeners, onEnd)
}

// HasNextLine returns true iff any of the files has another line
func (ti *traversingIterator) HasNextLine() bool {
	ti.lock.Lock()
	defer ti.unlock()
	return ti.hasNext()
}

// NextLine returns the next combined row if one is available, or an error.
// A read error from any file ends the traversal, since the remaining rows could no longer be aligned.
func (ti *traversingIterator) NextLine() (string, error) {
	ti.lock.Lock()
	defer ti.unlock()
	if !ti.hasNext() {
		return "", errors.NoMoreLinesError{}
	}
	fields := make([]string, len(ti.sources))
	for i, s := range ti.sources {
		// exhausted sources contribute an empty field
		if !s.HasNextLine() {
			continue
		}
		line, err := s.NextLine()
		if err != nil {
			ti.done = true
			closeAll(ti.sources)
			ti.fireEnd()
			return "", err
		}
		fields[i] = line
	}
	return strings.Join(fields, ti.separator), nil
}

// Ordering returns Ordered, since rows are produced in row index order
func (ti *traversingIterator) Ordering() siflines.Ordering {
	return siflines.Ordered
}

// Close closes every underlying file, even if the iterator was only partially consumed
func (ti *traversingIterator) Close() error {
	ti.lock.Lock()
	defer ti.unlock()
	var merr *multierror.Error
	for _, s := range ti.sources {
		merr = util.AppendError(merr, s.Close())
	}
	ti.done = true
	ti.fireEnd()
	return merr.ErrorOrNil()
}

// must be called while holding the lock
func (ti *traversingIterator) hasNext() bool {
	if ti.done {
		return false
	}
	for _, s := range ti.sources {
		if s.HasNextLine() {
			return true
		}
	}
	ti.done = true
	ti.fireEnd()
	return false
}

// must be called while holding the lock
func (ti *traversingIterator) fireEnd() {
	ti.firing = append(ti.firing, ti.endListeners...)
	ti.endListeners = []func(){}
}

// unlock releases the lock, then runs any end listeners queued while it was held
func (ti *traversingIterator) unlock() {
	firing := ti.firing
	ti.firing = nil
	ti.lock.Unlock()
	for _, l := range firing {
		l()
	}
}
