package file

import (
	"bufio"
	"io"
	"sync"

	"github.com/go-sif/siflines"
	errors "github.com/go-sif/siflines/errors"
	"github.com/go-sif/siflines/internal/util"
	"github.com/go-sif/siflines/logging"
)

// LineConf configures how lines are read from a single file
type LineConf struct {
	MaxBufferSize int   // Maximum size in bytes of a single line. Defaults to no limit.
	Compression   Codec // How the file is encoded on disk. Defaults to None.
}

const unboundedLine = int(^uint(0) >> 1)

func (c LineConf) bufferSize() int {
	if c.MaxBufferSize <= 0 {
		return unboundedLine
	}
	return c.MaxBufferSize
}

// newScanner creates a line scanner whose tokens may not exceed the configured buffer size
func (c LineConf) newScanner(r io.Reader) *bufio.Scanner {
	limit := c.bufferSize()
	initial := 4096
	if limit < initial {
		initial = limit
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), limit)
	return scanner
}

type fileLineIterator struct {
	id           string
	path         string
	file         io.ReadCloser
	scanner      *bufio.Scanner
	peeked       bool
	line         string
	err          error
	done         bool
	lock         sync.Mutex
	endListeners []func()
	firing       []func()
}

// CreateLineIterator opens a file and produces a LineIterator which lazily reads its lines.
// The file is closed once the iterator runs out of lines, or when it is closed.
func CreateLineIterator(path string, conf *LineConf) (siflines.LineIterator, error) {
	if path == "" {
		return nil, errors.NilArgumentError{Name: "path"}
	}
	if conf == nil {
		conf = &LineConf{}
	}
	it, err := openLines(path, *conf)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func openLines(path string, conf LineConf) (*fileLineIterator, error) {
	f, err := Open(path, conf.Compression)
	if err != nil {
		return nil, errors.IOFailureError{Op: "open", Path: path, Cause: err}
	}
	it := &fileLineIterator{
		id:           util.NewIteratorID(),
		path:         path,
		file:         f,
		scanner:      conf.newScanner(f),
		endListeners: []func(){},
	}
	logging.Logf(logging.DebugLevel, "Opened %s for lazy reading (iterator %s)", path, it.id)
	return it, nil
}

// OnEnd registers a listener which fires when this iterator runs out of lines.
// Listeners run after the iterator's lock is released, so they may call back into it.
func (fi *fileLineIterator) OnEnd(onEnd func()) {
	fi.lock.Lock()
	defer fi.lock.Unlock()
	fi.endListeners = append(fi.endListeners, onEnd)
}

// HasNextLine returns true iff this LineIterator can produce another line (or a read error)
func (fi *fileLineIterator) HasNextLine() bool {
	fi.lock.Lock()
	defer fi.unlock()
	return fi.advance()
}

// NextLine returns the next line if one is available, or an error
func (fi *fileLineIterator) NextLine() (string, error) {
	fi.lock.Lock()
	defer fi.unlock()
	if !fi.advance() {
		return "", errors.NoMoreLinesError{}
	}
	fi.peeked = false
	if fi.err != nil {
		err := fi.err
		fi.err = nil
		fi.finish()
		return "", err
	}
	return fi.line, nil
}

// Ordering returns Ordered, since lines are read from disk sequentially
func (fi *fileLineIterator) Ordering() siflines.Ordering {
	return siflines.Ordered
}

// Close releases the underlying file handle. Calling Close more than once is a no-op.
func (fi *fileLineIterator) Close() error {
	fi.lock.Lock()
	defer fi.unlock()
	err := fi.closeFile()
	fi.done = true
	fi.peeked = false
	fi.fireEnd()
	if err != nil {
		return errors.IOFailureError{Op: "close", Path: fi.path, Cause: err}
	}
	return nil
}

// advance makes sure a line (or error) is waiting to be returned, and reports whether one is.
// must be called while holding the lock
func (fi *fileLineIterator) advance() bool {
	if fi.peeked {
		return true
	}
	if fi.done {
		return false
	}
	if fi.scanner.Scan() {
		fi.line = fi.scanner.Text()
		fi.peeked = true
		return true
	}
	if err := fi.scanner.Err(); err != nil {
		fi.err = errors.IOFailureError{Op: "read", Path: fi.path, Cause: err}
		fi.peeked = true
		return true
	}
	fi.finish()
	return false
}

// must be called while holding the lock
func (fi *fileLineIterator) finish() {
	fi.done = true
	if err := fi.closeFile(); err != nil {
		logging.Logf(logging.WarnLevel, "couldn't close file %s: %v", fi.path, err)
	}
	fi.fireEnd()
}

// must be called while holding the lock
func (fi *fileLineIterator) closeFile() error {
	if fi.file == nil {
		return nil
	}
	err := fi.file.Close()
	fi.file = nil
	logging.Logf(logging.DebugLevel, "Closed %s (iterator %s)", fi.path, fi.id)
	return err
}

// fireEnd queues the end listeners, which run once the lock is released.
// must be called while holding the lock
func (fi *fileLineIterator) fireEnd() {
	fi.firing = append(fi.firing, fi.endListeners...)
	fi.endListeners = []func(){}
}

// unlock releases the lock, then runs any end listeners queued while it was held
func (fi *fileLineIterator) unlock() {
	firing := fi.firing
	fi.firing = nil
	fi.lock.Unlock()
	for _, l := range firing {
		l()
	}
}
