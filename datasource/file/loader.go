package file

import (
	"os"

	"github.com/go-sif/siflines"
	"github.com/go-sif/siflines/datasource/memory"
	errors "github.com/go-sif/siflines/errors"
	"github.com/go-sif/siflines/logging"
)

// LoaderConf configures LoadIfSize
type LoaderConf struct {
	MaxSize            int64 // Files strictly smaller than MaxSize bytes are read into memory. Defaults to 0, which always reads from disk.
	ParallelIfPossible bool  // If the file is read into memory, produce an Unordered iterator. Defaults to false.
	MaxBufferSize      int   // Maximum size in bytes of a single line. Defaults to no limit.
	Compression        Codec // How the file is encoded on disk. Defaults to None.
}

// LoadIfSize checks the on-disk size of a file. If it is smaller than conf.MaxSize, every line is read
// into memory before returning, and the file is closed; the resulting iterator is Unordered
// (eligible for parallel consumption) iff conf.ParallelIfPossible is set. Otherwise, lines are read
// lazily from disk by an Ordered iterator which holds the file open until it is closed, regardless
// of conf.ParallelIfPossible. A nil conf uses the defaults.
func LoadIfSize(path string, conf *LoaderConf) (siflines.LineIterator, error) {
	if path == "" {
		return nil, errors.NilArgumentError{Name: "path"}
	}
	if conf == nil {
		conf = &LoaderConf{}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.IOFailureError{Op: "stat", Path: path, Cause: err}
	}
	lineConf := LineConf{MaxBufferSize: conf.MaxBufferSize, Compression: conf.Compression}
	if info.Size() < conf.MaxSize {
		lines, err := readAllLines(path, lineConf)
		if err != nil {
			return nil, err
		}
		ordering := siflines.Ordered
		if conf.ParallelIfPossible {
			ordering = siflines.Unordered
		}
		logging.Logf(logging.DebugLevel, "Loaded %d lines of %s (%d bytes) into memory, %s", len(lines), path, info.Size(), ordering)
		return memory.CreateLineIterator(lines, ordering), nil
	}
	it, err := openLines(path, lineConf)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func readAllLines(path string, conf LineConf) ([]string, error) {
	f, err := Open(path, conf.Compression)
	if err != nil {
		return nil, errors.IOFailureError{Op: "open", Path: path, Cause: err}
	}
	scanner := conf.newScanner(f)
	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return nil, errors.IOFailureError{Op: "read", Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return nil, errors.IOFailureError{Op: "close", Path: path, Cause: err}
	}
	return lines, nil
}
