package util

import (
	"github.com/go-sif/siflines"
	iutil "github.com/go-sif/siflines/internal/util"
	"github.com/hashicorp/go-multierror"
)

// Collect drains a LineIterator into a slice, closing it afterwards
func Collect(it siflines.LineIterator) ([]string, error) {
	lines := []string{}
	err := drain(it, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Count drains a LineIterator and returns the number of lines it produced, closing it afterwards
func Count(it siflines.LineIterator) (int, error) {
	count := 0
	err := drain(it, func(string) error {
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// drain sequentially applies fn to every line, then closes the iterator
func drain(it siflines.LineIterator, fn func(line string) error) error {
	var merr *multierror.Error
	for it.HasNextLine() {
		line, err := it.NextLine()
		if err == nil {
			err = fn(line)
		}
		if err != nil {
			merr = iutil.AppendError(merr, err)
			break
		}
	}
	merr = iutil.AppendError(merr, it.Close())
	return merr.ErrorOrNil()
}
