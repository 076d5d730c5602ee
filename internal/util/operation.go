package util

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-sif/siflines"
)

// GetTrace produces the string representation of a stack trace
func GetTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

// SafeMapOperation wraps a MapOperation such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp siflines.MapOperation) (safeMapOp siflines.MapOperation) {
	return func(line string) (result string, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Map Panic: %w\nLine: %q\n%s", anErr, line, GetTrace())
				} else {
					err = fmt.Errorf("Map Panic: %v\nLine: %q\n%s", r, line, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nLine: %q", err, line)
			}
		}()
		result, err = mapOp(line)
		return
	}
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp siflines.FilterOperation) (safeFilterOp siflines.FilterOperation) {
	return func(line string) (keep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\nLine: %q\n%s", anErr, line, GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\nLine: %q\n%s", r, line, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nLine: %q", err, line)
			}
		}()
		keep, err = filterOp(line)
		return
	}
}
