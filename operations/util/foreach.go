package util

import (
	"context"
	"runtime"

	"github.com/go-sif/siflines"
	iutil "github.com/go-sif/siflines/internal/util"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ForEachConf configures ForEach
type ForEachConf struct {
	Parallelism int // The maximum number of lines processed concurrently for Unordered iterators. Defaults to runtime.NumCPU().
}

// ForEach applies fn to every line of a LineIterator, closing it afterwards.
// Ordered iterators are consumed sequentially, in order. Unordered iterators have their lines
// processed concurrently by up to conf.Parallelism goroutines, in no particular order.
// The first error returned by fn stops the iteration, and is returned once every
// in-flight call has finished.
func ForEach(ctx context.Context, it siflines.LineIterator, conf *ForEachConf, fn func(line string) error) error {
	parallelism := runtime.NumCPU()
	if conf != nil && conf.Parallelism > 0 {
		parallelism = conf.Parallelism
	}
	if it.Ordering() == siflines.Ordered || parallelism == 1 {
		return drain(it, func(line string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(line)
		})
	}

	var merr *multierror.Error
	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(parallelism))
	// gctx is cancelled by the first error in fn, or by the caller
	for gctx.Err() == nil && it.HasNextLine() {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		line, err := it.NextLine()
		if err != nil {
			sem.Release(1)
			merr = iutil.AppendError(merr, err)
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			return fn(line)
		})
	}
	if err := g.Wait(); err != nil {
		merr = iutil.AppendError(merr, err)
	} else if err := ctx.Err(); err != nil {
		merr = iutil.AppendError(merr, err)
	}
	merr = iutil.AppendError(merr, it.Close())
	return merr.ErrorOrNil()
}
