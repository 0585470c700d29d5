package walker

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/orbit"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Walk explores the tree of canonical words described by pol and accumulates its leaves into res.
//
// Subtrees are forked onto new goroutines while a worker slot is free and walked inline otherwise.  Each goroutine
// owns its scratch storage, so the only shared state is the read-only group.  Cancelling ctx stops the walk
// between nodes; the partial result is discarded and the returned error wraps ctx.Err().
func Walk[V perm.Vect[V], A any, R any](ctx context.Context, G *group.Group[V], pol Policy[V], res Result[V, A, R], opts Opts) (R, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.SeqCutoff <= 0 {
		opts.SeqCutoff = DefaultSeqCutoff
	}

	tw := &treeWalker[V, A, R]{
		ctx:     ctx,
		done:    ctx.Done(),
		G:       G,
		pol:     pol,
		res:     res,
		cutoff:  opts.SeqCutoff,
		store:   newStorage(G, opts.Workers),
		metrics: opts.Metrics,
	}
	if opts.Workers > 1 {
		tw.sem = semaphore.NewWeighted(int64(opts.Workers - 1))
	}

	start := time.Now()
	acc := res.NewAcc()
	st := tw.store.get()
	err := tw.walk(pol.root(G), acc, st)
	tw.store.put(st)

	var value R
	if err != nil {
		return value, errors.Wrapf(err, "walk %v of %v", pol, G)
	}
	value = res.Value(acc)
	klog.V(2).Infof("walk %v of %v: %d workers, %d forks, %v", pol, G, opts.Workers, tw.forks.Load(), time.Since(start))
	return value, nil
}

type treeWalker[V perm.Vect[V], A any, R any] struct {
	ctx     context.Context
	done    <-chan struct{}
	G       *group.Group[V]
	pol     Policy[V]
	res     Result[V, A, R]
	sem     *semaphore.Weighted // nil if sequential
	cutoff  int
	store   *storage[V]
	metrics orbit.Metrics
	forks   atomic.Int64
}

func (tw *treeWalker[V, A, R]) cancelled() error {
	select {
	case <-tw.done:
		return tw.ctx.Err()
	default:
		return nil
	}
}

func (tw *treeWalker[V, A, R]) walk(n node[V], acc A, st *group.Scratch[V]) error {
	if err := tw.cancelled(); err != nil {
		return err
	}
	if tw.pol.isLeaf(&n) {
		tw.res.Update(acc, n.v)
		return nil
	}

	if tw.sem == nil || tw.pol.remaining(&n) < tw.cutoff {
		return tw.pol.expand(tw.G, &n, st, func(child node[V]) error {
			return tw.walk(child, acc, st)
		})
	}
	return tw.fork(&n, acc, st)
}

// fork walks each child of n into its own accumulator, on a new goroutine if a worker slot is free, then merges
// the accumulators in visiting order.
func (tw *treeWalker[V, A, R]) fork(n *node[V], acc A, st *group.Scratch[V]) error {
	var (
		eg   errgroup.Group
		accs []A
	)

	err := tw.pol.expand(tw.G, n, st, func(child node[V]) error {
		childAcc := tw.res.NewAcc()
		accs = append(accs, childAcc)

		if !tw.sem.TryAcquire(1) {
			return tw.walk(child, childAcc, st)
		}

		tw.forks.Add(1)
		if tw.metrics != nil {
			tw.metrics.TaskSpawned()
		}
		eg.Go(func() error {
			defer tw.sem.Release(1)
			childSt := tw.store.get()
			defer tw.store.put(childSt)
			return tw.walk(child, childAcc, childSt)
		})
		return nil
	})

	if waitErr := eg.Wait(); err == nil {
		err = waitErr
	}
	if err != nil {
		return err
	}
	for _, childAcc := range accs {
		tw.res.Merge(acc, childAcc)
	}
	return nil
}
