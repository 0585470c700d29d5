package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/lib/sets"
	"github.com/2x3systems/orbits/lib/walker"
	"github.com/2x3systems/orbits/orbit"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// runner is a group bound to a vector layout.
type runner interface {
	enum(ctx context.Context, out io.Writer, depth, maxPart int, verify bool) error
	count(ctx context.Context, out io.Writer, depth, maxPart int) error
	canon(out io.Writer, word string) error
	eval(ctx context.Context, out io.Writer, eval string, countOnly bool) error
	timeDepths(ctx context.Context, out io.Writer, depths []int) error
}

type session[V perm.Vect[V]] struct {
	cfg *config
	G   *group.Group[V]
}

func newSession[V perm.Vect[V]](cfg *config, proto V, def group.Def) (*session[V], error) {
	G, err := group.FromDef(proto, def, cfg.groupOpts())
	if err != nil {
		return nil, err
	}
	return &session[V]{cfg: cfg, G: G}, nil
}

func (s *session[V]) format(v V) string {
	return perm.Format(v, s.G.N)
}

func (s *session[V]) enum(ctx context.Context, out io.Writer, depth, maxPart int, verify bool) error {
	words, err := walker.ElementsOfDepthMaxPart(ctx, s.G, depth, maxPart, s.cfg.walkOpts())
	if err != nil {
		return err
	}

	var catalog sets.LSM
	defer catalog.Close()

	st := s.G.NewScratch()
	for _, v := range words {
		str := s.format(v)
		if verify {
			if !s.G.IsCanonical(v, st) {
				return errors.Errorf("%s is not canonical", str)
			}
			added, err := catalog.TryAdd([]byte(str))
			if err != nil {
				return err
			}
			if !added {
				return errors.Errorf("%s was produced twice", str)
			}
		}
		fmt.Fprintln(out, str)
	}
	if verify {
		fmt.Fprintf(out, "verified %s distinct canonical words\n", humanize.Comma(catalog.Len()))
	}
	return s.printMetrics(out)
}

func (s *session[V]) count(ctx context.Context, out io.Writer, depth, maxPart int) error {
	n, err := walker.ElementsOfDepthNumberMaxPart(ctx, s.G, depth, maxPart, s.cfg.walkOpts())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, n)
	return s.printMetrics(out)
}

func (s *session[V]) canon(out io.Writer, word string) error {
	v, err := perm.ParseVect(s.G.Zero(), word)
	if err != nil {
		return err
	}
	if nz := v.LastNonZero(v.Width()); nz < v.Width() && nz >= s.G.N {
		return errors.Wrapf(orbit.ErrIndexOutOfRange, "%s has entries beyond degree %d", word, s.G.N)
	}
	c := s.G.Canonical(v, nil)
	fmt.Fprintf(out, "%s canonical=%v\n", s.format(c), c.Equal(v))
	return nil
}

func (s *session[V]) eval(ctx context.Context, out io.Writer, expr string, countOnly bool) error {
	eval, err := perm.ParseVect(s.G.Zero(), expr)
	if err != nil {
		return err
	}
	if countOnly {
		n, err := walker.ElementsOfEvaluationNumber(ctx, s.G, eval, s.cfg.walkOpts())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, n)
		return s.printMetrics(out)
	}

	words, err := walker.ElementsOfEvaluation(ctx, s.G, eval, s.cfg.walkOpts())
	if err != nil {
		return err
	}
	for _, v := range words {
		fmt.Fprintln(out, s.format(v))
	}
	return s.printMetrics(out)
}

func (s *session[V]) timeDepths(ctx context.Context, out io.Writer, depths []int) error {
	fmt.Fprintf(out, "%s: degree %d, order %s\n", s.G.Name, s.G.N, humanize.Comma(int64(s.G.Order())))
	for _, depth := range depths {
		start := time.Now()
		n, err := walker.ElementsOfDepthNumber(ctx, s.G, depth, s.cfg.walkOpts())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(out, "depth %3d: %12s words in %v\n", depth, humanize.Comma(int64(n)), elapsed.Round(time.Microsecond))
	}
	return s.printMetrics(out)
}

func (s *session[V]) printMetrics(out io.Writer) error {
	if s.cfg.collector == nil {
		return nil
	}
	snap, err := s.cfg.collector.Snapshot()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "canonicity tests: %s canonical, %s rejected\n", humanize.Comma(int64(snap.Canonical)), humanize.Comma(int64(snap.Rejected)))
	fmt.Fprintf(out, "set inserts: %s added, %s dupes, %.2f mean probes\n", humanize.Comma(int64(snap.Added)), humanize.Comma(int64(snap.Dupes)), snap.MeanProbes)
	fmt.Fprintf(out, "level sets: %s, %.2f mean width\n", humanize.Comma(int64(snap.Levels)), snap.MeanLevelWidth)
	fmt.Fprintf(out, "scratch grows: %d, max capacity %s\n", snap.Grows, humanize.Comma(int64(snap.MaxCapacity)))
	fmt.Fprintf(out, "subtrees forked: %s\n", humanize.Comma(int64(snap.TasksForked)))
	return nil
}
