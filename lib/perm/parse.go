package perm

import (
	"strings"

	"github.com/2x3systems/orbits/orbit"
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// Literal is either an image list "[1,0,2]" (a bare "1,0,2" also works) or a product of disjoint cycles "(0 1)(2 3 4)".
type Literal struct {
	Image  *ImageExpr   `  @@`
	Cycles []*CycleExpr `| @@+`
}

type ImageExpr struct {
	Values []int `( "[" (@Int (","? @Int)*)? "]" | @Int ("," @Int)* )`
}

type CycleExpr struct {
	Points []int `"(" (@Int ","?)* ")"`
}

var parseLiteral = participle.MustBuild[Literal]()

// parse reports grammar failures (including participle panics) as orbit.ErrBadLiteral.
func parse(expr string) (lit *Literal, err error) {
	defer func() {
		if r := recover(); r != nil {
			lit, err = nil, errors.Wrapf(orbit.ErrBadLiteral, "%q: %v", expr, r)
		}
	}()
	lit, err = parseLiteral.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(orbit.ErrBadLiteral, "%q: %v", expr, err)
	}
	return lit, nil
}

// ParseOpts tunes how literals are interpreted.
type ParseOpts struct {
	OneBased bool // if set, entries and cycle points count from 1 (as in GAP and Sage)
}

// ParseVect parses an image list into a word of proto's layout (zero filled).
func ParseVect[V Vect[V]](proto V, expr string) (V, error) {
	if strings.TrimSpace(expr) == "" {
		return proto.Zero(), nil
	}
	lit, err := parse(expr)
	if err != nil {
		return proto.Zero(), err
	}
	if lit.Image == nil {
		return proto.Zero(), errors.Wrapf(orbit.ErrBadLiteral, "%q: cycles do not describe a word", expr)
	}
	return fillFromInts(proto.Zero(), lit.Image.Values, 0, expr)
}

// ParsePerm parses an image list (identity filled) or a product of disjoint cycles into a permutation of proto's layout.
func ParsePerm[V Vect[V]](proto V, expr string, opts ParseOpts) (V, error) {
	one := proto.Identity()
	base := 0
	if opts.OneBased {
		base = 1
	}
	if strings.TrimSpace(expr) == "" {
		return one, nil
	}

	lit, err := parse(expr)
	if err != nil {
		return one, err
	}

	var p V
	if lit.Image != nil {
		p, err = fillFromInts(one, lit.Image.Values, base, expr)
		if err != nil {
			return one, err
		}
	} else {
		p = one
		moved := uint64(0)
		for _, cycle := range lit.Cycles {
			N := len(cycle.Points)
			for i, pt := range cycle.Points {
				src, dst := pt-base, cycle.Points[(i+1)%N]-base
				if src < 0 || src >= proto.Width() || dst < 0 || dst >= proto.Width() {
					return one, errors.Wrapf(orbit.ErrBadLiteral, "%q: point %d out of range", expr, pt)
				}
				if moved&(1<<src) != 0 {
					return one, errors.Wrapf(orbit.ErrBadLiteral, "%q: cycles are not disjoint at %d", expr, pt)
				}
				moved |= 1 << src
				p = p.With(src, uint8(dst))
			}
		}
	}

	if !p.IsPermutation(p.Width()) {
		return one, errors.Wrapf(orbit.ErrBadLiteral, "%q is not a permutation", expr)
	}
	return p, nil
}

func fillFromInts[V Vect[V]](fill V, vals []int, base int, expr string) (V, error) {
	if len(vals) > fill.Width() {
		return fill, errors.Wrapf(orbit.ErrBadLiteral, "%q: %d entries exceed width %d", expr, len(vals), fill.Width())
	}
	v := fill
	for i, x := range vals {
		x -= base
		if x < 0 || x > orbit.MaxPart {
			return fill, errors.Wrapf(orbit.ErrBadLiteral, "%q: entry %d out of range", expr, x+base)
		}
		v = v.With(i, uint8(x))
	}
	return v, nil
}
