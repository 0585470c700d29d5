package group_test

import (
	"sync"
	"testing"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/orbit"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestExamplesPacked16(t *testing.T) {
	testExamples(t, perm.Packed16{})
}

func TestExamplesGeneric16(t *testing.T) {
	testExamples(t, perm.GenericZero(16))
}

func TestExamplesGeneric32(t *testing.T) {
	testExamples(t, perm.GenericZero(32))
}

func word[V perm.Vect[V]](proto V, vals ...uint8) V {
	v, err := perm.FromSlice(proto.Zero(), vals)
	if err != nil {
		panic(err)
	}
	return v
}

func testExamples[V perm.Vect[V]](t *testing.T, proto V) {
	S3 := group.S3(proto)
	g100 := group.G100(proto)
	borie := group.Borie(proto)

	require.NoError(t, S3.CheckSGS())
	require.NoError(t, g100.CheckSGS())
	require.NoError(t, borie.CheckSGS())

	require.Equal(t, 6, S3.Order())
	require.Equal(t, 12, g100.Order())
	require.Equal(t, 3981312, borie.Order())

	require.True(t, S3.IsCanonical(word(proto), nil))
	require.True(t, S3.IsCanonical(word(proto, 1, 0), nil))
	require.False(t, S3.IsCanonical(word(proto, 0, 1), nil))
	require.False(t, S3.IsCanonical(word(proto, 4, 1, 3), nil))
	require.True(t, S3.IsCanonical(word(proto, 4, 3, 3), nil))

	require.Equal(t, word(proto), S3.Canonical(word(proto), nil))
	require.Equal(t, word(proto, 1, 0), S3.Canonical(word(proto, 1, 0), nil))
	require.Equal(t, word(proto, 1, 0), S3.Canonical(word(proto, 0, 1), nil))
	require.Equal(t, word(proto, 4, 3, 1), S3.Canonical(word(proto, 4, 1, 3), nil))
	require.Equal(t, word(proto, 4, 3, 3), S3.Canonical(word(proto, 4, 3, 3), nil))

	require.True(t, g100.IsCanonical(word(proto, 7, 1, 0, 2, 0, 0), nil))
	require.False(t, g100.IsCanonical(word(proto, 7, 1, 0, 2, 0, 3), nil))

	require.True(t, borie.IsCanonical(word(proto, 15), nil))
	require.True(t, borie.IsCanonical(word(proto, 12, 0, 0, 0, 1, 1, 1), nil))
	require.False(t, borie.IsCanonical(word(proto, 0, 15), nil))
}

// allWords calls fn for every word of length n over 0..k-1.
func allWords[V perm.Vect[V]](proto V, n int, k uint8, fn func(v V)) {
	var rec func(v V, i int)
	rec = func(v V, i int) {
		if i == n {
			fn(v)
			return
		}
		for x := uint8(0); x < k; x++ {
			rec(v.With(i, x), i+1)
		}
	}
	rec(proto.Zero(), 0)
}

func TestCanonicalIsOrbitMax(t *testing.T) {
	proto := perm.Packed16{}
	for _, G := range []*group.Group[perm.Packed16]{group.S3(proto), group.G100(proto)} {
		st := G.NewScratch()
		allWords(proto, G.N, 3, func(v perm.Packed16) {
			orbit := G.Orbit(v)
			top := orbit[len(orbit)-1]

			c := G.Canonical(v, st)
			require.Equal(t, top, c, "%v: canonical of %v", G, v)
			require.Equal(t, c, G.Canonical(c, st), "idempotent")
			require.Equal(t, v == c, G.IsCanonical(v, st), "%v: IsCanonical(%v)", G, v)
			require.True(t, perm.Compare(c, v) >= 0)
			require.LessOrEqual(t, len(orbit), G.Order())
		})
	}
}

func TestBorieOrbits(t *testing.T) {
	proto := perm.Packed16{}
	G := group.Borie(proto)
	st := G.NewScratch()
	for _, v := range []perm.Packed16{
		perm.Vect16(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1),
		perm.Vect16(0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1),
		perm.Vect16(0, 0, 0, 0, 3, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1),
	} {
		orbit := G.Orbit(v)
		require.Equal(t, orbit[len(orbit)-1], G.Canonical(v, st))
		for _, w := range orbit[:len(orbit)-1] {
			require.False(t, G.IsCanonical(w, st))
		}
		require.True(t, G.IsCanonical(orbit[len(orbit)-1], st))
	}

	// the group is transitive on 16 points
	require.Len(t, G.Orbit(perm.Vect16(1)), 16)
}

func TestScratchKinds(t *testing.T) {
	proto := perm.GenericZero(6)
	tb, err := group.LookupExample("G100")
	require.NoError(t, err)

	ref := group.MustFromTable(proto, tb)
	for _, kind := range []orbit.SetKind{orbit.SetBoundedStrict, orbit.SetTree} {
		G, err := group.FromTable(proto, tb, group.Opts{Scratch: group.ScratchOpts{Kind: kind}})
		require.NoError(t, err)
		allWords(proto, 6, 3, func(v perm.Generic) {
			require.Equal(t, ref.Canonical(v, nil), G.Canonical(v, nil), "%v", kind)
		})
	}

	_, err = group.FromTable(proto, tb, group.Opts{Scratch: group.ScratchOpts{Kind: orbit.SetKind(42)}})
	require.ErrorIs(t, err, orbit.ErrUnsupportedSetKind)
}

func TestSmallScratchGrows(t *testing.T) {
	proto := perm.Packed16{}
	tb, _ := group.LookupExample("borie")
	G, err := group.FromTable(proto, tb, group.Opts{Scratch: group.ScratchOpts{Capacity: 16}})
	require.NoError(t, err)

	ref := group.Borie(proto)
	v := perm.Vect16(0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1)
	require.Equal(t, ref.Canonical(v, nil), G.Canonical(v, nil))
}

func TestConcurrentCanonicity(t *testing.T) {
	proto := perm.Packed16{}
	G := group.G100(proto)

	var words []perm.Packed16
	allWords(proto, 6, 3, func(v perm.Packed16) { words = append(words, v) })
	want := make([]bool, len(words))
	st := G.NewScratch()
	for i, v := range words {
		want[i] = G.IsCanonical(v, st)
	}

	// each goroutine owns its scratch (or takes one from the pool)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			var own *group.Scratch[perm.Packed16]
			if g%2 == 0 {
				own = G.NewScratch()
			}
			for i, v := range words {
				if G.IsCanonical(v, own) != want[i] {
					t.Errorf("goroutine %d: IsCanonical(%v) mismatch", g, v)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestMalformedGroups(t *testing.T) {
	proto := perm.Packed16{}
	one := proto.Identity()
	s01, s12 := perm.Perm16(1, 0), perm.Perm16(0, 2, 1)

	cases := []struct {
		name string
		N    int
		sgs  group.SGS[perm.Packed16]
		want error
	}{
		{"ok", 3, group.SGS[perm.Packed16]{{one, s01, perm.Perm16(2, 1, 0)}, {one, s12}}, nil},
		{"identity not first", 3, group.SGS[perm.Packed16]{{s01, one}, {one}}, orbit.ErrMalformedGroup},
		{"empty level", 3, group.SGS[perm.Packed16]{{one}, {}}, orbit.ErrMalformedGroup},
		{"not a permutation", 3, group.SGS[perm.Packed16]{{one, perm.Perm16(1, 1)}, {one}}, orbit.ErrMalformedGroup},
		{"moves a point beyond N", 3, group.SGS[perm.Packed16]{{one, perm.Perm16(3, 1, 2, 0)}, {one}}, orbit.ErrMalformedGroup},
		{"moves a stabilized point", 3, group.SGS[perm.Packed16]{{one}, {one, s01}}, orbit.ErrMalformedGroup},
		{"repeated image", 3, group.SGS[perm.Packed16]{{one, s01, perm.Perm16(1, 2, 0)}, {one}}, orbit.ErrMalformedGroup},
		{"too few levels", 3, group.SGS[perm.Packed16]{{one}}, orbit.ErrMalformedGroup},
		{"too many levels", 2, group.SGS[perm.Packed16]{{one}, {one}, {one}}, orbit.ErrMalformedGroup},
		{"degree beyond width", 17, nil, orbit.ErrBadWidth},
		{"trivial", 0, nil, nil},
		{"one point", 1, group.SGS[perm.Packed16]{{one}}, nil},
	}
	for _, c := range cases {
		G, err := group.New("test", proto, c.N, c.sgs, group.Opts{})
		if c.want == nil {
			require.NoError(t, err, c.name)
			canon := G.Canonical(perm.Vect16(0, 5, 1), nil)
			require.True(t, G.IsCanonical(canon, nil), c.name)
		} else {
			require.Error(t, err, c.name)
			require.True(t, errors.Is(err, c.want), "%s: %v", c.name, err)
		}
	}

	_, err := group.FromTable(perm.GenericZero(6), group.Examples()[2], group.Opts{})
	require.ErrorIs(t, err, orbit.ErrBadWidth)

	_, err = group.LookupExample("S4")
	require.ErrorIs(t, err, orbit.ErrUnknownGroup)
}

const s3Defs = `
[[group]]
name = "S3 by cycles"
degree = 3
levels = [
  ["", "(0 1)", "(0 2)"],
  ["[]", "(1 2)"],
]

[[group]]
name = "S3 one-based"
degree = 3
one_based = true
levels = [
  ["[1,2,3]", "[2,1,3]", "(1 3)"],
  ["(1)", "(2 3)"],
  ["[1,2,3]"],
]
`

func TestDefs(t *testing.T) {
	defs, err := group.ParseDefs(s3Defs)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	proto := perm.GenericZero(8)
	ref := group.S3(proto)
	for _, def := range defs {
		G, err := group.FromDef(proto, def, group.Opts{})
		require.NoError(t, err, def.Name)
		require.Equal(t, ref.SGS[:2], G.SGS[:2], def.Name)
		allWords(proto, 3, 4, func(v perm.Generic) {
			require.Equal(t, ref.Canonical(v, nil), G.Canonical(v, nil))
		})
	}

	// round trip of a built-in table
	for _, tb := range group.Examples() {
		G, err := group.FromDef(perm.Packed16{}, tb.Def(), group.Opts{})
		require.NoError(t, err, tb.Name)
		require.Equal(t, group.MustFromTable(perm.Packed16{}, tb).SGS, G.SGS)
	}

	_, err = group.FromDef(proto, group.Def{Name: "bad", Degree: 3, Levels: [][]string{{"(0 1)(1 2)"}, {""}}}, group.Opts{})
	require.ErrorIs(t, err, orbit.ErrMalformedGroup)

	_, err = group.ParseDefs("[[group]\nname=")
	require.Error(t, err)
}
