package walker_test

import (
	"context"
	"os"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/lib/sets"
	"github.com/2x3systems/orbits/lib/walker"
	"github.com/2x3systems/orbits/orbit"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"go.uber.org/goleak"
)

var (
	seq = walker.Opts{Workers: 1}
	par = walker.Opts{Workers: 8, SeqCutoff: 2}
)

func TestElementsOfDepth(t *testing.T) {
	testElementsOfDepth(t, perm.Packed16{})
	testElementsOfDepth(t, perm.GenericZero(16))
}

func testElementsOfDepth[V perm.Vect[V]](t *testing.T, proto V) {
	ctx := context.Background()
	expected := []struct {
		G      *group.Group[V]
		counts map[int]uint64
	}{
		{group.S3(proto), map[int]uint64{0: 1, 5: 5, 10: 14, 20: 44}},
		{group.G100(proto), map[int]uint64{0: 1, 5: 26, 10: 280, 20: 4576}},
		{group.Borie(proto), map[int]uint64{0: 1, 5: 25, 10: 545, 15: 6686}},
	}
	for _, e := range expected {
		for depth, want := range e.counts {
			for _, opts := range []walker.Opts{seq, par} {
				got, err := walker.ElementsOfDepthNumber(ctx, e.G, depth, opts)
				if err != nil {
					t.Fatal(err)
				}
				if got != want {
					t.Fatalf("%v depth %d (workers %d): got %d, want %d", e.G, depth, opts.Workers, got, want)
				}

				list, err := walker.ElementsOfDepth(ctx, e.G, depth, opts)
				if err != nil {
					t.Fatal(err)
				}
				if uint64(len(list)) != want {
					t.Fatalf("%v depth %d: list has %d elements, count is %d", e.G, depth, len(list), want)
				}
			}
		}
	}
}

func TestBorieDepth20(t *testing.T) {
	if testing.Short() {
		t.Skip("short")
	}
	G := group.Borie(perm.Packed16{})
	n, err := walker.ElementsOfDepthNumber(context.Background(), G, 20, walker.Opts{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 57605 {
		t.Fatalf("got %d", n)
	}
}

func TestBorieHuge(t *testing.T) {
	if os.Getenv("ORBITS_HUGE") == "" {
		t.Skip("set ORBITS_HUGE=1 to run")
	}
	G := group.Borie(perm.Packed16{})
	for depth, want := range map[int]uint64{25: 375810, 30: 1983238} {
		n, err := walker.ElementsOfDepthNumber(context.Background(), G, depth, walker.Opts{})
		if err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Fatalf("depth %d: got %d, want %d", depth, n, want)
		}
	}
}

// Counts indexed by [maxPart][depth], checked with Sage.
var maxPartCounts = map[string][][]uint64{
	"S3": {
		{1, 0},
		{1, 1, 1, 1, 0},
		{1, 1, 2, 2, 2, 1, 1, 0},
		{1, 1, 2, 3, 3, 3, 3, 2, 1, 1, 0},
		{1, 1, 2, 3, 4, 4, 5, 4, 4, 3, 2, 1, 1, 0},
	},
	"g100": {
		{1, 0},
		{1, 1, 3, 3, 3, 1, 1, 0},
		{1, 1, 4, 6, 12, 13, 18, 13, 12, 6, 4, 1, 1, 0},
		{1, 1, 4, 7, 15, 22, 37, 44, 56, 56, 56, 44, 37, 22, 15, 7, 4, 1, 1, 0},
	},
	"borie": {
		{1, 0},
		{1, 1, 2, 3, 5, 5, 7, 7, 8, 7, 7, 5, 5, 3, 2, 1, 1, 0},
		{1, 1, 3, 5, 11, 16, 29, 41, 65, 85, 119, 145, 185, 207, 239, 247, 262, 247, 239, 207, 185, 145, 119, 85, 65, 41, 29, 16, 11, 5, 3, 1, 1, 0},
		{1, 1, 3, 6, 13, 22, 43, 70, 121, 189, 297, 436, 642, 884, 1210, 1578, 2025, 2486, 3007, 3486},
	},
}

func TestElementsOfDepthMaxPart(t *testing.T) {
	ctx := context.Background()
	for key, table := range maxPartCounts {
		tb, err := group.LookupExample(key)
		if err != nil {
			t.Fatal(err)
		}
		G := group.MustFromTable(perm.Packed16{}, tb)
		for maxPart, row := range table {
			for depth, want := range row {
				got, err := walker.ElementsOfDepthNumberMaxPart(ctx, G, depth, maxPart, walker.Opts{})
				if err != nil {
					t.Fatal(err)
				}
				if got != want {
					t.Fatalf("%s depth %d max part %d: got %d, want %d", key, depth, maxPart, got, want)
				}
			}
		}
	}
}

func TestSequentialOrder(t *testing.T) {
	ctx := context.Background()
	check := func(G *group.Group[perm.Packed16], depth int, want map[int]perm.Packed16) {
		for _, opts := range []walker.Opts{seq, par} {
			list, err := walker.ElementsOfDepth(ctx, G, depth, opts)
			if err != nil {
				t.Fatal(err)
			}
			for i, v := range want {
				if list[i] != v {
					t.Fatalf("%v depth %d element %d: got %v, want %v", G, depth, i, list[i], v)
				}
			}
		}
	}

	check(group.G100(perm.Packed16{}), 10, map[int]perm.Packed16{
		0:  perm.Vect16(10),
		20: perm.Vect16(7, 1, 0, 2),
	})
	check(group.Borie(perm.Packed16{}), 15, map[int]perm.Packed16{
		0:  perm.Vect16(15),
		20: perm.Vect16(12, 0, 0, 0, 1, 1, 1),
	})
}

func TestParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	ctx := context.Background()
	G := group.G100(perm.GenericZero(6))

	sortWords := func(list []perm.Generic) []string {
		strs := make([]string, len(list))
		for i, v := range list {
			strs[i] = v.String()
		}
		sort.Strings(strs)
		return strs
	}

	want, err := walker.ElementsOfDepth(ctx, G, 12, seq)
	if err != nil {
		t.Fatal(err)
	}
	for _, opts := range []walker.Opts{
		{Workers: 2},
		{Workers: 4, SeqCutoff: 1},
		{Workers: 64, SeqCutoff: 1},
		{},
	} {
		got, err := walker.ElementsOfDepth(ctx, G, 12, opts)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(sortWords(want), sortWords(got)); diff != "" {
			t.Fatalf("workers %d: %s", opts.Workers, diff)
		}
		if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b perm.Generic) bool { return a == b })); diff != "" {
			t.Fatalf("workers %d: order differs: %s", opts.Workers, diff)
		}
	}
}

func TestDepthElementsAreDistinctCanonical(t *testing.T) {
	ctx := context.Background()
	G := group.Borie(perm.Packed16{})
	list, err := walker.ElementsOfDepth(ctx, G, 12, par)
	if err != nil {
		t.Fatal(err)
	}

	var catalog sets.LSM
	defer catalog.Close()
	st := G.NewScratch()
	for _, v := range list {
		if !G.IsCanonical(v, st) {
			t.Fatalf("%v is not canonical", v)
		}
		if perm.Sum(v, 16) != 12 {
			t.Fatalf("%v has the wrong depth", v)
		}
		added, err := catalog.TryAdd([]byte(v.String()))
		if err != nil {
			t.Fatal(err)
		}
		if !added {
			t.Fatalf("%v enumerated twice", v)
		}
	}
	if catalog.Len() != int64(len(list)) {
		t.Fatal("catalog size mismatch")
	}
}

// evaluations calls fn for every vector of N counts summing to N.
func evaluations(N int, fn func(counts []uint8)) {
	counts := make([]uint8, N)
	var rec func(i, left int)
	rec = func(i, left int) {
		if i == N-1 {
			counts[i] = uint8(left)
			fn(counts)
			return
		}
		for x := 0; x <= left; x++ {
			counts[i] = uint8(x)
			rec(i+1, left-x)
		}
	}
	rec(0, N)
}

func TestElementsOfEvaluation(t *testing.T) {
	ctx := context.Background()
	proto := perm.GenericZero(6)
	for _, G := range []*group.Group[perm.Generic]{group.S3(proto), group.G100(proto)} {
		N := G.N

		// canonical words grouped by content, by brute force
		expected := map[string]map[perm.Generic]bool{}
		var rec func(v perm.Generic, i int)
		rec = func(v perm.Generic, i int) {
			if i == N {
				content := make([]uint8, N)
				for j := 0; j < N; j++ {
					content[v.At(j)]++
				}
				key := perm.NewGeneric(6, content...).String()
				if expected[key] == nil {
					expected[key] = map[perm.Generic]bool{}
				}
				expected[key][G.Canonical(v, nil)] = true
				return
			}
			for x := 0; x < N; x++ {
				rec(v.With(i, uint8(x)), i+1)
			}
		}
		rec(proto, 0)

		total := 0
		evaluations(N, func(counts []uint8) {
			eval := perm.NewGeneric(6, counts...)
			for _, opts := range []walker.Opts{seq, par} {
				list, err := walker.ElementsOfEvaluation(ctx, G, eval, opts)
				if err != nil {
					t.Fatal(err)
				}
				want := expected[eval.String()]
				if len(list) != len(want) {
					t.Fatalf("%v evaluation %v: got %d words, want %d", G, eval, len(list), len(want))
				}
				for _, v := range list {
					if !want[v] {
						t.Fatalf("%v evaluation %v: unexpected %v", G, eval, v)
					}
				}
				n, err := walker.ElementsOfEvaluationNumber(ctx, G, eval, opts)
				if err != nil || n != uint64(len(list)) {
					t.Fatalf("count %d != %d (%v)", n, len(list), err)
				}
			}
			total += len(expected[eval.String()])
		})

		orbits := 0
		for _, words := range expected {
			orbits += len(words)
		}
		if total != orbits {
			t.Fatalf("%v: evaluations cover %d of %d orbits", G, total, orbits)
		}
	}
}

func TestBadArguments(t *testing.T) {
	ctx := context.Background()
	G := group.S3(perm.Packed16{})

	if _, err := walker.ElementsOfDepth(ctx, G, 256, seq); !errors.Is(err, orbit.ErrBadDepth) {
		t.Fatalf("expected ErrBadDepth, got %v", err)
	}
	if _, err := walker.ElementsOfDepthNumberMaxPart(ctx, G, -1, 3, seq); !errors.Is(err, orbit.ErrBadDepth) {
		t.Fatalf("expected ErrBadDepth, got %v", err)
	}
	for _, eval := range []perm.Packed16{perm.Vect16(1, 1), perm.Vect16(1, 1, 1, 1), perm.Vect16(1, 1, 0, 1)} {
		if _, err := walker.ElementsOfEvaluation(ctx, G, eval, seq); !errors.Is(err, orbit.ErrBadEvaluation) {
			t.Fatalf("%v: expected ErrBadEvaluation, got %v", eval, err)
		}
	}

	GG := group.S3(perm.GenericZero(3))
	if _, err := walker.ElementsOfEvaluationNumber(ctx, GG, perm.NewGeneric(4, 1, 1, 1), seq); !errors.Is(err, orbit.ErrBadEvaluation) {
		t.Fatalf("expected ErrBadEvaluation, got %v", err)
	}

	// a depth no word reaches
	n, err := walker.ElementsOfDepthNumberMaxPart(ctx, G, 10, 3, seq)
	if err != nil || n != 0 {
		t.Fatalf("got %d, %v", n, err)
	}
}

func TestCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	G := group.Borie(perm.Packed16{})
	for _, opts := range []walker.Opts{seq, par} {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := walker.ElementsOfDepthNumber(ctx, G, 30, opts)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("workers %d: expected context.Canceled, got %v", opts.Workers, err)
		}
	}

	// cancel mid-walk
	ctx, cancel := context.WithCancel(context.Background())
	res := cancellingCounter{cancel: cancel, after: 1000}
	_, err := walker.Walk[perm.Packed16, *uint64, uint64](ctx, G, mustDepth(30), &res, par)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func mustDepth(depth int) walker.Policy[perm.Packed16] {
	pol, err := walker.Depth[perm.Packed16](depth, depth)
	if err != nil {
		panic(err)
	}
	return pol
}

// cancellingCounter cancels its walk once it has seen a number of leaves.
type cancellingCounter struct {
	walker.ResultCounter[perm.Packed16]
	cancel func()
	after  int64
	seen   int64
}

func (c *cancellingCounter) Update(acc *uint64, v perm.Packed16) {
	*acc++
	if atomic.AddInt64(&c.seen, 1) == c.after {
		c.cancel()
	}
}

func TestTrivialGroups(t *testing.T) {
	ctx := context.Background()
	proto := perm.Packed16{}
	one := proto.Identity()

	G1, err := group.New("trivial", proto, 4, group.SGS[perm.Packed16]{{one}, {one}, {one}}, group.Opts{})
	if err != nil {
		t.Fatal(err)
	}
	// every word is canonical: compositions of 3 into 4 parts
	n, err := walker.ElementsOfDepthNumber(ctx, G1, 3, seq)
	if err != nil || n != 20 {
		t.Fatalf("got %d, %v", n, err)
	}

	G0, err := group.New("empty", proto, 0, nil, group.Opts{})
	if err != nil {
		t.Fatal(err)
	}
	list, err := walker.ElementsOfDepth(ctx, G0, 0, seq)
	if err != nil || len(list) != 1 {
		t.Fatalf("got %v, %v", list, err)
	}
	list, err = walker.ElementsOfEvaluation(ctx, G0, proto, seq)
	if err != nil || len(list) != 1 {
		t.Fatalf("got %v, %v", list, err)
	}
}
