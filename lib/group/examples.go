package group

import (
	"strings"

	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/orbit"
	"github.com/pkg/errors"
)

// Table is a group given as literal image lists, independent of any vector layout.
type Table struct {
	Key    string // short lookup name
	Name   string
	Degree int
	Levels [][][]uint8
}

// Examples returns the built-in groups.
func Examples() []Table {
	return []Table{
		{Key: "S3", Name: "S3", Degree: 3, Levels: s3Table},
		{Key: "g100", Name: "Transitive Group (6, 100)", Degree: 6, Levels: g100Table},
		{Key: "borie", Name: "N. Borie's favorite", Degree: 16, Levels: borieTable},
	}
}

// LookupExample returns the built-in group with the given key (case insensitive).
func LookupExample(key string) (Table, error) {
	for _, tb := range Examples() {
		if strings.EqualFold(tb.Key, key) {
			return tb, nil
		}
	}
	return Table{}, errors.Wrapf(orbit.ErrUnknownGroup, "%q", key)
}

// FromTable builds tb in the layout of proto; each image list is completed by the identity.
func FromTable[V perm.Vect[V]](proto V, tb Table, opts Opts) (*Group[V], error) {
	sgs := make(SGS[V], len(tb.Levels))
	for i, level := range tb.Levels {
		sgs[i] = make([]V, len(level))
		for j, images := range level {
			p, err := perm.FromSlice(proto.Identity(), images)
			if err != nil {
				return nil, errors.Wrapf(orbit.ErrBadWidth, "group %q: %v", tb.Name, err)
			}
			sgs[i][j] = p
		}
	}
	return New(tb.Name, proto, tb.Degree, sgs, opts)
}

// MustFromTable is FromTable for tables known to be valid.
func MustFromTable[V perm.Vect[V]](proto V, tb Table) *Group[V] {
	G, err := FromTable(proto, tb, Opts{})
	if err != nil {
		panic(err)
	}
	return G
}

// S3 is the symmetric group on 3 points.
func S3[V perm.Vect[V]](proto V) *Group[V] {
	return MustFromTable(proto, Examples()[0])
}

// G100 is the transitive subgroup of S6 numbered 100 by Sage.
func G100[V perm.Vect[V]](proto V) *Group[V] {
	return MustFromTable(proto, Examples()[1])
}

// Borie is a subgroup of S16 of order 3981312.
func Borie[V perm.Vect[V]](proto V) *Group[V] {
	return MustFromTable(proto, Examples()[2])
}

var s3Table = [][][]uint8{
	{
		{0, 1, 2},
		{1, 0, 2},
		{2, 1, 0},
	},
	{
		{0, 1, 2},
		{0, 2, 1},
	},
	{
		{0, 1, 2},
	},
}

var g100Table = [][][]uint8{
	{
		{0, 1, 2, 3, 4, 5},
		{1, 0, 3, 2, 5, 4},
		{3, 2, 4, 5, 1, 0},
		{2, 3, 5, 4, 0, 1},
		{5, 4, 1, 0, 2, 3},
		{4, 5, 0, 1, 3, 2},
	},
	{
		{0, 1, 2, 3, 4, 5},
	},
	{
		{0, 1, 2, 3, 4, 5},
		{0, 1, 4, 5, 2, 3},
	},
	{
		{0, 1, 2, 3, 4, 5},
	},
	{
		{0, 1, 2, 3, 4, 5},
	},
	{
		{0, 1, 2, 3, 4, 5},
	},
}

var borieTable = [][][]uint8{
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{7, 6, 5, 4, 3, 0, 2, 1, 13, 12, 15, 14, 11, 8, 10, 9},
		{12, 15, 14, 13, 11, 10, 8, 9, 5, 6, 7, 4, 0, 2, 1, 3},
		{13, 14, 15, 12, 10, 11, 9, 8, 7, 4, 5, 6, 1, 3, 0, 2},
		{6, 7, 4, 5, 2, 1, 3, 0, 12, 13, 14, 15, 8, 11, 9, 10},
		{8, 10, 9, 11, 15, 14, 12, 13, 1, 3, 0, 2, 6, 4, 7, 5},
		{9, 11, 8, 10, 13, 12, 14, 15, 2, 0, 3, 1, 5, 7, 4, 6},
		{11, 9, 10, 8, 14, 15, 13, 12, 0, 2, 1, 3, 7, 5, 6, 4},
		{1, 0, 3, 2, 6, 7, 4, 5, 9, 8, 11, 10, 13, 12, 15, 14},
		{3, 2, 1, 0, 5, 4, 7, 6, 10, 11, 8, 9, 14, 15, 12, 13},
		{2, 3, 0, 1, 7, 6, 5, 4, 11, 10, 9, 8, 15, 14, 13, 12},
		{4, 5, 6, 7, 0, 3, 1, 2, 15, 14, 13, 12, 10, 9, 11, 8},
		{5, 4, 7, 6, 1, 2, 0, 3, 14, 15, 12, 13, 9, 10, 8, 11},
		{15, 12, 13, 14, 8, 9, 11, 10, 6, 5, 4, 7, 2, 0, 3, 1},
		{14, 13, 12, 15, 9, 8, 10, 11, 4, 7, 6, 5, 3, 1, 2, 0},
		{10, 8, 11, 9, 12, 13, 15, 14, 3, 1, 2, 0, 4, 6, 5, 7},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 2, 3, 1, 8, 9, 11, 10, 7, 4, 5, 6, 12, 14, 15, 13},
		{0, 3, 1, 2, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 3, 2, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 15, 14},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 5, 4, 7, 6, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 9, 8, 10, 11, 14, 12, 13, 15, 4, 6, 5, 7},
		{0, 1, 2, 3, 12, 14, 13, 15, 5, 4, 6, 7, 9, 10, 8, 11},
		{0, 1, 2, 3, 6, 7, 4, 5, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 10, 11, 9, 8, 14, 12, 13, 15, 4, 6, 5, 7},
		{0, 1, 2, 3, 13, 15, 12, 14, 5, 4, 6, 7, 9, 10, 8, 11},
		{0, 1, 2, 3, 11, 10, 8, 9, 14, 12, 13, 15, 4, 6, 5, 7},
		{0, 1, 2, 3, 8, 9, 11, 10, 14, 12, 13, 15, 4, 6, 5, 7},
		{0, 1, 2, 3, 7, 6, 5, 4, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 15, 13, 14, 12, 5, 4, 6, 7, 9, 10, 8, 11},
		{0, 1, 2, 3, 14, 12, 15, 13, 5, 4, 6, 7, 9, 10, 8, 11},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 6, 5, 7, 15, 12, 13, 14, 8, 9, 10, 11},
		{0, 1, 2, 3, 4, 7, 5, 6, 14, 12, 13, 15, 8, 9, 10, 11},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 7, 6, 14, 12, 13, 15, 8, 9, 11, 10},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 10, 11, 8, 9, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 12, 14, 15, 13, 8, 9, 10, 11},
		{0, 1, 2, 3, 4, 5, 6, 7, 11, 10, 9, 8, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 9, 8, 11, 10, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 14, 12, 13, 15, 8, 9, 10, 11},
		{0, 1, 2, 3, 4, 5, 6, 7, 13, 15, 14, 12, 8, 9, 10, 11},
		{0, 1, 2, 3, 4, 5, 6, 7, 15, 13, 12, 14, 8, 9, 10, 11},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 11, 9, 10, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 9, 11, 12, 13, 15, 14},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 10, 12, 13, 15, 14},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 12, 15, 14},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 15, 14, 13, 12},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 14, 15, 12, 13},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 15, 13, 14},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 14, 15, 13},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
	{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	},
}
