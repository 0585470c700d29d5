package group

import (
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/orbit"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Def is a group definition as read from a TOML file:
//
//	[[group]]
//	name = "S3"
//	degree = 3
//	levels = [
//	  ["[0,1,2]", "(0 1)", "(0 2)"],
//	  ["[0,1,2]", "(1 2)"],
//	]
//
// Each entry is an image list or a product of disjoint cycles (see perm.ParsePerm).
type Def struct {
	Name     string     `toml:"name"`
	Degree   int        `toml:"degree"`
	OneBased bool       `toml:"one_based"`
	Levels   [][]string `toml:"levels"`
}

type defFile struct {
	Groups []Def `toml:"group"`
}

// ParseDefs decodes TOML group definitions.
func ParseDefs(src string) ([]Def, error) {
	var file defFile
	if _, err := toml.Decode(src, &file); err != nil {
		return nil, errors.Wrap(err, "decode group definitions")
	}
	return file.Groups, nil
}

// LoadDefs reads TOML group definitions from a file.
func LoadDefs(pathname string) ([]Def, error) {
	var file defFile
	if _, err := toml.DecodeFile(pathname, &file); err != nil {
		return nil, errors.Wrapf(err, "load group definitions %q", pathname)
	}
	return file.Groups, nil
}

// FromDef builds def in the layout of proto.
func FromDef[V perm.Vect[V]](proto V, def Def, opts Opts) (*Group[V], error) {
	parseOpts := perm.ParseOpts{OneBased: def.OneBased}
	sgs := make(SGS[V], len(def.Levels))
	for i, level := range def.Levels {
		sgs[i] = make([]V, len(level))
		for j, expr := range level {
			p, err := perm.ParsePerm(proto, expr, parseOpts)
			if err != nil {
				return nil, errors.Wrapf(orbit.ErrMalformedGroup, "group %q level %d: %v", def.Name, i, err)
			}
			sgs[i][j] = p
		}
	}
	return New(def.Name, proto, def.Degree, sgs, opts)
}

// Def returns tb as a definition using image lists.
func (tb Table) Def() Def {
	def := Def{
		Name:   tb.Name,
		Degree: tb.Degree,
		Levels: make([][]string, len(tb.Levels)),
	}
	for i, level := range tb.Levels {
		for _, images := range level {
			def.Levels[i] = append(def.Levels[i], perm.NewGeneric(len(images), images...).String())
		}
	}
	return def
}
