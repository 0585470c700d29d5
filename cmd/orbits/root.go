package main

import (
	"flag"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/lib/stats"
	"github.com/2x3systems/orbits/lib/walker"
	"github.com/2x3systems/orbits/orbit"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// config holds the flags shared by every command that works on a group.
type config struct {
	group     string
	groups    string
	layout    string
	setKind   string
	workers   int
	seqCutoff int
	metrics   bool

	collector *stats.Collector
}

func newRootCmd(klogFlags *flag.FlagSet) *cobra.Command {
	cfg := &config{}

	root := &cobra.Command{
		Use:           "orbits",
		Short:         "Enumerates canonical words under permutation groups",
		Long:          `orbits lists, counts and tests the lexicographically largest representatives of the orbits of integer words under a permutation group given by a strong generating set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cfg.layout {
			case "packed", "generic":
			default:
				return errors.Errorf("unknown layout %q (want packed or generic)", cfg.layout)
			}
			if _, err := orbit.ParseSetKind(cfg.setKind); err != nil {
				return errors.Wrapf(err, "%q", cfg.setKind)
			}
			if cfg.metrics {
				cfg.collector = stats.NewCollector()
			}
			return nil
		},
	}
	root.SetVersionTemplate("orbits {{.Version}}\n")
	root.Version = "v1.2026.1"

	pf := root.PersistentFlags()
	pf.AddGoFlagSet(klogFlags)
	pf.StringVarP(&cfg.group, "group", "g", "g100", "built-in group key, or group name when --groups is given")
	pf.StringVar(&cfg.groups, "groups", "", "TOML file of group definitions")
	pf.StringVar(&cfg.layout, "layout", "packed", "vector layout: packed or generic")
	pf.StringVar(&cfg.setKind, "set", orbit.SetBounded.String(), "scratch set kind: bounded, bounded-strict or tree")
	pf.IntVarP(&cfg.workers, "workers", "w", 0, "max concurrent subtree walks (0 for GOMAXPROCS, 1 for sequential)")
	pf.IntVar(&cfg.seqCutoff, "seq-cutoff", 0, "subtrees with fewer remaining levels are walked inline")
	pf.BoolVar(&cfg.metrics, "metrics", false, "collect and print walk statistics")

	root.AddCommand(newEnumCmd(cfg))
	root.AddCommand(newCountCmd(cfg))
	root.AddCommand(newCanonCmd(cfg))
	root.AddCommand(newEvalCmd(cfg))
	root.AddCommand(newTimeCmd(cfg))
	root.AddCommand(newGroupsCmd())
	root.AddCommand(newScriptCmd())
	return root
}

// lookupDef resolves cfg.group against --groups or the built-in examples.
func (cfg *config) lookupDef() (group.Def, error) {
	if cfg.groups == "" {
		tb, err := group.LookupExample(cfg.group)
		if err != nil {
			return group.Def{}, err
		}
		return tb.Def(), nil
	}

	defs, err := group.LoadDefs(cfg.groups)
	if err != nil {
		return group.Def{}, err
	}
	for _, def := range defs {
		if def.Name == cfg.group {
			return def, nil
		}
	}
	if cfg.group == "" && len(defs) == 1 {
		return defs[0], nil
	}
	return group.Def{}, errors.Wrapf(orbit.ErrUnknownGroup, "%q in %s", cfg.group, cfg.groups)
}

func (cfg *config) groupOpts() group.Opts {
	kind, _ := orbit.ParseSetKind(cfg.setKind)
	opts := group.Opts{
		Scratch: group.ScratchOpts{Kind: kind},
	}
	if cfg.collector != nil {
		opts.Metrics = cfg.collector
	}
	return opts
}

func (cfg *config) walkOpts() walker.Opts {
	opts := walker.Opts{
		Workers:   cfg.workers,
		SeqCutoff: cfg.seqCutoff,
	}
	if cfg.collector != nil {
		opts.Metrics = cfg.collector
	}
	return opts
}

// newRunner builds the selected group in the selected layout.
func (cfg *config) newRunner() (runner, error) {
	def, err := cfg.lookupDef()
	if err != nil {
		return nil, err
	}

	switch cfg.layout {
	case "generic":
		if def.Degree < 0 || def.Degree > orbit.MaxWidth {
			return nil, errors.Wrapf(orbit.ErrBadWidth, "group %q: degree %d", def.Name, def.Degree)
		}
		s, err := newSession(cfg, perm.GenericZero(def.Degree), def)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := newSession(cfg, perm.Packed16{}, def)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
