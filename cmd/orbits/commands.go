package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/orbit"
	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func depthArg(args []string) (int, error) {
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return 0, errors.Wrapf(orbit.ErrBadDepth, "%q", args[0])
	}
	return depth, nil
}

func newEnumCmd(cfg *config) *cobra.Command {
	var (
		maxPart int
		verify  bool
	)
	cmd := &cobra.Command{
		Use:   "enum DEPTH",
		Short: "Lists the canonical words of the given depth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, err := depthArg(args)
			if err != nil {
				return err
			}
			r, err := cfg.newRunner()
			if err != nil {
				return err
			}
			if maxPart < 0 {
				maxPart = depth
			}
			return r.enum(cmd.Context(), cmd.OutOrStdout(), depth, maxPart, verify)
		},
	}
	cmd.Flags().IntVar(&maxPart, "max-part", -1, "largest allowed entry (defaults to DEPTH)")
	cmd.Flags().BoolVar(&verify, "verify", false, "check every word is canonical and produced once")
	return cmd
}

func newCountCmd(cfg *config) *cobra.Command {
	var maxPart int
	cmd := &cobra.Command{
		Use:   "count DEPTH",
		Short: "Counts the canonical words of the given depth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, err := depthArg(args)
			if err != nil {
				return err
			}
			r, err := cfg.newRunner()
			if err != nil {
				return err
			}
			if maxPart < 0 {
				maxPart = depth
			}
			return r.count(cmd.Context(), cmd.OutOrStdout(), depth, maxPart)
		},
	}
	cmd.Flags().IntVar(&maxPart, "max-part", -1, "largest allowed entry (defaults to DEPTH)")
	return cmd
}

func newCanonCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "canon WORD",
		Short: "Prints the canonical form of a word such as [1,0,4]",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := cfg.newRunner()
			if err != nil {
				return err
			}
			return r.canon(cmd.OutOrStdout(), args[0])
		},
	}
}

func newEvalCmd(cfg *config) *cobra.Command {
	var countOnly bool
	cmd := &cobra.Command{
		Use:   "eval EVALUATION",
		Short: "Lists the canonical words in which symbol k occurs EVALUATION[k] times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := cfg.newRunner()
			if err != nil {
				return err
			}
			return r.eval(cmd.Context(), cmd.OutOrStdout(), args[0], countOnly)
		},
	}
	cmd.Flags().BoolVarP(&countOnly, "count", "c", false, "print only the number of words")
	return cmd
}

func newTimeCmd(cfg *config) *cobra.Command {
	var depths []int
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Times counting walks over a range of depths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, depth := range depths {
				if depth < 0 {
					return errors.Wrapf(orbit.ErrBadDepth, "%d", depth)
				}
			}
			r, err := cfg.newRunner()
			if err != nil {
				return err
			}
			return r.timeDepths(cmd.Context(), cmd.OutOrStdout(), depths)
		},
	}
	cmd.Flags().IntSliceVarP(&depths, "depth", "d", []int{0, 5, 10, 15, 20}, "depths to walk")
	return cmd
}

func newGroupsCmd() *cobra.Command {
	var asTOML bool
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Lists the built-in groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tables := group.Examples()
			if asTOML {
				defs := make([]group.Def, len(tables))
				for i, tb := range tables {
					defs[i] = tb.Def()
				}
				return toml.NewEncoder(out).Encode(map[string][]group.Def{"group": defs})
			}
			for _, tb := range tables {
				order := 1
				for _, level := range tb.Levels {
					order = orbit.MulSat(order, len(level), math.MaxInt)
				}
				fmt.Fprintf(out, "%-6s degree %2d  order %12s  %s\n", tb.Key, tb.Degree, humanize.Comma(int64(order)), tb.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as TOML group definitions (see --groups)")
	return cmd
}
