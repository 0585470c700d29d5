package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	_ "github.com/2x3systems/orbits/py/pyorbit"
	_ "github.com/go-python/gpython/stdlib"
)

func newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script [FILE]",
		Short: "Runs a Python script with the orbits module (or a REPL with no FILE)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return runScript(pathname)
		},
	}
}

func runScript(pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())

	var err error
	if len(pathname) == 0 {
		cli.RunREPL(repl.New(ctx))

	} else {
		startTime := time.Now()
		klog.V(1).Infof("executing %q", pathname)

		_, err = py.RunFile(ctx, scriptPath(pathname), py.CompileOpts{}, nil)
		if err == nil {
			klog.V(1).Infof("execution complete: %v", time.Since(startTime))
		}
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		return errors.Wrapf(err, "script %q", pathname)
	}
	return nil
}

// scriptPath returns pathname relative to the working directory; gpython joins run paths onto its sys paths.
func scriptPath(pathname string) string {
	if !filepath.IsAbs(pathname) {
		return pathname
	}
	wd, err := os.Getwd()
	if err != nil {
		return pathname
	}
	rel, err := filepath.Rel(wd, pathname)
	if err != nil {
		return pathname
	}
	return filepath.ToSlash(rel)
}
