package main

import (
	"fmt"

	"github.com/grovekit/grove/treediff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	from, err := getTreeFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	to, err := getTreeFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	rep := treediff.Diff(from, to)
	if rep.Empty() {
		return nil
	}
	if !cfg.Quiet {
		if _, err := fmt.Fprintln(cc.Out, rep); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}
