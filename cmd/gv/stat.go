package main

import (
	"fmt"

	"github.com/grovekit/grove"
	"github.com/grovekit/grove/encode"

	"github.com/scott-cotton/cli"
)

func stat(cfg *StatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stat.Parse(cc, args)
	if err != nil {
		cfg.Stat.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	n := len(args)
	for i, arg := range args {
		t, err := getTreeFile(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if _, err := fmt.Fprint(cc.Out, encode.Outline(t)); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cc.Out, "%d leaves, %d elements\n",
			len(t.Leaves()), grove.Size(t))
		if err != nil {
			return err
		}
		if i < n-1 {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
	}
	return nil
}
