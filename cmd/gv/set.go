package main

import (
	"fmt"

	"github.com/grovekit/grove/encode"
	"github.com/grovekit/grove/parse"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a tree path and a value", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	if path[0] != '$' {
		path = "$" + path
	}
	val, err := parse.ParseString(args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("%w: error decoding value %q: %w", cli.ErrUsage, args[1], err)
	}
	args = args[2:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	n := len(args)
	for i, arg := range args {
		target, err := getTreeFile(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if err := target.SetPath(path, val.Clone()); err != nil {
			return fmt.Errorf("error setting %s in %s: %w", path, arg, err)
		}
		if err := encode.Encode(target, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		if i < n-1 {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
	}
	return nil
}
