package main

import (
	"fmt"

	"github.com/grovekit/grove"
	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/encode"

	"github.com/scott-cotton/cli"
)

func zeros(cfg *ZerosConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Zeros.Parse(cc, args)
	if err != nil {
		cfg.Zeros.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	dt := dense.Float64
	if cfg.DType != "" {
		if err := dt.UnmarshalText([]byte(cfg.DType)); err != nil {
			return fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: zeros takes one shapes file", cli.ErrUsage)
	}
	shapes, err := getTreeFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	res, err := grove.Zeros(shapes, dt)
	if err != nil {
		return fmt.Errorf("error building zeros: %w", err)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
