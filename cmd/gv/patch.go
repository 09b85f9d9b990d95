package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grovekit/grove"
	"github.com/grovekit/grove/encode"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a JSON patch, and a file to which to apply it", cli.ErrUsage)
	}
	patchDoc, err := readArg(cfg.String, cfg.File, cc, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	target, err := getTreeFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	res, err := grove.PatchJSON(target, patchDoc)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", args[1], err)
	}
	mCfg := cfg.MainConfig
	if err := encode.Encode(res, cc.Out, mCfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// readArg reads an argument that is a string literal by default, a
// file when -f is given, and explicitly a string under -s.
func readArg(s, f bool, cc *cli.Context, arg string) ([]byte, error) {
	if s == f && s {
		return nil, fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	var r io.Reader
	switch {
	case f:
		if arg == "-" {
			r = cc.In
			break
		}
		file, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer file.Close()
		r = file
	default:
		r = strings.NewReader(arg)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading patch: %w", err)
	}
	return d, nil
}
