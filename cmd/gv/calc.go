package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grovekit/grove/apply"
	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/encode"
	"github.com/grovekit/grove/tree"

	"github.com/scott-cotton/cli"
)

func calc(cfg *CalcConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Calc.Parse(cc, args)
	if err != nil {
		cfg.Calc.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.List {
		fmt.Fprintf(cc.Out, "available operations:\n")
		for _, s := range apply.Symbols() {
			fmt.Fprintf(cc.Out, "\t- %s\n", s)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: calc requires an operation, see calc -l", cli.ErrUsage)
	}
	opName := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	opArgs := make([]any, 0, len(args))
	for _, arg := range args {
		v, err := calcArg(cfg, cc, arg)
		if err != nil {
			return err
		}
		opArgs = append(opArgs, v)
	}
	kw, err := calcKW(cfg, opName)
	if err != nil {
		return err
	}
	res, err := apply.OpKW(opName, opArgs, kw)
	if err != nil {
		return fmt.Errorf("error applying %s: %w", opName, err)
	}
	node, err := resultNode(res)
	if err != nil {
		return fmt.Errorf("error building %s result: %w", opName, err)
	}
	mCfg := cfg.MainConfig
	if err := encode.Encode(node, cc.Out, mCfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// calcArg reads one operand. Numeric and boolean literals pass through
// as scalars, anything else names a tree file, with "-" for stdin.
func calcArg(cfg *CalcConfig, cc *cli.Context, arg string) (any, error) {
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return f, nil
	}
	if b, err := strconv.ParseBool(arg); err == nil {
		return b, nil
	}
	t, err := getTreeFile(cc, arg, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return t, nil
}

func calcKW(cfg *CalcConfig, opName string) (map[string]any, error) {
	if cfg.Axis == "" {
		return nil, nil
	}
	parts := strings.Split(cfg.Axis, ",")
	axes := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: bad axis %q: %v", cli.ErrUsage, part, err)
		}
		axes = append(axes, n)
	}
	key := "axis"
	if opName == "transpose" {
		key = "axes"
	}
	return map[string]any{key: axes}, nil
}

func resultNode(v any) (*tree.Node, error) {
	switch x := v.(type) {
	case *tree.Node:
		return x, nil
	case *dense.Array:
		return tree.Leaf(x), nil
	default:
		a, err := dense.FromAny(v)
		if err != nil {
			return nil, err
		}
		return tree.Leaf(a), nil
	}
}
