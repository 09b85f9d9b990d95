package main

import (
	"github.com/grovekit/grove/eval"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: yaml/y, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: yaml/y, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "gv").
		WithSynopsis("gv [opts] command [opts]").
		WithDescription("gv is a tool for working with grove trees of numeric arrays.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gvMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			CalcCommand(cfg),
			EvalCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			StatCommand(cfg),
			ZerosCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view grove files, normalised and in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <treepath> [files]").
		WithDescription("get subtrees or array elements from files").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("set").
		WithAliases("s", "se").
		WithSynopsis("set <treepath> <value> [files]").
		WithDescription("set subtrees or array elements in files").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func CalcCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CalcConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("calc").
		WithAliases("c", "ca").
		WithSynopsis("calc <op> [args]").
		WithDescription(calcDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return calc(cfg, cc, args)
		})
	cfg.Calc = cmd
	return cmd
}

const calcDescription = `calc applies an operation elementwise or as a reduction.

Arguments after the operation name are tree files, "-" for stdin, or
scalar literals.  Elementwise operations broadcast scalars against
trees and require trees to share structure.  Reductions take a single
tree and reduce over leaf axes given with -axis.

Examples

  gv calc add a.yaml b.yaml
  gv calc mul a.yaml 2
  gv calc sum -axis 0 a.yaml
  gv calc -l`

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg, Env: eval.Env{}}
	cmd := cli.NewCommand("eval").
		WithAliases("e", "ev").
		WithSynopsis("eval [-e name=val [ -e name2=val2 ]...] <expr> [files]").
		WithDescription("evaluate an expression over every leaf element, bound to x").
		WithOpts(&cli.Opt{
			Name: "e",
			Type: cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(name=val)"),
		}).
		WithRun(func(cc *cli.Context, args []string) error {
			return evalCmd(cfg, cc, args)
		})
	cfg.Eval = cmd
	return cmd
}

func envOptTypeFunc(env eval.Env) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff a b").
		WithDescription("diff grove tree documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <jsonpatch> [files]").
		WithDescription("apply an RFC 6902 JSON patch to grove tree documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func StatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StatConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("stat").
		WithAliases("st").
		WithSynopsis("stat [files]").
		WithDescription("outline tree structure with leaf shapes, dtypes and totals").
		WithRun(func(cc *cli.Context, args []string) error {
			return stat(cfg, cc, args)
		})
	cfg.Stat = cmd
	return cmd
}

func ZerosCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ZerosConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("zeros").
		WithAliases("z").
		WithSynopsis("zeros [-dtype d] [shapesfile]").
		WithDescription("build a zeroed tree from a tree of leaf shapes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return zeros(cfg, cc, args)
		})
	cfg.Zeros = cmd
	return cmd
}
