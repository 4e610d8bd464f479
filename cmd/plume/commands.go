package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &Config{}
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
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: yaml/y, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtOpt, "(format)"),
		},
		&cli.Opt{
			Name:        "i",
			Aliases:     []string{"indent"},
			Description: "indent width",
			Type:        cli.NamedFuncOpt(cfg.indentOpt, "(width)"),
		},
		&cli.Opt{
			Name:        "s",
			Aliases:     []string{"set"},
			Description: "apply a manipulator globally, repeatable: flow, hex, single-quoted, ...",
			Type:        cli.NamedFuncOpt(cfg.setOpt, "(manip)"),
		},
		&cli.Opt{
			Name:        "e",
			Aliases:     []string{"expr"},
			Description: "transform each document with an expr program (env var: doc)",
			Type:        cli.NamedFuncOpt(cfg.exprOpt, "(program)"),
		},
		&cli.Opt{
			Name:        "patch",
			Description: "apply an RFC 6902 JSON patch file to each document",
			Type:        cli.NamedFuncOpt(cfg.patchOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "plume").
		WithSynopsis("plume [opts] [files]").
		WithDescription("plume reformats yaml and json documents with scoped formatting settings.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}
