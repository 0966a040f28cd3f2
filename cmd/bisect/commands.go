package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	return mainCommand(&MainConfig{})
}

func mainCommand(cfg *MainConfig) *cli.Command {
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "bisect").
		WithSynopsis("bisect [opts] command [opts]").
		WithDescription("bisect finds real roots of formulas in x by bisection.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bisectMain(cfg, cc, args)
		}).
		WithSubs(
			SolveCommand(cfg),
			ScanCommand(cfg),
			EvalCommand(cfg),
			BatchCommand(cfg))
}

func bisectMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	sub, err := runSub(cfg, cc, args)
	if sub != nil && errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// runSub parses the root options and runs the subcommand they name. The
// returned command is nil if the error happened before one was found.
func runSub(cfg *MainConfig, cc *cli.Context, args []string) (*cli.Command, error) {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return nil, err
	}
	if cfg.Color && cfg.NoColor {
		return nil, fmt.Errorf("%w: must specify at most one of -color -no-color", cli.ErrUsage)
	}
	if len(args) == 0 {
		return nil, cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return nil, fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	cfg.setup(cc.Out)
	return sub, sub.Run(cc, args[1:])
}

func SolveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SolveConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Solve, "solve").
		WithAliases("s").
		WithSynopsis("solve -f formula -a a -b b [-eps eps] [-classic] [-max n]").
		WithDescription("find a root of a formula on an interval where it changes sign").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return solve(cfg, cc, args)
		})
}

func ScanCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ScanConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Scan, "scan").
		WithSynopsis("scan -f formula -start s -end e -step h [-solve [-eps eps]]").
		WithDescription("sample a formula to find an interval where it changes sign").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scan(cfg, cc, args)
		})
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Eval, "eval").
		WithAliases("e").
		WithSynopsis("eval -f formula [-tree] [-fmt verb] x...").
		WithDescription("evaluate a formula at each given x").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
}

func BatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Batch, "batch").
		WithAliases("b").
		WithSynopsis("batch [-o text|yaml] [files]").
		WithDescription("solve each problem listed in YAML files (default stdin)").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return batch(cfg, cc, args)
		})
}
