package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/zephyrtronium/bisect"
)

func solve(cfg *SolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Solve.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}
	e, err := formulaOpt(cfg.Formula)
	if err != nil {
		return err
	}
	a, err := floatOpt("a", cfg.A, required)
	if err != nil {
		return err
	}
	b, err := floatOpt("b", cfg.B, required)
	if err != nil {
		return err
	}
	eps, err := floatOpt("eps", cfg.Eps, defaultEps)
	if err != nil {
		return err
	}
	r, err := bisect.Solve(e.Func(), a, b, eps, cfg.MainConfig.solveOpts(cfg.Classic, cfg.Max)...)
	if err != nil {
		return fmt.Errorf("solving %s on [%g, %g]: %w", e.Source(), a, b, err)
	}
	writeResult(cc.Out, cfg.MainConfig.Colors, e.Source(), r)
	return nil
}

func scan(cfg *ScanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Scan.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}
	e, err := formulaOpt(cfg.Formula)
	if err != nil {
		return err
	}
	start, err := floatOpt("start", cfg.Start, required)
	if err != nil {
		return err
	}
	end, err := floatOpt("end", cfg.End, required)
	if err != nil {
		return err
	}
	step, err := floatOpt("step", cfg.Step, required)
	if err != nil {
		return err
	}
	eps, err := floatOpt("eps", cfg.Eps, defaultEps)
	if err != nil {
		return err
	}
	p := cfg.MainConfig.Colors
	br, err := bisect.ScanForBracket(e.Func(), start, end, step)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", e.Source(), err)
	}
	if !br.Found {
		fmt.Fprintf(cc.Out, "%s: %s\n", p.Name("%s", e.Source()), p.Bad("no sign change on [%g, %g] with step %g", start, end, step))
		return nil
	}
	fmt.Fprintf(cc.Out, "%s: bracket [%s, %s]\n", p.Name("%s", e.Source()), p.Num("%g", br.Low), p.Num("%g", br.High))
	if !cfg.Solve {
		return nil
	}
	r, err := bisect.Solve(e.Func(), br.Low, br.High, eps, cfg.MainConfig.solveOpts(false, 0)...)
	if err != nil {
		return fmt.Errorf("solving %s on [%g, %g]: %w", e.Source(), br.Low, br.High, err)
	}
	writeResult(cc.Out, p, e.Source(), r)
	return nil
}

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	e, err := formulaOpt(cfg.Formula)
	if err != nil {
		return err
	}
	if len(args) == 0 && !cfg.Tree {
		return fmt.Errorf("%w: eval requires at least one value of x", cli.ErrUsage)
	}
	verb := cfg.Fmt
	if verb == "" {
		verb = "%g"
	}
	p := cfg.MainConfig.Colors
	if cfg.Tree {
		fmt.Fprintln(cc.Out, p.Name("%v", e))
	}
	for _, arg := range args {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", cli.ErrUsage, arg)
		}
		fmt.Fprintf(cc.Out, "f(%g) = %s\n", x, p.Num(verb, bisect.Evaluate(e, x)))
	}
	return nil
}

// formulaOpt parses the formula given with -f.
func formulaOpt(src string) (*bisect.Expr, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: -f is required", cli.ErrUsage)
	}
	e, err := bisect.ParseFormula(src)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", src, err)
	}
	return e, nil
}

// writeResult writes a single solver result as a line of text.
func writeResult(w io.Writer, p palette, label string, r bisect.Result) {
	fmt.Fprintf(w, "%s: x = %s, f(x) = %s, %d iterations\n",
		p.Name("%s", label), p.Num("%.17g", r.Root), p.Num("%g", r.Value), r.Iterations)
}
