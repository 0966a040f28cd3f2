package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/bisect"
)

type MainConfig struct {
	V       bool `cli:"name=v aliases=verbose desc='log each bisection step to stderr'"`
	NoColor bool `cli:"name=no-color desc='never color output'"`
	Color   bool `cli:"name=color desc='color output even if it is not a terminal'"`

	Log    *slog.Logger
	Colors palette

	Main *cli.Command
}

// setup prepares the logger and colors once the root options are parsed.
func (cfg *MainConfig) setup(w io.Writer) {
	cfg.Log = newLogger(os.Stderr, cfg.V)
	cfg.Colors = newPalette(cfg.colorEnabled(w))
}

func (cfg *MainConfig) colorEnabled(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// solveOpts translates solver options from the command line.
func (cfg *MainConfig) solveOpts(classic bool, maxIter int) []bisect.SolveOption {
	opts := []bisect.SolveOption{bisect.Logger(cfg.Log), bisect.MaxIter(maxIter)}
	if classic {
		opts = append(opts, bisect.Classic())
	}
	return opts
}

type SolveConfig struct {
	MainConfig *MainConfig

	Formula string `cli:"name=f aliases=formula desc='formula in x'"`
	A       string `cli:"name=a desc='left end of the interval'"`
	B       string `cli:"name=b desc='right end of the interval'"`
	Eps     string `cli:"name=eps desc='precision (default 1e-6)'"`
	Classic bool   `cli:"name=classic desc='use the classic bisection variant'"`
	Max     int    `cli:"name=max desc='iteration cap (default 100, or 1000 with -classic)'"`

	Solve *cli.Command
}

type ScanConfig struct {
	MainConfig *MainConfig

	Formula string `cli:"name=f aliases=formula desc='formula in x'"`
	Start   string `cli:"name=start desc='first sample point'"`
	End     string `cli:"name=end desc='last sample point'"`
	Step    string `cli:"name=step desc='distance between sample points'"`
	Solve   bool   `cli:"name=solve desc='solve on the bracket found'"`
	Eps     string `cli:"name=eps desc='precision for -solve (default 1e-6)'"`

	Scan *cli.Command
}

type EvalConfig struct {
	MainConfig *MainConfig

	Formula string `cli:"name=f aliases=formula desc='formula in x'"`
	Tree    bool   `cli:"name=tree desc='print the parsed formula'"`
	Fmt     string `cli:"name=fmt desc='result formatting verb (default %g)'"`

	Eval *cli.Command
}

type BatchConfig struct {
	MainConfig *MainConfig

	Out string `cli:"name=o desc='output format: text or yaml (default text)'"`

	Batch *cli.Command
}

// defaultEps is the precision used when none is given.
const defaultEps = 1e-6

// floatOpt parses the value of a numeric option. An empty value yields def,
// or a usage error if def is NaN.
func floatOpt(name, v string, def float64) (float64, error) {
	if v == "" {
		if math.IsNaN(def) {
			return 0, fmt.Errorf("%w: -%s is required", cli.ErrUsage, name)
		}
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: -%s: %q is not a number", cli.ErrUsage, name, v)
	}
	return f, nil
}

// required is the default for floatOpt when an option has no default.
var required = math.NaN()
