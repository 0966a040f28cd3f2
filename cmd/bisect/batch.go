package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/zephyrtronium/bisect"
)

// Problem is one entry of a batch file. Either A and B or Scan must be given.
type Problem struct {
	Name    string    `yaml:"name"`
	Formula string    `yaml:"formula"`
	A       *float64  `yaml:"a"`
	B       *float64  `yaml:"b"`
	Eps     float64   `yaml:"eps"`
	Classic bool      `yaml:"classic"`
	MaxIter int       `yaml:"maxIter"`
	Scan    *ScanSpec `yaml:"scan"`
}

// ScanSpec asks for the interval to be found by ScanForBracket.
type ScanSpec struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Step  float64 `yaml:"step"`
}

// Outcome is the result of one Problem.
type Outcome struct {
	Name       string   `yaml:"name"`
	Formula    string   `yaml:"formula"`
	A          *float64 `yaml:"a,omitempty"`
	B          *float64 `yaml:"b,omitempty"`
	Root       *float64 `yaml:"root,omitempty"`
	Value      *float64 `yaml:"value,omitempty"`
	Iterations int      `yaml:"iterations"`
	Error      string   `yaml:"error,omitempty"`
}

func batch(cfg *BatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Batch.Parse(cc, args)
	if err != nil {
		return err
	}
	switch cfg.Out {
	case "", "text", "yaml":
	default:
		return fmt.Errorf("%w: unknown output format %q", cli.ErrUsage, cfg.Out)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	var problems []Problem
	for _, name := range args {
		ps, err := readProblems(name)
		if err != nil {
			return err
		}
		problems = append(problems, ps...)
	}
	outs := runBatch(problems, cfg.MainConfig.Log)
	if cfg.Out == "yaml" {
		b, err := yaml.Marshal(outs)
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		if _, err := cc.Out.Write(b); err != nil {
			return err
		}
	} else {
		writeOutcomes(cc.Out, cfg.MainConfig.Colors, outs)
	}
	failed := 0
	for _, o := range outs {
		if o.Error != "" {
			failed++
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d problems failed", failed, len(outs))
	}
	return nil
}

// readProblems decodes a batch file. The name "-" means stdin.
func readProblems(name string) ([]Problem, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	return decodeProblems(name, b)
}

func decodeProblems(name string, b []byte) ([]Problem, error) {
	var ps []Problem
	if err := yaml.UnmarshalWithOptions(b, &ps, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return ps, nil
}

// runBatch solves each problem in order. A failed problem does not stop the
// rest; its error is recorded in its outcome.
func runBatch(problems []Problem, log *slog.Logger) []Outcome {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	outs := make([]Outcome, 0, len(problems))
	for i, p := range problems {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		o := Outcome{Name: name, Formula: p.Formula}
		if err := runProblem(&o, p, log.With("problem", name)); err != nil {
			o.Error = err.Error()
		}
		outs = append(outs, o)
	}
	return outs
}

func runProblem(o *Outcome, p Problem, log *slog.Logger) error {
	e, err := bisect.ParseFormula(p.Formula)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", p.Formula, err)
	}
	f := e.Func()
	var a, b float64
	switch {
	case p.Scan != nil:
		br, err := bisect.ScanForBracket(f, p.Scan.Start, p.Scan.End, p.Scan.Step)
		if err != nil {
			return err
		}
		if !br.Found {
			return fmt.Errorf("no sign change on [%g, %g] with step %g", p.Scan.Start, p.Scan.End, p.Scan.Step)
		}
		a, b = br.Low, br.High
	case p.A != nil && p.B != nil:
		a, b = *p.A, *p.B
	default:
		return fmt.Errorf("need either a and b or scan")
	}
	o.A, o.B = &a, &b
	eps := p.Eps
	if eps == 0 {
		eps = defaultEps
	}
	opts := []bisect.SolveOption{bisect.Logger(log), bisect.MaxIter(p.MaxIter)}
	if p.Classic {
		opts = append(opts, bisect.Classic())
	}
	r, err := bisect.Solve(f, a, b, eps, opts...)
	if err != nil {
		return err
	}
	o.Root, o.Value, o.Iterations = &r.Root, &r.Value, r.Iterations
	return nil
}

func writeOutcomes(w io.Writer, p palette, outs []Outcome) {
	for _, o := range outs {
		if o.Error != "" {
			fmt.Fprintf(w, "%s: %s\n", p.Name("%s", o.Name), p.Bad("%s", o.Error))
			continue
		}
		writeResult(w, p, o.Name, bisect.Result{Root: *o.Root, Value: *o.Value, Iterations: o.Iterations})
	}
}
