package main

import (
	"fmt"

	"github.com/fatih/color"
)

type sprintf = func(format string, a ...any) string

// palette colors the parts of a result line.
type palette struct {
	Name sprintf
	Num  sprintf
	Bad  sprintf
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{Name: fmt.Sprintf, Num: fmt.Sprintf, Bad: fmt.Sprintf}
	}
	name := color.New(color.FgCyan)
	num := color.RGB(128, 216, 236)
	bad := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{name, num, bad} {
		// The color package disables itself when stdout is not a terminal,
		// but -color asks for color regardless.
		c.EnableColor()
	}
	return palette{
		Name: name.SprintfFunc(),
		Num:  num.SprintfFunc(),
		Bad:  bad.SprintfFunc(),
	}
}
