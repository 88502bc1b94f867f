// twophase - command-line two-phase Rubik's Cube solver.
package main

import (
	"github.com/SeamusWaldron/twophase/internal/cli"
)

func main() {
	cli.Execute()
}
