package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/jkopecky/ipp19exec/internal/maincmd"
)

func main() {
	var c maincmd.Cmd
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
