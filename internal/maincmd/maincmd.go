// Package maincmd implements the command-line interface described in §6:
// flag parsing, file handling and wiring of the loader and machine packages,
// returning the classified process exit code.
package maincmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/jkopecky/ipp19exec/lang/ipperr"
	"github.com/jkopecky/ipp19exec/lang/loader"
	"github.com/jkopecky/ipp19exec/lang/machine"
)

const binName = "ipp19exec"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [--source=PATH] [--input=PATH] [--stats=PATH [--insts] [--vars]]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [--source=PATH] [--input=PATH] [--stats=PATH [--insts] [--vars]]
       %[1]s -h|--help

Interpreter for IPPcode19, a three-address XML intermediate code.

At least one of --source or --input must be given; whichever is omitted is
read from standard input instead. --source supplies the XML program,
--input supplies the line-delimited data stream consumed by READ.

Valid flag options are:
       --source=PATH             Read the XML program from PATH (default:
                                  standard input).
       --input=PATH               Read READ's input stream from PATH
                                  (default: standard input).
       --stats=PATH                Write runtime statistics to PATH after
                                  execution, alongside --insts/--vars.
       --insts                    Include the executed instruction count
                                  in the --stats report.
       --vars                     Include the peak global variable count
                                  in the --stats report.
       -h --help                  Show this help and exit.
`, binName)
)

// Cmd is the process entry point's command, matching the shape of mainer's
// Cmd convention: flag-tagged fields, Validate to check combinations, Main
// to parse and dispatch.
type Cmd struct {
	Help bool `flag:"h,help"`

	Source string `flag:"source"`
	Input  string `flag:"input"`

	Stats string `flag:"stats"`
	Insts bool   `flag:"insts"`
	Vars  bool   `flag:"vars"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(map[string]bool) {}

// Validate enforces the argument rules of §6: --help is exclusive of every
// other flag, and otherwise at least one of --source/--input is required.
func (c *Cmd) Validate() error {
	if c.Help {
		if c.Source != "" || c.Input != "" || c.Stats != "" || c.Insts || c.Vars || len(c.args) != 0 {
			return fmt.Errorf("--help is exclusive of every other flag and argument")
		}
		return nil
	}
	if len(c.args) != 0 {
		return fmt.Errorf("unexpected argument: %s", c.args[0])
	}
	if c.Source == "" && c.Input == "" {
		return fmt.Errorf("at least one of --source or --input is required")
	}
	if (c.Insts || c.Vars) && c.Stats == "" {
		return fmt.Errorf("--insts and --vars require --stats")
	}
	return nil
}

// Main parses args and runs the interpreter, returning the classified exit
// code (§6, §7). Argument errors are reported as code 10 regardless of what
// mainer.Parser itself would assign, since the source and teacher wiring
// only distinguishes InvalidArgs/Failure/Success.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(ipperr.ArgumentMisuse)
	}

	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	}

	code, err := c.run(stdio)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return mainer.ExitCode(code)
}

func (c *Cmd) run(stdio mainer.Stdio) (int, error) {
	source, closeSource, err := c.openSource(stdio.Stdin)
	if err != nil {
		return ipperr.CannotOpenFile, err
	}
	defer closeSource()

	input, closeInput, err := c.openInput(stdio.Stdin)
	if err != nil {
		return ipperr.CannotOpenFile, err
	}
	defer closeInput()

	prog, err := loader.Load(source)
	if err != nil {
		return ipperr.CodeOf(err), err
	}

	ex := machine.NewExecutor(prog, input, stdio.Stdout, stdio.Stderr)
	if c.Stats != "" {
		ex.Stats = &machine.Stats{}
	}

	code, err := ex.Run()
	if err != nil {
		return code, err
	}

	if c.Stats != "" {
		if werr := c.writeStats(ex); werr != nil {
			return ipperr.CannotOpenFile, werr
		}
	}
	return code, nil
}

func (c *Cmd) openSource(stdin io.Reader) (io.Reader, func(), error) {
	if c.Source == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(c.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open source file %s: %w", c.Source, err)
	}
	return f, func() { f.Close() }, nil
}

func (c *Cmd) openInput(stdin io.Reader) (io.Reader, func(), error) {
	if c.Input == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(c.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open input file %s: %w", c.Input, err)
	}
	return f, func() { f.Close() }, nil
}

func (c *Cmd) writeStats(ex *machine.Executor) error {
	f, err := os.Create(c.Stats)
	if err != nil {
		return fmt.Errorf("cannot create stats file %s: %w", c.Stats, err)
	}
	defer f.Close()

	if c.Insts {
		fmt.Fprintln(f, ex.Stats.Instructions)
	}
	if c.Vars {
		fmt.Fprintln(f, ex.Stats.MaxVars())
	}
	return nil
}
