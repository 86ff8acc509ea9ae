/*
Posy takes in flower stand data and assembles bouquets from it.

It reads bouquet designs and loose flowers from a file, from its standard
input, or from built-in sample data, then fills the designs from the flower
pool in order of scarcity weight and prints each completed bouquet. It can
instead print the token stream or syntax tree of each input line for
inspecting how the input scans and parses.

Usage:

	posy [flags]

The flags are:

	-v, --version
		Give the current version of Posy and then exit.

	-f, --file [FILE]
		Read intake from the provided file instead of from stdin. The file
		may be a PSF stand or manifest file, or plain text with one design
		per line, a blank line, and then one flower per line.

	-t, --test
		Use the built-in sample intake instead of reading input.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.

	--tokens
		Instead of assembling bouquets, print the token stream of every
		input line.

	--tree
		Instead of assembling bouquets, print the syntax tree of every input
		line.

	-w, --width [COLUMNS]
		Wrap output to the given number of columns. Defaults to 80.

When reading from stdin, designs are entered one per line; a blank line ends
the design section and starts the flower section, and a second blank line or
end of input ends intake. The completed bouquets are then printed under a
result banner.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dekarrin/posy"
	"github.com/dekarrin/posy/internal/perrors"
	"github.com/dekarrin/posy/internal/syntax"
	"github.com/dekarrin/posy/internal/version"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParseError indicates an unsuccessful program execution due to
	// intake that could not be scanned or parsed.
	ExitParseError

	// ExitInitError indicates an unsuccessful program execution due to an
	// invalid invocation or a problem initializing the engine or reading its
	// input.
	ExitInitError
)

var (
	returnCode = ExitSuccess

	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of Posy and then exit.")
	flagFile    = pflag.StringP("file", "f", "", "Read intake from the given file instead of from stdin.")
	flagTest    = pflag.BoolP("test", "t", false, "Use the built-in sample intake instead of reading input.")
	flagDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagTokens  = pflag.Bool("tokens", false, "Print the token stream of every input line instead of assembling bouquets.")
	flagTree    = pflag.Bool("tree", false, "Print the syntax tree of every input line instead of assembling bouquets.")
	flagWidth   = pflag.IntP("width", "w", 80, "Wrap output to the given number of columns.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}
	if *flagTokens && *flagTree {
		fmt.Fprintf(os.Stderr, "--tokens and --tree cannot both be given\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}
	if *flagFile != "" && *flagTest {
		fmt.Fprintf(os.Stderr, "--file and --test cannot both be given\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	eng, initErr := posy.New(os.Stdin, os.Stdout, posy.Options{
		InputFile:   *flagFile,
		ForceDirect: *flagDirect,
		UseTestData: *flagTest,
		PrintTokens: *flagTokens,
		PrintTree:   *flagTree,
		Width:       *flagWidth,
	})
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.Run(); err != nil {
		var synErr *syntax.SyntaxError
		if errors.As(err, &synErr) {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", synErr.FullMessage())
			returnCode = ExitParseError
			return
		}

		// intake errors with an operator message are I/O and file-level
		// problems; anything else is bad intake content
		var humanErr interface{ HumanMessage() string }
		if errors.As(err, &humanErr) {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", perrors.HumanMessage(err))
			returnCode = ExitInitError
			return
		}

		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitParseError
		return
	}
}
