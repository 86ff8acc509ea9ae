// Package posy contains a CLI-driven engine for taking in flower stand data
// and assembling completed bouquets from it.
package posy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/posy/internal/input"
	"github.com/dekarrin/posy/internal/perrors"
	"github.com/dekarrin/posy/internal/psf"
	"github.com/dekarrin/posy/internal/stand"
	"github.com/dekarrin/posy/internal/syntax"
	"github.com/dekarrin/rosed"
)

const defaultOutputWidth = 80

// Options controls where an Engine takes its intake from and what it does
// with it.
type Options struct {
	// InputFile is a path to an intake file, either a PSF bundle or plain
	// text. If empty, intake is read from the Engine's input stream.
	InputFile string

	// ForceDirect forces direct reads of the input stream even when it is
	// attached to a terminal.
	ForceDirect bool

	// UseTestData loads the built-in sample intake instead of reading any
	// input.
	UseTestData bool

	// PrintTokens makes Run scan each input line and emit its token stream
	// instead of assembling bouquets.
	PrintTokens bool

	// PrintTree makes Run parse each input line and emit its syntax tree
	// instead of assembling bouquets.
	PrintTree bool

	// Width is the column width output is wrapped to. If it is less than 1,
	// a default of 80 is used.
	Width int
}

// Engine contains the things needed to read intake from an input stream and
// write assembled bouquets to an output stream.
type Engine struct {
	opts    Options
	in      input.Reader
	out     *bufio.Writer
	running bool
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered writer on the output stream.
//
// If nil is given for the input stream, input is read from stdin. If nil is
// given for the output stream, a bufio.Writer is opened on stdout. When the
// streams are the standard ones and intake will come from the stream,
// readline-based interactive input is used unless opts.ForceDirect is set.
func New(inputStream io.Reader, outputStream io.Writer, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if opts.Width < 1 {
		opts.Width = defaultOutputWidth
	}

	eng := &Engine{
		opts: opts,
		out:  bufio.NewWriter(outputStream),
	}

	readsStream := opts.InputFile == "" && !opts.UseTestData
	useReadline := readsStream && !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout

	var err error
	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close line reader: %w", err)
	}

	return nil
}

// Run performs one full pass over the intake. In token or tree mode each
// input line is scanned or parsed and its tokens or syntax tree are written
// to the output stream. In the default mode the intake is parsed, the
// designs are weighed and sorted, bouquets are assembled, and the completed
// ones are written under a result banner.
//
// Scanning and parsing failures are returned as *syntax.SyntaxError; callers
// can pull one out with errors.As to render the full positioned message.
func (eng *Engine) Run() error {
	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	if eng.opts.PrintTokens || eng.opts.PrintTree {
		return eng.runSyntax()
	}
	return eng.runIntake()
}

// runSyntax handles token and tree mode, which treat every non-blank input
// line as one value to scan or parse.
func (eng *Engine) runSyntax() error {
	lines, err := eng.rawLines()
	if err != nil {
		return err
	}

	for _, line := range lines {
		if eng.opts.PrintTokens {
			ts, err := syntax.Lex(line)
			if err != nil {
				return err
			}
			for _, tok := range ts.Tokens() {
				if err := eng.writeString(tok.String() + "\n"); err != nil {
					return err
				}
			}
		} else {
			node, err := syntax.ParseText(line)
			if err != nil {
				return err
			}
			if err := eng.writeString(node.String() + "\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

func (eng *Engine) runIntake() error {
	var intake stand.Intake
	var err error

	switch {
	case eng.opts.UseTestData:
		intake = testIntake()
	case eng.opts.InputFile != "":
		intake, err = loadIntakeFile(eng.opts.InputFile)
	default:
		intake, err = eng.readIntake()
	}
	if err != nil {
		return err
	}

	asm := stand.NewAssembler(intake)
	asm.Weigh()
	asm.Sort()
	asm.Assemble()

	if err := eng.writeString("\nResult:\n"); err != nil {
		return err
	}
	for _, d := range asm.Completed() {
		line := rosed.Edit(d.String()).Wrap(eng.opts.Width).String()
		if err := eng.writeString(line + "\n"); err != nil {
			return err
		}
	}

	return nil
}

// rawLines collects the non-blank input lines for token and tree mode from
// whichever source the options select.
func (eng *Engine) rawLines() ([]string, error) {
	if eng.opts.UseTestData {
		lines := make([]string, 0, len(testDesignLines)+len(testFlowerLines))
		lines = append(lines, testDesignLines...)
		lines = append(lines, testFlowerLines...)
		return lines, nil
	}

	if eng.opts.InputFile != "" {
		data, err := os.ReadFile(eng.opts.InputFile)
		if err != nil {
			return nil, perrors.WrapIntakef(err, "Could not read input file %q", eng.opts.InputFile)
		}
		var lines []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
		return lines, nil
	}

	var lines []string
	for {
		line, err := eng.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, fmt.Errorf("read input: %w", err)
		}
		lines = append(lines, line)
	}
}

// prompter is implemented by line readers whose prompt can be swapped while
// reading, such as the interactive readline-backed one.
type prompter interface {
	GetPrompt() string
	SetPrompt(p string)
}

// setPrompt updates the reader's prompt if the reader has one. It returns
// the prompt that was in place before, or "" if the reader is promptless.
func (eng *Engine) setPrompt(p string) string {
	pr, ok := eng.in.(prompter)
	if !ok {
		return ""
	}
	old := pr.GetPrompt()
	pr.SetPrompt(p)
	return old
}

// readIntake reads intake from the input stream: a section of design lines,
// then a blank line, then a section of flower lines ended by a blank line or
// end of input. An interactive reader gets a per-section prompt, restored
// when intake is done.
func (eng *Engine) readIntake() (stand.Intake, error) {
	var intake stand.Intake

	eng.in.AllowBlank(true)
	defer eng.in.AllowBlank(false)

	oldPrompt := eng.setPrompt("designs> ")
	defer eng.setPrompt(oldPrompt)

	if err := eng.writeString("Please enter bouquet designs:\n"); err != nil {
		return intake, err
	}

	atEOF := false
	for {
		line, err := eng.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				atEOF = true
				break
			}
			return intake, fmt.Errorf("read design line: %w", err)
		}
		if line == "" {
			break
		}

		d, err := stand.ParseDesign(line)
		if err != nil {
			return intake, err
		}
		intake.Designs = append(intake.Designs, d)
	}

	if atEOF {
		return intake, nil
	}

	eng.setPrompt("flowers> ")

	if err := eng.writeString("Please enter flowers:\n"); err != nil {
		return intake, err
	}

	for {
		line, err := eng.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return intake, fmt.Errorf("read flower line: %w", err)
		}
		if line == "" {
			break
		}

		lot, err := stand.ParseFlower(line)
		if err != nil {
			return intake, err
		}
		intake.Flowers = append(intake.Flowers, lot)
	}

	return intake, nil
}

// loadIntakeFile loads intake from the file at path. The file may be a PSF
// bundle or plain text; plain text holds one design per line, then a blank
// line, then one flower per line.
func loadIntakeFile(path string) (stand.Intake, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return stand.Intake{}, perrors.WrapIntakef(err, "Could not read intake file %q", path)
	}

	if psf.IsBundle(data) {
		intake, err := psf.LoadBundle(path)
		if err != nil {
			return stand.Intake{}, perrors.WrapIntake(err, fmt.Sprintf("%q is not a valid stand file", path), "")
		}
		return intake, nil
	}

	intake, err := parseIntakeText(string(data))
	if err != nil {
		return stand.Intake{}, err
	}
	return intake, nil
}

// parseIntakeText parses plain-text intake: design lines up to the first
// blank line after them, then flower lines. Blank lines before the first
// design are skipped.
func parseIntakeText(text string) (stand.Intake, error) {
	var intake stand.Intake

	inFlowers := false
	for i, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			if len(intake.Designs) > 0 {
				inFlowers = true
			}
			continue
		}

		if !inFlowers {
			d, err := stand.ParseDesign(line)
			if err != nil {
				return intake, fmt.Errorf("line %d: %w", i+1, err)
			}
			intake.Designs = append(intake.Designs, d)
		} else {
			lot, err := stand.ParseFlower(line)
			if err != nil {
				return intake, fmt.Errorf("line %d: %w", i+1, err)
			}
			intake.Flowers = append(intake.Flowers, lot)
		}
	}

	return intake, nil
}

func (eng *Engine) writeString(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

// built-in sample intake used when Options.UseTestData is set.
var (
	testDesignLines = []string{
		"AL10a15b5c30",
		"AS10a10b25",
		"BL15b1c21",
		"BS10b5c16",
		"CL20a15c45",
		"DL20b28",
	}
	testFlowerLines = []string{
		"10aL",
		"10bL",
		"10cL",
		"10aS",
		"10bS",
		"10cS",
	}
)

func testIntake() stand.Intake {
	var intake stand.Intake
	for _, line := range testDesignLines {
		d, err := stand.ParseDesign(line)
		if err != nil {
			// should never happen; the lines above are constants
			panic(fmt.Sprintf("built-in test design %q does not parse: %v", line, err))
		}
		intake.Designs = append(intake.Designs, d)
	}
	for _, line := range testFlowerLines {
		lot, err := stand.ParseFlower(line)
		if err != nil {
			// should never happen; the lines above are constants
			panic(fmt.Sprintf("built-in test flower %q does not parse: %v", line, err))
		}
		intake.Flowers = append(intake.Flowers, lot)
	}
	return intake
}
