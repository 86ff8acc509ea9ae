package posy

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dekarrin/posy/internal/syntax"
	"github.com/stretchr/testify/assert"
)

// runEngine runs one full engine pass over the given input and returns the
// output and the error from Run.
func runEngine(t *testing.T, input string, opts Options) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	eng, err := New(strings.NewReader(input), out, opts)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	defer eng.Close()

	runErr := eng.Run()
	return out.String(), runErr
}

func Test_Run_testData(t *testing.T) {
	assert := assert.New(t)

	// of the built-in designs only AS10a10b25 survives weighing against the
	// sample pool; it fills its demands and tops up with 5 c's
	out, err := runEngine(t, "", Options{UseTestData: true})

	assert.NoError(err)
	assert.Equal("\nResult:\nAS10a10b5c\n", out)
}

func Test_Run_streamIntake(t *testing.T) {
	assert := assert.New(t)

	out, err := runEngine(t, "AL2a3\n\n2aL\nbL\n", Options{})

	assert.NoError(err)
	expect := "Please enter bouquet designs:\n" +
		"Please enter flowers:\n" +
		"\nResult:\n" +
		"AL2a1b\n"
	assert.Equal(expect, out)
}

func Test_Run_streamIntake_eofEndsDesignSection(t *testing.T) {
	assert := assert.New(t)

	// no blank line and no flowers at all; nothing can be assembled
	out, err := runEngine(t, "AL2a3\n", Options{})

	assert.NoError(err)
	assert.Contains(out, "Result:\n")
	assert.NotContains(out, "AL2a")
}

func Test_Run_printTokens(t *testing.T) {
	assert := assert.New(t)

	out, err := runEngine(t, "(a, b)\n", Options{PrintTokens: true})

	assert.NoError(err)
	expect := `(LeftParen "(" @ 1:1)
(Identifier "a" @ 1:2)
(Comma "," @ 1:3)
(Whitespace " " @ 1:4)
(Identifier "b" @ 1:5)
(RightParen ")" @ 1:6)
(EndOfText @ 1:7)
`
	assert.Equal(expect, out)
}

func Test_Run_printTree(t *testing.T) {
	assert := assert.New(t)

	out, err := runEngine(t, "(a, b)\n", Options{PrintTree: true})

	assert.NoError(err)
	expect := `( LIST )
  |-E0: (IDENT "a")
  \-E1: (IDENT "b")
`
	assert.Equal(expect, out)
}

func Test_Run_syntaxErrors(t *testing.T) {
	assert := assert.New(t)

	t.Run("bad character in intake", func(t *testing.T) {
		_, err := runEngine(t, "a $ b\n", Options{})

		var synErr *syntax.SyntaxError
		if !assert.ErrorAs(err, &synErr) {
			return
		}
		assert.Equal(syntax.ErrUnexpectedChar, synErr.Kind())
		assert.Equal(1, synErr.Line())
		assert.Equal(3, synErr.Position())
	})

	t.Run("unclosed list in tree mode", func(t *testing.T) {
		_, err := runEngine(t, "(a, b\n", Options{PrintTree: true})

		var synErr *syntax.SyntaxError
		if !assert.ErrorAs(err, &synErr) {
			return
		}
		assert.Equal(syntax.ErrUnexpectedEOF, synErr.Kind())
		assert.Equal(1, synErr.Line())
		assert.Equal(6, synErr.Position())
	})
}

func Test_Run_fileIntake(t *testing.T) {
	writeFile := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}

	t.Run("plain text file", func(t *testing.T) {
		assert := assert.New(t)

		path := writeFile(t, "intake.txt", "AL2a3\n\n2aL\nbL\n")

		out, err := runEngine(t, "", Options{InputFile: path})

		assert.NoError(err)
		assert.Equal("\nResult:\nAL2a1b\n", out)
	})

	t.Run("psf stand file", func(t *testing.T) {
		assert := assert.New(t)

		path := writeFile(t, "intake.psf", `format = "POSY"
type = "STAND"

[stand]
designs = ["AL2a3"]
flowers = ["2aL", "bL"]
`)

		out, err := runEngine(t, "", Options{InputFile: path})

		assert.NoError(err)
		assert.Equal("\nResult:\nAL2a1b\n", out)
	})

	t.Run("missing file", func(t *testing.T) {
		assert := assert.New(t)

		_, err := runEngine(t, "", Options{InputFile: filepath.Join(t.TempDir(), "no-such.txt")})

		assert.Error(err)
		var synErr *syntax.SyntaxError
		assert.False(errors.As(err, &synErr))
	})

	t.Run("bad design line reports source line number", func(t *testing.T) {
		assert := assert.New(t)

		path := writeFile(t, "intake.txt", "AL2a3\nXQ\n\naL\n")

		_, err := runEngine(t, "", Options{InputFile: path})

		if !assert.Error(err) {
			return
		}
		assert.Contains(err.Error(), "line 2")
	})
}

func Test_Run_printTokens_fromFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "lines.txt")
	if err := os.WriteFile(path, []byte("ab\n12\n"), 0o644); err != nil {
		t.Fatalf("writing lines.txt: %v", err)
	}

	out, err := runEngine(t, "", Options{InputFile: path, PrintTokens: true})

	assert.NoError(err)
	expect := `(Identifier "ab" @ 1:1)
(EndOfText @ 1:3)
(Number "12" @ 1:1)
(EndOfText @ 1:3)
`
	assert.Equal(expect, out)
}

// promptRecorder implements input.Reader plus prompt get/set, recording
// every prompt swap the way an interactive reader would see them.
type promptRecorder struct {
	lines   []string
	next    int
	prompt  string
	prompts []string
}

func (pr *promptRecorder) ReadLine() (string, error) {
	if pr.next >= len(pr.lines) {
		return "", io.EOF
	}
	line := pr.lines[pr.next]
	pr.next++
	return line, nil
}

func (pr *promptRecorder) AllowBlank(allow bool) {}
func (pr *promptRecorder) Close() error          { return nil }

func (pr *promptRecorder) GetPrompt() string { return pr.prompt }

func (pr *promptRecorder) SetPrompt(p string) {
	pr.prompt = p
	pr.prompts = append(pr.prompts, p)
}

func Test_Run_promptSwapsPerSection(t *testing.T) {
	assert := assert.New(t)

	rec := &promptRecorder{
		prompt: "> ",
		lines:  []string{"AL2a3", "", "2aL", "bL"},
	}
	out := &bytes.Buffer{}
	eng := &Engine{
		opts: Options{Width: defaultOutputWidth},
		in:   rec,
		out:  bufio.NewWriter(out),
	}

	assert.NoError(eng.Run())

	// one prompt per section, then the original prompt restored
	assert.Equal([]string{"designs> ", "flowers> ", "> "}, rec.prompts)
	assert.Contains(out.String(), "AL2a1b")
}

func Test_Close(t *testing.T) {
	assert := assert.New(t)

	eng, err := New(strings.NewReader(""), &bytes.Buffer{}, Options{UseTestData: true})
	if !assert.NoError(err) {
		return
	}

	assert.NoError(eng.Close())
}
