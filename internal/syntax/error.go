package syntax

import "fmt"

// file error.go contains errors produced while lexing and parsing posy
// intake text.

// ErrorKind classifies what went wrong during lexing or parsing.
type ErrorKind int

const (
	// ErrUnexpectedChar is a lexing failure caused by a character that is not
	// part of the input alphabet.
	ErrUnexpectedChar ErrorKind = iota

	// ErrUnexpectedToken is a parsing failure caused by a token that the
	// grammar does not allow at its position.
	ErrUnexpectedToken

	// ErrUnexpectedEOF is a parsing failure caused by the input ending while
	// the grammar still expected more.
	ErrUnexpectedEOF

	// ErrUnbalanced is a parsing failure caused by a delimiter with no
	// matching opener.
	ErrUnbalanced
)

// SyntaxError is an error encountered while lexing or parsing input text. It
// carries the position of the first failure and the offending source line so
// the error can be rendered with a cursor pointing at the exact problem.
type SyntaxError struct {
	kind ErrorKind

	sourceLine string
	source     string

	// line that error occured on, 1-indexed.
	line int

	// position in line of error, 1-indexed.
	pos int

	// byte offset of error in the complete input, 0-indexed.
	offset int

	message string
}

func (se *SyntaxError) Error() string {
	if se.line == 0 {
		return fmt.Sprintf("syntax error: %s", se.message)
	}

	return fmt.Sprintf("syntax error: around line %d, char %d: %s", se.line, se.pos, se.message)
}

// Kind returns the classification of the failure.
func (se *SyntaxError) Kind() ErrorKind {
	return se.kind
}

// Source returns the exact text of the specific source code that caused the
// issue. If no particular source was the cause (such as for unexpected EOF
// errors), this will return an empty string.
func (se *SyntaxError) Source() string {
	return se.source
}

// Line returns the line the error occured on. Lines are 1-indexed. This will
// return 0 if the line is not set.
func (se *SyntaxError) Line() int {
	return se.line
}

// Position returns the character position in the line that the error occured
// on. Character positions are 1-indexed. This will return 0 if the character
// position is not set.
func (se *SyntaxError) Position() int {
	return se.pos
}

// Offset returns the byte offset in the complete input that the error occured
// at. Offsets are 0-indexed.
func (se *SyntaxError) Offset() int {
	return se.offset
}

// FullMessage shows the complete message of the error string along with the
// offending line and a cursor to the problem position in a formatted way.
func (se *SyntaxError) FullMessage() string {
	errMsg := se.Error()

	if se.line != 0 {
		errMsg = se.SourceLineWithCursor() + "\n" + errMsg
	}

	return errMsg
}

// SourceLineWithCursor returns the source offending code on one line and
// directly under it a cursor showing where the error occured.
//
// Returns a blank string if no source line was provided for the error.
func (se *SyntaxError) SourceLineWithCursor() string {
	if se.sourceLine == "" {
		return ""
	}

	cursorLine := ""
	// pos will be 1-indexed.
	for i := 0; i < se.pos-1; i++ {
		cursorLine += " "
	}

	return se.sourceLine + "\n" + cursorLine + "^"
}

// NewError creates a SyntaxError of the given kind at an explicit position.
// Most errors should instead be created with ErrorFromToken so that position
// and source info are taken from the offending token.
func NewError(kind ErrorKind, msg string, pos Position, sourceLine, source string) *SyntaxError {
	return &SyntaxError{
		kind:       kind,
		message:    msg,
		sourceLine: sourceLine,
		source:     source,
		line:       pos.Line,
		pos:        pos.Col,
		offset:     pos.Offset,
	}
}

// ErrorFromToken creates a SyntaxError of the given kind positioned at the
// given token.
func ErrorFromToken(kind ErrorKind, msg string, tok Token) *SyntaxError {
	return &SyntaxError{
		kind:       kind,
		message:    msg,
		sourceLine: tok.FullLine,
		source:     tok.Lexeme,
		line:       tok.Pos.Line,
		pos:        tok.Pos.Col,
		offset:     tok.Pos.Offset,
	}
}
