package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lex tokenizes the entire input. It either consumes every character of the
// input or fails with a *SyntaxError of kind ErrUnexpectedChar positioned at
// the first character that is not in the input alphabet; input is never
// silently truncated.
//
// Token positions in the returned stream are monotonically non-decreasing,
// and the concatenation of every produced lexeme (whitespace runs included)
// reconstructs the input exactly. The final token is always EndOfText,
// positioned just past the last character.
//
// Lex has no hidden state; the same input always produces the same stream,
// and concurrent calls are safe.
func Lex(input string) (*TokenStream, error) {
	sRunes := []rune(input)

	var tokens []Token

	curLine := 1
	curLinePos := 1
	curOffset := 0

	var curToken Token
	var sb strings.Builder

	type lexMode int

	const (
		lexDefault lexMode = iota
		lexIdent
		lexNumber
		lexSpace
	)

	mode := lexDefault

	currentFullLine := readFullLine(sRunes)
	flushCurrentPendingToken := func() {
		if sb.Len() > 0 {
			curToken.Lexeme = sb.String()
			sb.Reset()
			tokens = append(tokens, curToken)
			curToken = Token{}
		}
		mode = lexDefault
	}
	startToken := func(class Class) {
		curToken.Class = class
		curToken.Pos = Position{Line: curLine, Col: curLinePos, Offset: curOffset}
		curToken.FullLine = currentFullLine
	}

	for i := 0; i < len(sRunes); i++ {
		ch := sRunes[i]

		// continuation of a pending multi-char token?
		if mode == lexIdent && unicode.IsLetter(ch) {
			sb.WriteRune(ch)
		} else if mode == lexNumber && unicode.IsDigit(ch) {
			sb.WriteRune(ch)
		} else if mode == lexSpace && isSpaceChar(ch) {
			sb.WriteRune(ch)
		} else {
			flushCurrentPendingToken()

			switch {
			case unicode.IsLetter(ch):
				startToken(Identifier)
				mode = lexIdent
				sb.WriteRune(ch)
			case unicode.IsDigit(ch):
				startToken(Number)
				mode = lexNumber
				sb.WriteRune(ch)
			case isSpaceChar(ch):
				startToken(Whitespace)
				mode = lexSpace
				sb.WriteRune(ch)
			case ch == '(':
				startToken(LeftParen)
				sb.WriteRune(ch)
				flushCurrentPendingToken()
			case ch == ')':
				startToken(RightParen)
				sb.WriteRune(ch)
				flushCurrentPendingToken()
			case ch == ',':
				startToken(Comma)
				sb.WriteRune(ch)
				flushCurrentPendingToken()
			default:
				return nil, NewError(
					ErrUnexpectedChar,
					fmt.Sprintf("character %q is not allowed here", string(ch)),
					Position{Line: curLine, Col: curLinePos, Offset: curOffset},
					currentFullLine,
					string(ch),
				)
			}
		}

		curOffset += utf8.RuneLen(ch)
		curLinePos++
		if ch == '\n' {
			curLine++
			curLinePos = 1
			currentFullLine = readFullLine(sRunes[i+1:])
		}
	}

	// do we have a pending token? add it to the tokens list
	flushCurrentPendingToken()

	// add special EOT token
	tokens = append(tokens, Token{
		Class:    EndOfText,
		Pos:      Position{Line: curLine, Col: curLinePos, Offset: curOffset},
		FullLine: currentFullLine,
	})

	return NewTokenStream(tokens), nil
}

func isSpaceChar(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func readFullLine(sRunes []rune) string {
	var lineBuilder strings.Builder
	for i := 0; i < len(sRunes) && sRunes[i] != '\n'; i++ {
		lineBuilder.WriteRune(sRunes[i])
	}
	return lineBuilder.String()
}
