// Package syntax contains the lexing and parsing core used for all posy
// intake text. It turns raw input into positioned tokens and token streams
// into syntax trees, reporting any problem as a SyntaxError that carries the
// exact position and source line of the first failure.
package syntax

import "fmt"

// Class is the lexical class of a token. The set of classes is closed; all
// input falls into one of them or lexing fails.
type Class int

const (
	// EndOfText marks the end of a token stream. It is always the final token
	// produced by Lex and carries an empty lexeme.
	EndOfText Class = iota

	// Identifier is a run of one or more letters.
	Identifier

	// Number is a run of one or more decimal digits.
	Number

	// LeftParen is a single "(".
	LeftParen

	// RightParen is a single ")".
	RightParen

	// Comma is a single ",".
	Comma

	// Whitespace is a run of one or more space, tab, carriage return, or
	// newline characters.
	Whitespace
)

// Human returns a human-readable name for the class, suitable for use in
// error messages.
func (c Class) Human() string {
	switch c {
	case EndOfText:
		return "end of input"
	case Identifier:
		return "identifier"
	case Number:
		return "number"
	case LeftParen:
		return "'('"
	case RightParen:
		return "')'"
	case Comma:
		return "','"
	case Whitespace:
		return "whitespace"
	default:
		return "unknown token"
	}
}

func (c Class) String() string {
	switch c {
	case EndOfText:
		return "EndOfText"
	case Identifier:
		return "Identifier"
	case Number:
		return "Number"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case Comma:
		return "Comma"
	case Whitespace:
		return "Whitespace"
	default:
		return "Class(unknown)"
	}
}

// Position is a location in input text. Line and Col are 1-indexed and
// counted in runes; Offset is the 0-indexed byte offset of the location.
type Position struct {
	Line   int
	Col    int
	Offset int
}

// Token is a classified substring of lexed input along with the position it
// was found at. FullLine is the complete line of input the token started on,
// kept for error cursor rendering.
type Token struct {
	Class    Class
	Lexeme   string
	Pos      Position
	FullLine string
}

// String returns a representation of the token showing its class, lexeme,
// and line:column position.
func (tok Token) String() string {
	if tok.Class == EndOfText {
		return fmt.Sprintf("(%s @ %d:%d)", tok.Class, tok.Pos.Line, tok.Pos.Col)
	}
	return fmt.Sprintf("(%s %q @ %d:%d)", tok.Class, tok.Lexeme, tok.Pos.Line, tok.Pos.Col)
}

// TokenStream is a sequence of tokens with a read cursor. The zero value is
// an empty stream.
type TokenStream struct {
	tokens []Token
	cur    int
}

// NewTokenStream creates a stream that reads from the given tokens in order.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Next returns the next token in the stream and advances the cursor. Calling
// Next after the stream is exhausted returns the final EndOfText token
// without advancing further; if the stream holds no tokens at all, a zero
// token (which has class EndOfText) is returned.
func (ts *TokenStream) Next() Token {
	tok := ts.Peek()
	if ts.cur < len(ts.tokens) {
		ts.cur++
	}
	return tok
}

// Peek returns the next token in the stream without advancing the cursor.
func (ts *TokenStream) Peek() Token {
	if ts.cur >= len(ts.tokens) {
		if len(ts.tokens) > 0 {
			return ts.tokens[len(ts.tokens)-1]
		}
		return Token{}
	}
	return ts.tokens[ts.cur]
}

// HasNext returns whether the stream has any tokens left to read.
func (ts *TokenStream) HasNext() bool {
	return ts.cur < len(ts.tokens)
}

// Tokens returns all tokens in the stream regardless of cursor position.
func (ts *TokenStream) Tokens() []Token {
	all := make([]Token, len(ts.tokens))
	copy(all, ts.tokens)
	return all
}

// Len returns the total number of tokens in the stream, including any already
// read past.
func (ts *TokenStream) Len() int {
	return len(ts.tokens)
}
