package syntax

import (
	"fmt"
	"strconv"
)

// Parse parses a complete token stream into a single value. The grammar
// accepts an identifier, a number, a quantified identifier (a number
// immediately followed by an identifier, such as "10a"), or a parenthesized
// comma-separated list of values, possibly empty and possibly nested.
//
// Parsing is deterministic and stops at the first problem: the returned error
// is a *SyntaxError reporting the earliest failure position, and no partial
// tree is returned with it. Empty input fails with an unexpected end of input
// error. Input with trailing tokens after the first complete value fails with
// an unexpected token error.
func Parse(ts *TokenStream) (Node, error) {
	p := parser{ts: ts}

	node, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if end := p.next(); end.Class != EndOfText {
		return nil, ErrorFromToken(ErrUnexpectedToken, fmt.Sprintf("expected end of input but found %s", end.Class.Human()), end)
	}

	return node, nil
}

// ParseNext parses a single value from the front of the token stream and
// leaves the stream positioned on the first token after it. It is used by
// callers that embed values in a larger surrounding format.
func ParseNext(ts *TokenStream) (Node, error) {
	p := parser{ts: ts}
	return p.parseValue()
}

// ParseText lexes and then parses input in one call.
func ParseText(input string) (Node, error) {
	ts, err := Lex(input)
	if err != nil {
		return nil, err
	}

	return Parse(ts)
}

// parser wraps a token stream with lookahead that skips insignificant
// whitespace tokens.
type parser struct {
	ts *TokenStream
}

func (p *parser) skipSpace() {
	for p.ts.Peek().Class == Whitespace {
		p.ts.Next()
	}
}

func (p *parser) next() Token {
	p.skipSpace()
	return p.ts.Next()
}

func (p *parser) peek() Token {
	p.skipSpace()
	return p.ts.Peek()
}

func (p *parser) parseValue() (Node, error) {
	tok := p.next()

	switch tok.Class {
	case Identifier:
		return IdentNode{Name: tok.Lexeme, src: tok}, nil
	case Number:
		num, err := numberFromToken(tok)
		if err != nil {
			return nil, err
		}

		// a number immediately followed by an identifier, with nothing in
		// between, is a quantified-identifier pair
		after := p.ts.Peek()
		if after.Class == Identifier && after.Pos.Offset == tok.Pos.Offset+len(tok.Lexeme) {
			p.ts.Next()
			return PairNode{
				Count: num,
				Of:    IdentNode{Name: after.Lexeme, src: after},
				src:   tok,
			}, nil
		}

		return num, nil
	case LeftParen:
		return p.parseList(tok)
	case RightParen:
		return nil, ErrorFromToken(ErrUnbalanced, "unmatched ')' with no open '(' before it", tok)
	case EndOfText:
		return nil, ErrorFromToken(ErrUnexpectedEOF, "unexpected end of input; expected a value", tok)
	default:
		return nil, ErrorFromToken(ErrUnexpectedToken, fmt.Sprintf("expected a value but found %s", tok.Class.Human()), tok)
	}
}

// parseList parses the remainder of a list after its opening paren has
// already been read. Until the closing paren is read the list alternates
// between expecting a value and expecting a delimiter; reaching end of input
// in either state is an error.
func (p *parser) parseList(open Token) (Node, error) {
	list := ListNode{src: open}

	// empty list?
	if p.peek().Class == RightParen {
		p.next()
		return list, nil
	}

	for {
		elem, err := p.parseValue()
		if err != nil {
			if synErr, ok := err.(*SyntaxError); ok && synErr.kind == ErrUnexpectedEOF {
				return nil, ErrorFromToken(ErrUnexpectedEOF, "unexpected end of input; '(' is never closed", p.ts.Peek())
			}
			return nil, err
		}
		list.Elements = append(list.Elements, elem)

		delim := p.next()
		switch delim.Class {
		case Comma:
			continue
		case RightParen:
			return list, nil
		case EndOfText:
			return nil, ErrorFromToken(ErrUnexpectedEOF, "unexpected end of input; '(' is never closed", delim)
		default:
			return nil, ErrorFromToken(ErrUnexpectedToken, fmt.Sprintf("expected ',' or ')' but found %s", delim.Class.Human()), delim)
		}
	}
}

// numberFromToken converts a Number token's lexeme to a node. The lexer only
// produces digit runs, but a run can still be too large to hold in an int.
func numberFromToken(tok Token) (NumberNode, error) {
	val, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		return NumberNode{}, ErrorFromToken(ErrUnexpectedToken, fmt.Sprintf("number %q is too large", tok.Lexeme), tok)
	}
	return NumberNode{Value: val, src: tok}, nil
}
