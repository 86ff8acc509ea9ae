package stand

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/dekarrin/posy/internal/syntax"
)

// FlowerLot is one or more identical loose flowers taken in from a flower
// line. A bare line such as "aL" is a lot of one; a count prefix such as
// "10aL" gives the lot size directly.
type FlowerLot struct {
	Specie rune
	Size   Size
	Count  int

	source string
}

// Source returns the original intake line the lot was parsed from.
func (fl FlowerLot) Source() string {
	return fl.source
}

// Intake is a full set of parsed intake data: the bouquet designs to fill
// and the loose flowers available to fill them with.
type Intake struct {
	Designs []*Design
	Flowers []FlowerLot
}

// ParseDesign parses a bouquet design line. Both the compact form
// "AL10a15b5c30" and the grouped form "AL(10a, 15b, 5c)30" are accepted. All
// problems, structural and semantic alike (total smaller than the design
// demands, repeated species), are reported as *syntax.SyntaxError with the
// position of the offending token.
func ParseDesign(line string) (*Design, error) {
	ts, err := syntax.Lex(line)
	if err != nil {
		return nil, err
	}

	skipSpace(ts)
	head := ts.Next()
	if head.Class != syntax.Identifier {
		return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, "expected a design name and size such as \"AL\"", head)
	}
	headRunes := []rune(head.Lexeme)
	if len(headRunes) != 2 {
		return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("%q is not a design name and size; expected one uppercase name letter followed by size L or S", head.Lexeme), head)
	}
	if !unicode.IsUpper(headRunes[0]) {
		return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("design name %q must be an uppercase letter", string(headRunes[0])), head)
	}
	size, ok := ParseSize(headRunes[1])
	if !ok {
		return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("design size %q must be L or S", string(headRunes[1])), head)
	}

	d := &Design{
		Name:   headRunes[0],
		Size:   size,
		active: true,
		source: line,
	}

	var pairs []syntax.PairNode
	var total syntax.NumberNode

	skipSpace(ts)
	if ts.Peek().Class == syntax.LeftParen {
		// grouped form: a parenthesized list of pairs, then the total
		listNode, err := syntax.ParseNext(ts)
		if err != nil {
			return nil, err
		}
		list := listNode.AsListNode()

		for _, elem := range list.Elements {
			if elem.Type() != syntax.NodePair {
				return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, "expected a quantified specie such as \"10a\"", elem.Source())
			}
			pairs = append(pairs, elem.AsPairNode())
		}

		totalNode, err := syntax.ParseNext(ts)
		if err != nil {
			return nil, err
		}
		if totalNode.Type() != syntax.NodeNumber {
			return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, "expected the bouquet total after the flower list", totalNode.Source())
		}
		total = totalNode.AsNumberNode()
	} else {
		// compact form: pairs back to back, then the total
		var nodes []syntax.Node
		for skipSpace(ts); ts.Peek().Class != syntax.EndOfText; skipSpace(ts) {
			node, err := syntax.ParseNext(ts)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}

		if len(nodes) == 0 {
			return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedEOF, "unexpected end of input; expected flower quantities and a total", ts.Peek())
		}

		last := nodes[len(nodes)-1]
		if last.Type() != syntax.NodeNumber {
			return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedEOF, "unexpected end of input; expected the bouquet total after the flower quantities", ts.Peek())
		}
		total = last.AsNumberNode()

		for _, node := range nodes[:len(nodes)-1] {
			if node.Type() != syntax.NodePair {
				return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, "expected a quantified specie such as \"10a\"", node.Source())
			}
			pairs = append(pairs, node.AsPairNode())
		}
	}

	skipSpace(ts)
	if end := ts.Next(); end.Class != syntax.EndOfText {
		return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("expected end of design but found %s", end.Class.Human()), end)
	}

	if len(pairs) == 0 {
		return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, "design specifies no flowers before the total", total.Source())
	}

	demandSum := 0
	for _, pair := range pairs {
		specieRunes := []rune(pair.Of.Name)
		if len(specieRunes) != 1 || !unicode.IsLower(specieRunes[0]) {
			return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("specie %q must be a single lowercase letter", pair.Of.Name), pair.Of.Source())
		}
		if pair.Count.Value < 1 {
			return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, "flower quantity must be at least 1", pair.Count.Source())
		}

		specie := specieRunes[0]
		for _, existing := range d.Flowers {
			if existing.Specie == specie {
				return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("specie %q appears more than once in the design", pair.Of.Name), pair.Of.Source())
			}
		}

		d.Flowers = append(d.Flowers, &Flower{
			Specie:         specie,
			DesignQuantity: pair.Count.Value,
		})
		demandSum += pair.Count.Value
	}

	d.Total = total.Value
	if d.Total < demandSum {
		return nil, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("total %d is less than the %d flowers the design itself calls for", d.Total, demandSum), total.Source())
	}

	return d, nil
}

// ParseFlower parses a flower line: a lowercase specie letter followed by a
// size letter, such as "aL", optionally preceded by a count such as "10aL".
func ParseFlower(line string) (FlowerLot, error) {
	ts, err := syntax.Lex(line)
	if err != nil {
		return FlowerLot{}, err
	}

	lot := FlowerLot{Count: 1, source: line}

	skipSpace(ts)
	tok := ts.Next()
	if tok.Class == syntax.Number {
		count, convErr := strconv.Atoi(tok.Lexeme)
		if convErr != nil || count < 1 {
			return FlowerLot{}, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, "flower count must be at least 1", tok)
		}
		lot.Count = count
		skipSpace(ts)
		tok = ts.Next()
	}

	if tok.Class != syntax.Identifier {
		return FlowerLot{}, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, "expected a flower such as \"aL\"", tok)
	}

	runes := []rune(tok.Lexeme)
	if len(runes) != 2 {
		return FlowerLot{}, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("%q is not a flower; expected one lowercase specie letter followed by size L or S", tok.Lexeme), tok)
	}
	if !unicode.IsLower(runes[0]) {
		return FlowerLot{}, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("specie %q must be a lowercase letter", string(runes[0])), tok)
	}
	size, ok := ParseSize(runes[1])
	if !ok {
		return FlowerLot{}, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("flower size %q must be L or S", string(runes[1])), tok)
	}

	lot.Specie = runes[0]
	lot.Size = size

	skipSpace(ts)
	if end := ts.Next(); end.Class != syntax.EndOfText {
		return FlowerLot{}, syntax.ErrorFromToken(syntax.ErrUnexpectedToken, fmt.Sprintf("expected end of flower but found %s", end.Class.Human()), end)
	}

	return lot, nil
}

func skipSpace(ts *syntax.TokenStream) {
	for ts.Peek().Class == syntax.Whitespace {
		ts.Next()
	}
}
