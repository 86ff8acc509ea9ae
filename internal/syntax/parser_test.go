package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_validInputs(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect Node
	}{
		{
			name:   "lone identifier",
			input:  "a",
			expect: IdentNode{Name: "a"},
		},
		{
			name:   "lone number",
			input:  "88",
			expect: NumberNode{Value: 88},
		},
		{
			name:  "quantified identifier",
			input: "10a",
			expect: PairNode{
				Count: NumberNode{Value: 10},
				Of:    IdentNode{Name: "a"},
			},
		},
		{
			name:   "empty list",
			input:  "()",
			expect: ListNode{},
		},
		{
			name:  "list of two identifiers",
			input: "(a, b)",
			expect: ListNode{
				Elements: []Node{
					IdentNode{Name: "a"},
					IdentNode{Name: "b"},
				},
			},
		},
		{
			name:  "list without spaces",
			input: "(a,b)",
			expect: ListNode{
				Elements: []Node{
					IdentNode{Name: "a"},
					IdentNode{Name: "b"},
				},
			},
		},
		{
			name:  "list of pairs",
			input: "(10a, 15b, 5c)",
			expect: ListNode{
				Elements: []Node{
					PairNode{Count: NumberNode{Value: 10}, Of: IdentNode{Name: "a"}},
					PairNode{Count: NumberNode{Value: 15}, Of: IdentNode{Name: "b"}},
					PairNode{Count: NumberNode{Value: 5}, Of: IdentNode{Name: "c"}},
				},
			},
		},
		{
			name:  "nested lists",
			input: "((a), (b, 2c), 7)",
			expect: ListNode{
				Elements: []Node{
					ListNode{Elements: []Node{IdentNode{Name: "a"}}},
					ListNode{Elements: []Node{
						IdentNode{Name: "b"},
						PairNode{Count: NumberNode{Value: 2}, Of: IdentNode{Name: "c"}},
					}},
					NumberNode{Value: 7},
				},
			},
		},
		{
			name:   "surrounding whitespace ignored",
			input:  "  ( a ,\n b )\n",
			expect: ListNode{Elements: []Node{IdentNode{Name: "a"}, IdentNode{Name: "b"}}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseText(tc.input)
			if !assert.NoError(err) {
				return
			}

			assert.True(tc.expect.Equal(actual), "expected:\n%s\nactual:\n%s", tc.expect, actual)
		})
	}
}

func Test_Parse_errors(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectKind ErrorKind
		expectLine int
		expectCol  int
	}{
		{
			name:       "empty input",
			input:      "",
			expectKind: ErrUnexpectedEOF,
			expectLine: 1,
			expectCol:  1,
		},
		{
			name:       "unclosed list reports position just past last token",
			input:      "(a, b",
			expectKind: ErrUnexpectedEOF,
			expectLine: 1,
			expectCol:  6,
		},
		{
			name:       "unclosed list ending on comma",
			input:      "(a,",
			expectKind: ErrUnexpectedEOF,
			expectLine: 1,
			expectCol:  4,
		},
		{
			name:       "stray close paren",
			input:      ")",
			expectKind: ErrUnbalanced,
			expectLine: 1,
			expectCol:  1,
		},
		{
			name:       "comma where value expected",
			input:      "(, a)",
			expectKind: ErrUnexpectedToken,
			expectLine: 1,
			expectCol:  2,
		},
		{
			name:       "trailing tokens after value",
			input:      "a b",
			expectKind: ErrUnexpectedToken,
			expectLine: 1,
			expectCol:  3,
		},
		{
			name:       "missing comma between values",
			input:      "(a b)",
			expectKind: ErrUnexpectedToken,
			expectLine: 1,
			expectCol:  4,
		},
		{
			name:       "number too large to hold",
			input:      "99999999999999999999",
			expectKind: ErrUnexpectedToken,
			expectLine: 1,
			expectCol:  1,
		},
		{
			name:       "oversized number inside list",
			input:      "(a, 99999999999999999999)",
			expectKind: ErrUnexpectedToken,
			expectLine: 1,
			expectCol:  5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := ParseText(tc.input)
			if !assert.Error(err) {
				return
			}

			synErr, ok := err.(*SyntaxError)
			if !assert.True(ok, "error is not a *SyntaxError: %v", err) {
				return
			}

			assert.Equal(tc.expectKind, synErr.Kind())
			assert.Equal(tc.expectLine, synErr.Line())
			assert.Equal(tc.expectCol, synErr.Position())
		})
	}
}

func Test_Parse_idempotent(t *testing.T) {
	assert := assert.New(t)

	const input = "(a, (10b, c), 3)"

	first, err := ParseText(input)
	if !assert.NoError(err) {
		return
	}
	second, err := ParseText(input)
	if !assert.NoError(err) {
		return
	}

	assert.True(first.Equal(second))
	assert.Equal(first.String(), second.String())
}

func Test_Parse_canonicalTextRoundTrips(t *testing.T) {
	inputs := []string{
		"a",
		"88",
		"10a",
		"()",
		"(a, b)",
		"(10a, 15b, 5c)",
		"((a), (b, 2c), 7)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert := assert.New(t)

			node, err := ParseText(input)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(input, node.Text())
		})
	}
}

func Test_ParseNext_leavesRemainder(t *testing.T) {
	assert := assert.New(t)

	ts, err := Lex("(10a, 15b)30")
	if !assert.NoError(err) {
		return
	}

	node, err := ParseNext(ts)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(NodeList, node.Type())

	rest, err := ParseNext(ts)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(NodeNumber, rest.Type())
	assert.Equal(30, rest.AsNumberNode().Value)

	assert.Equal(EndOfText, ts.Peek().Class)
}
