package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/posy/internal/util"
)

const (
	treeLevelEmpty               = "        "
	treeLevelOngoing             = "  |     "
	treeLevelPrefix              = "  |%s: "
	treeLevelPrefixLast          = `  \%s: `
	treeLevelPrefixNamePadChar   = '-'
	treeLevelPrefixNamePadAmount = 3
)

func makeTreeLevelPrefix(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefix, msg)
}

func makeTreeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefixLast, msg)
}

// NodeType is the kind of a syntax tree node. The set of kinds is closed.
type NodeType int

const (
	NodeIdent NodeType = iota
	NodeNumber
	NodePair
	NodeList
)

// Node is a single node of a parsed syntax tree. Nodes are immutable once
// the parser returns them; two parses of the same input produce trees that
// are Equal.
type Node interface {
	// Type returns the kind of this node.
	Type() NodeType

	// AsIdentNode returns this node as an IdentNode. Panics if Type() is not
	// NodeIdent.
	AsIdentNode() IdentNode

	// AsNumberNode returns this node as a NumberNode. Panics if Type() is not
	// NodeNumber.
	AsNumberNode() NumberNode

	// AsPairNode returns this node as a PairNode. Panics if Type() is not
	// NodePair.
	AsPairNode() PairNode

	// AsListNode returns this node as a ListNode. Panics if Type() is not
	// NodeList.
	AsListNode() ListNode

	// Source returns the token that started this node.
	Source() Token

	// Text returns the canonical source form of the node. For a tree parsed
	// from already-canonical input, Text reproduces that input exactly.
	Text() string

	// String returns a prettified tree representation of the node suitable
	// for line-by-line comparison of structure.
	String() string

	// Equal returns whether the other value is a node with the same structure
	// and values. Source tokens are not considered.
	Equal(o any) bool

	leveledStr(firstPrefix, contPrefix string) string
}

// IdentNode is a leaf node holding an identifier.
type IdentNode struct {
	// Name is the identifier text.
	Name string

	src Token
}

func (n IdentNode) Type() NodeType           { return NodeIdent }
func (n IdentNode) AsIdentNode() IdentNode   { return n }
func (n IdentNode) AsNumberNode() NumberNode { panic("Type() is not NodeNumber") }
func (n IdentNode) AsPairNode() PairNode     { panic("Type() is not NodePair") }
func (n IdentNode) AsListNode() ListNode     { panic("Type() is not NodeList") }
func (n IdentNode) Source() Token            { return n.src }

func (n IdentNode) Text() string {
	return n.Name
}

func (n IdentNode) String() string {
	return n.leveledStr("", "")
}

// Does not consider Source.
func (n IdentNode) Equal(o any) bool {
	other, ok := o.(IdentNode)
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*IdentNode)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return n.Name == other.Name
}

func (n IdentNode) leveledStr(firstPrefix, contPrefix string) string {
	return fmt.Sprintf("%s(IDENT \"%s\")", firstPrefix, n.Name)
}

// NumberNode is a leaf node holding a non-negative integer.
type NumberNode struct {
	// Value is the parsed value of the number.
	Value int

	src Token
}

func (n NumberNode) Type() NodeType           { return NodeNumber }
func (n NumberNode) AsIdentNode() IdentNode   { panic("Type() is not NodeIdent") }
func (n NumberNode) AsNumberNode() NumberNode { return n }
func (n NumberNode) AsPairNode() PairNode     { panic("Type() is not NodePair") }
func (n NumberNode) AsListNode() ListNode     { panic("Type() is not NodeList") }
func (n NumberNode) Source() Token            { return n.src }

func (n NumberNode) Text() string {
	return strconv.Itoa(n.Value)
}

func (n NumberNode) String() string {
	return n.leveledStr("", "")
}

// Does not consider Source.
func (n NumberNode) Equal(o any) bool {
	other, ok := o.(NumberNode)
	if !ok {
		otherPtr, ok := o.(*NumberNode)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return n.Value == other.Value
}

func (n NumberNode) leveledStr(firstPrefix, contPrefix string) string {
	return fmt.Sprintf("%s(NUMBER %d)", firstPrefix, n.Value)
}

// PairNode is a quantified identifier, a number immediately followed by an
// identifier, such as "10a".
type PairNode struct {
	// Count is the number part of the pair.
	Count NumberNode

	// Of is the identifier part of the pair.
	Of IdentNode

	src Token
}

func (n PairNode) Type() NodeType           { return NodePair }
func (n PairNode) AsIdentNode() IdentNode   { panic("Type() is not NodeIdent") }
func (n PairNode) AsNumberNode() NumberNode { panic("Type() is not NodeNumber") }
func (n PairNode) AsPairNode() PairNode     { return n }
func (n PairNode) AsListNode() ListNode     { panic("Type() is not NodeList") }
func (n PairNode) Source() Token            { return n.src }

func (n PairNode) Text() string {
	return n.Count.Text() + n.Of.Text()
}

func (n PairNode) String() string {
	return n.leveledStr("", "")
}

// Does not consider Source.
func (n PairNode) Equal(o any) bool {
	other, ok := o.(PairNode)
	if !ok {
		otherPtr, ok := o.(*PairNode)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return n.Count.Equal(other.Count) && n.Of.Equal(other.Of)
}

func (n PairNode) leveledStr(firstPrefix, contPrefix string) string {
	return fmt.Sprintf("%s(PAIR %d \"%s\")", firstPrefix, n.Count.Value, n.Of.Name)
}

// ListNode is a parenthesized, comma-separated list of values. It may be
// empty.
type ListNode struct {
	// Elements is the values of the list in source order.
	Elements []Node

	src Token
}

func (n ListNode) Type() NodeType           { return NodeList }
func (n ListNode) AsIdentNode() IdentNode   { panic("Type() is not NodeIdent") }
func (n ListNode) AsNumberNode() NumberNode { panic("Type() is not NodeNumber") }
func (n ListNode) AsPairNode() PairNode     { panic("Type() is not NodePair") }
func (n ListNode) AsListNode() ListNode     { return n }
func (n ListNode) Source() Token            { return n.src }

func (n ListNode) Text() string {
	var sb strings.Builder

	sb.WriteRune('(')
	for i := range n.Elements {
		sb.WriteString(n.Elements[i].Text())
		if i+1 < len(n.Elements) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune(')')

	return sb.String()
}

func (n ListNode) String() string {
	return n.leveledStr("", "")
}

// Does not consider Source.
func (n ListNode) Equal(o any) bool {
	other, ok := o.(ListNode)
	if !ok {
		otherPtr, ok := o.(*ListNode)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return util.EqualSlices(n.Elements, other.Elements)
}

func (n ListNode) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	sb.WriteString("( LIST )")

	for i := range n.Elements {
		sb.WriteRune('\n')
		var leveledFirstPrefix string
		var leveledContPrefix string
		if i+1 < len(n.Elements) {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefix(fmt.Sprintf("E%d", i))
			leveledContPrefix = contPrefix + treeLevelOngoing
		} else {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefixLast(fmt.Sprintf("E%d", i))
			leveledContPrefix = contPrefix + treeLevelEmpty
		}
		itemOut := n.Elements[i].leveledStr(leveledFirstPrefix, leveledContPrefix)
		sb.WriteString(itemOut)
	}

	return sb.String()
}
