// Package node models a loaded knowledge document as a tagged union so that
// flattening and field extraction can switch on the kind instead of probing
// dynamic types.
package node

import "strings"

// Kind is the variant tag of a Node.
type Kind uint8

// Node kinds.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Field is a single key/value pair of a mapping, kept in document order.
type Field struct {
	Key   string
	Value Node
}

// Node is an immutable JSON-like value. The zero value is null.
type Node struct {
	kind   Kind
	text   string // string value or number literal
	flag   bool
	items  []Node
	fields []Field
}

// Null returns the null node.
func Null() Node { return Node{} }

// String returns a string node.
func String(s string) Node { return Node{kind: KindString, text: s} }

// Number returns a number node holding the literal as written in the source.
func Number(literal string) Node { return Node{kind: KindNumber, text: literal} }

// Bool returns a boolean node.
func Bool(b bool) Node { return Node{kind: KindBool, flag: b} }

// Sequence returns a sequence node.
func Sequence(items ...Node) Node {
	return Node{kind: KindSequence, items: append([]Node(nil), items...)}
}

// Mapping returns a mapping node. Later duplicates of a key replace the
// earlier value in place, matching JSON object semantics.
func Mapping(fields ...Field) Node {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		replaced := false
		for i := range out {
			if out[i].Key == f.Key {
				out[i].Value = f.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, f)
		}
	}
	return Node{kind: KindMapping, fields: out}
}

// Kind returns the variant tag.
func (n Node) Kind() Kind { return n.kind }

// IsNull reports whether the node is null.
func (n Node) IsNull() bool { return n.kind == KindNull }

// Text returns the string value or the number literal; empty for other kinds.
func (n Node) Text() string { return n.text }

// BoolValue returns the boolean value.
func (n Node) BoolValue() bool { return n.flag }

// Len returns the number of sequence items or mapping fields.
func (n Node) Len() int {
	switch n.kind {
	case KindSequence:
		return len(n.items)
	case KindMapping:
		return len(n.fields)
	default:
		return 0
	}
}

// Items returns a copy of the sequence items.
func (n Node) Items() []Node {
	return append([]Node(nil), n.items...)
}

// Fields returns a copy of the mapping fields in document order.
func (n Node) Fields() []Field {
	return append([]Field(nil), n.fields...)
}

// Lookup returns the value stored under key in a mapping.
func (n Node) Lookup(key string) (Node, bool) {
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Node{}, false
}

// Scalar renders a leaf value as plain text. Containers render as their
// flattened text.
func (n Node) Scalar() string {
	switch n.kind {
	case KindString, KindNumber:
		return n.text
	case KindBool:
		if n.flag {
			return "true"
		}
		return "false"
	case KindNull:
		return ""
	default:
		return Flatten(n)
	}
}

// Flatten concatenates every leaf value under n, depth first, separated by
// single spaces. Mapping keys are not included.
func Flatten(n Node) string {
	var parts []string
	collect(n, &parts)
	return strings.Join(parts, " ")
}

func collect(n Node, parts *[]string) {
	switch n.kind {
	case KindString, KindNumber, KindBool:
		if s := n.Scalar(); s != "" {
			*parts = append(*parts, s)
		}
	case KindSequence:
		for _, it := range n.items {
			collect(it, parts)
		}
	case KindMapping:
		for _, f := range n.fields {
			collect(f.Value, parts)
		}
	case KindNull:
	}
}
