package synthesis

import (
	"strings"

	"github.com/capstone-design/sportsqa/internal/domain/node"
)

type section struct {
	label string
	keys  []string
}

// sections lists the semantic fields pulled out of a document, in output order.
var sections = []section{
	{"개요", []string{"overview", "개요", "description", "설명", "summary"}},
	{"기능", []string{"function", "기능", "role", "역할", "purpose"}},
	{"풍속별 세팅", []string{"wind_range", "wind_ranges", "wind_settings", "풍속별_세팅", "풍속별세팅"}},
	{"장비", []string{"equipment", "장비", "rigging", "gear"}},
}

// maxSearchDepth bounds how far below the top level fields are looked up.
const maxSearchDepth = 3

// Summarize renders the known sections found in doc. ok is false when the
// document has none of them.
func Summarize(doc node.Node) (string, bool) {
	var lines []string
	for _, sec := range sections {
		v, found := find(doc, sec.keys, 0)
		if !found {
			continue
		}
		lines = append(lines, renderSection(sec.label, v)...)
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// find returns the first of keys present in n. The mapping's own fields win
// over nested ones; nested mappings are searched in field order.
func find(n node.Node, keys []string, depth int) (node.Node, bool) {
	if n.Kind() != node.KindMapping || depth > maxSearchDepth {
		return node.Node{}, false
	}
	for _, k := range keys {
		if v, ok := n.Lookup(k); ok && !v.IsNull() {
			return v, true
		}
	}
	for _, f := range n.Fields() {
		if v, ok := find(f.Value, keys, depth+1); ok {
			return v, true
		}
	}
	return node.Node{}, false
}

func renderSection(label string, v node.Node) []string {
	switch v.Kind() {
	case node.KindMapping:
		lines := []string{label + ":"}
		for _, f := range v.Fields() {
			lines = append(lines, "- "+f.Key+": "+inline(f.Value))
		}
		return lines
	case node.KindSequence:
		lines := []string{label + ":"}
		for _, it := range v.Items() {
			lines = append(lines, "- "+inline(it))
		}
		return lines
	default:
		return []string{label + ": " + v.Scalar()}
	}
}

// inline renders a value on one line: mappings as "k: v, k: v", sequences
// comma separated.
func inline(v node.Node) string {
	switch v.Kind() {
	case node.KindMapping:
		parts := make([]string, 0, v.Len())
		for _, f := range v.Fields() {
			parts = append(parts, f.Key+": "+inline(f.Value))
		}
		return strings.Join(parts, ", ")
	case node.KindSequence:
		parts := make([]string, 0, v.Len())
		for _, it := range v.Items() {
			parts = append(parts, inline(it))
		}
		return strings.Join(parts, ", ")
	default:
		return v.Scalar()
	}
}
