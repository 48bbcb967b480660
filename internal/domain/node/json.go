package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses a single JSON value, keeping mapping key order and number
// literals intact. A leading UTF-8 byte order mark is ignored.
func Decode(data []byte) (Node, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Node{}, fmt.Errorf("unexpected data after top-level value")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, fmt.Errorf("read token: %w", err)
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		default:
			return Node{}, fmt.Errorf("unexpected delimiter %q", v)
		}
	case string:
		return String(v), nil
	case json.Number:
		return Number(v.String()), nil
	case bool:
		return Bool(v), nil
	case nil:
		return Null(), nil
	default:
		return Node{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeMapping(dec *json.Decoder) (Node, error) {
	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, fmt.Errorf("read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return Node{}, fmt.Errorf("expected object key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Node{}, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, fmt.Errorf("close object: %w", err)
	}
	return Mapping(fields...), nil
}

func decodeSequence(dec *json.Decoder) (Node, error) {
	var items []Node
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Node{}, fmt.Errorf("item %d: %w", len(items), err)
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, fmt.Errorf("close array: %w", err)
	}
	return Node{kind: KindSequence, items: items}, nil
}

// Pretty renders n as indented JSON in document order. Non-ASCII text is
// written as is.
func Pretty(n Node) string {
	var b strings.Builder
	writePretty(&b, n, 0)
	return b.String()
}

func writePretty(b *strings.Builder, n Node, depth int) {
	switch n.kind {
	case KindNull:
		b.WriteString("null")
	case KindString:
		b.WriteString(quote(n.text))
	case KindNumber, KindBool:
		b.WriteString(n.Scalar())
	case KindSequence:
		if len(n.items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, it := range n.items {
			indent(b, depth+1)
			writePretty(b, it, depth+1)
			if i < len(n.items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(']')
	case KindMapping:
		if len(n.fields) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, f := range n.fields {
			indent(b, depth+1)
			b.WriteString(quote(f.Key))
			b.WriteString(": ")
			writePretty(b, f.Value, depth+1)
			if i < len(n.fields)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte('}')
	}
}

func indent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("  ")
	}
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
