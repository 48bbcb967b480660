// Package knowledge holds the startup-loaded Knowledge Base. Values are built
// once and never mutated afterwards, so they are safe for concurrent readers.
package knowledge

import (
	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/domain/node"
)

// Entry is one loaded document.
type Entry struct {
	Key string
	Doc node.Node
}

// Collection is the ordered set of documents of a single domain.
type Collection struct {
	entries []Entry
	index   map[string]int
}

// NewCollection builds a collection. Duplicate keys keep the first position
// and take the last document.
func NewCollection(entries []Entry) *Collection {
	c := &Collection{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := c.index[e.Key]; ok {
			c.entries[i].Doc = e.Doc
			continue
		}
		c.index[e.Key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Len returns the number of documents. Safe on a nil collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Get returns the document stored under key.
func (c *Collection) Get(key string) (node.Node, bool) {
	if c == nil {
		return node.Node{}, false
	}
	i, ok := c.index[key]
	if !ok {
		return node.Node{}, false
	}
	return c.entries[i].Doc, true
}

// Each calls fn for every entry in insertion order until fn returns false.
func (c *Collection) Each(fn func(Entry) bool) {
	if c == nil {
		return
	}
	for _, e := range c.entries {
		if !fn(e) {
			return
		}
	}
}

// Keys returns document keys in insertion order.
func (c *Collection) Keys() []string {
	keys := make([]string, 0, c.Len())
	c.Each(func(e Entry) bool {
		keys = append(keys, e.Key)
		return true
	})
	return keys
}

// Base maps every domain to its collection. Domains without documents map
// to an empty collection, never to nil.
type Base struct {
	collections map[domain.Domain]*Collection
}

// NewBase assembles a Base for the given domains.
func NewBase(domains []domain.Domain, collections map[domain.Domain]*Collection) *Base {
	b := &Base{
		collections: make(map[domain.Domain]*Collection, len(domains)),
	}
	for _, d := range domains {
		c := collections[d]
		if c == nil {
			c = NewCollection(nil)
		}
		b.collections[d] = c
	}
	return b
}

// Collection returns the documents of d. Unknown domains yield an empty
// collection.
func (b *Base) Collection(d domain.Domain) *Collection {
	if b == nil {
		return NewCollection(nil)
	}
	if c, ok := b.collections[d]; ok {
		return c
	}
	return NewCollection(nil)
}

// Total returns the document count across all domains.
func (b *Base) Total() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, c := range b.collections {
		total += c.Len()
	}
	return total
}
