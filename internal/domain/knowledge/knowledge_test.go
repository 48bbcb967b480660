package knowledge

import (
	"testing"

	"github.com/capstone-design/sportsqa/internal/domain"
	"github.com/capstone-design/sportsqa/internal/domain/node"
)

func TestNewCollection_KeepsInsertionOrder(t *testing.T) {
	c := NewCollection([]Entry{
		{Key: "b.json", Doc: node.String("b")},
		{Key: "a.json", Doc: node.String("a")},
		{Key: "b.json", Doc: node.String("b2")},
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	keys := c.Keys()
	if keys[0] != "b.json" || keys[1] != "a.json" {
		t.Errorf("unexpected key order: %v", keys)
	}
	doc, ok := c.Get("b.json")
	if !ok || doc.Text() != "b2" {
		t.Errorf("expected duplicate to take last document, got %q", doc.Text())
	}
}

func TestCollection_NilSafe(t *testing.T) {
	var c *Collection
	if c.Len() != 0 {
		t.Error("nil collection should be empty")
	}
	if _, ok := c.Get("x"); ok {
		t.Error("nil collection should not find keys")
	}
	called := false
	c.Each(func(Entry) bool { called = true; return true })
	if called {
		t.Error("Each on nil collection should not call fn")
	}
}

func TestNewBase_FillsMissingDomains(t *testing.T) {
	b := NewBase(domain.AllDomains(), map[domain.Domain]*Collection{
		domain.Yacht: NewCollection([]Entry{{Key: "laser.json", Doc: node.String("laser")}}),
	})

	for _, d := range domain.AllDomains() {
		if b.Collection(d) == nil {
			t.Errorf("collection for %s should never be nil", d)
		}
	}
	if b.Collection(domain.Baseball).Len() != 0 {
		t.Error("baseball should be empty")
	}
	if b.Total() != 1 {
		t.Errorf("Total = %d, want 1", b.Total())
	}
}

func TestEach_StopsEarly(t *testing.T) {
	c := NewCollection([]Entry{
		{Key: "1", Doc: node.Null()},
		{Key: "2", Doc: node.Null()},
		{Key: "3", Doc: node.Null()},
	})
	seen := 0
	c.Each(func(Entry) bool {
		seen++
		return seen < 2
	})
	if seen != 2 {
		t.Errorf("expected 2 visits, got %d", seen)
	}
}
