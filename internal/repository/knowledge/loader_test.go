package knowledge

import (
	"context"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/capstone-design/sportsqa/internal/domain"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"yacht/laser.json":                {Data: []byte(`{"overview": "Laser is a single-handed dinghy"}`)},
		"yacht/470/rigging.json":          {Data: []byte(`{"equipment": "trapeze"}`)},
		"yacht/notes.txt":                 {Data: []byte(`not json`)},
		"yacht/broken.json":               {Data: []byte(`{"overview": `)},
		"baseball/positions/pitcher.json": {Data: []byte("\xEF\xBB\xBF" + `{"role": "투수"}`)},
	}
}

func TestLoad_ReadsNestedJSON(t *testing.T) {
	l := NewLoader(testFS(), zap.NewNop())

	base, err := l.Load(context.Background(), domain.AllDomains())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	yacht := base.Collection(domain.Yacht)
	keys := yacht.Keys()
	want := []string{"470/rigging.json", "laser.json"}
	if len(keys) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	pitcher, ok := base.Collection(domain.Baseball).Get("positions/pitcher.json")
	if !ok {
		t.Fatal("expected BOM-prefixed file to load")
	}
	role, _ := pitcher.Lookup("role")
	if role.Text() != "투수" {
		t.Errorf("unexpected role %q", role.Text())
	}
}

func TestLoad_MissingDomainIsEmpty(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l := NewLoader(testFS(), zap.New(core))

	base, err := l.Load(context.Background(), domain.AllDomains())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gym := base.Collection(domain.Gymnastics)
	if gym == nil || gym.Len() != 0 {
		t.Fatalf("expected empty gymnastics collection, got %v", gym)
	}

	found := false
	for _, e := range logs.All() {
		if e.ContextMap()["reason"] == reasonMissingDir && e.ContextMap()["domain"] == "gymnastics" {
			found = true
		}
	}
	if !found {
		t.Error("expected missing_dir warning for gymnastics")
	}
}

func TestLoad_MalformedFileSkipped(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l := NewLoader(testFS(), zap.New(core))

	base, err := l.Load(context.Background(), []domain.Domain{domain.Yacht})
	if err != nil {
		t.Fatalf("malformed JSON must not abort loading: %v", err)
	}
	if _, ok := base.Collection(domain.Yacht).Get("broken.json"); ok {
		t.Error("broken.json should be skipped")
	}

	decodeWarnings := logs.FilterField(zap.String("reason", reasonDecode)).Len()
	if decodeWarnings != 1 {
		t.Errorf("expected 1 decode warning, got %d", decodeWarnings)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLoader(testFS(), zap.NewNop())
	if _, err := l.Load(ctx, domain.AllDomains()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
