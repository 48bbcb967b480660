package classify

import (
	"testing"

	"github.com/capstone-design/sportsqa/internal/domain"
)

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		question string
		want     domain.Domain
	}{
		{"레이저 요트 풍속별 세팅 알려줘", domain.Yacht},
		{"What is the 470 trapeze used for?", domain.Yacht},
		{"LASER rigging", domain.Yacht},
		{"야구에서 유격수의 역할은?", domain.Baseball},
		{"pitcher grip types", domain.Baseball},
		{"평균대 기본 동작", domain.Gymnastics},
		{"Gymnastics vault scoring", domain.Gymnastics},
	}
	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			got := c.Classify(tc.question)
			if len(got) != 1 || got[0] != tc.want {
				t.Errorf("Classify(%q) = %v, want [%s]", tc.question, got, tc.want)
			}
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	got := New().Classify("baseball players who also sail a yacht")
	if len(got) != 1 || got[0] != domain.Yacht {
		t.Errorf("expected yacht precedence, got %v", got)
	}
}

func TestClassify_NoMatchSearchesAll(t *testing.T) {
	got := New().Classify("오늘 날씨 어때?")
	all := domain.AllDomains()
	if len(got) != len(all) {
		t.Fatalf("expected %d domains, got %v", len(all), got)
	}
	for i := range all {
		if got[i] != all[i] {
			t.Errorf("domain[%d] = %s, want %s", i, got[i], all[i])
		}
	}
}

func TestClassify_CustomFallback(t *testing.T) {
	got := New(domain.Baseball).Classify("hello")
	if len(got) != 1 || got[0] != domain.Baseball {
		t.Errorf("expected custom fallback, got %v", got)
	}
}

func TestMatch_Blank(t *testing.T) {
	if _, ok := Match("   "); ok {
		t.Error("blank question should not match")
	}
}
