package news

import "testing"

func TestParseKeywordType(t *testing.T) {
	tests := []struct {
		in   string
		want KeywordType
	}{
		{"PERSON", Person},
		{"organization", Organization},
		{" Location ", Location},
		{"EVENT", Event},
		{"concept", Concept},
		{"planet", Other},
		{"", Other},
	}
	for _, tt := range tests {
		if got := ParseKeywordType(tt.in); got != tt.want {
			t.Errorf("ParseKeywordType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasNext(t *testing.T) {
	tests := []struct {
		page ArticlePage
		want bool
	}{
		{ArticlePage{Number: 0, TotalPages: 3}, true},
		{ArticlePage{Number: 2, TotalPages: 3}, false},
		{ArticlePage{Number: 0, TotalPages: 0}, false},
	}
	for _, tt := range tests {
		if got := tt.page.HasNext(); got != tt.want {
			t.Errorf("HasNext(%+v) = %v, want %v", tt.page, got, tt.want)
		}
	}
}

func TestCategoryStats(t *testing.T) {
	s := CategoryStats{{Name: "a", Count: 2}, {Name: "b", Count: 3}}
	if s.Total() != 5 {
		t.Errorf("Total() = %d, want 5", s.Total())
	}
	if m := s.Map(); m["b"] != 3 || len(m) != 2 {
		t.Errorf("Map() = %v", m)
	}
}

func TestIDIsZero(t *testing.T) {
	if !ID(" ").IsZero() {
		t.Error("blank id should be zero")
	}
	if ID("0").IsZero() {
		t.Error(`"0" is a valid id`)
	}
}
