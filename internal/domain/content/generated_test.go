package content

import "testing"

func TestStatsFor(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		wantN    int
		wantOver int
	}{
		{"empty", "", XMaxCharacters, 0, 0},
		{"at_limit", string(make([]byte, 280)), XMaxCharacters, 280, 0},
		{"over", string(make([]byte, 285)), XMaxCharacters, 285, 5},
		{"astral_counts_two", "🚀", XMaxCharacters, 2, 0},
		{"linkedin", "hello", LinkedInMaxCharacters, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := StatsFor(tt.text, tt.max)
			if st.CharacterCount != tt.wantN || st.OverLimitBy != tt.wantOver || st.OverLimit != (tt.wantOver > 0) {
				t.Fatalf("StatsFor=%+v", st)
			}
		})
	}
}

func TestGeneratedContentValidate(t *testing.T) {
	var g GeneratedContent
	if err := g.Validate(); err == nil {
		t.Fatalf("expected error for empty content")
	}
	g.GeneratedTopic = "Async standups"
	g.Platforms.Instagram.Content = []string{"Slide 1: Hi"}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
