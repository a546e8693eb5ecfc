package fs

import "testing"

func TestExtensionMatcher(t *testing.T) {
	m := ExtensionMatcher([]string{"png", ".JPG", ""})

	tests := []struct {
		name   string
		expect bool
	}{
		{"cover.png", true},
		{"COVER.PNG", true},
		{"page.jpg", true},
		{"page.jpeg", false},
		{"notes.txt", false},
		{"png", false},
		{"dir/page.Jpg", true},
	}

	for _, tt := range tests {
		if got := m.Match(tt.name); got != tt.expect {
			t.Fatalf("Match(%q) = %v, want %v", tt.name, got, tt.expect)
		}
	}
}

func TestNewMatcherRejectsBrokenPattern(t *testing.T) {
	if _, err := NewMatcher("[a-"); err == nil {
		t.Fatalf("expected error for unterminated class")
	}
}

func TestNilMatcherMatchesNothing(t *testing.T) {
	var m *Matcher
	if m.Match("a.png") {
		t.Fatalf("nil matcher should not match")
	}
	if len(m.Patterns()) != 0 {
		t.Fatalf("nil matcher should have no patterns")
	}
}
