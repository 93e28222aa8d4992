package books

import "testing"

func TestNamesComplete(t *testing.T) {
	if len(Names) != 66 {
		t.Fatalf("len(Names) = %d, want 66", len(Names))
	}
	seen := make(map[string]bool)
	for _, n := range Names {
		if seen[n] {
			t.Errorf("duplicate book %q", n)
		}
		seen[n] = true
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"Genesis", "Genesis", true},
		{"  psalms ", "Psalms", true},
		{"song of songs", "Song of Songs", true},
		{"1 cor", "1 Corinthians", true},
		{"1cor", "1 Corinthians", true},
		{"gen", "Genesis", true},
		{"ps", "Psalms", true},
		{"jn", "jn", false},   // John and Jonah tie
		{"xyz", "xyz", false}, // free text
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		query, target string
		matched       bool
	}{
		{"", "anything", true},
		{"gn", "genesis", true},
		{"GN", "genesis", true},
		{"sg", "genesis", false},
		{"genesiss", "genesis", false},
	}
	for _, tt := range tests {
		got, _ := Match(tt.query, tt.target)
		if got != tt.matched {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.query, tt.target, got, tt.matched)
		}
	}
}

func TestMatchPrefersConsecutiveFromStart(t *testing.T) {
	_, prefix := Match("rom", "romans")
	_, scattered := Match("rom", "proverbs")
	if prefix <= scattered {
		t.Errorf("prefix score %d should beat scattered %d", prefix, scattered)
	}
}
