package match

import "testing"

func TestIndelDistance(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"abc", "abc", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Substitution costs a delete plus an insert
		{"a", "b", 2},
		{"ab", "abc", 1},

		{"kitten", "sitting", 5},
		{"acme", "acme corp", 5},
		{"zürich", "zurich", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := IndelDistance([]rune(tt.a), []rune(tt.b))
			if result != tt.expected {
				t.Errorf("IndelDistance(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// Verify symmetry
			resultReverse := IndelDistance([]rune(tt.b), []rune(tt.a))
			if result != resultReverse {
				t.Errorf("IndelDistance symmetry failed: (%q, %q) = %d, (%q, %q) = %d",
					tt.a, tt.b, result, tt.b, tt.a, resultReverse)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 100},
		{"Acme", "ACME", 100},
		{"", "abc", 0},
		{"abc", "xyz", 0},
		{"ab", "abc", 80},
		{"acme", "acme corp", 62},
		{"kitten", "sitting", 62},
		{"Globex", "Acme", 20},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.expected {
				t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
			if got := Ratio(tt.b, tt.a); got != tt.expected {
				t.Errorf("Ratio(%q, %q) not symmetric: %d", tt.b, tt.a, got)
			}
		})
	}
}

func TestRatioRange(t *testing.T) {
	words := []string{"", "a", "Acme", "Acme Corp", "Globex", "Initech LLC", "Ünïcødé"}
	for _, a := range words {
		for _, b := range words {
			r := Ratio(a, b)
			if r < 0 || r > 100 {
				t.Fatalf("Ratio(%q, %q) = %d out of range", a, b, r)
			}
		}
	}
}
