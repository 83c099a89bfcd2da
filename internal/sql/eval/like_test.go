package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		s       string
		pattern string
		want    bool
	}{
		{"John Doe", "J%e", true},
		{"John", "J_hn", true},
		{"John", "j%", false}, // case-sensitive
		{"John", "John", true},
		{"John", "Jon", false},

		// '%' matches the empty sequence
		{"John", "John%", true},
		{"John", "%John", true},
		{"", "%", true},
		{"", "", true},
		{"", "_", false},

		// '_' matches exactly one character
		{"ab", "a_", true},
		{"abc", "a_", false},
		{"a", "a_", false},

		// anchored at both ends
		{"John Doe", "ohn", false},
		{"John Doe", "%ohn%", true},

		// backtracking across multiple wildcards
		{"abcbcd", "a%bcd", true},
		{"abcbce", "a%bcd", false},
		{"mississippi", "m%iss%ppi", true},
		{"aaa", "%a%a%", true},

		// literal specials have no meaning beyond %/_
		{"a.c", "a.c", true},
		{"abc", "a.c", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchPattern(tc.s, tc.pattern),
			"MatchPattern(%q, %q)", tc.s, tc.pattern)
	}
}

func TestMatchPattern_Unicode(t *testing.T) {
	assert.True(t, MatchPattern("héllo", "h_llo"), "'_' must match one rune, not one byte")
	assert.True(t, MatchPattern("héllo", "h%o"))
}
