package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeXSpecialCharacters(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"C& D", `C\& D`},
		{"100%", `100\%`},
		{"$50k", `\$50k`},
		{"#1 engineer", `\#1 engineer`},
		{"snake_case", `snake\_case`},
		{"a^b", `a\textasciicircum{}b`},
		{"~user", `\textasciitilde{}user`},
		{"{braces}", `\{braces\}`},
		{`back\slash`, `back\textbackslash{}slash`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, EscapeLaTeX(tc.input), "input %q", tc.input)
	}
}

func TestEscapeLaTeXMultipleSpecials(t *testing.T) {
	assert.Equal(t, `R\&D \#1 at 50\%`, EscapeLaTeX("R&D #1 at 50%"))
}
