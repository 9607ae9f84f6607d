package rendering

import (
	"fmt"
	"strings"
)

// CheckCompatibility performs structural checks on a rendered document so
// obviously broken LaTeX is caught before it reaches a compiler: the
// preamble and document environment must be present and braces must
// balance. Returns the list of problems found; an empty list means the
// document passed.
func CheckCompatibility(tex string) []string {
	var issues []string

	if !strings.Contains(tex, `\documentclass`) {
		issues = append(issues, `missing \documentclass preamble`)
	}
	if !strings.Contains(tex, `\begin{document}`) {
		issues = append(issues, `missing \begin{document}`)
	}
	if !strings.Contains(tex, `\end{document}`) {
		issues = append(issues, `missing \end{document}`)
	}

	if depth, balanced := braceBalance(tex); !balanced {
		issues = append(issues, "unbalanced braces: closing brace without opener")
	} else if depth != 0 {
		issues = append(issues, fmt.Sprintf("unbalanced braces: %d unclosed", depth))
	}

	return issues
}

// braceBalance walks the document counting unescaped braces. The second
// return is false when a closing brace appears with no matching opener.
func braceBalance(tex string) (depth int, balanced bool) {
	escaped := false
	for _, r := range tex {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return depth, false
			}
		}
	}
	return depth, true
}
