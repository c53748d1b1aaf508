package catalogue

import (
	"fmt"

	"github.com/coregx/ahocorasick"
)

// LintLiteralOverlap reports literal declarations that occur as proper
// substrings of longer literal declarations. Such overlaps are legal but
// interact with longest-match scanning (the longer literal wins whenever
// it matches), so the generator surfaces them as warnings.
//
// The check builds one Aho-Corasick automaton over every literal pattern
// and scans each literal against it, which keeps the pass linear in the
// total literal length rather than quadratic in the declaration count.
func (c *Catalogue) LintLiteralOverlap() []string {
	var literals []Entry
	for _, e := range c.entries {
		if e.IsLiteral() {
			literals = append(literals, e)
		}
	}
	if len(literals) < 2 {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	for _, e := range literals {
		builder.AddPattern([]byte(e.Literal))
	}
	auto, err := builder.Build()
	if err != nil {
		// The automaton is an advisory aid only; an unbuildable pattern
		// set just means no warnings.
		return nil
	}

	byLiteral := make(map[string]string, len(literals))
	for _, e := range literals {
		if _, ok := byLiteral[e.Literal]; !ok {
			byLiteral[e.Literal] = e.Name
		}
	}

	seen := make(map[string]bool)
	var warnings []string
	for _, e := range literals {
		haystack := []byte(e.Literal)
		for at := 0; at < len(haystack); {
			m := auto.Find(haystack, at)
			if m == nil {
				break
			}
			sub := string(haystack[m.Start:m.End])
			if sub != e.Literal {
				key := sub + "\x00" + e.Literal
				if !seen[key] {
					seen[key] = true
					warnings = append(warnings, fmt.Sprintf(
						"literal token %q (%s) occurs inside %q (%s); longest match prefers the longer token",
						sub, byLiteral[sub], e.Literal, e.Name))
				}
			}
			at = m.Start + 1
		}
	}
	return warnings
}
