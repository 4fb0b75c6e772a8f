package normalize

import (
	"regexp"
	"sort"
)

// Masked-card shapes that end in four clear digits.
var last4Patterns = []*regexp.Regexp{
	// Runs of X or * groups, optionally space/dash separated: "XXXX XXXX XXXX 1234",
	// "4532********1234", "5239-XXXX-XXXX-0921".
	regexp.MustCompile(`(?i)[x*]{2,}(?:[\s\-]*[x*]{2,})*[\s\-]*(\d{4})\b`),
	// "ending 1234" / "ending in 1234" phrasing.
	regexp.MustCompile(`(?i)\bending(?:\s+in)?\s+(\d{4})\b`),
}

// Last4 scans free text for recognized masked-card-number shapes and
// returns the last-4 digit groups, deduplicated, in order of first
// appearance in the document. No matches yields an empty result, not
// an error.
func Last4(text string) []string {
	type hit struct {
		pos    int
		digits string
	}
	var hits []hit
	for _, pat := range last4Patterns {
		for _, idx := range pat.FindAllStringSubmatchIndex(text, -1) {
			hits = append(hits, hit{pos: idx[2], digits: text[idx[2]:idx[3]]})
		}
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].pos < hits[b].pos })

	var out []string
	seen := make(map[string]bool)
	for _, h := range hits {
		if !seen[h.digits] {
			seen[h.digits] = true
			out = append(out, h.digits)
		}
	}
	return out
}
