package patch

import (
	"regexp"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// ApplyTextual applies a restricted diff against raw text. The diff body
// is reduced to paired removed/added lines; each pair is resolved by an
// exact first-occurrence replace, then by an indentation-anchored match.
//
// The policy is all-or-nothing and fail-closed: if the removed and added
// counts differ, or any pair cannot be uniquely placed, the original text
// is returned unchanged with applied=false. A partially-applied document
// is never produced.
func ApplyTextual(content, diffBody string) (string, bool) {
	removed, added := extractBlocks(diffBody)
	if len(removed) != len(added) {
		return content, false
	}

	out := content
	for i := range removed {
		r, a := removed[i], added[i]
		if strings.TrimSpace(r) == "" && strings.TrimSpace(a) == "" {
			// Context-only pair.
			continue
		}
		next, ok := replacePair(out, r, a)
		if !ok {
			return content, false
		}
		out = next
	}
	return out, true
}

// replacePair resolves one removed/added pair against text.
func replacePair(text, removed, added string) (string, bool) {
	if strings.TrimSpace(removed) == "" {
		// A pure insertion has no anchor; refuse rather than guess.
		return text, false
	}

	// Exact first-occurrence replace.
	if idx := strings.Index(text, removed); idx >= 0 {
		return text[:idx] + added + text[idx+len(removed):], true
	}

	// Anchored match: the removed text at the start of a line, tolerating
	// leading indentation and preserving it in the replacement.
	trimmedR := strings.TrimLeft(removed, " \t")
	trimmedA := strings.TrimLeft(added, " \t")
	re, err := regexp.Compile(`(?m)^([ \t]*)` + regexp.QuoteMeta(trimmedR))
	if err != nil {
		return text, false
	}
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, false
	}
	indent := text[loc[2]:loc[3]]
	return text[:loc[0]] + indent + trimmedA + text[loc[1]:], true
}

// extractBlocks pulls the ordered removed and added line lists out of a
// diff body. Bodies that parse as unified diffs are read through go-diff
// so hunk structure is honored; bare paired-block bodies fall back to a
// line scan over -/+ markers. File headers and hunk headers are never
// treated as content.
func extractBlocks(body string) (removed, added []string) {
	if fds, err := diff.NewMultiFileDiffReader(strings.NewReader(body)).ReadAllFiles(); err == nil && len(fds) > 0 {
		for _, fd := range fds {
			for _, hunk := range fd.Hunks {
				r, a := scanLines(string(hunk.Body))
				removed = append(removed, r...)
				added = append(added, a...)
			}
		}
		return removed, added
	}
	return scanLines(body)
}

// scanLines collects -/+ prefixed lines, stripping the marker and keeping
// the rest of the line verbatim.
func scanLines(body string) (removed, added []string) {
	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "@@"):
			continue
		case strings.HasPrefix(line, "-"):
			removed = append(removed, line[1:])
		case strings.HasPrefix(line, "+"):
			added = append(added, line[1:])
		}
	}
	return removed, added
}
