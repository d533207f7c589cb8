package tagged

import (
	"regexp"
	"strings"
)

var (
	// optionLine matches "@option <text>" and "@@option <text>". The doubled
	// marker is exactly two '@' characters followed by the word option.
	optionLine = regexp.MustCompile(`(?i)^@(@)?option\s+(.*)$`)

	// tagLine matches any other "@<name> <value>" line.
	tagLine = regexp.MustCompile(`^@(\w+)\s+(.*)$`)
)

// Parse converts one raw tagged-text block into a Record.
//
// Parse never fails. Blank lines, unrecognized lines and unknown tags are
// skipped, leaving the corresponding fields at their defaults. When a tag
// repeats, the last occurrence wins; the same holds for @@option.
func Parse(raw string) Record {
	rec := NewRecord()
	var options []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Options are tested first: "@option" would also satisfy tagLine.
		if m := optionLine.FindStringSubmatch(line); m != nil {
			text := strings.TrimSpace(m[2])
			options = append(options, text)
			if m[1] == "@" {
				rec.Answer = text
			}
			continue
		}

		if m := tagLine.FindStringSubmatch(line); m != nil {
			if f, ok := lookupField(strings.ToLower(m[1])); ok {
				rec.set(f, strings.TrimSpace(m[2]))
			}
		}
	}

	rec.Options = dedupe(options)
	return rec
}

// ParseAll parses each block in order. The result has one record per block.
func ParseAll(raws []string) []Record {
	out := make([]Record, len(raws))
	for i, raw := range raws {
		out[i] = Parse(raw)
	}
	return out
}

// dedupe keeps the first occurrence of each option, compared by exact text.
func dedupe(options []string) []string {
	seen := make(map[string]struct{}, len(options))
	out := make([]string, 0, len(options))
	for _, o := range options {
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
