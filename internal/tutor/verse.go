package tutor

import (
	"strings"
	"unicode/utf8"
)

// CJK Unified Ideographs. Any character in this range anywhere in the raw
// response rejects the whole attempt, before parsing.
const (
	cjkRangeStart = '一'
	cjkRangeEnd   = '鿿'
)

// parseVerseLine validates and parses one raw provider response into a
// DailyVerse. The steps run in a fixed order; the first failure aborts the
// attempt so the pipeline can rotate providers.
func parseVerseLine(raw string) (DailyVerse, error) {
	for _, r := range raw {
		if r >= cjkRangeStart && r <= cjkRangeEnd {
			return DailyVerse{}, &ScriptError{Rune: r}
		}
	}

	clean := stripCodeFences(raw)
	clean = strings.ReplaceAll(clean, "\n", " ")
	clean = strings.TrimSpace(clean)

	parts := strings.Split(clean, "|")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			fields = append(fields, t)
		}
	}
	if len(fields) < 4 {
		return DailyVerse{}, &FormatError{Reason: "expected 4 pipe-delimited segments"}
	}

	v := DailyVerse{
		Verse:      stripWrappingQuotes(fields[0]),
		Reference:  stripWrappingQuotes(fields[1]),
		Korean:     stripWrappingQuotes(fields[2]),
		Reflection: stripWrappingQuotes(fields[3]),
	}

	if v.Verse == "" || v.Korean == "" || utf8.RuneCountInString(v.Korean) < 2 {
		return DailyVerse{}, &FormatError{Reason: "verse or korean text missing"}
	}
	return v, nil
}

// stripCodeFences removes markdown fence wrappers a provider may add
// despite instructions.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return s
}

// stripWrappingQuotes trims one layer of wrapping quote characters.
func stripWrappingQuotes(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"`, `'`, "“", "”"} {
		s = strings.TrimPrefix(s, q)
		s = strings.TrimSuffix(s, q)
	}
	return strings.TrimSpace(s)
}
