package normalize

import (
	"strings"

	"github.com/samber/lo"
)

var baseClauseFlags = []string{
	"feat.", "ft.", "with", "from", "remaster", "bonus", "single", "radio", "interlude", "enterlude", "mixed",
}

var baseNameFlags = []string{"remix", "instrumental", "version", "ver."}

// ClauseFlags are the words that mark a bracketed title clause as removable.
var ClauseFlags = caseVariants(baseClauseFlags)

// NameFlags mark a matched track name as a likely wrong recording.
var NameFlags = caseVariants(baseNameFlags)

// caseVariants returns words in lower, UPPER and Capitalized form, in that order.
func caseVariants(words []string) []string {
	out := make([]string, 0, len(words)*3)
	out = append(out, words...)
	out = append(out, lo.Map(words, func(w string, _ int) string { return strings.ToUpper(w) })...)
	out = append(out, lo.Map(words, func(w string, _ int) string { return capitalize(w) })...)
	return lo.Uniq(out)
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// IsFlaggedName reports whether a catalog track name contains any [NameFlags] word.
func IsFlaggedName(name string) bool {
	return lo.SomeBy(NameFlags, func(flag string) bool { return strings.Contains(name, flag) })
}

// StripFlaggedClause removes at most one "(...)" or "[...]" clause from title.
//
// Flags are tried in [ClauseFlags] order. For each flag the first parenthesis
// pair is checked, then the first bracket pair; the first clause whose inner
// text contains the flag is cut out along with its delimiters. A pair whose
// closing delimiter precedes its opening one is ignored.
func StripFlaggedClause(title string) string {
	for _, flag := range ClauseFlags {
		if out, ok := cutClause(title, "(", ")", flag); ok {
			return out
		}
		if out, ok := cutClause(title, "[", "]", flag); ok {
			return out
		}
	}
	return title
}

func cutClause(title, open, close, flag string) (string, bool) {
	start := strings.Index(title, open)
	end := strings.Index(title, close)
	if start < 0 || end < 0 || end < start {
		return title, false
	}
	if !strings.Contains(title[start+len(open):end], flag) {
		return title, false
	}
	return title[:start] + title[end+len(close):], true
}
