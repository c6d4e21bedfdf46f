// Package normalize cleans raw speech-to-text output before task extraction.
package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultFillers are removed as whole words, case-insensitively.
var DefaultFillers = []string{"um", "uh", "like", "you know", "i mean", "sort of", "kind of"}

var (
	reSpaceBeforeComma = regexp.MustCompile(`\s+,`)
	reDoubleComma      = regexp.MustCompile(`,(\s*,)+`)
	reEdgeCommas       = regexp.MustCompile(`^[\s,]+|[\s,]+$`)

	reAmPm    = regexp.MustCompile(`(?i)\b(\d{1,2}(?::[0-5]\d)?)\s*([ap])(\.?)m\b(\.?)`)
	reOClock  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*o['’]?\s?clock\b`)
	reHourMin = regexp.MustCompile(`\b([01]?\d|2[0-3]) ([0-5]\d)(\b|[ap]m\b)`)

	reSpaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
	reMultiPeriod      = regexp.MustCompile(`\.{2,}`)
	reNoSpaceAfter     = regexp.MustCompile(`([,;!?])([^\s\d,;!?.])`)
	reSentenceJoin     = regexp.MustCompile(`([a-z0-9])\.([A-Z])`)
	reEllipsisJoin     = regexp.MustCompile(`\.\.\.([^\s.])`)

	reBareWord = regexp.MustCompile(`^[\p{L}\p{N}']+$`)
)

var conjunctions = map[string]struct{}{"and": {}, "but": {}, "or": {}}

const (
	maxRepeatRun = 5
	minRepeatRun = 2
)

// Normalizer rewrites raw transcripts into clean sentences.
type Normalizer struct {
	fillers []*regexp.Regexp
}

// New builds a Normalizer for the given filler phrases; nil means DefaultFillers.
func New(fillers []string) *Normalizer {
	if fillers == nil {
		fillers = DefaultFillers
	}
	sorted := append([]string(nil), fillers...)
	// longer phrases first so "you know" goes before a bare "you"-style entry
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	n := &Normalizer{}
	for _, f := range sorted {
		words := strings.Fields(f)
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		n.fillers = append(n.fillers, regexp.MustCompile(`(?i)\b`+strings.Join(words, `\s+`)+`\b`))
	}
	return n
}

var defaultNormalizer = New(nil)

// Normalize runs the default Normalizer.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// NormalizePartial only trims and collapses whitespace. Live partial text is
// incomplete and must not be rewritten mid-utterance.
func NormalizePartial(raw string) string {
	return collapseSpaces(raw)
}

// Normalize applies, in order: whitespace collapse, filler removal, time
// canonicalization, punctuation repair, repeated-run removal and a final
// whitespace collapse. Empty input stays empty.
func (n *Normalizer) Normalize(raw string) string {
	s := collapseSpaces(raw)
	if s == "" {
		return ""
	}
	s = n.removeFillers(s)
	if s == "" {
		return ""
	}
	s = canonicalizeTimes(s)
	s = repairPunctuation(s)
	s = removeRepeatedRuns(s)
	return collapseSpaces(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (n *Normalizer) removeFillers(s string) string {
	for _, re := range n.fillers {
		s = re.ReplaceAllString(s, "")
	}
	s = collapseSpaces(s)
	s = reSpaceBeforeComma.ReplaceAllString(s, ",")
	s = reDoubleComma.ReplaceAllString(s, ",")
	s = reEdgeCommas.ReplaceAllString(s, "")
	return collapseSpaces(s)
}

func canonicalizeTimes(s string) string {
	s = reAmPm.ReplaceAllStringFunc(s, func(m string) string {
		sub := reAmPm.FindStringSubmatch(m)
		out := sub[1] + strings.ToLower(sub[2]) + "m"
		if sub[3] == "" {
			// the trailing period is punctuation, not part of "p.m."
			out += sub[4]
		}
		return out
	})
	s = reOClock.ReplaceAllString(s, "${1}oclock")
	s = reHourMin.ReplaceAllString(s, "${1}:${2}${3}")
	return s
}

func repairPunctuation(s string) string {
	s = reSpaceBeforePunct.ReplaceAllString(s, "$1")
	s = reMultiPeriod.ReplaceAllString(s, "...")
	s = reEllipsisJoin.ReplaceAllString(s, "... $1")
	s = reNoSpaceAfter.ReplaceAllString(s, "$1 $2")
	s = reSentenceJoin.ReplaceAllString(s, "$1. $2")
	s = commaBeforeConjunctions(s)
	s = capitalizeFirst(s)
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

// commaBeforeConjunctions turns "X and Y" into "X, and Y" when X and Y are
// bare words. X carries a comma afterwards, so a second pass is a no-op.
func commaBeforeConjunctions(s string) string {
	words := strings.Split(s, " ")
	for i := 1; i+1 < len(words); i++ {
		if _, ok := conjunctions[strings.ToLower(words[i])]; !ok {
			continue
		}
		left := words[i-1]
		right := strings.TrimRight(words[i+1], ".!?")
		if _, isConj := conjunctions[strings.ToLower(left)]; isConj {
			continue
		}
		if reBareWord.MatchString(left) && reBareWord.MatchString(right) {
			words[i-1] = left + ","
		}
	}
	return strings.Join(words, " ")
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLetter(r) || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// removeRepeatedRuns drops immediately repeated word runs, longest run first,
// so "call mom call mom" keeps one "call mom".
func removeRepeatedRuns(s string) string {
	words := strings.Fields(s)
	for size := maxRepeatRun; size >= minRepeatRun; size-- {
		for i := 0; i+2*size <= len(words); {
			if !sameRun(words[i:i+size], words[i+size:i+2*size]) {
				i++
				continue
			}
			// keep the trailing punctuation of the dropped run
			last := words[i+2*size-1]
			if tail := trailingPunct(last); tail != "" {
				kept := words[i+size-1]
				words[i+size-1] = strings.TrimRight(kept, ".,!?;:") + tail
			}
			words = append(words[:i+size], words[i+2*size:]...)
		}
	}
	return strings.Join(words, " ")
}

func sameRun(a, b []string) bool {
	for i := range a {
		if !strings.EqualFold(bareToken(a[i]), bareToken(b[i])) {
			return false
		}
	}
	return true
}

func bareToken(w string) string {
	return strings.Trim(w, ".,!?;:")
}

func trailingPunct(w string) string {
	trimmed := strings.TrimRight(w, ".,!?;:")
	return w[len(trimmed):]
}
