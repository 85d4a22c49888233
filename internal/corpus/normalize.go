package corpus

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	spaceRunRE    = regexp.MustCompile(`[ \t]+`)
	newlineRunRE  = regexp.MustCompile(`\n{3,}`)
	carriageRunRE = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// NormalizeText canonicalizes whitespace in a narrative while keeping
// case and accents: unix newlines, single spaces, at most one blank
// line in a row.
func NormalizeText(s string) string {
	text := carriageRunRE.Replace(s)
	text = spaceRunRE.ReplaceAllString(text, " ")
	text = newlineRunRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// NormalizeKey lowercases, removes diacritics and collapses runs of
// whitespace. Comparisons between generated narratives and reference
// material always happen on this folded form.
func NormalizeKey(s string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Tokenize splits folded text into comparison tokens. Single-rune
// tokens carry no signal and are dropped.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(NormalizeKey(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// TokenSet returns the deduplicated token set of a text.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(s) {
		set[tok] = struct{}{}
	}
	return set
}

// Jaccard computes token-set similarity between two texts. An empty
// token set on either side yields zero.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// CleanName strips surrounding punctuation and collapses whitespace in
// a person name taken from a structured payload.
func CleanName(name string) string {
	cleaned := strings.TrimFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(strings.Fields(cleaned), " ")
}
