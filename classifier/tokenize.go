package classifier

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonTokenChars = regexp.MustCompile(`[^\pL\pN\s]+`)

// tokenizeText splits free-form text in to tokens: lower-case, unicode
// normalization, and accent folding, so that term-set matching is not
// defeated by trivial formatting tricks.
func tokenizeText(text string) []string {
	// the transform chain is stateful, so build it per call
	normFunc := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	split := strings.ToLower(nonTokenChars.ReplaceAllString(text, " "))
	folded, _, err := transform.String(normFunc, split)
	if err != nil {
		slog.Warn("unicode normalization error", "err", err)
		folded = split
	}
	return strings.Fields(folded)
}
