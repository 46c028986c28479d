package wikinode

import (
	"strings"
	"unicode/utf8"
)

// Sentence endings, most preferred first.
var sentenceEnds = []string{". ", ".\n", "다.", "다!\n", "다?\n", "요.", "음.", "임."}

// SmartTruncate shortens text to at most maxChars code points, trying
// to end on a sentence boundary that leaves at least minChars code
// points.
//
// Text that already fits is returned as is.  Otherwise the endings
// are tried in order over the code points between minChars and
// maxChars, and the last occurrence of the first ending found is
// where the text gets cut.  With no ending in range it's cut at
// maxChars, mid sentence if need be.
func SmartTruncate(text string, minChars, maxChars int) string {
	n := utf8.RuneCountInString(text)
	if n <= maxChars {
		return text
	}
	if maxChars < 0 {
		maxChars = 0
	}
	if minChars < 0 {
		minChars = 0
	}
	if minChars > maxChars {
		minChars = maxChars
	}

	lo, hi := runeOffset(text, minChars), runeOffset(text, maxChars)
	window := text[lo:hi]
	for _, end := range sentenceEnds {
		if i := strings.LastIndex(window, end); i >= 0 {
			return strings.TrimSpace(text[:lo+i+len(end)])
		}
	}

	return strings.TrimSpace(text[:hi])
}

// runeOffset returns the byte offset of the n'th code point of s, or
// len(s) if s is shorter than that.
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
