package wikinode

import (
	"regexp"
	"strings"
)

var fileLinkRE, refRE, commentRE, tagRE, newlinesRE, spacesRE *regexp.Regexp

func init() {
	fileLinkRE = regexp.MustCompile(`\[\[(?i:File|Image|파일|그림):[^\]]*\]\]`)
	refRE = regexp.MustCompile(`(?s)<ref(?:\s[^>]*?)?/>|<ref(?:\s[^>]*)?>.*?</ref>`)
	commentRE = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRE = regexp.MustCompile(`<[^>]+>`)
	newlinesRE = regexp.MustCompile(`\n{3,}`)
	spacesRE = regexp.MustCompile(` {2,}`)
}

// CleanMarkup strips the markup noise left in a lead paragraph: file
// and image links, citations, comments and html tags, then squeezes
// the blank lines and spaces they leave behind.
//
// The order matters.  Citations go before the generic tag rule so
// their bodies are dropped with them.
func CleanMarkup(text string) string {
	text = fileLinkRE.ReplaceAllString(text, "")
	text = refRE.ReplaceAllString(text, "")
	text = commentRE.ReplaceAllString(text, "")
	text = tagRE.ReplaceAllString(text, "")
	text = newlinesRE.ReplaceAllString(text, "\n\n")
	text = spacesRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
