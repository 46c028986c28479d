package wikinode

import (
	"regexp"
	"strings"
)

var templateRE *regexp.Regexp

func init() {
	// Non-greedy, so a nested {{a {{b}} c}} leaves " c}}" behind.
	templateRE = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
}

// ExtractLead finds the introductory paragraphs of an article: the
// text before the first section heading, less templates, infoboxes
// and table rows.
//
// An empty result means the article has no usable lead.
func ExtractLead(text string) string {
	if i := strings.Index(text, "\n=="); i >= 0 {
		text = text[:i]
	}
	text = templateRE.ReplaceAllString(text, "")

	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "{|") || strings.HasPrefix(p, "|") {
			continue
		}
		paras = append(paras, p)
	}

	return strings.Join(paras, "\n\n")
}
