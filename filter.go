package wikinode

import (
	"strings"
)

// Reason says why a page did or did not become a Node.
type Reason int

const (
	Accepted Reason = iota
	WrongNamespace
	EmptyTitle
	Redirect
	Disambiguation
	EmptyLead
	TooShort
)

var reasonNames = [...]string{
	Accepted:       "accepted",
	WrongNamespace: "namespace",
	EmptyTitle:     "empty title",
	Redirect:       "redirect",
	Disambiguation: "disambiguation",
	EmptyLead:      "empty lead",
	TooShort:       "too short",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// The main (article) namespace.
const MainNamespace = "0"

var redirectMarkers = []string{"#REDIRECT", "#넘겨주기"}

var disambigTitleMarkers = []string{"(동음이의)", "(disambiguation)"}

var disambigTemplates = []string{"{{동음이의}}", "{{disambiguation}}", "{{disambig}}"}

// Eligible reports whether a page is an article worth looking at:
// main namespace with a title.
func Eligible(p *Page) bool {
	return p.Namespace == MainNamespace && p.Title != ""
}

// IsRedirect reports whether the page text is a redirect.
func IsRedirect(text string) bool {
	text = strings.TrimSpace(text)
	for _, m := range redirectMarkers {
		if len(text) >= len(m) && strings.EqualFold(text[:len(m)], m) {
			return true
		}
	}
	return false
}

// IsDisambiguation reports whether a page is a disambiguation page,
// judged by either its title or the template in its text.
func IsDisambiguation(title, text string) bool {
	for _, m := range disambigTitleMarkers {
		if strings.Contains(title, m) {
			return true
		}
	}
	lower := strings.ToLower(text)
	for _, m := range disambigTemplates {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// classify runs the cheap per-page checks that don't look at the lead.
func classify(p *Page) Reason {
	if !Eligible(p) {
		if p.Namespace != MainNamespace {
			return WrongNamespace
		}
		return EmptyTitle
	}
	switch {
	case p.Redirect != "" || IsRedirect(p.Text):
		return Redirect
	case IsDisambiguation(p.Title, p.Text):
		return Disambiguation
	}
	return Accepted
}
