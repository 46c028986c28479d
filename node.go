package wikinode

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// A Node is one dictionary entry: an article title and its lead.
type Node struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Options controls how leads are sized and how a run is driven.
//
// All lengths count code points, not bytes.  A zero length takes its
// value from DefaultOptions, so the zero Options is usable.
type Options struct {
	// Truncation tries to cut between MinChars and MaxChars.
	MinChars int
	MaxChars int
	// Leads shorter than MinContent after truncation are dropped.
	MinContent int
	// NFC normalizes titles and leads to Unicode NFC before measuring.
	NFC bool

	// Workers > 1 builds nodes concurrently.  Output order is kept.
	Workers int
	// Progress, when set, is called every ProgressEvery scanned pages.
	Progress      func(Stats)
	ProgressEvery int64
}

// DefaultOptions are the lengths the dictionary index was built with.
func DefaultOptions() Options {
	return Options{
		MinChars:      500,
		MaxChars:      1500,
		MinContent:    100,
		NFC:           true,
		Workers:       1,
		ProgressEvery: 1000,
	}
}

// Build turns a page into a Node, or reports why it can't.
//
// Only a page with reason Accepted yields a usable Node.
func Build(p *Page, opts Options) (Node, Reason) {
	opts = opts.withDefaults()
	if r := classify(p); r != Accepted {
		return Node{}, r
	}

	lead := ExtractLead(p.Text)
	if lead == "" {
		return Node{}, EmptyLead
	}

	title, content := p.Title, CleanMarkup(lead)
	if opts.NFC {
		title, content = norm.NFC.String(title), norm.NFC.String(content)
	}
	content = SmartTruncate(content, opts.MinChars, opts.MaxChars)
	if utf8.RuneCountInString(content) < opts.MinContent {
		return Node{}, TooShort
	}

	return Node{Title: title, Content: content}, Accepted
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinChars == 0 {
		o.MinChars = d.MinChars
	}
	if o.MaxChars == 0 {
		o.MaxChars = d.MaxChars
	}
	if o.MinContent == 0 {
		o.MinContent = d.MinContent
	}
	return o
}
