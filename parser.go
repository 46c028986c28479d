package wikinode

import (
	"encoding/xml"
	"fmt"
	"io"
)

// The toplevel site info describing basic dump properties.
type SiteInfo struct {
	SiteName   string `xml:"sitename"`
	Base       string `xml:"base"`
	Generator  string `xml:"generator"`
	Case       string `xml:"case"`
	Namespaces []struct {
		Key   string `xml:"key,attr"`
		Case  string `xml:"case,attr"`
		Value string `xml:",chardata"`
	} `xml:"namespaces>namespace"`
}

// A wiki page, reduced to the fields the extractor reads.
type Page struct {
	Title     string
	Namespace string
	Text      string
	// Redirect is the target title when the dump marks the page with
	// a <redirect/> element.
	Redirect string
}

// That which emits wiki pages.
type Parser interface {
	// Get the next page.  Returns io.EOF at the end of the dump.
	Next() (*Page, error)
	// The toplevel site info.
	SiteInfo() SiteInfo
}

// ScanError is returned when the dump can't be read or isn't well
// formed.  Offset is the input byte offset the decoder had reached.
type ScanError struct {
	Offset int64
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("malformed dump at byte %d: %v", e.Offset, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// field is the page sub-element currently collecting character data.
type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldNamespace
	fieldText
)

func fieldFor(name string) field {
	switch name {
	case "title":
		return fieldTitle
	case "ns":
		return fieldNamespace
	case "text":
		return fieldText
	}
	return fieldNone
}

type streamParser struct {
	d        *xml.Decoder
	siteInfo SiteInfo

	inPage bool
	open   field
	page   Page
}

// NewParser gets a wikipedia dump parser reading from the given reader.
//
// Nothing is read until the first call to Next.  The site info is
// filled in as soon as the parser has passed the dump's <siteinfo>
// header, which comes before the first page.
func NewParser(r io.Reader) Parser {
	return &streamParser{d: xml.NewDecoder(r)}
}

func (p *streamParser) SiteInfo() SiteInfo {
	return p.siteInfo
}

func (p *streamParser) fail(err error) error {
	return &ScanError{Offset: p.d.InputOffset(), Err: err}
}

// Get the next page from the parser.
func (p *streamParser) Next() (*Page, error) {
	for {
		t, err := p.d.Token()
		if err == io.EOF {
			if p.inPage {
				return nil, p.fail(io.ErrUnexpectedEOF)
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, p.fail(err)
		}

		switch t := t.(type) {
		case xml.StartElement:
			if !p.inPage {
				switch t.Name.Local {
				case "page":
					p.inPage = true
					p.open = fieldNone
					p.page = Page{}
				case "siteinfo":
					if err := p.d.DecodeElement(&p.siteInfo, &t); err != nil {
						return nil, p.fail(err)
					}
				}
				continue
			}
			if t.Name.Local == "redirect" {
				for _, a := range t.Attr {
					if a.Name.Local == "title" {
						p.page.Redirect = a.Value
					}
				}
				continue
			}
			p.open = fieldFor(t.Name.Local)
			p.set("")
		case xml.CharData:
			if p.inPage && p.open != fieldNone {
				p.set(p.get() + string(t))
			}
		case xml.EndElement:
			if !p.inPage {
				continue
			}
			if t.Name.Local == "page" {
				rv := p.page
				p.inPage = false
				p.open = fieldNone
				p.page = Page{}
				return &rv, nil
			}
			if fieldFor(t.Name.Local) == p.open {
				p.open = fieldNone
			}
		}
	}
}

func (p *streamParser) get() string {
	switch p.open {
	case fieldTitle:
		return p.page.Title
	case fieldNamespace:
		return p.page.Namespace
	case fieldText:
		return p.page.Text
	}
	return ""
}

func (p *streamParser) set(s string) {
	switch p.open {
	case fieldTitle:
		p.page.Title = s
	case fieldNamespace:
		p.page.Namespace = s
	case fieldText:
		p.page.Text = s
	}
}
