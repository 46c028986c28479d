package wikinode

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var linkRE *regexp.Regexp

func init() {
	linkRE = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]*)?\]\]`)
}

var fileNamespaces = []string{"file:", "image:", "파일:", "그림:"}

func isFileLink(target string) bool {
	lower := strings.ToLower(target)
	for _, ns := range fileNamespaces {
		if strings.HasPrefix(lower, ns) {
			return true
		}
	}
	return false
}

// FindLinks finds the targets of the wiki links in a lead, in order.
//
// [[target|label]] yields target.  Section anchors are dropped and the
// first letter is upper-cased the way the wiki names pages.  File
// links are skipped.
func FindLinks(text string) []string {
	matches := linkRE.FindAllStringSubmatch(text, -1)

	rv := make([]string, 0, len(matches))
	for _, x := range matches {
		target := x[1]
		if i := strings.IndexByte(target, '#'); i >= 0 {
			target = target[:i]
		}
		target = strings.TrimSpace(target)
		if target == "" || isFileLink(target) {
			continue
		}
		r, size := utf8.DecodeRuneInString(target)
		rv = append(rv, string(unicode.ToUpper(r))+target[size:])
	}

	return rv
}
