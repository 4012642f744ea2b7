package render

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes all HTML markup from s and decodes numeric and named
// character references into literal characters. Text content is kept, so
// stripping never silently drops what a reader wrote between tags. The same
// pass turns rendered documents into the plain text handed to the search
// indexer.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed trailing input; either way the text
			// collected so far is the result.
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
