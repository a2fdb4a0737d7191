package markup

import "regexp"

// Fragment is a span of markup searched with first-match-wins semantics.
type Fragment string

// FindFirst returns the text of the first element matching t.
func (f Fragment) FindFirst(t Tag) (string, bool) {
	return t.Text(string(f))
}

// Attr returns the first value of the attribute a.
func (f Fragment) Attr(a Attribute) (string, bool) {
	return a.Value(string(f))
}

// Elements splits document into the inner markup of every name element, in document
// order. An opening marker is paired with the nearest closing marker, so nested
// elements of the same name are not supported.
func Elements(document, name string) []Fragment {
	q := regexp.QuoteMeta(name)
	rx := regexp.MustCompile(`(?is)<(?:` + nsPrefix + `)?` + q + `(?:\s[^>]*)?>(.*?)</(?:` + nsPrefix + `)?` + q + `\s*>`)

	matches := rx.FindAllStringSubmatch(document, -1)

	fragments := make([]Fragment, 0, len(matches))
	for _, m := range matches {
		fragments = append(fragments, Fragment(m[1]))
	}

	return fragments
}
