package markup

import (
	"regexp"
	"strings"
)

const (
	// namespace alias accepted in front of an element name, e.g. ns1:
	nsPrefix = `ns\d+:`

	// rest of an opening tag after the element name. Self-closing tags are rejected so
	// that text following them is never attributed to the empty element.
	openTail = `(?:\s[^>]*[^/>])?\s*>`
)

// Tag matches the text content of one element name.
type Tag struct {
	name  string
	forms [2]*regexp.Regexp
}

// NewTag compiles the namespaced and bare matchers for the given element name.
// Matching is case-insensitive.
func NewTag(name string) Tag {
	q := regexp.QuoteMeta(name)

	return Tag{
		name: name,
		forms: [2]*regexp.Regexp{
			regexp.MustCompile(`(?i)<` + nsPrefix + q + openTail + `([^<]*)`),
			regexp.MustCompile(`(?i)<` + q + openTail + `([^<]*)`),
		},
	}
}

// Name returns the element name the tag was built for.
func (t Tag) Name() string {
	return t.name
}

// Text returns the trimmed text of the first matching element. A form whose first
// match is blank does not count and the next form is tried.
func (t Tag) Text(markup string) (string, bool) {
	for _, rx := range t.forms {
		if rx == nil {
			continue
		}

		m := rx.FindStringSubmatch(markup)
		if m == nil {
			continue
		}

		if text := strings.TrimSpace(m[1]); text != "" {
			return text, true
		}
	}

	return "", false
}

// Attr returns the value of attr on the first matching opening tag.
func (t Tag) Attr(markup, attr string) (string, bool) {
	return NewAttribute(t.name, attr).Value(markup)
}

// Attribute matches one attribute on one element name.
type Attribute struct {
	tag   string
	attr  string
	forms [2]*regexp.Regexp
}

// NewAttribute compiles the namespaced and bare matchers for attr on the element
// name. Both double and single quoted values are accepted.
func NewAttribute(tag, attr string) Attribute {
	qt := regexp.QuoteMeta(tag)
	qa := regexp.QuoteMeta(attr)
	tail := `\s[^>]*?\b` + qa + `\s*=\s*(?:"([^"]*)"|'([^']*)')`

	return Attribute{
		tag:  tag,
		attr: attr,
		forms: [2]*regexp.Regexp{
			regexp.MustCompile(`(?i)<` + nsPrefix + qt + tail),
			regexp.MustCompile(`(?i)<` + qt + tail),
		},
	}
}

// String renders the attribute as tag@attr.
func (a Attribute) String() string {
	return a.tag + "@" + a.attr
}

// Value returns the trimmed value of the attribute on the first matching tag.
func (a Attribute) Value(markup string) (string, bool) {
	for _, rx := range a.forms {
		if rx == nil {
			continue
		}

		m := rx.FindStringSubmatch(markup)
		if m == nil {
			continue
		}

		v := m[1]
		if v == "" {
			v = m[2]
		}

		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}

	return "", false
}

// FindText is a convenience wrapper around NewTag(tag).Text(markup).
func FindText(markup, tag string) (string, bool) {
	return NewTag(tag).Text(markup)
}

// FindAttr is a convenience wrapper around NewAttribute(tag, attr).Value(markup).
func FindAttr(markup, tag, attr string) (string, bool) {
	return NewAttribute(tag, attr).Value(markup)
}
