// Package markup provides a small first-match tag matcher for semi-structured XML
// such as the FPDS Atom feed.
//
// It is deliberately not an XML parser. An element is located by its opening tag,
// written either bare (<PIID>) or with a numbered namespace alias (<ns1:PIID>), and its
// text is everything up to the next '<'. Nesting is not tracked, entities are not
// decoded and only the first occurrence of a tag is ever returned.
//
// The namespaced form is always tried before the bare form because the feed moved
// fields into namespaces across schema revisions.
package markup
