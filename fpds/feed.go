package fpds

import (
	"regexp"

	"github.com/prognoshealth/fpdsproxy/markup"
)

var feedRoot = regexp.MustCompile(`(?i)<(?:[a-z][\w.-]*:)?feed[\s>]`)

// Entries splits an Atom document into its entry fragments in document order.
func Entries(document string) []markup.Fragment {
	return markup.Elements(document, "entry")
}

// ParseFeed extracts a ContractRecord from every entry of an Atom document and keeps
// the ones that pass ContractRecord.HasContent, preserving document order.
//
// The result is never nil. A document that cannot be processed yields an empty slice,
// so an unusable document and a feed without usable entries look the same here. Use
// IsFeed to tell a non-feed body apart.
func ParseFeed(document string) (records []ContractRecord) {
	defer func() {
		if recover() != nil {
			records = []ContractRecord{}
		}
	}()

	entries := Entries(document)

	records = make([]ContractRecord, 0, len(entries))
	for _, entry := range entries {
		if r := NewContractRecord(entry); r.HasContent() {
			records = append(records, r)
		}
	}

	return records
}

// IsFeed reports whether document has an Atom feed root element.
func IsFeed(document string) bool {
	return feedRoot.MatchString(document)
}
