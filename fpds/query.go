package fpds

import (
	"fmt"
	"strings"
	"time"
)

// Query is an FPDS ATOM search expression: field clauses separated by spaces.
type Query string

const (
	// Wildcard matches every record and is used when no clause can be produced.
	Wildcard Query = "*"

	// DefaultWindow is the recency window applied when no signed-date range is given.
	DefaultWindow = 90 * 24 * time.Hour

	// highest obligated amount used to close an open-ended value range
	maxAmount = "999999999999"

	isoDateLayout  = "2006-01-02"
	fpdsDateLayout = "2006/01/02"
)

// FPDS search fields.
const (
	FieldNAICS          = "PRINCIPAL_NAICS_CODE"
	FieldPSC            = "PRODUCT_OR_SERVICE_CODE"
	FieldAgency         = "CONTRACTING_AGENCY_ID"
	FieldSetAside       = "TYPE_OF_SET_ASIDE"
	FieldVendor         = "VENDOR_NAME"
	FieldSignedDate     = "SIGNED_DATE"
	FieldObligatedValue = "OBLIGATED_AMOUNT"
)

// equalityFields maps filters rendered as FIELD:"value", in output order.
var equalityFields = []struct {
	filter string
	field  string
}{
	{FilterNAICS, FieldNAICS},
	{FilterPSC, FieldPSC},
	{FilterAgency, FieldAgency},
	{FilterSetAside, FieldSetAside},
	{FilterVendor, FieldVendor},
}

// QueryBuilder turns Filters into a Query.
//
// Values are inserted between quotes verbatim. A value that itself contains a quote
// character changes the meaning of the expression; callers forwarding untrusted input
// get exactly what they sent.
type QueryBuilder struct {
	// Window is the default signed-date range ending today. Zero disables the default
	// range, which lets an empty filter set produce the Wildcard.
	Window time.Duration

	nowFunc func() time.Time
}

// NewQueryBuilder returns a builder with the given default window.
func NewQueryBuilder(window time.Duration) *QueryBuilder {
	return &QueryBuilder{Window: window}
}

func (b *QueryBuilder) now() time.Time {
	if b.nowFunc != nil {
		return b.nowFunc()
	}

	return time.Now().UTC()
}

// Build renders one clause per recognized filter: equality fields first, then the
// signed-date range, the value range and finally any free-text keywords.
func (b *QueryBuilder) Build(filters Filters) Query {
	var clauses []string

	for _, f := range equalityFields {
		if v, ok := filters.Get(f.filter); ok {
			clauses = append(clauses, fmt.Sprintf(`%s:"%s"`, f.field, v))
		}
	}

	if r, ok := b.dateRange(filters); ok {
		clauses = append(clauses, FieldSignedDate+":"+r)
	}

	if r, ok := valueRange(filters); ok {
		clauses = append(clauses, FieldObligatedValue+":"+r)
	}

	if v, ok := filters.Get(FilterKeywords); ok {
		clauses = append(clauses, v)
	}

	if len(clauses) == 0 {
		return Wildcard
	}

	return Query(strings.Join(clauses, " "))
}

func (b *QueryBuilder) dateRange(filters Filters) (string, bool) {
	start, hasStart := filters.Get(FilterStartDate)
	end, hasEnd := filters.Get(FilterEndDate)

	window := b.Window
	if window <= 0 && (hasStart || hasEnd) {
		window = DefaultWindow
	}

	today := b.now()

	switch {
	case hasStart && hasEnd:
		start, end = NormalizeDate(start), NormalizeDate(end)
	case hasStart:
		start, end = NormalizeDate(start), today.Format(fpdsDateLayout)
	case hasEnd:
		from := today.Add(-window)
		if t, err := time.Parse(isoDateLayout, end); err == nil {
			from = t.Add(-window)
		}
		start, end = from.Format(fpdsDateLayout), NormalizeDate(end)
	default:
		if window <= 0 {
			return "", false
		}
		start, end = today.Add(-window).Format(fpdsDateLayout), today.Format(fpdsDateLayout)
	}

	return fmt.Sprintf("[%s,%s]", start, end), true
}

func valueRange(filters Filters) (string, bool) {
	lo, hasLo := filters.Get(FilterMinValue)
	hi, hasHi := filters.Get(FilterMaxValue)

	if !hasLo && !hasHi {
		return "", false
	}

	if !hasLo {
		lo = "0"
	}

	if !hasHi {
		hi = maxAmount
	}

	return fmt.Sprintf("[%s,%s]", lo, hi), true
}

// NormalizeDate rewrites a YYYY-MM-DD date as YYYY/MM/DD. The components are only
// re-joined, never validated; anything that does not split into three dash-separated
// parts is returned unchanged.
func NormalizeDate(date string) string {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return date
	}

	return strings.Join(parts, "/")
}
