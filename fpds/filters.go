package fpds

import "strings"

// Filters holds the optional search filters supplied by a caller, keyed by filter
// name. Values are free-form strings; nothing beyond trimming is validated.
type Filters map[string]string

// Canonical filter names.
const (
	FilterNAICS     = "naics"
	FilterPSC       = "psc"
	FilterAgency    = "agency"
	FilterSetAside  = "setAside"
	FilterVendor    = "vendor"
	FilterStartDate = "startDate"
	FilterEndDate   = "endDate"
	FilterMinValue  = "minValue"
	FilterMaxValue  = "maxValue"
	FilterKeywords  = "q"
)

// filterAliases lists the request parameter names accepted for each filter, canonical
// name first.
var filterAliases = map[string][]string{
	FilterNAICS:     {FilterNAICS, "naicsCode"},
	FilterPSC:       {FilterPSC, "pscCode", "productServiceCode"},
	FilterAgency:    {FilterAgency, "agencyCode", "agencyId"},
	FilterSetAside:  {FilterSetAside, "set_aside", "setAsideType"},
	FilterVendor:    {FilterVendor, "vendorName"},
	FilterStartDate: {FilterStartDate, "dateFrom"},
	FilterEndDate:   {FilterEndDate, "dateTo"},
	FilterMinValue:  {FilterMinValue, "minAmount"},
	FilterMaxValue:  {FilterMaxValue, "maxAmount"},
	FilterKeywords:  {FilterKeywords, "keywords"},
}

// FiltersFromParams picks the recognized filters out of request parameters. When
// several aliases of one filter are present the earliest alias in the table wins.
// Unrecognized parameters and blank values are dropped.
func FiltersFromParams(params map[string]string) Filters {
	filters := Filters{}

	for name, aliases := range filterAliases {
		for _, alias := range aliases {
			if v := strings.TrimSpace(params[alias]); v != "" {
				filters[name] = v
				break
			}
		}
	}

	return filters
}

// Get returns the trimmed value of a filter and whether it is present and non-blank.
func (f Filters) Get(name string) (string, bool) {
	v := strings.TrimSpace(f[name])
	return v, v != ""
}
