package fpds

import (
	"math"
	"strconv"
	"strings"

	"github.com/prognoshealth/fpdsproxy/markup"
)

// ContractRecord is one contract action extracted from a feed entry. Optional text
// fields are nil when the entry carries no value for them; amounts default to 0.
type ContractRecord struct {
	PIID                   *string `json:"piid"`
	AgencyID               *string `json:"agencyId"`
	AgencyName             *string `json:"agencyName"`
	VendorName             *string `json:"vendorName"`
	VendorUEI              *string `json:"vendorUei"`
	ParentName             *string `json:"parentName"`
	ObligatedAmount        float64 `json:"obligatedAmount"`
	TotalValue             float64 `json:"totalValue"`
	SignedDate             *string `json:"signedDate"`
	EffectiveDate          *string `json:"effectiveDate"`
	CompletionDate         *string `json:"completionDate"`
	NAICSCode              *string `json:"naicsCode"`
	NAICSDescription       *string `json:"naicsDescription"`
	PSCCode                *string `json:"pscCode"`
	PSCDescription         *string `json:"pscDescription"`
	PricingType            *string `json:"pricingType"`
	PricingTypeDescription *string `json:"pricingTypeDescription"`
	SetAside               *string `json:"setAside"`
	SetAsideDescription    *string `json:"setAsideDescription"`
	Description            *string `json:"description"`
}

// HasContent reports whether the record carries enough signal to be worth returning:
// an identifier, a vendor name or a positive obligated amount.
func (r ContractRecord) HasContent() bool {
	return r.PIID != nil || r.VendorName != nil || r.ObligatedAmount > 0
}

// source is one place a field value can be read from: the text of tag, or the value
// of attr on tag when attr is set.
type source struct {
	tag  markup.Tag
	attr *markup.Attribute
}

func (s source) read(f markup.Fragment) (string, bool) {
	if s.attr != nil {
		return f.Attr(*s.attr)
	}

	return f.FindFirst(s.tag)
}

func text(tag string) source {
	return source{tag: markup.NewTag(tag)}
}

func attr(tag, name string) source {
	a := markup.NewAttribute(tag, name)
	return source{tag: markup.NewTag(tag), attr: &a}
}

// textField binds an ordered list of aliases to a string field of the record.
type textField struct {
	name    string
	sources []source
	set     func(*ContractRecord, string)
}

// amountField binds an ordered list of aliases to a numeric field of the record.
type amountField struct {
	name    string
	sources []source
	set     func(*ContractRecord, float64)
}

// Aliases are tried in order per field and the first hit wins. Several fields were
// renamed between feed schema revisions, hence the alternatives.
var textFields = []textField{
	{"piid", []source{text("PIID")}, func(r *ContractRecord, v string) { r.PIID = &v }},
	{"agencyId", []source{text("agencyID"), text("contractingOfficeAgencyID")}, func(r *ContractRecord, v string) { r.AgencyID = &v }},
	{"agencyName", []source{attr("agencyID", "name"), attr("contractingOfficeAgencyID", "name"), text("contractingOfficeAgencyName")}, func(r *ContractRecord, v string) { r.AgencyName = &v }},
	{"vendorName", []source{text("vendorName"), text("vendorLegalOrganizationName"), text("vendorDoingAsBusinessName")}, func(r *ContractRecord, v string) { r.VendorName = &v }},
	{"vendorUei", []source{text("UEI"), text("vendorUEI"), text("DUNSNumber")}, func(r *ContractRecord, v string) { r.VendorUEI = &v }},
	{"parentName", []source{text("ultimateParentUEIName"), text("globalParentDUNSName"), text("parentDUNSName")}, func(r *ContractRecord, v string) { r.ParentName = &v }},
	{"signedDate", []source{text("signedDate")}, func(r *ContractRecord, v string) { r.SignedDate = &v }},
	{"effectiveDate", []source{text("effectiveDate")}, func(r *ContractRecord, v string) { r.EffectiveDate = &v }},
	{"completionDate", []source{text("currentCompletionDate"), text("ultimateCompletionDate")}, func(r *ContractRecord, v string) { r.CompletionDate = &v }},
	{"naicsCode", []source{text("principalNAICSCode"), text("NAICSCode")}, func(r *ContractRecord, v string) { r.NAICSCode = &v }},
	{"naicsDescription", []source{attr("principalNAICSCode", "description"), attr("NAICSCode", "description")}, func(r *ContractRecord, v string) { r.NAICSDescription = &v }},
	{"pscCode", []source{text("productOrServiceCode"), text("PSCCode")}, func(r *ContractRecord, v string) { r.PSCCode = &v }},
	{"pscDescription", []source{attr("productOrServiceCode", "description"), attr("PSCCode", "description")}, func(r *ContractRecord, v string) { r.PSCDescription = &v }},
	{"pricingType", []source{text("typeOfContractPricing")}, func(r *ContractRecord, v string) { r.PricingType = &v }},
	{"pricingTypeDescription", []source{attr("typeOfContractPricing", "description")}, func(r *ContractRecord, v string) { r.PricingTypeDescription = &v }},
	{"setAside", []source{text("typeOfSetAside"), text("setAsideCode")}, func(r *ContractRecord, v string) { r.SetAside = &v }},
	{"setAsideDescription", []source{attr("typeOfSetAside", "description")}, func(r *ContractRecord, v string) { r.SetAsideDescription = &v }},
	{"description", []source{text("descriptionOfContractRequirement"), text("description")}, func(r *ContractRecord, v string) { r.Description = &v }},
}

var amountFields = []amountField{
	{"obligatedAmount", []source{text("obligatedAmount"), text("totalObligatedAmount")}, func(r *ContractRecord, v float64) { r.ObligatedAmount = v }},
	{"totalValue", []source{text("baseAndAllOptionsValue"), text("totalBaseAndAllOptionsValue"), text("baseAndExercisedOptionsValue")}, func(r *ContractRecord, v float64) { r.TotalValue = v }},
}

func firstOf(f markup.Fragment, sources []source) (string, bool) {
	for _, s := range sources {
		if v, ok := s.read(f); ok {
			return v, true
		}
	}

	return "", false
}

// NewContractRecord extracts a record from a single entry fragment.
func NewContractRecord(entry markup.Fragment) ContractRecord {
	var r ContractRecord

	for _, field := range textFields {
		if v, ok := firstOf(entry, field.sources); ok {
			field.set(&r, v)
		}
	}

	for _, field := range amountFields {
		v, _ := firstOf(entry, field.sources)
		field.set(&r, parseAmount(v))
	}

	return r
}

// parseAmount reads a monetary amount leniently. Anything unparsable is 0.
func parseAmount(s string) float64 {
	s = strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
