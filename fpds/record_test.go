package fpds

import (
	"testing"

	"github.com/prognoshealth/fpdsproxy/markup"
	"github.com/stretchr/testify/assert"
)

func TestNewContractRecord_namespacedBeatsBare(t *testing.T) {
	entry := markup.Fragment(`<PIID>BARE</PIID><ns1:PIID>NAMESPACED</ns1:PIID>`)

	r := NewContractRecord(entry)

	assert.Equal(t, ptr("NAMESPACED"), r.PIID)
}

func TestNewContractRecord_aliasOrder(t *testing.T) {
	entry := markup.Fragment(`
<vendorDoingAsBusinessName>DBA NAME</vendorDoingAsBusinessName>
<vendorLegalOrganizationName>LEGAL NAME</vendorLegalOrganizationName>
<NAICSCode description="OLD DESCRIPTION">111111</NAICSCode>
<principalNAICSCode>541511</principalNAICSCode>
<ultimateCompletionDate>2030-01-01</ultimateCompletionDate>
<setAsideCode>8A</setAsideCode>`)

	r := NewContractRecord(entry)

	assert.Equal(t, ptr("LEGAL NAME"), r.VendorName)
	assert.Equal(t, ptr("541511"), r.NAICSCode)
	assert.Equal(t, ptr("OLD DESCRIPTION"), r.NAICSDescription)
	assert.Equal(t, ptr("2030-01-01"), r.CompletionDate)
	assert.Equal(t, ptr("8A"), r.SetAside)
	assert.Nil(t, r.SetAsideDescription)
}

func TestNewContractRecord_blankValuesAreAbsent(t *testing.T) {
	entry := markup.Fragment(`<PIID>   </PIID><vendorName></vendorName><agencyID name="">9700</agencyID>`)

	r := NewContractRecord(entry)

	assert.Nil(t, r.PIID)
	assert.Nil(t, r.VendorName)
	assert.Nil(t, r.AgencyName)
	assert.Equal(t, ptr("9700"), r.AgencyID)
	assert.False(t, r.HasContent())
}

func TestNewContractRecord_entitiesStayRaw(t *testing.T) {
	r := NewContractRecord(markup.Fragment(`<vendorName>SMITH &amp; SONS</vendorName>`))

	assert.Equal(t, ptr("SMITH &amp; SONS"), r.VendorName)
}

func TestContractRecord_HasContent(t *testing.T) {
	cases := []struct {
		record   ContractRecord
		expected bool
	}{
		{ContractRecord{}, false},
		{ContractRecord{PIID: ptr("X")}, true},
		{ContractRecord{VendorName: ptr("ACME")}, true},
		{ContractRecord{ObligatedAmount: 0.01}, true},
		{ContractRecord{ObligatedAmount: -100}, false},
		{ContractRecord{Description: ptr("only a description"), TotalValue: 100}, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, c.record.HasContent(), "%+v", c.record)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input    string
		expected float64
	}{
		{"125000.50", 125000.50},
		{" 42 ", 42},
		{"$1,250.00", 1250},
		{"-300", -300},
		{"1e3", 1000},
		{"", 0},
		{"not a number", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"12 345", 0},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, parseAmount(c.input), c.input)
	}
}
