package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElements(t *testing.T) {
	document := `<feed>
		<title>FPDS</title>
		<entry><id>1</id></entry>
		<entry xml:lang="en">
			<id>2</id>
		</entry>
		<ENTRY><id>3</id></ENTRY>
	</feed>`

	entries := Elements(document, "entry")

	assert.Len(t, entries, 3)

	var ids []string
	for _, e := range entries {
		id, found := e.FindFirst(NewTag("id"))
		assert.True(t, found)
		ids = append(ids, id)
	}

	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestElements_none(t *testing.T) {
	assert.Empty(t, Elements(`<feed><title>nothing</title></feed>`, "entry"))
	assert.Empty(t, Elements(``, "entry"))
	assert.NotNil(t, Elements(``, "entry"))
}

func TestElements_unclosed(t *testing.T) {
	entries := Elements(`<entry><id>1</id></entry><entry><id>2</id>`, "entry")

	assert.Len(t, entries, 1)
}

func TestElements_doesNotMatchLongerNames(t *testing.T) {
	entries := Elements(`<entryList><entry>a</entry></entryList>`, "entry")

	assert.Equal(t, []Fragment{"a"}, entries)
}

func TestFragment_Attr(t *testing.T) {
	f := Fragment(`<ns1:typeOfSetAside description="SMALL BUSINESS SET ASIDE - TOTAL">SBA</ns1:typeOfSetAside>`)

	code, found := f.FindFirst(NewTag("typeOfSetAside"))
	assert.True(t, found)
	assert.Equal(t, "SBA", code)

	desc, found := f.Attr(NewAttribute("typeOfSetAside", "description"))
	assert.True(t, found)
	assert.Equal(t, "SMALL BUSINESS SET ASIDE - TOTAL", desc)
}
