package invariants

import (
	"testing"

	"github.com/regions-qa/regions-contract-tests/regions"

	"github.com/stretchr/testify/assert"
)

func TestPageParameter(t *testing.T) {
	for _, raw := range []string{"1.5", "фр#145^:Hk", "abc"} {
		assert.True(t, PageParameter(English, raw, errorResponse(English.PageNotInteger)).Passed, raw)
		assert.False(t, PageParameter(English, raw, errorResponse("nope")).Passed, raw)
		assert.False(t, PageParameter(English, raw, pageResponse()).Passed, raw)
	}
	for _, raw := range []string{"1", "2", "45"} {
		assert.True(t, PageParameter(English, raw, pageResponse()).Passed, raw)
		assert.False(t, PageParameter(English, raw, errorResponse(English.PageNotInteger)).Passed, raw)
	}
	assert.True(t, PageParameter(English, "0", errorResponse("'page' parameter must be greater than 0")).Passed)
	assert.True(t, PageParameter(English, "0", pageResponse()).Passed)
}

func TestPageSizeParameter(t *testing.T) {
	sizes := regions.ValidPageSizes
	enum := "'page_size' parameter must be one of: 5, 10, 15"
	assert.Equal(t, enum, English.InvalidPageSize(sizes))

	full := func(n int) regions.Response {
		all := fixtureRegions(22)
		return regions.Response{Page: &regions.ResultPage{Total: 22, Items: all[:n]}}
	}

	for _, n := range []int{5, 10, 15} {
		raw := map[int]string{5: "5", 10: "10", 15: "15"}[n]
		assert.True(t, PageSizeParameter(English, sizes, raw, full(n)).Passed, raw)
		assert.False(t, PageSizeParameter(English, sizes, raw, full(n-1)).Passed, raw)
		assert.False(t, PageSizeParameter(English, sizes, raw, errorResponse(enum)).Passed, raw)
	}
	for _, raw := range []string{"4", "6", "9", "11", "14", "16"} {
		assert.True(t, PageSizeParameter(English, sizes, raw, errorResponse(enum)).Passed, raw)
		assert.False(t, PageSizeParameter(English, sizes, raw, errorResponse(English.PageSizeNotInteger)).Passed, raw)
		assert.False(t, PageSizeParameter(English, sizes, raw, full(4)).Passed, raw)
	}
	assert.True(t, PageSizeParameter(English, sizes, "фр#145^:Hk", errorResponse(enum)).Passed)
	assert.True(t, PageSizeParameter(English, sizes, "фр#145^:Hk", errorResponse(English.PageSizeNotInteger)).Passed)
	assert.False(t, PageSizeParameter(English, sizes, "фр#145^:Hk", errorResponse("something else")).Passed)
	assert.False(t, PageSizeParameter(English, sizes, "фр#145^:Hk", full(15)).Passed)
}

func TestMessagesForLocale(t *testing.T) {
	m, err := MessagesForLocale("")
	assert.NoError(t, err)
	assert.Equal(t, English, m)

	m, err = MessagesForLocale("RU")
	assert.NoError(t, err)
	assert.Equal(t, Russian, m)

	_, err = MessagesForLocale("de")
	assert.Error(t, err)
}
