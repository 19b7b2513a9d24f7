package invariants

import (
	"testing"

	"github.com/regions-qa/regions-contract-tests/regions"

	"github.com/stretchr/testify/assert"
)

var validCodes = []string{"ru", "kg", "kz", "cz"}

func TestDistinctCountryCodes(t *testing.T) {
	pages := sweep(fixtureRegions(22), 15, 2)
	assert.Equal(t, []string{"cz", "kg", "kz", "ru", "ua"}, DistinctCountryCodes(pages...))
	assert.Empty(t, DistinctCountryCodes())
}

func TestSingleCountryCode(t *testing.T) {
	page := *pageResponse(region("1", "Бишкек", "kg"), region("2", "Ош", "kg")).Page
	assert.True(t, SingleCountryCode("kg", page).Passed)
	assert.True(t, SingleCountryCode("KG", page).Passed)
	assert.False(t, SingleCountryCode("kz", page).Passed)

	mixed := *pageResponse(region("1", "Бишкек", "kg"), region("3", "Алматы", "kz")).Page
	r := SingleCountryCode("kg", mixed)
	assert.False(t, r.Passed)
	assert.Contains(t, r.Detail, "more than one")

	assert.False(t, SingleCountryCode("kg", regions.ResultPage{}).Passed)
}

func TestInvalidCountryCode(t *testing.T) {
	msg := "'country_code' parameter must be one of: ru, kg, kz, cz"
	assert.Equal(t, msg, English.InvalidCountryCode(validCodes))

	assert.True(t, InvalidCountryCode(English, validCodes, "us", errorResponse(msg)).Passed)
	assert.True(t, InvalidCountryCode(English, validCodes, "us", pageResponse()).Passed)
	assert.False(t, InvalidCountryCode(English, validCodes, "us", errorResponse("bad code")).Passed)
	assert.False(t, InvalidCountryCode(English, validCodes, "us", pageResponse(region("1", "Москва", "ru"))).Passed)
}

func TestDistinctCountries(t *testing.T) {
	pages := sweep(fixtureRegions(22), 15, 2)
	assert.True(t, DistinctCountries(5, pages).Passed)
	assert.False(t, DistinctCountries(4, pages).Passed)
}
