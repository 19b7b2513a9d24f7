package regionstests

import (
	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/regions"
)

var invalidCountryCodes = []string{"us", "fr", "gb", "ua", "1234", "фр#145^:Hk"}

func DoCountryFilterTests(t *T) {
	t.Run("valid", func(t *T) {
		var cases []Case
		for _, code := range t.Options().ValidCountryCodes {
			code := code
			cases = append(cases, Case{Name: code, Action: func(t *T) {
				page := t.FetchPage(regions.CountryFilter(code).WithPageSize(regions.DefaultPageSize))
				t.Check(invariants.SingleCountryCode(code, page))
			}})
		}
		t.RunParallel(cases)
	})

	t.Run("invalid", func(t *T) {
		var cases []Case
		for _, code := range invalidCountryCodes {
			code := code
			cases = append(cases, Case{Name: code, Action: func(t *T) {
				resp := t.Fetch(regions.CountryFilter(code))
				t.Check(invariants.InvalidCountryCode(t.Messages(), t.Options().ValidCountryCodes, code, resp))
			}})
		}
		t.RunParallel(cases)
	})

	t.Run("all countries are listed", func(t *T) {
		pages := t.FetchSweep(regions.DefaultPageSize, regions.QuerySpec{})
		t.Check(invariants.DistinctCountries(t.Options().ExpectedCountries, pages))
	})
}
