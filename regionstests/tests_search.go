package regionstests

import (
	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/regions"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const exactRegionName = "Новосибирск"

var (
	casingVariants    = []string{"новосибирск", "НОВОСИБИРСК", "НоВоСиБиРсК"}
	lengthBoundary    = []string{"", "н", "но", "нов", "ново"}
	substringSearches = []string{"нов", "ново", "рск"}
)

func DoSearchTests(t *T) {
	t.Run("q overrides other parameters", func(t *T) {
		spec := regions.QuerySpec{
			Q:           ldvalue.NewOptionalString(exactRegionName),
			CountryCode: ldvalue.NewOptionalString("kz"),
			Page:        ldvalue.NewOptionalInt(3),
			PageSize:    ldvalue.NewOptionalInt(4),
		}
		t.Check(invariants.QueryDominates(exactRegionName, t.FetchPage(spec)))
	})

	t.Run("case-insensitive", func(t *T) {
		variants := []invariants.QueryResponse{
			{Q: exactRegionName, Response: t.Fetch(regions.Query(exactRegionName))},
		}
		for _, q := range casingVariants {
			variants = append(variants, invariants.QueryResponse{Q: q, Response: t.Fetch(regions.Query(q))})
		}
		t.Check(invariants.CaseInsensitive(variants))
	})

	t.Run("minimum query length", func(t *T) {
		t.RunParallel(searchCases(lengthBoundary, func(t *T, q string) {
			t.Check(invariants.MinimumQueryLength(t.Messages(), q, t.Fetch(regions.Query(q))))
		}))
	})

	t.Run("substring", func(t *T) {
		t.RunParallel(searchCases(substringSearches, func(t *T, q string) {
			t.Check(invariants.NameContains(q, t.FetchPage(regions.Query(q))))
		}))
	})
}

func searchCases(terms []string, action func(*T, string)) []Case {
	cases := make([]Case, 0, len(terms))
	for _, q := range terms {
		q := q
		cases = append(cases, Case{Name: "q=" + q, Action: func(t *T) { action(t, q) }})
	}
	return cases
}
