package regionstests

import (
	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/regions"
)

func DoDefaultsTests(t *T) {
	t.Run("grand total", func(t *T) {
		page := t.FetchPage(regions.QuerySpec{})
		t.Check(invariants.ExpectedTotal(t.Options().ExpectedTotal, page))
	})

	t.Run("page size", func(t *T) {
		page := t.FetchPage(regions.QuerySpec{})
		t.Check(invariants.DefaultPageSize(page))
	})

	t.Run("omitted page equals page 1", func(t *T) {
		omitted := t.FetchPage(regions.QuerySpec{})
		explicit := t.FetchPage(regions.QuerySpec{}.WithPage(regions.DefaultPage))
		t.Check(invariants.DefaultPageEquivalence(omitted, explicit))
	})
}
