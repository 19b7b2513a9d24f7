package regionstests

import (
	"fmt"

	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/regions"
)

func DoPaginationTests(t *T) {
	var cases []Case
	for _, size := range regions.ValidPageSizes {
		size := size
		cases = append(cases, Case{Name: fmt.Sprintf("sweep with page_size=%d", size), Action: func(t *T) {
			pages := t.FetchSweep(size, regions.QuerySpec{})
			t.Check(invariants.First(
				invariants.ExpectedTotal(t.Options().ExpectedTotal, pages[0]),
				invariants.Completeness(size, pages),
			))
		}})
	}
	t.RunParallel(cases)

	// Fixed page numbers, independent of the total the service reports.
	t.Run("page_size=10 pages 1 to 3", func(t *T) {
		var pages []regions.ResultPage
		for p := 1; p <= 3; p++ {
			pages = append(pages, t.FetchPage(regions.PageOf(p, 10)))
		}
		t.Check(invariants.TotalStable(pages))
		t.Check(invariants.PageLength(10, pages[0]))
		t.Check(invariants.PageLength(10, pages[1]))
		set := invariants.CombineIDs(pages)
		if want := t.Options().ExpectedTotal; set.Collected != want || set.Len() != want {
			t.Errorf("expected %d distinct ids on pages 1 to 3, collected %d ids of which %d distinct",
				want, set.Collected, set.Len())
		}
	})
}
