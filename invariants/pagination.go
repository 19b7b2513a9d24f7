package invariants

import (
	"github.com/regions-qa/regions-contract-tests/regions"
)

// IDSet is the fold of region ids over a sequence of pages.
type IDSet struct {
	IDs        map[regions.RegionID]struct{}
	Duplicates []regions.RegionID
	Collected  int
}

func (s IDSet) Len() int { return len(s.IDs) }

func (s IDSet) Has(id regions.RegionID) bool {
	_, ok := s.IDs[id]
	return ok
}

// CombineIDs folds the ids of all pages into one set, remembering every id seen more than once.
func CombineIDs(pages []regions.ResultPage) IDSet {
	set := IDSet{IDs: make(map[regions.RegionID]struct{})}
	for _, p := range pages {
		set = set.add(p)
	}
	return set
}

func (s IDSet) add(p regions.ResultPage) IDSet {
	for _, item := range p.Items {
		s.Collected++
		if s.Has(item.ID) {
			s.Duplicates = append(s.Duplicates, item.ID)
			continue
		}
		s.IDs[item.ID] = struct{}{}
	}
	return s
}

// PageCount is the number of pages needed to show total items at pageSize items per page.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// TotalStable checks that every page reports the same grand total.
func TotalStable(pages []regions.ResultPage) Result {
	const name = "total is stable across pages"
	if len(pages) == 0 {
		return fail(name, "no pages were fetched")
	}
	want := pages[0].Total
	for i, p := range pages[1:] {
		if p.Total != want {
			return fail(name, "page 1 reported total %d but page %d reported %d", want, i+2, p.Total)
		}
	}
	return pass(name, "all %d pages report total %d", len(pages), want)
}

// Completeness checks that a full sweep of pages at one page size shows every region exactly
// once. pages[i] must be the response for page i+1. Every page before the last must be full;
// the last page may be short, and any page past it must be empty.
func Completeness(pageSize int, pages []regions.ResultPage) Result {
	const name = "pages cover all regions exactly once"
	if r := TotalStable(pages); !r.Passed {
		return Result{Name: name, Passed: false, Detail: r.Detail}
	}
	total := pages[0].Total
	expectedPages := PageCount(total, pageSize)
	if len(pages) < expectedPages {
		return fail(name, "total %d at page_size %d needs %d pages but only %d were fetched",
			total, pageSize, expectedPages, len(pages))
	}
	for i, p := range pages {
		n := len(p.Items)
		switch {
		case i < expectedPages-1:
			if n != pageSize {
				return fail(name, "page %d of %d has %d items, expected a full page of %d",
					i+1, expectedPages, n, pageSize)
			}
		case i == expectedPages-1:
			want := total - (expectedPages-1)*pageSize
			if n != want {
				return fail(name, "last page %d has %d items, expected %d", i+1, n, want)
			}
		default:
			if n != 0 {
				return fail(name, "page %d is past the last page %d but has %d items", i+1, expectedPages, n)
			}
		}
	}

	set := CombineIDs(pages)
	if len(set.Duplicates) > 0 {
		return fail(name, "ids returned on more than one page: %v", set.Duplicates)
	}
	if set.Len() != total {
		return fail(name, "collected %d distinct ids but total is %d", set.Len(), total)
	}
	return pass(name, "%d distinct ids over %d pages of %d match total %d",
		set.Len(), expectedPages, pageSize, total)
}

// DefaultPageEquivalence checks that omitting page returns the same items, in the same order,
// as explicitly requesting page 1.
func DefaultPageEquivalence(omitted, explicit regions.ResultPage) Result {
	const name = "omitted page equals page 1"
	a, b := omitted.IDs(), explicit.IDs()
	if omitted.Total != explicit.Total {
		return fail(name, "total without page is %d, with page=1 is %d", omitted.Total, explicit.Total)
	}
	if len(a) != len(b) {
		return fail(name, "%d items without page, %d items with page=1", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fail(name, "item %d differs: %s without page, %s with page=1", i, a[i], b[i])
		}
	}
	return pass(name, "both return the same %d items", len(a))
}

// DefaultPageSize checks that omitting page_size yields the default number of items.
func DefaultPageSize(page regions.ResultPage) Result {
	r := PageSizeHonoured(regions.DefaultPageSize, page)
	r.Name = "default page size is 15"
	return r
}

// PageSizeHonoured checks that the first page has min(size, total) items.
func PageSizeHonoured(size int, page regions.ResultPage) Result {
	const name = "page size is honoured"
	want := size
	if page.Total < want {
		want = page.Total
	}
	if len(page.Items) != want {
		return fail(name, "expected %d items (page_size %d, total %d), got %d",
			want, size, page.Total, len(page.Items))
	}
	return pass(name, "%d items", want)
}

// PageLength checks the exact number of items on one page.
func PageLength(want int, page regions.ResultPage) Result {
	const name = "page length"
	if len(page.Items) != want {
		return fail(name, "expected %d items, got %d", want, len(page.Items))
	}
	return pass(name, "%d items", want)
}

// ExpectedTotal checks the grand total against a known value.
func ExpectedTotal(want int, page regions.ResultPage) Result {
	const name = "grand total"
	if page.Total != want {
		return fail(name, "expected total %d, got %d", want, page.Total)
	}
	return pass(name, "total is %d", want)
}
