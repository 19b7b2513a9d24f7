package invariants

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/regions-qa/regions-contract-tests/regions"
)

// QueryResponse pairs a search term with the response it produced.
type QueryResponse struct {
	Q        string
	Response regions.Response
}

// CaseInsensitive checks that every casing variant of a search term returns the same regions,
// and that they found at least one.
func CaseInsensitive(variants []QueryResponse) Result {
	const name = "search is case-insensitive"
	if len(variants) < 2 {
		return fail(name, "need at least two casing variants, got %d", len(variants))
	}
	var first []string
	for i, v := range variants {
		if !v.Response.IsPage() {
			return fail(name, "q=%q returned an error instead of results: %s", v.Q, v.Response)
		}
		ids := sortedIDs(*v.Response.Page)
		if i == 0 {
			first = ids
			continue
		}
		if strings.Join(ids, ",") != strings.Join(first, ",") {
			return fail(name, "q=%q returned ids %v but q=%q returned %v", variants[0].Q, first, v.Q, ids)
		}
	}
	if len(first) == 0 {
		return fail(name, "none of the %d variants of q=%q found any region", len(variants), variants[0].Q)
	}
	return pass(name, "%d variants returned the same %d regions", len(variants), len(first))
}

// NameContains checks that search returned at least one region and that every returned name
// contains the search term, ignoring case.
func NameContains(q string, page regions.ResultPage) Result {
	const name = "search matches substrings of names"
	if len(page.Items) == 0 {
		return fail(name, "q=%q returned no regions", q)
	}
	needle := strings.ToLower(q)
	for _, item := range page.Items {
		if !strings.Contains(strings.ToLower(item.Name), needle) {
			return fail(name, "q=%q returned %q which does not contain it", q, item.Name)
		}
	}
	return pass(name, "all %d names contain %q", len(page.Items), q)
}

// QueryDominates checks that a search for an exact region name returns only that region,
// whatever other filters were sent alongside it.
func QueryDominates(q string, page regions.ResultPage) Result {
	const name = "q overrides other parameters"
	if len(page.Items) != 1 {
		return fail(name, "expected exactly one region named %q, got %d items: %v",
			q, len(page.Items), names(page))
	}
	if page.Items[0].Name != q {
		return fail(name, "expected region %q, got %q", q, page.Items[0].Name)
	}
	return pass(name, "only %q was returned", q)
}

// MinimumQueryLength checks the length policy for q. Terms shorter than MinQueryLength
// characters must produce the documented error; longer terms must produce a result page,
// which may be empty when nothing matches.
func MinimumQueryLength(msgs Messages, q string, resp regions.Response) Result {
	const name = "minimum query length"
	n := utf8.RuneCountInString(q)
	if n < regions.MinQueryLength {
		if !resp.IsError() {
			return fail(name, "q=%q (%d characters) should be rejected but returned %s", q, n, resp)
		}
		if resp.Error.Message != msgs.ShortQuery {
			return fail(name, "q=%q: expected message %q, got %q", q, msgs.ShortQuery, resp.Error.Message)
		}
		return pass(name, "q=%q rejected with the documented message", q)
	}
	if !resp.IsPage() {
		return fail(name, "q=%q (%d characters) should be accepted but returned %s", q, n, resp)
	}
	return pass(name, "q=%q accepted with %d items", q, len(resp.Page.Items))
}

func sortedIDs(page regions.ResultPage) []string {
	ret := make([]string, 0, len(page.Items))
	for _, id := range page.IDs() {
		ret = append(ret, string(id))
	}
	sort.Strings(ret)
	return ret
}

func names(page regions.ResultPage) []string {
	ret := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		ret = append(ret, item.Name)
	}
	return ret
}
