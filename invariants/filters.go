package invariants

import (
	"sort"
	"strings"

	"github.com/regions-qa/regions-contract-tests/regions"
)

// DistinctCountryCodes returns the sorted set of country codes found on the given pages.
func DistinctCountryCodes(pages ...regions.ResultPage) []string {
	seen := make(map[string]struct{})
	for _, p := range pages {
		for _, item := range p.Items {
			seen[item.Country.Code] = struct{}{}
		}
	}
	ret := make([]string, 0, len(seen))
	for code := range seen {
		ret = append(ret, code)
	}
	sort.Strings(ret)
	return ret
}

// SingleCountryCode checks that filtering by a valid code returns regions of that country only.
func SingleCountryCode(code string, page regions.ResultPage) Result {
	const name = "country_code filters to one country"
	if len(page.Items) == 0 {
		return fail(name, "country_code=%s returned no regions", code)
	}
	codes := DistinctCountryCodes(page)
	if len(codes) > 1 {
		return fail(name, "country_code=%s returned more than one country code: %v", code, codes)
	}
	if codes[0] != strings.ToLower(code) {
		return fail(name, "country_code=%s returned regions of %q", code, codes[0])
	}
	return pass(name, "all %d regions have code %s", len(page.Items), codes[0])
}

// InvalidCountryCode checks that an unknown code is either rejected with a message naming the
// valid codes, or produces an empty result.
func InvalidCountryCode(msgs Messages, validCodes []string, code string, resp regions.Response) Result {
	const name = "invalid country_code is rejected"
	if resp.IsPage() {
		if len(resp.Page.Items) != 0 {
			return fail(name, "country_code=%s returned %d regions with codes %v",
				code, len(resp.Page.Items), DistinctCountryCodes(*resp.Page))
		}
		return pass(name, "country_code=%s returned no regions", code)
	}
	want := msgs.InvalidCountryCode(validCodes)
	if resp.Error.Message != want {
		return fail(name, "country_code=%s: expected message %q, got %q", code, want, resp.Error.Message)
	}
	return pass(name, "country_code=%s rejected with the documented message", code)
}

// DistinctCountries checks how many different countries appear across the given pages.
func DistinctCountries(want int, pages []regions.ResultPage) Result {
	const name = "all countries are listed"
	codes := DistinctCountryCodes(pages...)
	if len(codes) != want {
		return fail(name, "expected %d distinct country codes, found %d: %v", want, len(codes), codes)
	}
	return pass(name, "found %v", codes)
}
