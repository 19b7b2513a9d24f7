package regionstests

import (
	"net/http"

	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/regions"
)

const garbageParameter = "фр#145^:Hk"

var (
	pageValues     = []string{"0", "1", "2", "45", "1.5", garbageParameter}
	pageSizeValues = []string{"4", "5", "6", "9", "10", "11", "14", "15", "16", garbageParameter}
)

func DoPageParameterTests(t *T) {
	t.RunParallel(parameterCases("page", pageValues, func(t *T, raw string) {
		obs := t.Observe(http.MethodGet, regions.RawParam("page", raw))
		t.Check(invariants.StatusOK(http.MethodGet, obs.StatusCode))
		t.Check(invariants.PageParameter(t.Messages(), raw, t.Parse(obs)))
	}))
}

func DoPageSizeParameterTests(t *T) {
	t.RunParallel(parameterCases("page_size", pageSizeValues, func(t *T, raw string) {
		resp := t.Fetch(regions.RawParam("page_size", raw))
		t.Check(invariants.PageSizeParameter(t.Messages(), regions.ValidPageSizes, raw, resp))
	}))
}

func parameterCases(name string, values []string, action func(*T, string)) []Case {
	cases := make([]Case, 0, len(values))
	for _, v := range values {
		v := v
		cases = append(cases, Case{Name: name + "=" + v, Action: func(t *T) { action(t, v) }})
	}
	return cases
}
