package regionstests

import (
	"net/http"

	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/regions"
)

func DoHTTPBehaviorTests(t *T) {
	t.Run("methods", func(t *T) {
		t.RunParallel([]Case{
			{Name: http.MethodGet, Action: func(t *T) {
				obs := t.Observe(http.MethodGet, regions.QuerySpec{})
				t.Check(invariants.StatusOK(http.MethodGet, obs.StatusCode))
			}},
			methodNotAllowedCase(http.MethodPost),
			methodNotAllowedCase(http.MethodPut),
			methodNotAllowedCase(http.MethodDelete),
		})
	})

	t.Run("content type", func(t *T) {
		obs := t.Observe(http.MethodGet, regions.QuerySpec{})
		t.Check(invariants.ContentType(obs.Header))
	})

	t.Run("encrypted transport", func(t *T) {
		if t.env.probe.Scheme() != "https" {
			t.SkipWithReason("target is not an https URL")
		}
		secure := t.Observe(http.MethodGet, regions.QuerySpec{})
		insecure, err := t.env.probe.WithScheme("http").Get(t.context.RequestContext(), regions.CollectionPath,
			nil, t.context.DebugLogger())
		t.Check(invariants.SecureTransport(secure.StatusCode, insecure.StatusCode, err))
	})
}

func methodNotAllowedCase(method string) Case {
	return Case{Name: method, Action: func(t *T) {
		obs := t.Observe(method, regions.QuerySpec{})
		t.Check(invariants.MethodNotAllowed(method, obs.StatusCode))
	}}
}
