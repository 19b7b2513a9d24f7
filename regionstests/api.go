package regionstests

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/regions-qa/regions-contract-tests/framework"
	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/probe"
	"github.com/regions-qa/regions-contract-tests/regions"
)

// maxSweepPages bounds a pagination sweep in case the service reports an absurd total.
const maxSweepPages = 500

// Options are the expectations a run checks the service against.
type Options struct {
	Messages          invariants.Messages
	ExpectedTotal     int
	ExpectedCountries int
	ValidCountryCodes []string
	// Parallelism is the largest number of table cases run at once; 1 runs them one by one.
	Parallelism int
}

// DefaultOptions describes the published regions test environment.
func DefaultOptions() Options {
	return Options{
		Messages:          invariants.English,
		ExpectedTotal:     22,
		ExpectedCountries: 5,
		ValidCountryCodes: []string{"ru", "kg", "kz", "cz"},
		Parallelism:       4,
	}
}

type environment struct {
	probe *probe.Probe
	opts  Options
}

// T represents a test or subtest in the regions test suite.
//
// It behaves like Go's testing.T, so the assert and require packages accept it, and adds
// methods that fetch from the service under test. Fetch methods end the test with ERROR if no
// response could be observed and with FAIL if the response matches neither documented shape.
// Every observation is written to the test's debug log, and a failed check carries the query,
// a body fragment and a curl command for the most recent observation.
type T struct {
	context *framework.Context
	env     *environment
	last    *probe.Observation
	spec    regions.QuerySpec
}

// Case is one row of a table of independent tests.
type Case struct {
	Name   string
	Action func(*T)
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{context: context, env: env}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// RunParallel runs independent subtests concurrently, up to Options.Parallelism at a time.
// Output is still reported in the order of the cases.
func (t *T) RunParallel(cases []Case) {
	fcs := make([]framework.Case, 0, len(cases))
	for _, tc := range cases {
		action := tc.Action
		fcs = append(fcs, framework.Case{
			Name: tc.Name,
			Action: func(c *framework.Context) {
				action(newTestScope(c, t.env))
			},
		})
	}
	t.context.RunParallel(t.env.opts.Parallelism, fcs)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

func (t *T) Options() Options {
	return t.env.opts
}

func (t *T) Messages() invariants.Messages {
	return t.env.opts.Messages
}

// Observe sends one request with the given method and parameters to the regions collection.
func (t *T) Observe(method string, spec regions.QuerySpec) probe.Observation {
	obs, err := t.env.probe.Do(t.context.RequestContext(), method, regions.CollectionPath, spec.Values(),
		t.context.DebugLogger())
	if err != nil {
		t.context.Abort(fmt.Errorf("%s with %s: %w", method, spec, err))
	}
	t.last, t.spec = &obs, spec
	return obs
}

// Parse decodes an observation, failing the test if the body is malformed.
func (t *T) Parse(obs probe.Observation) regions.Response {
	resp, err := regions.Parse(obs.Body)
	if err != nil {
		if obs.Truncated {
			err = fmt.Errorf("response body is larger than %d bytes and was cut off: %w", probe.MaxBodySize, err)
		}
		t.Errorf("%s\n%s", err, t.diagnostic())
		t.FailNow()
	}
	return resp
}

// Fetch sends a GET with the given parameters and decodes the response.
func (t *T) Fetch(spec regions.QuerySpec) regions.Response {
	return t.Parse(t.Observe(http.MethodGet, spec))
}

// FetchPage is like Fetch, but fails the test unless the response is a result page.
func (t *T) FetchPage(spec regions.QuerySpec) regions.ResultPage {
	resp := t.Fetch(spec)
	if !resp.IsPage() {
		t.Errorf("expected a result page, got error %q\n%s", resp.Error.Message, t.diagnostic())
		t.FailNow()
	}
	return *resp.Page
}

// FetchSweep fetches every page of base at the given page size, plus the first page past the
// end. The number of pages comes from the total reported on page 1; later pages are fetched
// one at a time, in order.
func (t *T) FetchSweep(pageSize int, base regions.QuerySpec) []regions.ResultPage {
	spec := base.WithPageSize(pageSize)
	first := t.FetchPage(spec.WithPage(1))
	count := invariants.PageCount(first.Total, pageSize)
	if count > maxSweepPages {
		t.Errorf("total %d at page_size %d would need %d pages\n%s", first.Total, pageSize, count, t.diagnostic())
		t.FailNow()
	}
	pages := []regions.ResultPage{first}
	for p := 2; p <= count+1; p++ {
		pages = append(pages, t.FetchPage(spec.WithPage(p)))
	}
	t.Debug("fetched %d pages of %d for %s", len(pages), pageSize, base)
	return pages
}

// Check records a failure if the result did not pass, and continues.
func (t *T) Check(r invariants.Result) bool {
	if r.Passed {
		t.Debug("%s", r)
		return true
	}
	t.Errorf("%s\n%s", r, t.diagnostic())
	return false
}

// Require is like Check, but ends the test on failure.
func (t *T) Require(r invariants.Result) {
	if !t.Check(r) {
		t.FailNow()
	}
}

func (t *T) diagnostic() string {
	if t.last == nil {
		return "  (no request was made)"
	}
	lines := []string{
		"  query: " + t.spec.String(),
		fmt.Sprintf("  status: %d", t.last.StatusCode),
		"  body: " + t.last.BodyFragment(),
		"  repeat with: " + t.last.CurlCommand(),
	}
	return strings.Join(lines, "\n")
}
