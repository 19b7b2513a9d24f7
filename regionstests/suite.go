package regionstests

import (
	"context"

	"github.com/regions-qa/regions-contract-tests/framework"
	"github.com/regions-qa/regions-contract-tests/probe"
)

// RunTestSuite runs every regions contract test against the service behind p.
func RunTestSuite(
	ctx context.Context,
	p *probe.Probe,
	opts Options,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	env := &environment{probe: p, opts: opts}
	return framework.Run(ctx, filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("HTTP behavior", DoHTTPBehaviorTests)
		t.Run("defaults", DoDefaultsTests)
		t.Run("pagination", DoPaginationTests)
		t.Run("search", DoSearchTests)
		t.Run("country filter", DoCountryFilterTests)
		t.Run("page parameter", DoPageParameterTests)
		t.Run("page_size parameter", DoPageSizeParameterTests)
	})
}
