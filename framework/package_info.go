// Package framework contains the low-level test harness infrastructure that is not specific to
// the regions service.
//
// The general model is:
//
// 1. There is a test context, Context, which is similar to Go's *testing.T: pieces of test
// logic are associated with a test identifier, run as nested subtests, and accumulate
// results. It implements the TestingT interface of testify's assert and require packages.
//
// 2. Every test ends in one of four outcomes. A test that made a failed assertion is FAIL;
// a test that could not reach a verdict, because of a transport problem or an unexpected
// panic, is ERROR; a test that chose not to run is SKIPPED; anything else is PASS.
//
// 3. Independent tests can run concurrently with RunParallel. Their output is still delivered
// to the TestLogger in the order the tests were declared.
//
// The domain-specific code that knows what is being tested provides the test API on top of
// the context and decides what requests to make.
package framework
