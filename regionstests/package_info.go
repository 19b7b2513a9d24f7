// Package regionstests contains the contract tests for the regions endpoint and their
// supporting API.
//
// Test harness infrastructure that is not specific to the regions domain, such as outcomes,
// filtering and ordered parallel execution, is in the lower-level framework package. The
// checks themselves are pure functions in the invariants package; tests here fetch responses
// through a probe and feed them to those checks.
package regionstests
