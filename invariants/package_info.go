// Package invariants is a library of pure predicates over decoded regions responses.
//
// A check never performs I/O. It receives responses that were already fetched and parsed,
// together with the query parameters that produced them, and returns a Result. This keeps
// every check deterministic and testable against recorded fixtures; deciding which requests
// to make, and in what order, is the job of the scenario driver in regionstests.
package invariants
