package framework

import (
	"fmt"
	"strings"
)

// Outcome is the terminal state of one test.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeFail
	OutcomeError
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "PASS"
	case OutcomeFail:
		return "FAIL"
	case OutcomeError:
		return "ERROR"
	case OutcomeSkipped:
		return "SKIPPED"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Errors   []TestResult
}

type TestResult struct {
	TestID  TestID
	Outcome Outcome
	Errors  []error
}

// Detail joins the test's error messages into one diagnostic string.
func (r TestResult) Detail() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

// OK is true if no test failed or errored.
func (r Results) OK() bool {
	return len(r.Failures) == 0 && len(r.Errors) == 0
}

// Count returns the number of tests with the given outcome.
func (r Results) Count(o Outcome) int {
	n := 0
	for _, t := range r.Tests {
		if t.Outcome == o {
			n++
		}
	}
	return n
}

func (r *Results) add(result TestResult) {
	r.Tests = append(r.Tests, result)
	switch result.Outcome {
	case OutcomeFail:
		r.Failures = append(r.Failures, result)
	case OutcomeError:
		r.Errors = append(r.Errors, result)
	}
}

func (r *Results) merge(other Results) {
	for _, t := range other.Tests {
		r.add(t)
	}
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func (t TestID) child(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	return TestID{Path: append(append(path, t.Path...), name)}
}
