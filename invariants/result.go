package invariants

import "fmt"

// Result is the outcome of one invariant check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

func (r Result) String() string {
	status := "passed"
	if !r.Passed {
		status = "FAILED"
	}
	if r.Detail == "" {
		return fmt.Sprintf("%s: %s", r.Name, status)
	}
	return fmt.Sprintf("%s: %s: %s", r.Name, status, r.Detail)
}

func pass(name, format string, args ...interface{}) Result {
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...interface{}) Result {
	return Result{Name: name, Passed: false, Detail: fmt.Sprintf(format, args...)}
}

// First returns the first failed result, or the last result if all of them passed.
func First(results ...Result) Result {
	for _, r := range results {
		if !r.Passed {
			return r
		}
	}
	if len(results) == 0 {
		return Result{Name: "no checks", Passed: true}
	}
	return results[len(results)-1]
}
