package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter selects tests the way "go test -run" does: a MustMatch pattern is split on "/" and
// each element must match the corresponding element of the test path, so that a parent test
// runs whenever some of its subtests could match. A test is excluded if its full name matches
// any MustNotMatch pattern.
func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatchPath(id.Path)) &&
		!r.MustNotMatch.AnyMatch(id.String())
}

type RegexList struct {
	patterns []pattern
}

type pattern struct {
	full     *regexp.Regexp
	elements []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.full.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	full, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	p := pattern{full: full}
	for _, e := range strings.Split(value, "/") {
		rx, err := regexp.Compile(e)
		if err != nil {
			return fmt.Errorf("invalid regex element %q: %w", e, err)
		}
		p.elements = append(p.elements, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

// Patterns returns the expressions in the order they were given.
func (r RegexList) Patterns() []string {
	ret := make([]string, 0, len(r.patterns))
	for _, p := range r.patterns {
		ret = append(ret, p.full.String())
	}
	return ret
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.full.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyMatchPath reports whether some pattern matches the path element by element.
func (r RegexList) AnyMatchPath(path []string) bool {
	for _, p := range r.patterns {
		if p.matchPath(path) {
			return true
		}
	}
	return false
}

func (p pattern) matchPath(path []string) bool {
	for i := 0; i < len(path) && i < len(p.elements); i++ {
		if !p.elements[i].MatchString(path[i]) {
			return false
		}
	}
	return true
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
