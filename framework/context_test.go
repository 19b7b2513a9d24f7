package framework

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLogger struct {
	events []string
	lock   sync.Mutex
}

func (e *eventLogger) add(format string, args ...interface{}) {
	e.lock.Lock()
	e.events = append(e.events, fmt.Sprintf(format, args...))
	e.lock.Unlock()
}

func (e *eventLogger) TestStarted(id TestID)          { e.add("start %s", id) }
func (e *eventLogger) TestError(id TestID, err error) { e.add("error %s", id) }
func (e *eventLogger) TestFinished(id TestID, outcome Outcome, _ CapturedOutput) {
	e.add("finish %s %s", id, outcome)
}
func (e *eventLogger) TestSkipped(id TestID, reason string) { e.add("skip %s", id) }

func outcomes(results Results) map[string]Outcome {
	ret := make(map[string]Outcome)
	for _, t := range results.Tests {
		ret[t.TestID.String()] = t.Outcome
	}
	return ret
}

func TestOutcomes(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.Run("passes", func(c *Context) {
			assert.True(c, true)
		})
		c.Run("fails with assert", func(c *Context) {
			assert.Equal(c, 1, 2)
		})
		c.Run("fails with require", func(c *Context) {
			require.Equal(c, 1, 2)
			panic("not reached")
		})
		c.Run("aborts", func(c *Context) {
			c.Abort(errors.New("connection refused"))
		})
		c.Run("panics", func(c *Context) {
			var m map[string]int
			m["x"] = 1
		})
		c.Run("skips", func(c *Context) {
			c.SkipWithReason("not applicable")
		})
	})

	assert.Equal(t, map[string]Outcome{
		"passes":             OutcomePass,
		"fails with assert":  OutcomeFail,
		"fails with require": OutcomeFail,
		"aborts":             OutcomeError,
		"panics":             OutcomeError,
		"skips":              OutcomeSkipped,
	}, outcomes(results))
	assert.Len(t, results.Failures, 2)
	assert.Len(t, results.Errors, 2)
	assert.False(t, results.OK())
	assert.Equal(t, 1, results.Count(OutcomePass))
	assert.Equal(t, 1, results.Count(OutcomeSkipped))
}

func TestFailureAfterAbortIsStillError(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Errorf("first a failure")
			c.Abort(errors.New("then a timeout"))
		})
	})
	require.Len(t, results.Tests, 1)
	assert.Equal(t, OutcomeError, results.Tests[0].Outcome)
	assert.Equal(t, "first a failure\nthen a timeout", results.Tests[0].Detail())
}

func TestGroupsAreNotReportedUnlessTheyFailThemselves(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("a", func(c *Context) {})
			c.Run("b", func(c *Context) { c.Errorf("bad") })
		})
	})
	assert.Equal(t, map[string]Outcome{
		"group/a": OutcomePass,
		"group/b": OutcomeFail,
	}, outcomes(results))
	assert.True(t, (Results{}).OK())
}

func TestFilterSkipsTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("group/b"))
	logger := &eventLogger{}

	results := Run(context.Background(), filters.AsFilter, logger, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("a", func(c *Context) { c.Errorf("should not run") })
			c.Run("b", func(c *Context) {})
		})
		c.Run("other", func(c *Context) { c.Errorf("should not run") })
	})
	assert.True(t, results.OK())
	assert.Equal(t, map[string]Outcome{"group/b": OutcomePass}, outcomes(results))
	assert.Contains(t, logger.events, "skip group/a")
	assert.Contains(t, logger.events, "skip other")
}

func TestRunParallelKeepsDeclarationOrder(t *testing.T) {
	logger := &eventLogger{}
	var cases []Case
	for i := 0; i < 5; i++ {
		delay := time.Duration(5-i) * 10 * time.Millisecond
		name := fmt.Sprintf("case%d", i)
		cases = append(cases, Case{Name: name, Action: func(c *Context) {
			time.Sleep(delay)
			c.Debug("slept %s", delay)
			if name == "case3" {
				c.Errorf("bad")
			}
		}})
	}

	results := Run(context.Background(), nil, logger, func(c *Context) {
		c.RunParallel(3, cases)
	})

	var names []string
	for _, r := range results.Tests {
		names = append(names, r.TestID.String())
	}
	assert.Equal(t, []string{"case0", "case1", "case2", "case3", "case4"}, names)
	assert.Len(t, results.Failures, 1)
	assert.Equal(t, []string{
		"start case0", "finish case0 PASS",
		"start case1", "finish case1 PASS",
		"start case2", "finish case2 PASS",
		"start case3", "error case3", "finish case3 FAIL",
		"start case4", "finish case4 PASS",
	}, logger.events)
}

func TestRunParallelWithNoCases(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.RunParallel(2, nil)
	})
	assert.Empty(t, results.Tests)
}

func TestRequestContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	Run(ctx, nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			assert.Error(t, c.RequestContext().Err())
		})
	})
}

func TestEntries(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.Run("ok", func(c *Context) {})
		c.Run("bad", func(c *Context) { c.Errorf("expected %d, got %d", 1, 2) })
		c.Run("skipped", func(c *Context) { c.Skip() })
	})
	assert.Equal(t, []ReportEntry{
		{Name: "ok", Passed: true, Outcome: "PASS"},
		{Name: "bad", Passed: false, Outcome: "FAIL", Detail: "expected 1, got 2"},
		{Name: "skipped", Passed: true, Outcome: "SKIPPED"},
	}, results.Entries())
}
