package framework

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"
)

type environment struct {
	filter Filter
}

type resultSink struct {
	results Results
	lock    sync.Mutex
}

func (s *resultSink) add(r TestResult) {
	s.lock.Lock()
	s.results.add(r)
	s.lock.Unlock()
}

// Context is the state of one test. It is used like *testing.T.
type Context struct {
	env         *environment
	ctx         context.Context
	sink        *resultSink
	testLogger  TestLogger
	id          TestID
	debugLogger CapturingLogger
	hasSubtests bool
	failed      bool
	aborted     bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Case is one entry in a table of tests passed to RunParallel.
type Case struct {
	Name   string
	Action func(*Context)
}

// Run executes the root action and returns the results of every test it ran. The context is
// attached to each test so that requests made by tests are cancelled with it.
func Run(
	ctx context.Context,
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	c := &Context{
		env:        &environment{filter: filter},
		ctx:        ctx,
		sink:       &resultSink{},
		testLogger: testLogger,
	}
	c.run(action)
	return c.sink.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			var addError error
			if _, ok := r.(*Context); ok {
				if !c.aborted {
					c.failed = true
				}
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				c.aborted = true
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.testLogger.TestError(c.id, addError)
			}
		}
		if len(c.id.Path) == 0 {
			return
		}
		if c.hasSubtests && !c.failed && !c.aborted {
			return // a group is only reported if it failed on its own account
		}
		c.sink.add(TestResult{TestID: c.id, Outcome: c.Outcome(), Errors: c.errors})
	}()

	action(c)
}

// RequestContext is the context that requests made by this test should use.
func (c *Context) RequestContext() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Outcome is the test's state so far.
func (c *Context) Outcome() Outcome {
	switch {
	case c.skipped:
		return OutcomeSkipped
	case c.aborted:
		return OutcomeError
	case c.failed:
		return OutcomeFail
	default:
		return OutcomePass
	}
}

// Run runs a subtest and waits for it.
func (c *Context) Run(name string, action func(*Context)) {
	c.hasSubtests = true
	c.runChild(name, action, c.sink, c.testLogger)
}

// RunParallel runs independent subtests concurrently, at most limit at a time (no limit if
// limit is zero or less), and waits for all of them. Their log output and results are passed
// on in the order the cases were given.
func (c *Context) RunParallel(limit int, cases []Case) {
	c.hasSubtests = true
	queue := newOrderedQueue(len(cases))
	done := make(chan struct{})
	go func() {
		for batch := range queue.C {
			batch.replay(c.testLogger)
		}
		close(done)
	}()

	sinks := make([]*resultSink, len(cases))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, tc := range cases {
		i, tc := i, tc
		sinks[i] = &resultSink{}
		g.Go(func() error {
			recorder := &recordingTestLogger{}
			c.runChild(tc.Name, tc.Action, sinks[i], recorder)
			queue.Accept(i+1, recorder)
			return nil
		})
	}
	_ = g.Wait()
	queue.Close()
	<-done

	c.sink.lock.Lock()
	for _, s := range sinks {
		c.sink.results.merge(s.results)
	}
	c.sink.lock.Unlock()
}

func (c *Context) runChild(name string, action func(*Context), sink *resultSink, testLogger TestLogger) {
	id := c.id.child(name)

	testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:         id,
		env:        c.env,
		ctx:        c.ctx,
		sink:       sink,
		testLogger: testLogger,
	}
	c1.run(action)
	if c1.skipped {
		sink.add(TestResult{TestID: id, Outcome: OutcomeSkipped})
		testLogger.TestSkipped(id, c1.skipReason)
	} else {
		testLogger.TestFinished(id, c1.Outcome(), c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.testLogger.TestError(c.id, err)
}

// FailNow stops the test. It is called by the require package after a failed assertion.
func (c *Context) FailNow() {
	panic(c)
}

// Abort stops the test with an ERROR outcome: something prevented it from reaching a verdict.
func (c *Context) Abort(err error) {
	c.aborted = true
	c.errors = append(c.errors, err)
	c.testLogger.TestError(c.id, err)
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
