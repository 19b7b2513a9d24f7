package framework

import "sync"

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, outcome Outcome, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                           {}
func (n nullTestLogger) TestError(TestID, error)                      {}
func (n nullTestLogger) TestFinished(TestID, Outcome, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                   {}

// recordingTestLogger holds the output of a test that ran concurrently with others, so that it
// can be replayed to the real logger later without interleaving.
type recordingTestLogger struct {
	events []func(TestLogger)
	lock   sync.Mutex
}

func (r *recordingTestLogger) record(event func(TestLogger)) {
	r.lock.Lock()
	r.events = append(r.events, event)
	r.lock.Unlock()
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.record(func(l TestLogger) { l.TestStarted(id) })
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.record(func(l TestLogger) { l.TestError(id, err) })
}

func (r *recordingTestLogger) TestFinished(id TestID, outcome Outcome, debugOutput CapturedOutput) {
	r.record(func(l TestLogger) { l.TestFinished(id, outcome, debugOutput) })
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.record(func(l TestLogger) { l.TestSkipped(id, reason) })
}

func (r *recordingTestLogger) replay(dest TestLogger) {
	r.lock.Lock()
	events := r.events
	r.lock.Unlock()
	for _, e := range events {
		e(dest)
	}
}
