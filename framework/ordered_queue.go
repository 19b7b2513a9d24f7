package framework

import (
	"sort"
	"sync"
)

// orderedQueue receives numbered batches of test output in any order and delivers them on C
// in sequence, starting from 1. A batch that arrives early is held until every batch before it
// has been delivered.
type orderedQueue struct {
	C         chan *recordingTestLogger
	next      int
	pending   map[int]*recordingTestLogger
	lock      sync.Mutex
	closeOnce sync.Once
}

// newOrderedQueue creates a queue whose channel can hold capacity batches; with capacity equal
// to the number of batches, Accept never blocks.
func newOrderedQueue(capacity int) *orderedQueue {
	return &orderedQueue{
		C:       make(chan *recordingTestLogger, capacity),
		next:    1,
		pending: make(map[int]*recordingTestLogger),
	}
}

func (q *orderedQueue) Accept(seq int, batch *recordingTestLogger) {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.pending[seq] = batch
	for {
		b, ok := q.pending[q.next]
		if !ok {
			return
		}
		delete(q.pending, q.next)
		q.next++
		q.C <- b
	}
}

// Deferred returns the batches still waiting for an earlier one, lowest number first.
func (q *orderedQueue) Deferred() []*recordingTestLogger {
	q.lock.Lock()
	defer q.lock.Unlock()
	seqs := make([]int, 0, len(q.pending))
	for seq := range q.pending {
		seqs = append(seqs, seq)
	}
	sort.Ints(seqs)
	ret := make([]*recordingTestLogger, 0, len(seqs))
	for _, seq := range seqs {
		ret = append(ret, q.pending[seq])
	}
	return ret
}

// Close delivers the batches that are still waiting, lowest number first, and closes C.
func (q *orderedQueue) Close() {
	q.closeOnce.Do(func() {
		for _, b := range q.Deferred() {
			q.C <- b
		}
		q.lock.Lock()
		q.pending = make(map[int]*recordingTestLogger)
		q.lock.Unlock()
		close(q.C)
	})
}
