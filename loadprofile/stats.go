package loadprofile

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// TaskStats summarizes the requests of one task.
type TaskStats struct {
	Name     string
	Requests int
	Failures int
	Mean     time.Duration
	P50      time.Duration
	P95      time.Duration
}

// Stats is a snapshot of a load run.
type Stats struct {
	Elapsed time.Duration
	Tasks   []TaskStats
	Total   TaskStats
}

type recorder struct {
	samples  map[string][]time.Duration
	failures map[string]int
	order    []string
	lock     sync.Mutex
}

func newRecorder(tasks []Task) *recorder {
	r := &recorder{samples: make(map[string][]time.Duration), failures: make(map[string]int)}
	for _, t := range tasks {
		if _, ok := r.samples[t.Name]; !ok {
			r.samples[t.Name] = nil
			r.order = append(r.order, t.Name)
		}
	}
	return r
}

func (r *recorder) record(task string, d time.Duration, failed bool) {
	r.lock.Lock()
	r.samples[task] = append(r.samples[task], d)
	if failed {
		r.failures[task]++
	}
	r.lock.Unlock()
}

func (r *recorder) snapshot(elapsed time.Duration) Stats {
	r.lock.Lock()
	defer r.lock.Unlock()
	stats := Stats{Elapsed: elapsed}
	var all []time.Duration
	failures := 0
	for _, name := range r.order {
		samples := r.samples[name]
		stats.Tasks = append(stats.Tasks, summarize(name, samples, r.failures[name]))
		all = append(all, samples...)
		failures += r.failures[name]
	}
	stats.Total = summarize("total", all, failures)
	return stats
}

func summarize(name string, samples []time.Duration, failures int) TaskStats {
	ts := TaskStats{Name: name, Requests: len(samples), Failures: failures}
	if len(samples) == 0 {
		return ts
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var sum time.Duration
	for _, s := range sorted {
		sum += s
	}
	ts.Mean = sum / time.Duration(len(sorted))
	ts.P50 = percentile(sorted, 50)
	ts.P95 = percentile(sorted, 95)
	return ts
}

// percentile uses the nearest-rank method on sorted samples.
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// RequestsPerSecond is the overall throughput of the run.
func (s Stats) RequestsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Total.Requests) / s.Elapsed.Seconds()
}

// Write prints the stats as a table.
func (s Stats) Write(w io.Writer) {
	fmt.Fprintf(w, "%-12s %9s %9s %10s %10s %10s\n", "task", "requests", "failures", "mean", "p50", "p95")
	for _, t := range append(append([]TaskStats(nil), s.Tasks...), s.Total) {
		fmt.Fprintf(w, "%-12s %9d %9d %10s %10s %10s\n", t.Name, t.Requests, t.Failures,
			t.Mean.Round(time.Millisecond), t.P50.Round(time.Millisecond), t.P95.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "%d requests in %s (%.2f/s)\n", s.Total.Requests, s.Elapsed.Round(time.Millisecond),
		s.RequestsPerSecond())
}
