package loadprofile

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
	"time"

	"github.com/regions-qa/regions-contract-tests/framework"
	"github.com/regions-qa/regions-contract-tests/probe"
	"github.com/regions-qa/regions-contract-tests/regions"

	"golang.org/x/sync/errgroup"
)

// Task is one kind of request a simulated user makes. Weight is relative to the other tasks.
type Task struct {
	Name   string
	Weight int
	Query  url.Values
}

type Options struct {
	Users     int
	SpawnRate float64 // users started per second
	MinWait   time.Duration
	MaxWait   time.Duration
	Duration  time.Duration
	Seed      int64
	Tasks     []Task
}

func (o Options) Validate() error {
	var errs []error
	if o.Users < 1 {
		errs = append(errs, errors.New("users must be at least 1"))
	}
	if o.SpawnRate <= 0 {
		errs = append(errs, errors.New("spawn rate must be positive"))
	}
	if o.MinWait < 0 || o.MaxWait < o.MinWait {
		errs = append(errs, fmt.Errorf("wait range [%s, %s] is invalid", o.MinWait, o.MaxWait))
	}
	if o.Duration <= 0 {
		errs = append(errs, errors.New("duration must be positive"))
	}
	if len(o.Tasks) == 0 {
		errs = append(errs, errors.New("at least one task is required"))
	}
	for _, t := range o.Tasks {
		if t.Weight < 1 {
			errs = append(errs, fmt.Errorf("task %q has weight %d, must be at least 1", t.Name, t.Weight))
		}
	}
	return errors.Join(errs...)
}

// Run starts opts.Users simulated users against p and lets them run until opts.Duration has
// passed or ctx is cancelled, then returns what was measured. metrics and logger may be nil.
func Run(
	ctx context.Context,
	p *probe.Probe,
	opts Options,
	metrics *Metrics,
	logger framework.Logger,
) (Stats, error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	rec := newRecorder(opts.Tasks)
	start := time.Now()
	spawnInterval := time.Duration(float64(time.Second) / opts.SpawnRate)

	var g errgroup.Group
spawning:
	for i := 0; i < opts.Users; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				break spawning
			case <-time.After(spawnInterval):
			}
		}
		u := &user{
			id:      i + 1,
			probe:   p,
			opts:    opts,
			picker:  newTaskPicker(opts.Tasks),
			rng:     rand.New(rand.NewSource(opts.Seed + int64(i))),
			rec:     rec,
			metrics: metrics,
			logger:  framework.LoggerWithPrefix(logger, "[user "+strconv.Itoa(i+1)+"] "),
		}
		logger.Printf("starting user %d of %d", i+1, opts.Users)
		g.Go(func() error {
			u.run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return rec.snapshot(time.Since(start)), nil
}

type user struct {
	id      int
	probe   *probe.Probe
	opts    Options
	picker  taskPicker
	rng     *rand.Rand
	rec     *recorder
	metrics *Metrics
	logger  framework.Logger
}

func (u *user) run(ctx context.Context) {
	u.metrics.userStarted()
	defer u.metrics.userStopped()
	for {
		task := u.picker.pick(u.rng)
		obs, err := u.probe.Get(ctx, regions.CollectionPath, task.Query, nil)
		if ctx.Err() != nil {
			return // the request was cut short by the end of the run
		}
		status := statusClass(obs.StatusCode, err)
		failed := status != "2xx"
		if failed {
			u.logger.Printf("%s failed: %s", task.Name, failureDetail(obs, err))
		}
		u.rec.record(task.Name, obs.Duration, failed)
		u.metrics.ObserveRequest(task.Name, status, obs.Duration)

		select {
		case <-ctx.Done():
			return
		case <-time.After(u.thinkTime()):
		}
	}
}

func (u *user) thinkTime() time.Duration {
	spread := u.opts.MaxWait - u.opts.MinWait
	if spread <= 0 {
		return u.opts.MinWait
	}
	return u.opts.MinWait + time.Duration(u.rng.Int63n(int64(spread)+1))
}

func statusClass(status int, err error) string {
	if err != nil {
		return "transport_error"
	}
	return strconv.Itoa(status/100) + "xx"
}

func failureDetail(obs probe.Observation, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("status %d: %s", obs.StatusCode, obs.BodyFragment())
}

// taskPicker chooses tasks with probability proportional to their weights.
type taskPicker struct {
	tasks      []Task
	cumulative []int
}

func newTaskPicker(tasks []Task) taskPicker {
	p := taskPicker{tasks: tasks}
	sum := 0
	for _, t := range tasks {
		sum += t.Weight
		p.cumulative = append(p.cumulative, sum)
	}
	return p
}

func (p taskPicker) pick(rng *rand.Rand) Task {
	n := rng.Intn(p.cumulative[len(p.cumulative)-1])
	for i, c := range p.cumulative {
		if n < c {
			return p.tasks[i]
		}
	}
	return p.tasks[len(p.tasks)-1]
}
