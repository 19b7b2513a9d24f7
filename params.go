package main

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/regions-qa/regions-contract-tests/config"
	"github.com/regions-qa/regions-contract-tests/framework"
	"github.com/regions-qa/regions-contract-tests/loadprofile"

	"github.com/alessio/shellescape"
)

type verifyParams struct {
	cfg        config.Config
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	noColor    bool
	reportPath string
}

type loadParams struct {
	cfg config.Config
}

// commonFlags are the values shared by both commands. Only flags given on the command line
// override the configuration file.
type commonFlags struct {
	configPath string
	url        string
	timeout    time.Duration
}

func (c *commonFlags) register(fs *flag.FlagSet, defaults config.Config) {
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.url, "url", defaults.Target, "base URL of the regions service")
	fs.DurationVar(&c.timeout, "timeout", defaults.Timeout, "timeout of each request")
}

func (c *commonFlags) load(fs *flag.FlagSet) (config.Config, error) {
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.Target = c.url
		case "timeout":
			cfg.Timeout = c.timeout
		}
	})
	return cfg, nil
}

func (p *verifyParams) Read(args []string, stderr io.Writer) bool {
	defaults := config.Default()
	var common commonFlags
	var parallel int
	var locale string

	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.register(fs, defaults)
	fs.IntVar(&parallel, "parallel", defaults.Parallel, "number of table cases to run at once")
	fs.StringVar(&locale, "locale", defaults.Locale, "language of the service's validation messages (en or ru)")
	fs.Var(&p.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&p.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&p.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&p.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&p.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&p.reportPath, "report", "", "write a JSON report to this file")

	if err := fs.Parse(args); err != nil {
		return false
	}
	cfg, err := common.load(fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return false
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "parallel":
			cfg.Parallel = parallel
		case "locale":
			cfg.Locale = locale
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %s\n", err)
		return false
	}
	p.cfg = cfg
	return true
}

func (p *loadParams) Read(args []string, stderr io.Writer) bool {
	defaults := config.Default()
	var common commonFlags
	var users int
	var spawnRate float64
	var waitMin, waitMax, duration time.Duration
	var metricsAddr string
	var seed int64

	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.register(fs, defaults)
	fs.IntVar(&users, "users", defaults.Load.Users, "number of simulated users")
	fs.Float64Var(&spawnRate, "spawn-rate", defaults.Load.SpawnRate, "users started per second")
	fs.DurationVar(&waitMin, "wait-min", defaults.Load.WaitMin, "shortest think time between requests")
	fs.DurationVar(&waitMax, "wait-max", defaults.Load.WaitMax, "longest think time between requests")
	fs.DurationVar(&duration, "duration", defaults.Load.Duration, "how long to generate load")
	fs.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9100")
	fs.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")

	if err := fs.Parse(args); err != nil {
		return false
	}
	cfg, err := common.load(fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return false
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "users":
			cfg.Load.Users = users
		case "spawn-rate":
			cfg.Load.SpawnRate = spawnRate
		case "wait-min":
			cfg.Load.WaitMin = waitMin
		case "wait-max":
			cfg.Load.WaitMax = waitMax
		case "duration":
			cfg.Load.Duration = duration
		case "metrics-addr":
			cfg.Load.MetricsAddr = metricsAddr
		case "seed":
			cfg.Load.Seed = seed
		}
	})
	if cfg.Load.Seed == 0 {
		cfg.Load.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %s\n", err)
		return false
	}
	p.cfg = cfg
	return true
}

// loadOptions converts the load section of the configuration.
func loadOptions(cfg config.Load) loadprofile.Options {
	opts := loadprofile.Options{
		Users:     cfg.Users,
		SpawnRate: cfg.SpawnRate,
		MinWait:   cfg.WaitMin,
		MaxWait:   cfg.WaitMax,
		Duration:  cfg.Duration,
		Seed:      cfg.Seed,
	}
	for _, t := range cfg.Tasks {
		query := make(url.Values)
		for k, v := range t.Params {
			query.Set(k, v)
		}
		opts.Tasks = append(opts.Tasks, loadprofile.Task{Name: t.Name, Weight: t.Weight, Query: query})
	}
	return opts
}

// effectiveCommand renders a verify command line that reproduces this run without a config file.
func (p *verifyParams) effectiveCommand() string {
	var b commandBuilder
	b.add("regions-contract-tests", "verify",
		"-url", p.cfg.Target,
		"-timeout", p.cfg.Timeout.String(),
		"-parallel", strconv.Itoa(p.cfg.Parallel),
		"-locale", p.cfg.Locale,
	)
	for _, f := range []struct {
		name string
		list framework.RegexList
	}{{"-run", p.filters.MustMatch}, {"-skip", p.filters.MustNotMatch}} {
		for _, pattern := range f.list.Patterns() {
			b.add(f.name, pattern)
		}
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// sortedKeys is used to print task parameters in a stable order.
func sortedKeys(m map[string]string) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
