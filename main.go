package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/regions-qa/regions-contract-tests/framework"
	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/loadprofile"
	"github.com/regions-qa/regions-contract-tests/probe"
	"github.com/regions-qa/regions-contract-tests/regionstests"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const usage = `Usage: regions-contract-tests <command> [flags]

Commands:
  verify   check the regions endpoint against its contract
  load     generate steady traffic and report latency

Run "regions-contract-tests <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	switch args[0] {
	case "verify":
		return runVerify(ctx, args[1:], stdout, stderr)
	case "load":
		return runLoad(ctx, args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

func runVerify(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var params verifyParams
	if !params.Read(args, stderr) {
		return 2
	}
	if params.noColor {
		color.NoColor = true
	}
	cfg := params.cfg

	msgs, err := invariants.MessagesForLocale(cfg.Locale)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	p, err := probe.New(cfg.Target, cfg.Timeout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	opts := regionstests.Options{
		Messages:          msgs,
		ExpectedTotal:     cfg.Expect.Total,
		ExpectedCountries: cfg.Expect.Countries,
		ValidCountryCodes: cfg.Expect.CountryCodes,
		Parallelism:       cfg.Parallel,
	}

	fmt.Fprintln(stdout)
	framework.PrintFilterDescription(stdout, params.filters)
	fmt.Fprintf(stdout, "Running test suite against %s\n", p.BaseURL())
	fmt.Fprintf(stdout, "  (%s)\n\n", params.effectiveCommand())

	testLogger := &ConsoleTestLogger{
		Out:                  stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	startedAt := time.Now()
	results := regionstests.RunTestSuite(ctx, p, opts, params.filters.AsFilter, testLogger)

	fmt.Fprintln(stdout)
	PrintResults(stdout, results)

	if params.reportPath != "" {
		report := framework.Report{
			RunID:     uuid.NewString(),
			Target:    p.BaseURL(),
			StartedAt: startedAt.UTC(),
			Duration:  time.Since(startedAt).Round(time.Millisecond).String(),
			Passed:    results.OK(),
			Tests:     results.Entries(),
		}
		if err := writeReport(params.reportPath, report); err != nil {
			fmt.Fprintf(stderr, "could not write report: %s\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Report written to %s\n", params.reportPath)
	}
	if !results.OK() {
		return 1
	}
	return 0
}

func writeReport(path string, report framework.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func runLoad(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var params loadParams
	if !params.Read(args, stderr) {
		return 2
	}
	cfg := params.cfg

	p, err := probe.New(cfg.Target, cfg.Timeout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := log.New(stdout, "", log.LstdFlags)
	metrics := loadprofile.NewMetrics()

	if cfg.Load.MetricsAddr != "" {
		server := &http.Server{Addr: cfg.Load.MetricsAddr, Handler: metricsRouter(metrics), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("metrics server stopped: %s", err)
			}
		}()
		defer server.Close()
		logger.Printf("serving metrics on http://%s/metrics", cfg.Load.MetricsAddr)
	}

	opts := loadOptions(cfg.Load)
	logger.Printf("load against %s: %d users at %g/s, think time %s-%s, for %s (seed %d)",
		p.BaseURL(), opts.Users, opts.SpawnRate, opts.MinWait, opts.MaxWait, opts.Duration, opts.Seed)
	for _, t := range cfg.Load.Tasks {
		var pairs []string
		for _, k := range sortedKeys(t.Params) {
			pairs = append(pairs, k+"="+t.Params[k])
		}
		logger.Printf("  task %s (weight %d): %s", t.Name, t.Weight, strings.Join(pairs, "&"))
	}

	stats, err := loadprofile.Run(ctx, p, opts, metrics, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	fmt.Fprintln(stdout)
	stats.Write(stdout)
	return 0
}

func metricsRouter(metrics *loadprofile.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}
