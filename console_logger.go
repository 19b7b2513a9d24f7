package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/regions-qa/regions-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	passColor    = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed, color.Bold)
	errorColor   = color.New(color.FgMagenta, color.Bold)
	skippedColor = color.New(color.FgYellow)
)

func outcomeLabel(o framework.Outcome) string {
	switch o {
	case framework.OutcomePass:
		return passColor.Sprint(o)
	case framework.OutcomeFail:
		return failColor.Sprint(o)
	case framework.OutcomeError:
		return errorColor.Sprint(o)
	default:
		return skippedColor.Sprint(o)
	}
}

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, outcome framework.Outcome, debugOutput framework.CapturedOutput) {
	failed := outcome == framework.OutcomeFail || outcome == framework.OutcomeError
	if failed {
		fmt.Fprintf(c.Out, "  %s: %s\n", outcomeLabel(outcome), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", outcomeLabel(framework.OutcomeSkipped), id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", outcomeLabel(framework.OutcomeSkipped), id, reason)
	}
}

// PrintResults writes the summary that ends a verify run.
func PrintResults(out io.Writer, results framework.Results) {
	for _, o := range []framework.Outcome{framework.OutcomeFail, framework.OutcomeError} {
		for _, r := range results.Tests {
			if r.Outcome == o {
				fmt.Fprintf(out, "%s: %s\n", outcomeLabel(o), r.TestID)
			}
		}
	}
	fmt.Fprintf(out, "%d tests: %d %s, %d %s, %d %s, %d %s\n",
		len(results.Tests),
		results.Count(framework.OutcomePass), outcomeLabel(framework.OutcomePass),
		results.Count(framework.OutcomeFail), outcomeLabel(framework.OutcomeFail),
		results.Count(framework.OutcomeError), outcomeLabel(framework.OutcomeError),
		results.Count(framework.OutcomeSkipped), outcomeLabel(framework.OutcomeSkipped),
	)
	if results.OK() {
		passColor.Fprintln(out, "All tests passed")
	}
}
