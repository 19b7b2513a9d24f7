package probe

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/regions-qa/regions-contract-tests/regions"

	"github.com/alessio/shellescape"
)

// Observation is what one request produced.
type Observation struct {
	Method     string
	URL        string
	RequestID  string
	StatusCode int
	Header     http.Header
	Body       []byte
	Truncated  bool // Body holds only the first MaxBodySize bytes
	Duration   time.Duration
}

// BodyFragment is a shortened rendering of the body for diagnostics.
func (o Observation) BodyFragment() string {
	if len(o.Body) == 0 {
		return "<empty body>"
	}
	return regions.Fragment(o.Body)
}

// CurlCommand renders a shell command that repeats the request.
func (o Observation) CurlCommand() string {
	var b commandBuilder
	b.add("curl", "-sS", "-i")
	if o.Method != "" && o.Method != http.MethodGet {
		b.add("-X", o.Method)
	}
	if o.RequestID != "" {
		b.add("-H", RequestIDHeader+": "+o.RequestID)
	}
	b.add(o.URL)
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

// TransportError means no HTTP response was observed: the connection failed, timed out, or
// the body could not be read.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the request was abandoned because it took too long.
func (e *TransportError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
