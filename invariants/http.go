package invariants

import (
	"net/http"
)

// JSONContentType is the exact Content-Type every response must declare.
const JSONContentType = "application/json; charset=utf-8"

// ContentType checks the declared Content-Type of a response.
func ContentType(header http.Header) Result {
	const name = "JSON content type"
	got := header.Get("Content-Type")
	if got != JSONContentType {
		return fail(name, "expected Content-Type %q, got %q", JSONContentType, got)
	}
	return pass(name, "%s", got)
}

// StatusOK checks that a request was answered with 200.
func StatusOK(method string, status int) Result {
	const name = "request is accepted"
	if status != http.StatusOK {
		return fail(name, "%s returned status %d, expected 200", method, status)
	}
	return pass(name, "%s returned 200", method)
}

// MethodNotAllowed checks that a method other than GET is refused with 405.
func MethodNotAllowed(method string, status int) Result {
	const name = "method is not allowed"
	switch status {
	case http.StatusMethodNotAllowed:
		return pass(name, "%s returned 405", method)
	case http.StatusOK:
		return fail(name, "%s was accepted with 200; only GET may be served", method)
	default:
		return fail(name, "%s returned status %d, expected 405", method, status)
	}
}

// SecureTransport checks that the encrypted scheme succeeds and the plain one does not succeed
// in the same way. The insecure request either fails at the transport level (insecureErr) or
// returns insecureStatus.
func SecureTransport(secureStatus, insecureStatus int, insecureErr error) Result {
	const name = "transport is encrypted"
	if secureStatus != http.StatusOK {
		return fail(name, "https request returned status %d, expected 200", secureStatus)
	}
	if insecureErr != nil {
		return pass(name, "plain http request was refused: %s", insecureErr)
	}
	if insecureStatus == http.StatusOK {
		return fail(name, "plain http request succeeded with 200 just like https")
	}
	return pass(name, "plain http request returned status %d", insecureStatus)
}
