package invariants

import (
	"strconv"

	"github.com/regions-qa/regions-contract-tests/regions"
)

// PageParameter checks the response to page=raw. A non-integer must be rejected with the
// documented message. An integer page of 1 or more must produce a result page, which is empty
// past the end of the data; a page below 1 may be either rejected or answered.
func PageParameter(msgs Messages, raw string, resp regions.Response) Result {
	const name = "page parameter validation"
	n, err := strconv.Atoi(raw)
	if err != nil {
		if !resp.IsError() {
			return fail(name, "page=%s is not an integer but returned %s", raw, resp)
		}
		if resp.Error.Message != msgs.PageNotInteger {
			return fail(name, "page=%s: expected message %q, got %q", raw, msgs.PageNotInteger, resp.Error.Message)
		}
		return pass(name, "page=%s rejected with the documented message", raw)
	}
	if resp.IsError() {
		if n >= 1 {
			return fail(name, "page=%d should be accepted but was rejected: %q", n, resp.Error.Message)
		}
		return pass(name, "page=%d rejected: %q", n, resp.Error.Message)
	}
	return pass(name, "page=%d accepted with %d items", n, len(resp.Page.Items))
}

// PageSizeParameter checks the response to page_size=raw. Sizes in validSizes must be
// honoured; other integers must be rejected naming the valid sizes; a non-integer may be
// rejected with either that message or the integer message.
func PageSizeParameter(msgs Messages, validSizes []int, raw string, resp regions.Response) Result {
	const name = "page_size parameter validation"
	enumMessage := msgs.InvalidPageSize(validSizes)
	n, err := strconv.Atoi(raw)
	if err != nil {
		if !resp.IsError() {
			return fail(name, "page_size=%s is not an integer but returned %s", raw, resp)
		}
		if m := resp.Error.Message; m != enumMessage && m != msgs.PageSizeNotInteger {
			return fail(name, "page_size=%s: expected message %q or %q, got %q",
				raw, enumMessage, msgs.PageSizeNotInteger, m)
		}
		return pass(name, "page_size=%s rejected with a documented message", raw)
	}
	if !containsInt(validSizes, n) {
		if !resp.IsError() {
			return fail(name, "page_size=%d is not one of %v but returned %d items",
				n, validSizes, len(resp.Page.Items))
		}
		if resp.Error.Message != enumMessage {
			return fail(name, "page_size=%d: expected message %q, got %q", n, enumMessage, resp.Error.Message)
		}
		return pass(name, "page_size=%d rejected with the documented message", n)
	}
	if !resp.IsPage() {
		return fail(name, "page_size=%d is valid but was rejected: %q", n, resp.Error.Message)
	}
	r := PageSizeHonoured(n, *resp.Page)
	r.Name = name
	return r
}

func containsInt(values []int, n int) bool {
	for _, v := range values {
		if v == n {
			return true
		}
	}
	return false
}
