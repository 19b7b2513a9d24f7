package regions

import (
	"encoding/json"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const maxFragmentLength = 300

// MalformedResponseError means a body was not valid JSON or matched neither response shape.
type MalformedResponseError struct {
	Reason string
	Body   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response (%s): %s", e.Reason, Fragment([]byte(e.Body)))
}

func malformed(raw []byte, format string, args ...interface{}) error {
	return &MalformedResponseError{Reason: fmt.Sprintf(format, args...), Body: string(raw)}
}

// Parse decodes a response body into exactly one of the two known shapes.
func Parse(raw []byte) (Response, error) {
	if !json.Valid(raw) {
		return Response{}, malformed(raw, "body is not valid JSON")
	}
	doc := ldvalue.Parse(raw)
	if doc.Type() != ldvalue.ObjectType {
		return Response{}, malformed(raw, "body is a JSON %s, not an object", doc.Type())
	}

	errorValue := doc.GetByKey("error")
	totalValue := doc.GetByKey("total")
	itemsValue := doc.GetByKey("items")
	hasError := !errorValue.IsNull()
	hasPage := !totalValue.IsNull() || !itemsValue.IsNull()

	switch {
	case hasError && hasPage:
		return Response{}, malformed(raw, "body has both an error and a result page")
	case hasError:
		message := errorValue.GetByKey("message")
		if message.Type() != ldvalue.StringType {
			return Response{}, malformed(raw, "error.message is missing or not a string")
		}
		return Response{Error: &ErrorEnvelope{Message: message.StringValue()}}, nil
	case hasPage:
		return parsePage(raw, totalValue, itemsValue)
	default:
		return Response{}, malformed(raw, "body has neither an error nor a result page")
	}
}

func parsePage(raw []byte, totalValue, itemsValue ldvalue.Value) (Response, error) {
	if !totalValue.IsInt() {
		return Response{}, malformed(raw, "total is missing or not an integer")
	}
	if itemsValue.Type() != ldvalue.ArrayType {
		return Response{}, malformed(raw, "items is missing or not an array")
	}
	var page ResultPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return Response{}, malformed(raw, "result page does not decode: %s", err)
	}
	for i, item := range page.Items {
		if item.ID == "" || item.ID == "null" {
			return Response{}, malformed(raw, "items[%d] has no id", i)
		}
	}
	if page.Items == nil {
		page.Items = []Region{}
	}
	return Response{Page: &page}, nil
}

// Fragment returns a shortened rendering of a body for diagnostic messages.
func Fragment(raw []byte) string {
	s := string(raw)
	if json.Valid(raw) {
		s = ldvalue.Parse(raw).JSONString()
	}
	runes := []rune(s)
	if len(runes) > maxFragmentLength {
		return string(runes[:maxFragmentLength]) + "..."
	}
	return s
}
