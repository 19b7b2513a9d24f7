package regions

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// CollectionPath is the path of the regions collection resource.
const CollectionPath = "/1.0/regions"

// RegionID is an opaque region identifier. It keeps the raw JSON token so that numeric and
// string identifiers are compared exactly as the service sent them.
type RegionID string

func (id *RegionID) UnmarshalJSON(data []byte) error {
	*id = RegionID(bytes.TrimSpace(data))
	return nil
}

func (id RegionID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

// String returns the identifier without JSON string quoting.
func (id RegionID) String() string {
	if s, err := strconv.Unquote(string(id)); err == nil {
		return s
	}
	return string(id)
}

type Country struct {
	Code string `json:"code"`
}

type Region struct {
	ID      RegionID `json:"id"`
	Name    string   `json:"name"`
	Country Country  `json:"country"`
}

// ResultPage is one page of regions plus the grand total across all pages.
type ResultPage struct {
	Total int      `json:"total"`
	Items []Region `json:"items"`
}

// IDs returns the item identifiers in response order.
func (p ResultPage) IDs() []RegionID {
	ret := make([]RegionID, 0, len(p.Items))
	for _, item := range p.Items {
		ret = append(ret, item.ID)
	}
	return ret
}

// ErrorEnvelope is the service's validation error shape.
type ErrorEnvelope struct {
	Message string `json:"message"`
}

// Response is the decoded body of one response. Exactly one of Page and Error is non-nil.
type Response struct {
	Page  *ResultPage
	Error *ErrorEnvelope
}

func (r Response) IsPage() bool  { return r.Page != nil }
func (r Response) IsError() bool { return r.Error != nil }

// String renders the response back to compact JSON for diagnostics.
func (r Response) String() string {
	var v interface{}
	switch {
	case r.Page != nil:
		v = r.Page
	case r.Error != nil:
		v = struct {
			Error *ErrorEnvelope `json:"error"`
		}{r.Error}
	default:
		return "<empty response>"
	}
	data, _ := json.Marshal(v)
	return string(data)
}
