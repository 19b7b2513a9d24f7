package regions

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 15
	MinQueryLength  = 3
)

// ValidPageSizes are the only page sizes the service accepts.
var ValidPageSizes = []int{5, 10, 15}

// QuerySpec is the set of query parameters sent in one request. Every field is optional;
// an undefined field is omitted from the query string so that service defaults apply.
type QuerySpec struct {
	Q           ldvalue.OptionalString
	CountryCode ldvalue.OptionalString
	Page        ldvalue.OptionalInt
	PageSize    ldvalue.OptionalInt

	// Raw parameters are sent verbatim and take precedence over the typed fields with the
	// same name. They carry malformed inputs such as page=1.5.
	Raw map[string]string
}

func Query(q string) QuerySpec {
	return QuerySpec{Q: ldvalue.NewOptionalString(q)}
}

func CountryFilter(code string) QuerySpec {
	return QuerySpec{CountryCode: ldvalue.NewOptionalString(code)}
}

func PageOf(page, pageSize int) QuerySpec {
	return QuerySpec{Page: ldvalue.NewOptionalInt(page), PageSize: ldvalue.NewOptionalInt(pageSize)}
}

func RawParam(name, value string) QuerySpec {
	return QuerySpec{Raw: map[string]string{name: value}}
}

// WithPage returns a copy of the query that requests the given page.
func (s QuerySpec) WithPage(page int) QuerySpec {
	s.Page = ldvalue.NewOptionalInt(page)
	s.Raw = s.rawWithout("page")
	return s
}

// WithPageSize returns a copy of the query that requests the given page size.
func (s QuerySpec) WithPageSize(pageSize int) QuerySpec {
	s.PageSize = ldvalue.NewOptionalInt(pageSize)
	s.Raw = s.rawWithout("page_size")
	return s
}

// Values encodes the query as query parameters.
func (s QuerySpec) Values() url.Values {
	v := make(url.Values)
	if q, ok := s.Q.Get(); ok {
		v.Set("q", q)
	}
	if code, ok := s.CountryCode.Get(); ok {
		v.Set("country_code", code)
	}
	if page, ok := s.Page.Get(); ok {
		v.Set("page", strconv.Itoa(page))
	}
	if size, ok := s.PageSize.Get(); ok {
		v.Set("page_size", strconv.Itoa(size))
	}
	for name, value := range s.Raw {
		v.Set(name, value)
	}
	return v
}

func (s QuerySpec) String() string {
	v := s.Values()
	if len(v) == 0 {
		return "(no parameters)"
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+v.Get(k))
	}
	return strings.Join(parts, "&")
}

func (s QuerySpec) rawWithout(name string) map[string]string {
	if _, ok := s.Raw[name]; !ok {
		return s.Raw
	}
	ret := make(map[string]string, len(s.Raw))
	for k, v := range s.Raw {
		if k != name {
			ret[k] = v
		}
	}
	return ret
}
