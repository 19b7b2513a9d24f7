package invariants

import (
	"fmt"
	"strconv"
	"strings"
)

// Messages is one catalog of the service's documented validation messages. A run uses a single
// catalog and any other wording is reported as a contract break.
type Messages struct {
	Locale                   string
	ShortQuery               string
	InvalidCountryCodeFormat string
	PageNotInteger           string
	InvalidPageSizeFormat    string
	PageSizeNotInteger       string
}

var English = Messages{
	Locale:                   "en",
	ShortQuery:               "'q' parameter must be at least 3 characters",
	InvalidCountryCodeFormat: "'country_code' parameter must be one of: %s",
	PageNotInteger:           "'page' parameter must be an integer",
	InvalidPageSizeFormat:    "'page_size' parameter must be one of: %s",
	PageSizeNotInteger:       "'page_size' parameter must be an integer",
}

var Russian = Messages{
	Locale:                   "ru",
	ShortQuery:               "Параметр 'q' должен быть не менее 3 символов",
	InvalidCountryCodeFormat: "Параметр 'country_code' может быть одним из следующих значений: %s",
	PageNotInteger:           "Параметр 'page' длжен быть целым числом",
	InvalidPageSizeFormat:    "Параметр 'page_size' может быть одним из следующих значений: %s",
	PageSizeNotInteger:       "Параметр 'page_size' длжен быть целым числом",
}

// MessagesForLocale returns the catalog for "en" or "ru".
func MessagesForLocale(locale string) (Messages, error) {
	switch strings.ToLower(locale) {
	case "", "en":
		return English, nil
	case "ru":
		return Russian, nil
	default:
		return Messages{}, fmt.Errorf("unknown message locale %q (expected en or ru)", locale)
	}
}

func (m Messages) InvalidCountryCode(codes []string) string {
	return fmt.Sprintf(m.InvalidCountryCodeFormat, strings.Join(codes, ", "))
}

func (m Messages) InvalidPageSize(sizes []int) string {
	parts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		parts = append(parts, strconv.Itoa(s))
	}
	return fmt.Sprintf(m.InvalidPageSizeFormat, strings.Join(parts, ", "))
}
