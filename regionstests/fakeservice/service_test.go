package fakeservice

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/regions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, s *Service, method, query string) (*httptest.ResponseRecorder, regions.Response) {
	req := httptest.NewRequest(method, regions.CollectionPath+"?"+query, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	resp, err := regions.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	return rec, resp
}

func TestDataSet(t *testing.T) {
	assert.Len(t, Regions, 22)
	countries := make(map[string]bool)
	for _, r := range Regions {
		countries[r.Country.Code] = true
	}
	assert.Len(t, countries, 5)
}

func TestDefaultsAndPaging(t *testing.T) {
	s := New(invariants.English, Defects{})
	rec, resp := get(t, s, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, invariants.JSONContentType, rec.Header().Get("Content-Type"))
	require.True(t, resp.IsPage())
	assert.Equal(t, 22, resp.Page.Total)
	assert.Len(t, resp.Page.Items, 15)

	_, resp = get(t, s, http.MethodGet, "page=3&page_size=10")
	require.True(t, resp.IsPage())
	assert.Len(t, resp.Page.Items, 2)

	_, resp = get(t, s, http.MethodGet, "page=45")
	require.True(t, resp.IsPage())
	assert.Empty(t, resp.Page.Items)
}

func TestValidation(t *testing.T) {
	s := New(invariants.Russian, Defects{})
	for query, message := range map[string]string{
		"q=%D0%BD%D0%BE":    invariants.Russian.ShortQuery,
		"page=1.5":          invariants.Russian.PageNotInteger,
		"page_size=4":       invariants.Russian.InvalidPageSize(regions.ValidPageSizes),
		"page_size=x":       invariants.Russian.PageSizeNotInteger,
		"country_code=us":   invariants.Russian.InvalidCountryCode(ValidCountryCodes),
		"country_code=1234": invariants.Russian.InvalidCountryCode(ValidCountryCodes),
	} {
		_, resp := get(t, s, http.MethodGet, query)
		require.True(t, resp.IsError(), query)
		assert.Equal(t, message, resp.Error.Message, query)
	}
}

func TestSearchIgnoresOtherParameters(t *testing.T) {
	s := New(invariants.English, Defects{})
	_, resp := get(t, s, http.MethodGet,
		"q=%D0%9D%D0%9E%D0%92%D0%9E%D0%A1%D0%98%D0%91%D0%98%D0%A0%D0%A1%D0%9A&country_code=kz&page=3&page_size=4")
	require.True(t, resp.IsPage())
	require.Len(t, resp.Page.Items, 1)
	assert.Equal(t, "Новосибирск", resp.Page.Items[0].Name)
}

func TestOtherMethodsAreNotAllowed(t *testing.T) {
	s := New(invariants.English, Defects{})
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec, resp := get(t, s, method, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.True(t, resp.IsError())
	}

	s = New(invariants.English, Defects{AcceptAllMethods: true})
	rec, _ := get(t, s, http.MethodPost, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
