// Package fakeservice is an in-memory implementation of the regions endpoint. It honours the
// whole contract by default; Defects switch individual behaviours off so that tests can see
// the checks fail.
package fakeservice

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/regions-qa/regions-contract-tests/invariants"
	"github.com/regions-qa/regions-contract-tests/regions"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Defects are deliberate contract violations.
type Defects struct {
	AcceptAllMethods     bool          // serve POST/PUT/DELETE like GET
	CaseSensitiveSearch  bool          // q matches names case-sensitively
	OverlappingPages     bool          // each page repeats the last item of the previous one
	WrongContentType     bool          // declare text/plain
	IgnoreCountryFilter  bool          // country_code is validated but not applied
	AcceptShortQuery     bool          // q shorter than 3 characters is searched
	DefaultPageSize      int           // overrides the default page size when non-zero
	TotalDrift           bool          // total grows by one on every page after the first
	MalformedBody        bool          // every body is truncated JSON
	Delay                time.Duration // sleep before answering
	ForeignMessages      bool          // validation messages come from the other catalog
	WrongTotal           int           // overrides the reported total when non-zero
	QueryHonoursPaging   bool          // q is combined with page/page_size instead of overriding them
	CountryFilterPartial bool          // country_code=ru also returns one region of another country
}

type Service struct {
	messages invariants.Messages
	defects  Defects
}

// New creates a service that words its validation messages from msgs.
func New(msgs invariants.Messages, defects Defects) *Service {
	return &Service{messages: msgs, defects: defects}
}

// Handler returns the router serving the regions collection.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
	})
	if s.defects.AcceptAllMethods {
		r.HandleFunc(regions.CollectionPath, s.handleList)
	} else {
		r.Get(regions.CollectionPath, s.handleList)
	}
	return r
}

type listBody struct {
	Total int      `json:"total"`
	Items []Region `json:"items"`
}

type errorEnvelope struct {
	Error struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(message string) errorEnvelope {
	var e errorEnvelope
	e.Error.ID = uuid.NewString()
	e.Error.Message = message
	return e
}

func (s *Service) msgs() invariants.Messages {
	if !s.defects.ForeignMessages {
		return s.messages
	}
	if s.messages.Locale == invariants.Russian.Locale {
		return invariants.English
	}
	return invariants.Russian
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	if s.defects.Delay > 0 {
		select {
		case <-time.After(s.defects.Delay):
		case <-r.Context().Done():
			return
		}
	}
	query := r.URL.Query()
	msgs := s.msgs()

	if query.Has("q") && !s.defects.QueryHonoursPaging {
		q := query.Get("q")
		if len([]rune(q)) < regions.MinQueryLength && !s.defects.AcceptShortQuery {
			s.writeJSON(w, http.StatusOK, errorBody(msgs.ShortQuery))
			return
		}
		items := s.search(q)
		s.writeJSON(w, http.StatusOK, listBody{Total: len(items), Items: items})
		return
	}

	page, pageSize := regions.DefaultPage, regions.DefaultPageSize
	if s.defects.DefaultPageSize > 0 {
		pageSize = s.defects.DefaultPageSize
	}
	if raw := query.Get("page_size"); query.Has("page_size") {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeJSON(w, http.StatusOK, errorBody(msgs.PageSizeNotInteger))
			return
		}
		if !isValidPageSize(n) {
			s.writeJSON(w, http.StatusOK, errorBody(msgs.InvalidPageSize(regions.ValidPageSizes)))
			return
		}
		pageSize = n
	}
	if raw := query.Get("page"); query.Has("page") {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeJSON(w, http.StatusOK, errorBody(msgs.PageNotInteger))
			return
		}
		if n > 1 {
			page = n
		}
	}

	items := Regions
	if query.Has("q") {
		items = s.search(query.Get("q"))
	}
	if query.Has("country_code") {
		code := query.Get("country_code")
		if !isValidCountryCode(code) {
			s.writeJSON(w, http.StatusOK, errorBody(msgs.InvalidCountryCode(ValidCountryCodes)))
			return
		}
		if !s.defects.IgnoreCountryFilter {
			items = s.filterByCountry(items, code)
		}
	}

	total := len(items)
	start := (page - 1) * pageSize
	if s.defects.OverlappingPages && start > 0 {
		start--
	}
	var pageItems []Region
	if start < len(items) {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pageItems = items[start:end]
	}
	if s.defects.TotalDrift {
		total += page - 1
	}
	if s.defects.WrongTotal != 0 {
		total = s.defects.WrongTotal
	}
	s.writeJSON(w, http.StatusOK, listBody{Total: total, Items: append([]Region{}, pageItems...)})
}

func (s *Service) search(q string) []Region {
	var ret []Region
	for _, r := range Regions {
		if s.defects.CaseSensitiveSearch {
			if strings.Contains(r.Name, q) {
				ret = append(ret, r)
			}
		} else if strings.Contains(strings.ToLower(r.Name), strings.ToLower(q)) {
			ret = append(ret, r)
		}
	}
	return ret
}

func (s *Service) filterByCountry(items []Region, code string) []Region {
	var ret []Region
	leaked := false
	for _, r := range items {
		switch {
		case r.Country.Code == code:
			ret = append(ret, r)
		case s.defects.CountryFilterPartial && !leaked:
			ret = append(ret, r)
			leaked = true
		}
	}
	return ret
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	contentType := invariants.JSONContentType
	if s.defects.WrongContentType {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	data, _ := json.Marshal(body)
	if s.defects.MalformedBody {
		data = data[:len(data)/2]
	}
	_, _ = w.Write(data)
}

func isValidPageSize(n int) bool {
	for _, s := range regions.ValidPageSizes {
		if s == n {
			return true
		}
	}
	return false
}

func isValidCountryCode(code string) bool {
	for _, c := range ValidCountryCodes {
		if c == code {
			return true
		}
	}
	return false
}
