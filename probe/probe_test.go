package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/regions-qa/regions-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadBaseURLs(t *testing.T) {
	for _, u := range []string{"", "regions-test.2gis.com", "ftp://example.com", "https://"} {
		_, err := New(u, time.Second)
		assert.Error(t, err, u)
	}
	p, err := New("https://regions-test.2gis.com/", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://regions-test.2gis.com", p.BaseURL())
	assert.Equal(t, DefaultTimeout, p.timeout)
}

func TestWithScheme(t *testing.T) {
	p, err := New("https://regions-test.2gis.com", time.Second)
	require.NoError(t, err)
	insecure := p.WithScheme("http")
	assert.Equal(t, "http://regions-test.2gis.com", insecure.BaseURL())
	assert.Equal(t, "http", insecure.Scheme())
	assert.Equal(t, "https", p.Scheme())
}

func TestDoReturnsObservation(t *testing.T) {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json; charset=utf-8")
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, headers, []byte(`{"total":0,"items":[]}`)))

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		p, err := New(server.URL, time.Second)
		require.NoError(t, err)

		var logger framework.CapturingLogger
		obs, err := p.Get(context.Background(), "/1.0/regions", url.Values{"q": []string{"рск"}}, &logger)
		require.NoError(t, err)

		assert.Equal(t, 200, obs.StatusCode)
		assert.Equal(t, "application/json; charset=utf-8", obs.Header.Get("Content-Type"))
		assert.Equal(t, `{"total":0,"items":[]}`, string(obs.Body))
		assert.NotEmpty(t, obs.RequestID)
		assert.Len(t, logger.Output(), 2)

		require.Len(t, requestsCh, 1)
		r := <-requestsCh
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, "/1.0/regions", r.Request.URL.Path)
		assert.Equal(t, "рск", r.Request.URL.Query().Get("q"))
		assert.Equal(t, obs.RequestID, r.Request.Header.Get(RequestIDHeader))
		assert.Equal(t, "application/json", r.Request.Header.Get("Accept"))
	})
}

func TestErrorStatusIsAnObservationNotAnError(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(405), func(server *httptest.Server) {
		p, err := New(server.URL, time.Second)
		require.NoError(t, err)
		obs, err := p.Do(context.Background(), "POST", "/1.0/regions", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 405, obs.StatusCode)
		assert.Equal(t, "<empty body>", obs.BodyFragment())
	})
}

func TestOversizedBodyIsTruncated(t *testing.T) {
	body := []byte(strings.Repeat("x", MaxBodySize+10))
	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, nil, body), func(server *httptest.Server) {
		p, err := New(server.URL, time.Second*5)
		require.NoError(t, err)
		var logger framework.CapturingLogger
		obs, err := p.Get(context.Background(), "/1.0/regions", nil, &logger)
		require.NoError(t, err)
		assert.True(t, obs.Truncated)
		assert.Len(t, obs.Body, MaxBodySize)
		assert.Contains(t, logger.Output()[1].Message, "larger than")
	})

	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, nil, body[:MaxBodySize]), func(server *httptest.Server) {
		p, err := New(server.URL, time.Second*5)
		require.NoError(t, err)
		obs, err := p.Get(context.Background(), "/1.0/regions", nil, nil)
		require.NoError(t, err)
		assert.False(t, obs.Truncated)
	})
}

func TestRedirectsAreNotFollowed(t *testing.T) {
	headers := make(http.Header)
	headers.Set("Location", "https://example.com/1.0/regions")
	httphelpers.WithServer(httphelpers.HandlerWithResponse(301, headers, nil), func(server *httptest.Server) {
		p, err := New(server.URL, time.Second)
		require.NoError(t, err)
		obs, err := p.Get(context.Background(), "/1.0/regions", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 301, obs.StatusCode)
	})
}

func TestConnectionFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	serverURL := server.URL
	server.Close()

	p, err := New(serverURL, time.Second)
	require.NoError(t, err)
	_, err = p.Get(context.Background(), "/1.0/regions", nil, nil)
	require.Error(t, err)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "GET", te.Method)
	assert.False(t, te.Timeout())
}

func TestTimeoutIsTransportError(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second * 2):
		case <-r.Context().Done():
		}
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		p, err := New(server.URL, time.Millisecond*100)
		require.NoError(t, err)
		_, err = p.Get(context.Background(), "/1.0/regions", nil, nil)
		require.Error(t, err)
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.True(t, te.Timeout())
	})
}

func TestNewWithClientUsesTheGivenTransport(t *testing.T) {
	server := httptest.NewTLSServer(httphelpers.HandlerWithStatus(200))
	defer server.Close()

	p, err := New(server.URL, time.Second)
	require.NoError(t, err)
	_, err = p.Get(context.Background(), "/1.0/regions", nil, nil)
	var te *TransportError
	require.True(t, errors.As(err, &te), "default client should not trust the test certificate")

	p, err = NewWithClient(server.URL, time.Second, server.Client())
	require.NoError(t, err)
	obs, err := p.Get(context.Background(), "/1.0/regions", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, obs.StatusCode)
	assert.Equal(t, time.Second, p.client.Timeout)
	assert.Zero(t, server.Client().Timeout, "the given client must not be modified")

	insecure := p.WithScheme("http")
	assert.Same(t, p.client.Transport, insecure.client.Transport)
}

func TestCurlCommand(t *testing.T) {
	obs := Observation{
		Method:    "POST",
		URL:       "https://regions-test.2gis.com/1.0/regions?q=%D1%80%D1%81%D0%BA&page=1",
		RequestID: "abc",
	}
	cmd := obs.CurlCommand()
	assert.True(t, strings.HasPrefix(cmd, "curl -sS -i -X POST -H 'X-Request-Id: abc' "))
	assert.Contains(t, cmd, "'https://regions-test.2gis.com/1.0/regions?q=%D1%80%D1%81%D0%BA&page=1'")

	get := Observation{Method: "GET", URL: "https://example.com/x"}
	assert.Equal(t, "curl -sS -i https://example.com/x", get.CurlCommand())
}
