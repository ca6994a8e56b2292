package testkit

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTransport_MatchesStubAndRecords(t *testing.T) {
	mt := NewMockTransport(
		Stub{Method: http.MethodPost, URL: "https://api.test/v1/charges", Status: 201, Body: `{"id":"ch_1"}`},
	)
	client := &http.Client{Transport: mt}

	form := url.Values{"amount": {"1000"}}
	resp, err := client.Post("https://api.test/v1/charges", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 201, resp.StatusCode)
	calls := mt.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "1000", calls[0].Form().Get("amount"))
	mt.AssertAllCalled(t)
}

func TestMockTransport_UnmatchedFails(t *testing.T) {
	mt := NewMockTransport(Stub{URL: "https://api.test/v1/customers"})
	client := &http.Client{Transport: mt}

	_, err := client.Get("https://elsewhere.test/")
	assert.Error(t, err)
}

func TestMockTransport_StubError(t *testing.T) {
	boom := errors.New("connection reset")
	mt := NewMockTransport(Stub{URL: "https://api.test", Err: boom})
	client := &http.Client{Transport: mt}

	_, err := client.Get("https://api.test/x")
	assert.ErrorIs(t, err, boom)
}

func TestAssertJSONBody_IgnoresKeyOrder(t *testing.T) {
	AssertJSONBody(t, `{"a":1,"b":[1,2]}`, []byte(`{ "b":[1,2], "a":1 }`))
}
