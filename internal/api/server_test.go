package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/pkg/pipeline"
)

const jsonDoc = `
["document", {"title": "Demo"},
  ["page", {},
    ["rect", {"x": 10, "y": 20, "width": 100, "height": 50, "fill": "red"}]
  ]
]`

const tomlDoc = `
[document]
title = "Demo"

[[page]]

[[page.element]]
tag = "circle"
cx = 100
cy = 100
r = 50
`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(pipeline.NewRunner(nil, nil, nil), nil)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}

func TestRenderPDF(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(jsonDoc))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	require.NotEmpty(t, resp.Header.Get("X-Document-Hash"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "%PDF-1.4\n"))
	require.Contains(t, string(body), "/Title (Demo)")
}

func TestRenderTOML(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/render?format=stream", "application/toml", strings.NewReader(tomlDoc))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "% page 1")
	require.Contains(t, string(body), " c\n")
}

func TestRenderBadDocument(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/render", "application/json",
		strings.NewReader(`["document", {}, ["page", {}, ["widget", {}]]]`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "UNKNOWN_ELEMENT", body.Code)
	require.NotEmpty(t, body.RequestID)
}

func TestRenderBadFormat(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/render?format=docx", "application/json", strings.NewReader(jsonDoc))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "INVALID_FORMAT", body.Code)
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := testServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))
}
