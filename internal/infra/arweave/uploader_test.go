package arweave

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newUploadServer(t *testing.T, status int, body string, seen *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			seen.method = r.Method
			seen.path = r.URL.Path
			seen.header = r.Header.Clone()
			seen.body, _ = io.ReadAll(r.Body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUploadJSON(t *testing.T) {
	var req capturedRequest
	srv := newUploadServer(t, http.StatusOK, `{"uri":"https://gateway.irys.xyz/abc"}`, &req)

	u := NewHTTPUploader(srv.URL+"/", "secret", nil)
	uri, err := u.UploadMetadata(context.Background(), []byte(`{"name":"Ghibli Pepe"}`))
	require.NoError(t, err)

	assert.Equal(t, "https://gateway.irys.xyz/abc", uri)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/upload/json", req.path)
	assert.Equal(t, "Bearer secret", req.header.Get("Authorization"))
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	assert.JSONEq(t, `{"name":"Ghibli Pepe"}`, string(req.body))
}

func TestUploadJSON_IDOnlyResponse(t *testing.T) {
	var req capturedRequest
	srv := newUploadServer(t, http.StatusCreated, `{"id":"tx123"}`, &req)

	uri, err := NewHTTPUploader(srv.URL, "", nil).UploadJSON(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultGatewayURL+"/tx123", uri)
	assert.Empty(t, req.header.Get("Authorization"))
}

func TestUploadJSON_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewHTTPUploader("", "", nil).UploadJSON(ctx, []byte(`{}`))
	assert.ErrorContains(t, err, "baseURL is empty")

	_, err = NewHTTPUploader("http://unused", "", nil).UploadJSON(ctx, nil)
	assert.ErrorContains(t, err, "empty")

	_, err = NewHTTPUploader("http://unused", "", nil).UploadJSON(ctx, []byte(`{`))
	assert.ErrorContains(t, err, "not valid json")

	failing := newUploadServer(t, http.StatusBadGateway, "upstream down", nil)
	_, err = NewHTTPUploader(failing.URL, "", nil).UploadJSON(ctx, []byte(`{}`))
	assert.ErrorContains(t, err, "status=502")

	empty := newUploadServer(t, http.StatusOK, `{}`, nil)
	_, err = NewHTTPUploader(empty.URL, "", nil).UploadJSON(ctx, []byte(`{}`))
	assert.ErrorContains(t, err, "empty uri")

	garbage := newUploadServer(t, http.StatusOK, `<html>`, nil)
	_, err = NewHTTPUploader(garbage.URL, "", nil).UploadJSON(ctx, []byte(`{}`))
	assert.ErrorContains(t, err, "decode upload response")
}
