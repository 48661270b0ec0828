package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(handler http.HandlerFunc) (*OpenCage, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewOpenCage("test-key")
	client.BaseURL = server.URL
	return client, server
}

func TestOpenCage_Resolve_Success(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"geometry":{"lat":-23.5,"lng":-46.6}}]}`))
	})
	defer server.Close()

	lat, lng := client.Resolve(context.Background(), "Av. Paulista, 1000, São Paulo")
	if assert.NotNil(t, lat) && assert.NotNil(t, lng) {
		assert.Equal(t, -23.5, *lat)
		assert.Equal(t, -46.6, *lng)
	}
}

func TestOpenCage_Resolve_NoResults(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})
	defer server.Close()

	lat, lng := client.Resolve(context.Background(), "nowhere")
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}

func TestOpenCage_Resolve_ServerError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	lat, lng := client.Resolve(context.Background(), "anywhere")
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}

func TestOpenCage_Resolve_BadPayload(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer server.Close()

	lat, lng := client.Resolve(context.Background(), "anywhere")
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}

func TestOpenCage_Resolve_Unreachable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	lat, lng := client.Resolve(context.Background(), "anywhere")
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}
