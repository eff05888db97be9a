package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		assert.Equal(t, "What is DBMS?", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"title":"DBMS","link":"https://a","snippet":"A DBMS stores data."},
			{"title":"Empty","link":"https://b","snippet":""},
			{"title":"SQL","link":"https://c","snippet":"SQL queries a DBMS."}
		]}`))
	}))
	defer server.Close()

	g := NewGoogleSearch("test-key", "test-cx", server.URL, 2*time.Second)
	snippets, err := g.Search(context.Background(), "What is DBMS?")
	require.NoError(t, err)
	assert.Equal(t, []string{"A DBMS stores data.", "", "SQL queries a DBMS."}, snippets)
}

func TestGoogleSearch_NoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"searchInformation":{"totalResults":"0"}}`))
	}))
	defer server.Close()

	snippets, err := NewGoogleSearch("k", "cx", server.URL, time.Second).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestGoogleSearch_Errors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := NewGoogleSearch("k", "cx", server.URL, time.Second).Search(context.Background(), "q")
		assert.ErrorContains(t, err, "403")
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		_, err := NewGoogleSearch("k", "cx", server.URL, time.Second).Search(context.Background(), "q")
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(`{"items":[]}`))
		}))
		defer server.Close()

		_, err := NewGoogleSearch("k", "cx", server.URL, 50*time.Millisecond).Search(context.Background(), "q")
		assert.Error(t, err)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewGoogleSearch("", "cx", "", time.Second).Search(context.Background(), "q")
		assert.Error(t, err)
	})
}
