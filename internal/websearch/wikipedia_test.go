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

func TestWikipedia_Summary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "search", q.Get("generator"))
		assert.Equal(t, "What is DBMS?", q.Get("gsrsearch"))
		assert.Equal(t, "2", q.Get("exsentences"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"batchcomplete":true,"query":{"pages":[
			{"pageid":1,"title":"Database","extract":"  A database is an organized collection of data. It is managed by a DBMS.  "}
		]}}`))
	}))
	defer server.Close()

	text, err := NewWikipedia(server.URL, time.Second).Summary(context.Background(), "What is DBMS?", 2)
	require.NoError(t, err)
	assert.Equal(t, "A database is an organized collection of data. It is managed by a DBMS.", text)
}

func TestWikipedia_NoPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"batchcomplete":true}`))
	}))
	defer server.Close()

	text, err := NewWikipedia(server.URL, time.Second).Summary(context.Background(), "zzzz", 2)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestWikipedia_Errors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":{"code":"badvalue","info":"bad request"}}`))
		}))
		defer server.Close()

		_, err := NewWikipedia(server.URL, time.Second).Summary(context.Background(), "q", 2)
		assert.ErrorContains(t, err, "bad request")
	})

	t.Run("status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := NewWikipedia(server.URL, time.Second).Summary(context.Background(), "q", 2)
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		_, err := NewWikipedia(server.URL, time.Second).Summary(context.Background(), "q", 2)
		assert.Error(t, err)
	})
}
