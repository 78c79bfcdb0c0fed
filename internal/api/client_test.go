package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(tok string) TokenSource {
	return func() string { return tok }
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok-123"))

	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "/users/me", &out))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientSkipsAuthHeaderWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""))

	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "/missoes/recebidas", &out))
	assert.Empty(t, gotAuth)
}

func TestClientUnauthorizedInvalidatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token expired"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("stale"))

	var lostCalls int
	c.OnAuthLost(func() { lostCalls++ })

	err := c.Get(context.Background(), "/users/me", nil)
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Contains(t, err.Error(), "token expired")
	assert.Equal(t, 1, lostCalls)
}

func TestClientUnauthorizedOnLoginDoesNotInvalidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "bad credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""))

	var lostCalls int
	c.OnAuthLost(func() { lostCalls++ })

	_, err := c.Login(context.Background(), "kid@school.example", "nope")
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, 0, lostCalls, "a failed login must not tear the session down")
}

func TestClientRetriesAfterRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"))

	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "/ranking", &out))
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientSurfacesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "moedas insuficientes"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"))

	err := c.BuyItem(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moedas insuficientes")
	assert.False(t, IsAuthError(err))
}
