package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSendsOAuthPasswordForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "/auth/token", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")

		// The endpoint expects the email in the OAuth2 username field.
		assert.Equal(t, "kid@school.example", r.FormValue("username"))
		assert.Equal(t, "hunter2", r.FormValue("password"))

		w.Write([]byte(`{"access_token": "tok-abc", "token_type": "bearer"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""))

	tok, err := c.Login(context.Background(), "kid@school.example", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
}

func TestMeParsesWireNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 3, "email": "kid@school.example", "nome": "Ana",
			"papel": "aluno", "pontos": 120, "moedas": 35, "xp": 450,
			"nivel": 5, "escola_nome": "EM Dom Pedro", "serie_nome": "7B"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"))

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, 450, user.XP)
	assert.Equal(t, 35, user.Coins)
	assert.Equal(t, "7B", user.GradeName)
	assert.False(t, user.IsStaff())
}
