package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyClanReturnsNilWhenClanless(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server answers with an empty object for users without a clan.
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"))

	clan, err := c.MyClan(context.Background())
	require.NoError(t, err)
	assert.Nil(t, clan)
}

func TestClanLifecycleEndpoints(t *testing.T) {
	var invitedUser int
	var accepted, left bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /clans/":
			w.Write([]byte(`[{"id": 1, "nome": "Os Sabidos", "lider_id": 3, "escola_id": 1}]`))
		case "POST /clans/":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Write([]byte(`{"id": 2, "nome": "` + body["nome"] + `", "lider_id": 7, "escola_id": 1}`))
		case "POST /clans/invite":
			var body map[string]int
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			invitedUser = body["user_id"]
			w.WriteHeader(http.StatusNoContent)
		case "GET /clans/invites/my":
			w.Write([]byte(`[{"id": 5, "clan_id": 1, "clan_nome": "Os Sabidos", "from_nome": "Ana"}]`))
		case "POST /clans/invites/5/accept":
			accepted = true
			w.WriteHeader(http.StatusNoContent)
		case "POST /clans/leave":
			left = true
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"))
	ctx := context.Background()

	clans, err := c.Clans(ctx)
	require.NoError(t, err)
	require.Len(t, clans, 1)
	assert.Equal(t, "Os Sabidos", clans[0].Name)

	created, err := c.CreateClan(ctx, "Turma do Fundo", "nós")
	require.NoError(t, err)
	assert.Equal(t, "Turma do Fundo", created.Name)

	require.NoError(t, c.InviteToClan(ctx, 9))
	assert.Equal(t, 9, invitedUser)

	invites, err := c.MyInvites(ctx)
	require.NoError(t, err)
	require.Len(t, invites, 1)

	require.NoError(t, c.AcceptInvite(ctx, invites[0].ID))
	assert.True(t, accepted)

	require.NoError(t, c.LeaveClan(ctx))
	assert.True(t, left)
}
