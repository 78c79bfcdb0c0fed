package sync_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolquest/tui/internal/api"
	appsync "github.com/schoolquest/tui/internal/sync"
	"github.com/schoolquest/tui/tests/testutil"
)

func TestRefresherFillsCacheOnFirstPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missoes/recebidas":
			w.Write([]byte(`[
				{"id": 1, "missao_id": 10, "aluno_id": 3, "status": "pendente",
				 "data_atribuicao": "2026-08-01T10:00:00Z",
				 "missao": {"id": 10, "titulo": "Read chapter 3", "pontos": 20, "moedas": 5,
				            "categoria": "estudo", "criador_id": 1,
				            "criado_em": "2026-07-30T08:00:00Z"}}
			]`))
		case "/ranking":
			w.Write([]byte(`[{"nome": "Ana", "nivel": 5, "xp": 450, "serie": "7B"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cache := testutil.NewTestCache(t)
	client := api.NewClient(srv.URL, func() string { return "tok" })

	r := appsync.New(client, cache, time.Hour, appsync.KindMissions, appsync.KindRanking)
	defer r.Stop()

	// Start kicks off one immediate fetch per dataset; collect both
	// results by running the wait command directly.
	wait := r.Start()
	require.NotNil(t, wait)

	seen := map[appsync.Kind]bool{}
	for i := 0; i < 2; i++ {
		msg := runWithTimeout(t, wait)
		result, ok := msg.(appsync.ResultMsg)
		require.True(t, ok, "expected ResultMsg, got %T", msg)
		require.NoError(t, result.Err)
		seen[result.Kind] = true
		wait = r.WaitForNextResult()
	}
	assert.True(t, seen[appsync.KindMissions])
	assert.True(t, seen[appsync.KindRanking])

	missions, err := cache.GetMissions(context.Background())
	require.NoError(t, err)
	require.Len(t, missions, 1)
	assert.Equal(t, "Read chapter 3", missions[0].Mission.Title)

	ranking, err := cache.GetRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, "Ana", ranking[0].Name)
}

func TestRefresherFlagsAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token expired"}`))
	}))
	defer srv.Close()

	cache := testutil.NewTestCache(t)
	client := api.NewClient(srv.URL, func() string { return "stale" })

	r := appsync.New(client, cache, time.Hour, appsync.KindMissions)
	defer r.Stop()

	msg := runWithTimeout(t, r.Start())
	result, ok := msg.(appsync.ResultMsg)
	require.True(t, ok, "expected ResultMsg, got %T", msg)

	assert.Error(t, result.Err)
	assert.True(t, result.AuthFailed)

	statuses := r.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, appsync.KindMissions, statuses[0].Kind)
	assert.Equal(t, appsync.RefreshError, statuses[0].State)
	assert.Error(t, statuses[0].Error)
}

// runWithTimeout executes a wait command, failing the test instead of
// hanging when no result arrives.
func runWithTimeout(t *testing.T, wait tea.Cmd) tea.Msg {
	t.Helper()

	done := make(chan tea.Msg, 1)
	go func() { done <- wait() }()

	select {
	case msg := <-done:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for refresh result")
		return nil
	}
}
