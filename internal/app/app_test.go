package app

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/model"
	appsync "github.com/schoolquest/tui/internal/sync"
	bellview "github.com/schoolquest/tui/internal/ui/bell"
	missionsview "github.com/schoolquest/tui/internal/ui/missions"
	"github.com/schoolquest/tui/tests/testutil"
)

func testModel(t *testing.T) Model {
	t.Helper()

	cfg := &model.AppConfig{
		APIURL:             "http://localhost:8000",
		RefreshIntervalSec: 120,
		Notifications: model.NotificationsConfig{
			DesktopPermission: model.PermissionDenied,
		},
	}

	m := New(cfg, filepath.Join(t.TempDir(), "config.yaml"), nil, log.New(io.Discard, "", 0))
	m.ready = true
	m.currentView = ViewDashboard
	m.missionsView = missionsview.New(m.client, nil, m.keys, false, 80, 24)
	return m
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok, "expected app.Model, got %T", updated)
	return next, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGlobalShortcutsFollowKeymap(t *testing.T) {
	m := testModel(t)

	m, _ = pressKey(t, m, runeKey('b'))
	assert.True(t, m.bellOpen)

	updated, _ := m.Update(bellview.CloseMsg{})
	m = updated.(Model)
	assert.False(t, m.bellOpen)

	m, _ = pressKey(t, m, runeKey('?'))
	assert.Equal(t, ViewHelp, m.currentView)

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewDashboard, m.currentView)

	var cmd tea.Cmd
	m, cmd = pressKey(t, m, runeKey('4'))
	assert.Equal(t, ViewShop, m.currentView)
	assert.NotNil(t, cmd)

	m, cmd = pressKey(t, m, runeKey('1'))
	assert.Equal(t, ViewDashboard, m.currentView)
	assert.NotNil(t, cmd)
}

func TestReportsShortcutIsRoleGated(t *testing.T) {
	m := testModel(t)

	m.sess.SetUser(model.User{ID: 1, Name: "Ana", Role: model.RoleStudent})
	m, _ = pressKey(t, m, runeKey('7'))
	assert.Equal(t, ViewDashboard, m.currentView)

	m.sess.SetUser(model.User{ID: 2, Name: "Rui", Role: model.RoleManager})
	m, cmd := pressKey(t, m, runeKey('7'))
	assert.Equal(t, ViewReports, m.currentView)
	assert.NotNil(t, cmd)
}

func TestHeaderFlagsFailedSync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := testModel(t)
	m.sess.SetUser(model.User{ID: 1, Name: "Ana", Role: model.RoleStudent})

	cache := testutil.NewTestCache(t)
	client := api.NewClient(srv.URL, func() string { return "tok" })
	r := appsync.New(client, cache, time.Hour, appsync.KindMissions)
	defer r.Stop()

	// The first poll runs immediately; by the time the result lands
	// the status already records the failure.
	wait := r.Start()
	done := make(chan tea.Msg, 1)
	go func() { done <- wait() }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for refresh result")
	}

	m.refresher = r
	assert.Contains(t, m.headerStatus(), "sync failed")
}
