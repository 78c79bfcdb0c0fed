package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/keys"
	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/notify"
	"github.com/schoolquest/tui/internal/realtime"
	"github.com/schoolquest/tui/internal/session"
	"github.com/schoolquest/tui/internal/store"
	appsync "github.com/schoolquest/tui/internal/sync"
	"github.com/schoolquest/tui/internal/ui"
	bellview "github.com/schoolquest/tui/internal/ui/bell"
	clanview "github.com/schoolquest/tui/internal/ui/clan"
	helpview "github.com/schoolquest/tui/internal/ui/help"
	loginview "github.com/schoolquest/tui/internal/ui/login"
	"github.com/schoolquest/tui/internal/ui/missionform"
	missionsview "github.com/schoolquest/tui/internal/ui/missions"
	muralview "github.com/schoolquest/tui/internal/ui/mural"
	profileview "github.com/schoolquest/tui/internal/ui/profile"
	rankingview "github.com/schoolquest/tui/internal/ui/ranking"
	reportsview "github.com/schoolquest/tui/internal/ui/reports"
	shopview "github.com/schoolquest/tui/internal/ui/shop"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewClan
	ViewMural
	ViewShop
	ViewRanking
	ViewProfile
	ViewReports
	ViewHelp
	ViewMissionForm
)

// profileLoadedMsg carries the result of a GET /users/me call.
type profileLoadedMsg struct {
	user *model.User
	err  error
}

// connOpenedMsg carries the result of dialing the realtime endpoint.
type connOpenedMsg struct {
	conn *realtime.Conn
	err  error
}

// authLostMsg is emitted when a 401 outside the login endpoint
// invalidates the session.
type authLostMsg struct{}

// toastTickMsg drives re-renders while the toast stack counts down.
type toastTickMsg struct{}

// fetchTimeout bounds the profile fetch at startup and after refreshes.
const fetchTimeout = 30 * time.Second

// Model is the root Bubble Tea model that manages the session
// lifecycle, view routing, the realtime pipeline, and the background
// refresher.
type Model struct {
	cfg     *model.AppConfig
	cfgPath string
	sess    *session.Session
	client  *api.Client
	cache   *store.CacheStore
	logger  *log.Logger

	refresher *appsync.Refresher
	conn      *realtime.Conn

	notifications *notify.Store
	toaster       *notify.Toaster
	bridge        *notify.Bridge

	layout ui.Layout
	keys   *keys.KeyMap

	currentView  ViewState
	previousView ViewState
	bellOpen     bool
	ticking      bool
	ready        bool

	loginView    loginview.Model
	bellView     bellview.Model
	missionsView missionsview.Model
	formView     missionform.Model
	clanView     clanview.Model
	muralView    muralview.Model
	shopView     shopview.Model
	rankingView  rankingview.Model
	profileView  profileview.Model
	reportsView  reportsview.Model
	helpView     helpview.Model

	// authLostCh decouples the HTTP client's 401 callback, which fires
	// on command goroutines, from the Bubble Tea update loop.
	authLostCh chan struct{}
}

// New creates the root application model.
func New(cfg *model.AppConfig, cfgPath string, cache *store.CacheStore, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}

	k := keys.DefaultKeyMap()
	sess := session.New()

	client := api.NewClient(cfg.APIURL, sess.Token)
	client.SetLogger(logger)

	authLostCh := make(chan struct{}, 1)
	client.OnAuthLost(func() {
		select {
		case authLostCh <- struct{}{}:
		default:
		}
	})

	notifications := notify.NewStore()

	return Model{
		cfg:           cfg,
		cfgPath:       cfgPath,
		sess:          sess,
		client:        client,
		cache:         cache,
		logger:        logger,
		notifications: notifications,
		toaster:       notify.NewToaster(),
		bridge:        notify.NewBridge(cfg.Notifications.DesktopPermission, logger),
		keys:          k,
		currentView:   ViewLogin,
		loginView:     loginview.New(client, 80, 24),
		bellView:      bellview.New(notifications, k, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		authLostCh:    authLostCh,
	}
}

// Init restores a stored session when one exists, otherwise shows the
// login form.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForAuthLost()}

	if m.sess.Restore() {
		cmds = append(cmds, m.fetchProfile())
	} else {
		cmds = append(cmds, m.loginView.Init())
	}

	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resizeViews()
		return m.updateActiveView(msg)

	case profileLoadedMsg:
		return m.handleProfileLoaded(msg)

	case loginview.SuccessMsg:
		m.sess.AdoptToken(msg.Token)
		return m, m.fetchProfile()

	case connOpenedMsg:
		if msg.err != nil {
			m.logger.Printf("app: realtime connect failed: %v", msg.err)
			return m, nil
		}
		m.conn = msg.conn
		return m, m.conn.WaitForEvent()

	case realtime.NotificationMsg:
		return m.handleNotification(msg.Notification)

	case realtime.ClosedMsg:
		// No reconnect policy: the session continues over HTTP only.
		if msg.Err != nil {
			m.logger.Printf("app: realtime connection closed: %v", msg.Err)
		}
		m.conn = nil
		return m, nil

	case authLostMsg:
		return m.forceLogout()

	case toastTickMsg:
		m.ticking = false
		if len(m.toaster.Visible(time.Now())) > 0 {
			return m, m.tickToasts()
		}
		return m, nil

	case appsync.ResultMsg:
		return m.handleRefreshResult(msg)

	case bellview.NavigateMsg:
		m.bellOpen = false
		return m.switchScreen(msg.Screen)

	case bellview.CloseMsg:
		m.bellOpen = false
		return m, nil

	case bellview.PermissionAnsweredMsg:
		m.bridge.Decide(msg.Granted)
		m.cfg.Notifications.DesktopPermission = m.bridge.Permission()
		if err := model.SaveConfig(m.cfgPath, m.cfg); err != nil {
			m.logger.Printf("app: saving config: %v", err)
		}
		return m, nil

	case missionsview.ActionDoneMsg:
		var cmd tea.Cmd
		m.missionsView, cmd = m.missionsView.Update(msg)
		if msg.Err == nil {
			m.refresher.Refresh(appsync.KindMissions)
			return m, tea.Batch(cmd, m.missionsView.Load())
		}
		return m, cmd

	case missionform.CreatedMsg:
		m.currentView = ViewDashboard
		m.refresher.Refresh(appsync.KindMissions)
		return m, m.missionsView.Load()

	case missionform.CancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case shopview.PurchaseMsg:
		var cmd tea.Cmd
		m.shopView, cmd = m.shopView.Update(msg)
		if msg.Err == nil {
			// The purchase changed the coin balance.
			return m, tea.Batch(cmd, m.fetchProfile())
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateActiveView(msg)
}

// handleProfileLoaded finishes login/restore or applies a profile
// refresh, depending on whether a session is already active.
func (m Model) handleProfileLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.sess.Active() {
			// A refresh failed mid-session; keep the stale profile.
			m.logger.Printf("app: profile refresh failed: %v", msg.err)
			return m, nil
		}
		// The restored token is dead or login raced a revocation.
		m.sess.Clear()
		m.currentView = ViewLogin
		return m, m.loginView.Start()
	}

	user := *msg.user

	if m.sess.Active() {
		m.sess.SetUser(user)
		m.profileView.SetUser(user)
		m.shopView.SetCoins(user.Coins)
		return m, nil
	}

	m.sess.Start(user, m.sess.Token())
	return m.enterSession(user)
}

// enterSession builds the per-session views and starts the realtime
// connection and the background refresher.
func (m Model) enterSession(user model.User) (tea.Model, tea.Cmd) {
	w, h := m.contentSize()

	m.missionsView = missionsview.New(m.client, m.cache, m.keys, user.IsStaff(), w, h)
	m.formView = missionform.New(m.client, w, h)
	m.clanView = clanview.New(m.client, m.cache, m.keys, user.ID, w, h)
	m.muralView = muralview.New(m.client, m.keys, user, w, h)
	m.shopView = shopview.New(m.client, m.keys, user.Coins, w, h)
	m.rankingView = rankingview.New(m.cache, w, h)
	m.profileView = profileview.New(user, w, h)
	m.reportsView = reportsview.New(m.client, w, h)

	m.refresher = appsync.New(
		m.client, m.cache,
		time.Duration(m.cfg.RefreshIntervalSec)*time.Second,
		appsync.KindMissions, appsync.KindRanking,
	)

	m.currentView = ViewDashboard

	return m, tea.Batch(
		m.missionsView.Init(),
		m.refresher.Start(),
		m.dialRealtime(user.ID),
	)
}

// handleNotification runs one event through the pipeline: store,
// toast stack, desktop mirror, and the clan chat merge for message
// events.
func (m Model) handleNotification(n model.Notification) (tea.Model, tea.Cmd) {
	m.notifications.Prepend(n)
	m.toaster.Refresh(m.notifications.Unread(), time.Now())
	m.bridge.Mirror(n)

	var cmds []tea.Cmd
	if m.conn != nil {
		cmds = append(cmds, m.conn.WaitForEvent())
	}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, m.tickToasts())
	}

	if n.Type == model.NotifClanMessage {
		if chat, ok := chatMessageFromData(n.Data); ok {
			m.clanView.MergeMessage(chat)
			cache := m.cache
			cmds = append(cmds, func() tea.Msg {
				_ = cache.UpsertMessages(context.Background(), []model.ChatMessage{chat})
				return nil
			})
		}
	}

	return m, tea.Batch(cmds...)
}

// handleRefreshResult reacts to a completed background refresh.
func (m Model) handleRefreshResult(msg appsync.ResultMsg) (tea.Model, tea.Cmd) {
	if msg.AuthFailed {
		return m.forceLogout()
	}

	cmds := []tea.Cmd{m.refresher.WaitForNextResult()}
	if msg.Err == nil {
		switch msg.Kind {
		case appsync.KindMissions:
			cmds = append(cmds, m.missionsView.Load())
		case appsync.KindRanking:
			cmds = append(cmds, m.rankingView.Load())
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKeys routes key input: text-entry surfaces get everything,
// otherwise global shortcuts run first.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// Surfaces that own the keyboard outright.
	if m.currentView == ViewLogin || m.currentView == ViewMissionForm {
		return m.updateActiveView(msg)
	}
	if m.bellOpen {
		var cmd tea.Cmd
		m.bellView, cmd = m.bellView.Update(msg)
		return m, cmd
	}
	if m.currentView == ViewClan && m.clanView.InputFocused() {
		return m.updateActiveView(msg)
	}
	if m.currentView == ViewMural && m.muralView.InputFocused() {
		return m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Logout):
		return m.logout()

	case key.Matches(msg, m.keys.Bell):
		m.bellOpen = true
		if m.bridge.ShouldPrompt() {
			m.bellView.PromptPermission()
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.refresher != nil {
			m.refresher.RefreshAll()
		}
		return m, m.reloadCurrent()

	case key.Matches(msg, m.keys.New):
		user := m.sess.User()
		if m.currentView == ViewDashboard && user != nil && user.IsStaff() {
			m.previousView = m.currentView
			m.currentView = ViewMissionForm
			return m, m.formView.Start()
		}

	case key.Matches(msg, m.keys.Dashboard):
		return m.switchScreen(model.ScreenDashboard)
	case key.Matches(msg, m.keys.Clan):
		return m.switchScreen(model.ScreenClan)
	case key.Matches(msg, m.keys.Mural):
		m.currentView = ViewMural
		return m, m.muralView.Init()
	case key.Matches(msg, m.keys.Shop):
		m.currentView = ViewShop
		return m, m.shopView.Init()
	case key.Matches(msg, m.keys.Ranking):
		m.currentView = ViewRanking
		return m, m.rankingView.Init()
	case key.Matches(msg, m.keys.Profile):
		return m.switchScreen(model.ScreenProfile)
	case key.Matches(msg, m.keys.Reports):
		user := m.sess.User()
		if user != nil && user.CanViewReports() {
			m.currentView = ViewReports
			return m, m.reportsView.Init()
		}
	}

	return m.updateActiveView(msg)
}

// switchScreen navigates to a notification target or a numbered screen.
func (m Model) switchScreen(screen model.Screen) (tea.Model, tea.Cmd) {
	switch screen {
	case model.ScreenDashboard:
		m.currentView = ViewDashboard
		return m, m.missionsView.Load()
	case model.ScreenClan:
		m.currentView = ViewClan
		return m, m.clanView.Init()
	case model.ScreenProfile:
		m.currentView = ViewProfile
		return m, nil
	}
	return m, nil
}

// reloadCurrent reloads the data behind the active screen.
func (m Model) reloadCurrent() tea.Cmd {
	switch m.currentView {
	case ViewDashboard:
		return m.missionsView.Load()
	case ViewClan:
		return m.clanView.Load()
	case ViewMural:
		return m.muralView.Load()
	case ViewShop:
		return m.shopView.Load()
	case ViewRanking:
		return m.rankingView.Load()
	case ViewProfile:
		return m.fetchProfile()
	case ViewReports:
		return m.reportsView.Load()
	}
	return nil
}

// logout tears the session down deliberately.
func (m Model) logout() (tea.Model, tea.Cmd) {
	m.teardownSession()
	m.sess.Clear()
	m.currentView = ViewLogin
	return m, m.loginView.Start()
}

// forceLogout tears the session down after the server rejected the
// token. The keyring copy is wiped so the dead token is not restored,
// and the 401 listener re-arms for the next session.
func (m Model) forceLogout() (tea.Model, tea.Cmd) {
	m.teardownSession()
	m.sess.Clear()
	m.currentView = ViewLogin
	return m, tea.Batch(m.loginView.Start(), m.waitForAuthLost())
}

// quit stops everything and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.teardownSession()
	return m, tea.Quit
}

// teardownSession closes the realtime connection, stops the
// refresher, and empties the volatile notification state.
func (m *Model) teardownSession() {
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	if m.refresher != nil {
		m.refresher.Stop()
		m.refresher = nil
	}
	m.notifications.Clear()
	m.bellOpen = false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.missionsView, cmd = m.missionsView.Update(msg)
	case ViewClan:
		m.clanView, cmd = m.clanView.Update(msg)
	case ViewMural:
		m.muralView, cmd = m.muralView.Update(msg)
	case ViewShop:
		m.shopView, cmd = m.shopView.Update(msg)
	case ViewRanking:
		m.rankingView, cmd = m.rankingView.Update(msg)
	case ViewProfile:
		m.profileView, cmd = m.profileView.Update(msg)
	case ViewReports:
		m.reportsView, cmd = m.reportsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewMissionForm:
		m.formView, cmd = m.formView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.headerStatus())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	content := m.renderContent()
	if m.bellOpen {
		content = m.bellView.View()
	}

	view := m.layout.RenderWithFrame(header, content, statusBar)

	if toasts := m.toaster.Visible(time.Now()); len(toasts) > 0 && !m.bellOpen {
		view = ui.OverlayToasts(view, ui.RenderToasts(toasts), m.layout.Width)
	}

	return view
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.missionsView.View()
	case ViewClan:
		return m.clanView.View()
	case ViewMural:
		return m.muralView.View()
	case ViewShop:
		return m.shopView.View()
	case ViewRanking:
		return m.rankingView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewMissionForm:
		return m.formView.View()
	default:
		return ""
	}
}

// headerTitle is the application name plus the unread bell badge.
func (m Model) headerTitle() string {
	title := "SchoolQuest"
	if badge := bellview.Badge(m.notifications.UnreadCount()); badge != "" {
		title += " " + badge
	}
	return title
}

// headerStatus summarizes who is signed in and whether the realtime
// channel is up.
func (m Model) headerStatus() string {
	user := m.sess.User()
	if user == nil {
		return ""
	}

	live := "○ offline"
	if m.conn != nil && m.conn.Connected() {
		live = "● live"
	}

	info := model.LevelInfoFor(user.XP)
	status := fmt.Sprintf("%s %s lvl %d · %s", info.RankIcon, user.Name, info.Level, live)

	if sync := m.syncIndicator(); sync != "" {
		status += " · " + sync
	}
	return status
}

// syncIndicator summarizes the background refresher: syncing while any
// dataset is mid-fetch, an error marker when the last fetch failed.
func (m Model) syncIndicator() string {
	if m.refresher == nil {
		return ""
	}

	failed := false
	for _, st := range m.refresher.Statuses() {
		switch st.State {
		case appsync.RefreshRunning:
			return "⟳ syncing"
		case appsync.RefreshError:
			failed = true
		}
	}
	if failed {
		return "⚠ sync failed"
	}
	return ""
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.bellOpen {
		return "enter open | m mark all read | C clear all | esc close"
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewClan:
		return "i type | L leave | 1-6 screens | b bell | ? help"
	case ViewMural:
		return "n new post | d delete | 1-6 screens | b bell | ? help"
	case ViewShop:
		return "enter buy | 1-6 screens | b bell | ? help"
	case ViewMissionForm:
		return "enter submit | esc cancel"
	default:
		user := m.sess.User()

		screens := "1-6 screens"
		if user != nil && user.CanViewReports() {
			screens = "1-7 screens"
		}

		hints := "q quit | " + screens + " | b bell | r refresh | ? help"
		if m.currentView == ViewDashboard && user != nil {
			if user.IsStaff() {
				hints = "a approve | d reject | n new mission | " + hints
			} else {
				hints = "x submit mission | " + hints
			}
		}
		return hints
	}
}

// fetchProfile returns a tea.Cmd that loads GET /users/me.
func (m Model) fetchProfile() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		user, err := client.Me(ctx)
		return profileLoadedMsg{user: user, err: err}
	}
}

// dialRealtime opens the session's realtime connection.
func (m Model) dialRealtime(userID int) tea.Cmd {
	baseURL := m.client.BaseURL()
	logger := m.logger
	return func() tea.Msg {
		conn, err := realtime.Dial(baseURL, userID, logger)
		return connOpenedMsg{conn: conn, err: err}
	}
}

// waitForAuthLost bridges the HTTP client's 401 callback into the
// update loop.
func (m Model) waitForAuthLost() tea.Cmd {
	ch := m.authLostCh
	return func() tea.Msg {
		<-ch
		return authLostMsg{}
	}
}

// tickToasts schedules the next toast expiry check.
func (m Model) tickToasts() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// resizeViews propagates the new layout to every view.
func (m *Model) resizeViews() {
	w, h := m.contentSize()
	m.loginView.SetSize(w, h)
	m.bellView.SetSize(w, h)
	m.missionsView.SetSize(w, h)
	m.formView.SetSize(w, h)
	m.clanView.SetSize(w, h)
	m.muralView.SetSize(w, h)
	m.shopView.SetSize(w, h)
	m.rankingView.SetSize(w, h)
	m.profileView.SetSize(w, h)
	m.reportsView.SetSize(w, h)
	m.helpView.SetSize(w, h)
}

func (m Model) contentSize() (int, int) {
	if !m.ready {
		return 80, 24
	}
	return m.layout.ContentWidth(), m.layout.ContentHeight()
}

// chatMessageFromData rebuilds a chat message from a notification's
// verbatim data payload.
func chatMessageFromData(data map[string]any) (model.ChatMessage, bool) {
	if data == nil {
		return model.ChatMessage{}, false
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return model.ChatMessage{}, false
	}

	var msg model.ChatMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return model.ChatMessage{}, false
	}
	if msg.ID == 0 || msg.ClanID == 0 {
		return model.ChatMessage{}, false
	}
	return msg, true
}
