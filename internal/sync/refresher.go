package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/store"
)

// Kind identifies one background-refreshed dataset.
type Kind string

const (
	KindMissions Kind = "missions"
	KindRanking  Kind = "ranking"
)

// RefreshState represents the current state of a refresh operation.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshRunning
	RefreshError
)

// Status holds the refresh state for a single dataset.
type Status struct {
	Kind     Kind
	State    RefreshState
	LastSync time.Time
	Error    error
}

// ResultMsg is a tea.Msg sent when a refresh completes. The fetched
// rows land in the cache store; consumers reload from there.
type ResultMsg struct {
	Kind       Kind
	Err        error
	AuthFailed bool
}

// fetchTimeout is the maximum time allowed for a single fetch operation.
const fetchTimeout = 30 * time.Second

// rankingLimit is how many leaderboard rows are kept fresh.
const rankingLimit = 10

// Refresher keeps the local cache store in sync with the API by
// polling each registered dataset on a fixed interval. One goroutine
// runs per dataset; results are forwarded to the Bubble Tea runtime
// through a buffered channel.
type Refresher struct {
	client   *api.Client
	cache    *store.CacheStore
	interval time.Duration
	kinds    []Kind

	statuses map[Kind]*Status
	resultCh chan ResultMsg
	triggers map[Kind]chan struct{}
	stopCh   chan struct{}
	mu       gosync.Mutex
	running  bool
}

// New creates a Refresher polling the given datasets.
func New(client *api.Client, cache *store.CacheStore, interval time.Duration, kinds ...Kind) *Refresher {
	if interval <= 0 {
		interval = 120 * time.Second
	}

	statuses := make(map[Kind]*Status, len(kinds))
	triggers := make(map[Kind]chan struct{}, len(kinds))
	for _, k := range kinds {
		statuses[k] = &Status{Kind: k, State: RefreshIdle}
		triggers[k] = make(chan struct{}, 1)
	}

	return &Refresher{
		client:   client,
		cache:    cache,
		interval: interval,
		kinds:    kinds,
		statuses: statuses,
		triggers: triggers,
		resultCh: make(chan ResultMsg, 16),
		stopCh:   make(chan struct{}),
	}
}

// Start returns a tea.Cmd that starts all polling goroutines and
// subscribes to results.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	for _, k := range r.kinds {
		go r.pollKind(k)
	}

	return r.waitForResult()
}

// Stop halts all polling goroutines.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// RefreshAll triggers an immediate refresh of every dataset.
func (r *Refresher) RefreshAll() {
	for _, k := range r.kinds {
		r.Refresh(k)
	}
}

// Refresh triggers an immediate refresh of a single dataset.
func (r *Refresher) Refresh(kind Kind) {
	ch, ok := r.triggers[kind]
	if !ok {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
		// A refresh is already queued.
	}
}

// Statuses returns the current refresh status of every dataset.
func (r *Refresher) Statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Status, 0, len(r.statuses))
	for _, s := range r.statuses {
		out = append(out, *s)
	}
	return out
}

// WaitForNextResult returns a tea.Cmd that waits for the next refresh
// result. Call it again after processing each ResultMsg to keep
// listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}

// pollKind runs the refresh loop for a single dataset.
func (r *Refresher) pollKind(kind Kind) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Do an initial fetch immediately.
	r.fetch(kind)

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.fetch(kind)
		case <-r.triggers[kind]:
			r.fetch(kind)
		}
	}
}

// fetch performs a single refresh of the dataset and reports the result.
func (r *Refresher) fetch(kind Kind) {
	r.setStatus(kind, RefreshRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	var err error
	switch kind {
	case KindMissions:
		err = r.fetchMissions(ctx)
	case KindRanking:
		err = r.fetchRanking(ctx)
	}

	if err != nil {
		r.setStatus(kind, RefreshError, err)
		r.sendResult(ResultMsg{
			Kind:       kind,
			Err:        err,
			AuthFailed: api.IsAuthError(err),
		})
		return
	}

	r.setStatus(kind, RefreshIdle, nil)
	r.sendResult(ResultMsg{Kind: kind})
}

// fetchMissions pulls the user's assigned missions into the cache.
func (r *Refresher) fetchMissions(ctx context.Context) error {
	missions, err := r.client.ReceivedMissions(ctx)
	if err != nil {
		return err
	}
	return r.cache.UpsertMissions(ctx, missions)
}

// fetchRanking pulls the school leaderboard into the cache.
func (r *Refresher) fetchRanking(ctx context.Context) error {
	entries, err := r.client.Ranking(ctx, rankingLimit)
	if err != nil {
		return err
	}
	return r.cache.ReplaceRanking(ctx, entries)
}

// setStatus updates the refresh status for a dataset.
func (r *Refresher) setStatus(kind Kind, state RefreshState, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status, ok := r.statuses[kind]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	if state == RefreshIdle && err == nil {
		status.LastSync = time.Now()
	}
}

// sendResult sends a ResultMsg without blocking the poll goroutine.
func (r *Refresher) sendResult(msg ResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the refresher.
	}
}

// waitForResult returns a tea.Cmd that waits for the next result.
func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case result := <-r.resultCh:
			return result
		case <-r.stopCh:
			return nil
		}
	}
}
