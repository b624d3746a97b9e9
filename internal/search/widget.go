// Package search implements the instant-search widget state machine:
// a debounced query, a minimum-length gate, and race-safe application
// of results so a stale lookup never overwrites a newer one.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"blog_server/internal/domain"
)

// State is the widget's dropdown state.
type State string

const (
	StateIdle        State = "idle"
	StatePending     State = "pending"
	StateOpenResults State = "open-with-results"
	StateOpenEmpty   State = "open-empty"
	StateClosed      State = "closed"
)

// Searcher is the injected lookup dependency. No ambient index: the
// widget only ever sees what it is constructed with.
type Searcher interface {
	InstantSearch(ctx context.Context, query string) ([]domain.Post, error)
}

// Snapshot is a consistent copy of the widget's visible state.
type Snapshot struct {
	Query   string
	State   State
	Results []domain.Post
	Loading bool
}

// Config holds widget tuning. OnChange, when set, is invoked after
// every transition with the new snapshot (outside the widget's lock).
type Config struct {
	Debounce       time.Duration
	MinQueryLength int
	OnChange       func(Snapshot)
}

// Widget drives one search input. Safe for concurrent use.
type Widget struct {
	searcher Searcher
	debounce time.Duration
	minLen   int
	onChange func(Snapshot)
	logger   *slog.Logger

	mu      sync.Mutex
	query   string
	state   State
	results []domain.Post
	loading bool
	timer   *time.Timer
	gen     uint64 // keystroke generation, invalidates stopped timers
	seq     uint64 // request sequence, invalidates stale lookups
	cancel  context.CancelFunc
}

func NewWidget(searcher Searcher, cfg Config, logger *slog.Logger) *Widget {
	if cfg.Debounce == 0 {
		cfg.Debounce = 300 * time.Millisecond
	}
	if cfg.MinQueryLength == 0 {
		cfg.MinQueryLength = 2
	}

	return &Widget{
		searcher: searcher,
		debounce: cfg.Debounce,
		minLen:   cfg.MinQueryLength,
		onChange: cfg.OnChange,
		logger:   logger,
		state:    StateIdle,
	}
}

// Type records a keystroke: the raw query is stored immediately for
// display and the debounce timer restarts. Only the most recent
// keystroke's timer may fire.
func (w *Widget) Type(query string) {
	w.mu.Lock()
	w.query = query
	if w.timer != nil {
		w.timer.Stop()
	}
	w.gen++
	gen := w.gen
	w.timer = time.AfterFunc(w.debounce, func() {
		w.fire(query, gen)
	})
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
}

// fire runs when the debounce timer for query elapses.
func (w *Widget) fire(query string, gen uint64) {
	w.mu.Lock()

	// A Stop that lost the race with this callback, or a newer
	// keystroke, Clear, or Close in between.
	if gen != w.gen {
		w.mu.Unlock()
		return
	}

	if utf8.RuneCountInString(query) < w.minLen {
		// An earlier, longer query may still be in flight; it must not
		// reopen the dropdown after the reset.
		if w.cancel != nil {
			w.cancel()
			w.cancel = nil
		}
		w.seq++
		w.results = nil
		w.loading = false
		w.state = StateIdle
		snap := w.snapshotLocked()
		w.mu.Unlock()
		w.notify(snap)
		return
	}

	if w.cancel != nil {
		w.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.seq++
	seq := w.seq
	w.loading = true
	w.state = StatePending
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
	go w.lookup(ctx, query, seq)
}

func (w *Widget) lookup(ctx context.Context, query string, seq uint64) {
	results, err := w.searcher.InstantSearch(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.logger.Error("instant search failed", "query", query, "error", err)
		results = nil
	}

	w.mu.Lock()
	// Superseded by a newer debounce cycle: discard.
	if seq != w.seq {
		w.mu.Unlock()
		return
	}

	w.results = results
	w.loading = false
	if len(results) > 0 {
		w.state = StateOpenResults
	} else {
		w.state = StateOpenEmpty
	}
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
}

// Close handles click-away and result selection: the dropdown closes
// but the typed text stays in the input.
func (w *Widget) Close() {
	w.mu.Lock()
	w.stopLocked()
	w.loading = false
	w.state = StateClosed
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
}

// Submit closes the dropdown and hands the query back for navigation
// to the full results page. Blank queries do not navigate.
func (w *Widget) Submit() (string, bool) {
	w.mu.Lock()
	query := strings.TrimSpace(w.query)
	w.stopLocked()
	w.loading = false
	w.state = StateClosed
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
	return query, query != ""
}

// Clear resets the widget to idle and discards any result list.
func (w *Widget) Clear() {
	w.mu.Lock()
	w.stopLocked()
	w.query = ""
	w.results = nil
	w.loading = false
	w.state = StateIdle
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
}

// Snapshot returns the current visible state.
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// stopLocked cancels the pending timer and any in-flight request, and
// bumps both counters so late timers and late resolutions are
// discarded.
func (w *Widget) stopLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.gen++
	w.seq++
}

func (w *Widget) snapshotLocked() Snapshot {
	results := make([]domain.Post, len(w.results))
	copy(results, w.results)
	return Snapshot{
		Query:   w.query,
		State:   w.state,
		Results: results,
		Loading: w.loading,
	}
}

func (w *Widget) notify(snap Snapshot) {
	if w.onChange != nil {
		w.onChange(snap)
	}
}
