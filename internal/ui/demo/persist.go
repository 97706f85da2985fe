// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-overlay/internal/storage"
)

// =============================================================================
// CHANGE QUEUE
// =============================================================================

// change is one committed dropdown value waiting to be saved.
type change struct {
	key      string
	values   []string
	multiple bool
}

// changeQueue collects dropdown changes raised during one Update. It is
// shared by pointer so the OnChange hooks registered at construction reach
// every copy of the model.
type changeQueue struct {
	pending []change
	muted   bool
}

func (q *changeQueue) push(c change) {
	if q.muted {
		return
	}
	q.pending = append(q.pending, c)
}

// drain returns the pending changes, keeping only the newest per key.
func (q *changeQueue) drain() []change {
	if len(q.pending) == 0 {
		return nil
	}
	latest := make(map[string]int, len(q.pending))
	for i, c := range q.pending {
		latest[c.key] = i
	}
	out := make([]change, 0, len(latest))
	for i, c := range q.pending {
		if latest[c.key] == i {
			out = append(out, c)
		}
	}
	q.pending = nil
	return out
}

// =============================================================================
// SAVER
// =============================================================================

// saver writes selections off the update loop. Saves for one key are
// numbered; a save that finds a newer number issued for its key is dropped,
// so a slow write never overwrites a later one.
type saver struct {
	store *storage.SelectionStore

	mu  sync.Mutex
	seq map[string]uint64
}

func newSaver(store *storage.SelectionStore) *saver {
	return &saver{store: store, seq: make(map[string]uint64)}
}

// saveCmd returns the command saving c.
func (s *saver) saveCmd(ctx context.Context, c change) tea.Cmd {
	s.mu.Lock()
	s.seq[c.key]++
	n := s.seq[c.key]
	s.mu.Unlock()

	return func() tea.Msg {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.seq[c.key] != n {
			return nil
		}
		err := s.store.Save(ctx, c.key, c.values, c.multiple)
		return SelectionSavedMsg{Key: c.key, Err: err}
	}
}

// restoreCmd loads the saved values of keys. Keys without a saved selection
// are left out.
func (s *saver) restoreCmd(ctx context.Context, keys []string) tea.Cmd {
	return func() tea.Msg {
		out := make(map[string][]string, len(keys))
		for _, key := range keys {
			rec, err := s.store.Load(ctx, key)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return SelectionsRestoredMsg{Values: out, Err: err}
			}
			out[key] = rec.Values
		}
		return SelectionsRestoredMsg{Values: out}
	}
}
