// Package history implements a linear undo/redo log of scene snapshots.
//
// The log is a single branch: pushing a snapshot while the cursor is not at
// the end discards everything after the cursor. Each entry records the state
// of the collections it covers right after an edit. Undoing an entry restores
// each of those collections to the closest earlier entry that also covers
// it, or to empty if there is none. Redoing re-applies the entry itself.
//
// The cursor is -1 for an empty log and otherwise indexes the entry whose
// state is currently applied. Entry 0 can never be undone, so callers that
// want their first edit to be undoable push a baseline first (see NewAll).
//
// A Manager is not safe for concurrent use.
package history

import (
	"log/slog"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLimit bounds the number of retained entries. When the log grows past
// the limit, the oldest entries are folded into a single All baseline, so
// undo within the retained window behaves exactly as without a limit.
// Values below 2 mean unlimited.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n < 2 {
			n = 0
		}
		m.limit = n
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager holds the snapshot log and its cursor.
type Manager struct {
	entries []Snapshot
	cursor  int
	limit   int
	logger  *slog.Logger
}

// New returns an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		cursor: -1,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Push appends s after the cursor, discarding the redo branch.
// A nil snapshot is ignored.
func (m *Manager) Push(s Snapshot) {
	if s == nil {
		return
	}
	if dropped := len(m.entries) - (m.cursor + 1); dropped > 0 {
		clear(m.entries[m.cursor+1:])
		m.entries = m.entries[:m.cursor+1]
		m.logger.Debug("history: redo branch discarded", "entries", dropped)
	}
	m.entries = append(m.entries, s)
	m.cursor = len(m.entries) - 1
	m.trim()
}

// Undo steps the cursor back and restores the collections covered by the
// entry it leaves. It reports false, doing nothing, when the cursor is at 0
// or the log is empty.
func (m *Manager) Undo(t Target) bool {
	if m.cursor <= 0 {
		m.logger.Debug("history: nothing to undo", "cursor", m.cursor)
		return false
	}
	undone := m.entries[m.cursor]
	m.cursor--
	for _, d := range undone.Domains() {
		restore(t, m.latest(d, m.cursor), d)
	}
	return true
}

// Redo steps the cursor forward and re-applies the entry it reaches. It
// reports false, doing nothing, when the cursor is at the last entry.
func (m *Manager) Redo(t Target) bool {
	if m.cursor >= len(m.entries)-1 {
		m.logger.Debug("history: nothing to redo", "cursor", m.cursor)
		return false
	}
	m.cursor++
	Apply(t, m.entries[m.cursor])
	return true
}

// CanUndo reports whether Undo would change anything.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether Redo would change anything.
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }

// Len returns the number of entries in the log.
func (m *Manager) Len() int { return len(m.entries) }

// Cursor returns the index of the applied entry, or -1 for an empty log.
func (m *Manager) Cursor() int { return m.cursor }

// At returns the entry at index i, or nil if i is out of range.
func (m *Manager) At(i int) Snapshot {
	if i < 0 || i >= len(m.entries) {
		return nil
	}
	return m.entries[i]
}

// Reset empties the log.
func (m *Manager) Reset() {
	clear(m.entries)
	m.entries = m.entries[:0]
	m.cursor = -1
}

// latest returns the newest entry at or before index upto that covers d,
// or nil if none does.
func (m *Manager) latest(d Domain, upto int) Snapshot {
	for i := upto; i >= 0; i-- {
		if covers(m.entries[i], d) {
			return m.entries[i]
		}
	}
	return nil
}

// resolve returns the full scene state in effect at index i.
func (m *Manager) resolve(i int) All {
	var all All
	for _, d := range allDomains {
		switch s := m.latest(d, i).(type) {
		case nil:
		case Strokes:
			all.Strokes = s.Strokes
		case Shapes:
			all.Shapes = s.Shapes
		case Texts:
			all.Texts = s.Texts
		case Images:
			all.Images = s.Images
		case All:
			switch d {
			case DomainStrokes:
				all.Strokes = s.Strokes
			case DomainShapes:
				all.Shapes = s.Shapes
			case DomainTexts:
				all.Texts = s.Texts
			case DomainImages:
				all.Images = s.Images
			}
		}
	}
	return all
}

// trim folds the oldest entries into a baseline once the log exceeds the
// limit. The fold keeps len(entries) == limit with entry 0 as the baseline.
func (m *Manager) trim() {
	if m.limit == 0 || len(m.entries) <= m.limit {
		return
	}
	fold := len(m.entries) - m.limit + 1
	base := m.resolve(fold - 1)

	kept := make([]Snapshot, 0, m.limit)
	kept = append(kept, base)
	kept = append(kept, m.entries[fold:]...)
	m.entries = kept
	m.cursor -= fold - 1
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.logger.Debug("history: folded old entries", "folded", fold, "limit", m.limit)
}
