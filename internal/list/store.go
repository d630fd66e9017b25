// Package list owns the canonical, insertion-ordered sequence of actions
// and persists it after every change.
//
// Operations never fail: invalid input and unknown ids leave the list as
// it was, and persistence errors are logged and dropped. The worst outcome
// of a broken backend is an empty list on the next start.
package list

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Makepad-fr/impact/internal/model"
)

// Store is the single source of truth for the action list.
type Store struct {
	mu        sync.Mutex
	actions   []model.Action
	bridge    Bridge
	ids       model.IDSource
	log       *slog.Logger
	exclusive bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence and rejection events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDSource replaces the clock-based id source.
func WithIDSource(ids model.IDSource) Option {
	return func(s *Store) { s.ids = ids }
}

// WithExclusiveEdit controls whether opening one editor closes the others.
// It is on by default.
func WithExclusiveEdit(on bool) Option {
	return func(s *Store) { s.exclusive = on }
}

// Open builds a Store from whatever the bridge holds. A failed or corrupt
// load starts an empty list.
func Open(ctx context.Context, bridge Bridge, opts ...Option) *Store {
	s := &Store{
		bridge:    bridge,
		ids:       model.NewClockIDs(),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		exclusive: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	actions, ok, err := bridge.Load(ctx)
	switch {
	case err != nil:
		s.log.Warn("load failed, starting empty", slog.String("error", err.Error()))
		actions = nil
	case !ok:
		s.log.Debug("no saved list")
	}
	s.actions = make([]model.Action, 0, len(actions))
	for _, a := range actions {
		a.Editing = false
		s.ids.Observe(a.ID)
		s.actions = append(s.actions, a)
	}
	return s
}

// Actions returns a copy of the list in canonical order.
func (s *Store) Actions() []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get looks an action up by id.
func (s *Store) Get(id int64) (model.Action, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.actions[i], true
	}
	return model.Action{}, false
}

// Add appends a new action. Blank text or a weight outside 1..10 is
// ignored.
func (s *Store) Add(text string, weight int) []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" || !model.ValidWeight(weight) {
		s.log.Debug("add rejected", slog.Int("text_len", len(text)), slog.Int("weight", weight))
		return s.snapshot()
	}
	s.actions = append(s.actions, model.Action{
		ID:     s.ids.Next(),
		Text:   text,
		Weight: weight,
	})
	s.persist()
	return s.snapshot()
}

// Reset empties the list.
func (s *Store) Reset() []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = s.actions[:0:0]
	s.persist()
	return s.snapshot()
}

// ToggleComplete flips the completed flag of one action.
func (s *Store) ToggleComplete(id int64) []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return s.snapshot()
	}
	s.actions[i].Completed = !s.actions[i].Completed
	s.persist()
	return s.snapshot()
}

// ToggleEdit opens or closes the inline editor of one action. Editing is
// never persisted, so this does not write.
func (s *Store) ToggleEdit(id int64) []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return s.snapshot()
	}
	open := !s.actions[i].Editing
	if open && s.exclusive {
		for j := range s.actions {
			s.actions[j].Editing = false
		}
	}
	s.actions[i].Editing = open
	return s.snapshot()
}

// EditSave overwrites text and weight and closes the editor. The caller
// validates the values.
func (s *Store) EditSave(id int64, text string, weight int) []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return s.snapshot()
	}
	s.actions[i].Text = text
	s.actions[i].Weight = weight
	s.actions[i].Editing = false
	s.persist()
	return s.snapshot()
}

func (s *Store) indexOf(id int64) int {
	for i := range s.actions {
		if s.actions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []model.Action {
	out := make([]model.Action, len(s.actions))
	copy(out, s.actions)
	return out
}

func (s *Store) persist() {
	if err := s.bridge.Save(context.Background(), s.snapshot()); err != nil {
		s.log.Warn("save failed", slog.String("error", err.Error()))
		return
	}
	s.log.Debug("saved", slog.Int("actions", len(s.actions)))
}
