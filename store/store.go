// Package store owns the chat-session collections of each surface. A
// SessionStore is an explicit object over one storage key; every mutation
// ends by writing the whole collection back.
package store

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/storage"
	"clementus360/edu-copilot/types"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rivo/uniseg"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	previewLength   = 50
	titleWords      = 5
	truncatedMarker = "..."
)

type Options struct {
	PlaceholderTitle string
	Welcome          string
	// Clock defaults to UTC wall time truncated to milliseconds, which is
	// what survives a JSON round trip.
	Clock func() time.Time
}

// OptionsFor derives store options from a surface.
func OptionsFor(surface config.Surface) Options {
	return Options{
		PlaceholderTitle: surface.PlaceholderTitle,
		Welcome:          surface.Welcome,
	}
}

type SessionStore struct {
	backend  storage.Backend
	key      string
	opts     Options
	sessions []types.Session
	activeID string
}

// Open rehydrates the collection stored under key. A missing key is an empty
// collection. The visible session is the one marked active, or the first.
func Open(ctx context.Context, backend storage.Backend, key string, opts Options) (*SessionStore, error) {
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
	}

	s := &SessionStore{backend: backend, key: key, opts: opts}

	doc, found, err := backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for %s: %w", key, err)
	}
	if !found {
		return s, nil
	}

	sessions, err := decodeCollection(doc)
	if err != nil {
		return nil, err
	}
	s.sessions = sessions

	if len(s.sessions) > 0 {
		visible := s.sessions[0].ID
		for _, sess := range s.sessions {
			if sess.IsActive {
				visible = sess.ID
				break
			}
		}
		s.markActive(visible)
	}

	return s, nil
}

// Key is the storage key this store persists to.
func (s *SessionStore) Key() string { return s.key }

// ActiveID is the visible session, or "" when there is none.
func (s *SessionStore) ActiveID() string { return s.activeID }

// Sessions returns a copy of the collection, most recent first.
func (s *SessionStore) Sessions() []types.Session {
	out := make([]types.Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = cloneSession(sess)
	}
	return out
}

// Session returns a copy of the session with id.
func (s *SessionStore) Session(id string) (types.Session, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return types.Session{}, false
	}
	return cloneSession(s.sessions[idx]), true
}

// Active returns the visible session.
func (s *SessionStore) Active() (types.Session, bool) {
	if s.activeID == "" {
		return types.Session{}, false
	}
	return s.Session(s.activeID)
}

// CreateSession puts a new active session, seeded with the welcome turn, at
// the head of the collection.
func (s *SessionStore) CreateSession(ctx context.Context) (types.Session, error) {
	now := s.opts.Clock()

	welcome := s.NewTurn(types.AuthorAssistant, s.opts.Welcome, nil)
	sess := types.Session{
		ID:          ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Title:       s.opts.PlaceholderTitle,
		LastPreview: preview(welcome.Text),
		UpdatedAt:   now,
		Turns:       []types.Turn{welcome},
	}

	s.sessions = append([]types.Session{sess}, s.sessions...)
	s.markActive(sess.ID)

	if err := s.persist(ctx); err != nil {
		return types.Session{}, err
	}
	return cloneSession(s.sessions[0]), nil
}

// SwitchActive makes id the only active session. Unknown ids are ignored.
func (s *SessionStore) SwitchActive(ctx context.Context, id string) error {
	if s.indexOf(id) < 0 {
		return nil
	}
	s.markActive(id)
	return s.persist(ctx)
}

// NewTurn stamps a turn with the next creation-order id. Ids are unix
// milliseconds, bumped past the largest id already in the collection.
func (s *SessionStore) NewTurn(author types.Author, text string, attachments []types.Attachment) types.Turn {
	now := s.opts.Clock()
	id := now.UnixMilli()
	if last := s.lastTurnID(); id <= last {
		id = last + 1
	}
	return types.Turn{
		ID:          id,
		Author:      author,
		Text:        text,
		CreatedAt:   now,
		Attachments: append([]types.Attachment(nil), attachments...),
	}
}

// AppendTurn adds turn to the session, refreshes its preview and timestamp,
// and titles the session after its first user turn.
func (s *SessionStore) AppendTurn(ctx context.Context, sessionID string, turn types.Turn) error {
	idx := s.indexOf(sessionID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	sess := &s.sessions[idx]
	if turn.Author == types.AuthorUser && !sess.HasUserTurn() {
		sess.Title = title(turn.Text)
	}

	sess.Turns = append(sess.Turns, cloneTurn(turn))
	sess.LastPreview = preview(turn.Text)
	sess.UpdatedAt = s.opts.Clock()

	return s.persist(ctx)
}

// DeleteSession removes a session. Deleting the visible session moves the
// focus to the first remaining one, or to none.
func (s *SessionStore) DeleteSession(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	s.sessions = append(s.sessions[:idx:idx], s.sessions[idx+1:]...)

	if id == s.activeID {
		s.activeID = ""
		if len(s.sessions) > 0 {
			s.markActive(s.sessions[0].ID)
		}
	}

	return s.persist(ctx)
}

// persist writes the full collection, or removes the key when it is empty so
// that "emptied" and "never used" stay distinguishable.
func (s *SessionStore) persist(ctx context.Context) error {
	if len(s.sessions) == 0 {
		if err := s.backend.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("failed to remove sessions for %s: %w", s.key, err)
		}
		return nil
	}

	doc, err := encodeCollection(s.sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, doc); err != nil {
		return fmt.Errorf("failed to save sessions for %s: %w", s.key, err)
	}
	return nil
}

func (s *SessionStore) markActive(id string) {
	for i := range s.sessions {
		s.sessions[i].IsActive = s.sessions[i].ID == id
	}
	s.activeID = id
}

func (s *SessionStore) indexOf(id string) int {
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

func (s *SessionStore) lastTurnID() int64 {
	var last int64
	for _, sess := range s.sessions {
		for _, t := range sess.Turns {
			if t.ID > last {
				last = t.ID
			}
		}
	}
	return last
}

// preview keeps the first 50 user-perceived characters.
func preview(text string) string {
	if uniseg.GraphemeClusterCount(text) <= previewLength {
		return text
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for n := 0; n < previewLength && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return b.String() + truncatedMarker
}

// title keeps the first five words.
func title(text string) string {
	words := strings.Fields(text)
	if len(words) <= titleWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:titleWords], " ") + truncatedMarker
}

func cloneSession(sess types.Session) types.Session {
	turns := make([]types.Turn, len(sess.Turns))
	for i, turn := range sess.Turns {
		turns[i] = cloneTurn(turn)
	}
	sess.Turns = turns
	return sess
}

// cloneTurn keeps a nil attachment list nil.
func cloneTurn(turn types.Turn) types.Turn {
	if turn.Attachments != nil {
		turn.Attachments = append([]types.Attachment(nil), turn.Attachments...)
	}
	return turn
}
