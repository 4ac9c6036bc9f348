// Хранилище открытых сессий редактирования в памяти.
//
// Основные возможности:
//   - Одна блокировка на сессию: команды одной сессии выполняются последовательно.
//   - Продление времени жизни при каждом обращении и удаление истекших сессий.
//   - Снимки измененных сессий для сохранения в базе и восстановление из снимка.
package store

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/apierrors"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/dao"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// EditorFactory opens a document in a configured editor.
type EditorFactory func(doc *edtypes.Document, opts ...editor.Option) *editor.Editor

type Session struct {
	ID      string
	FieldID *string

	mu      sync.Mutex
	editor  *editor.Editor
	expires time.Time
	dirty   bool
}

// Editor returns the session editor. Use it only inside SessionStore.Do.
func (s *Session) Editor() *editor.Editor {
	return s.editor
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl       time.Duration
	limit     int
	newEditor EditorFactory
	now       func() time.Time
}

func NewSessionStore(ttl time.Duration, limit int, factory EditorFactory) *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]*Session),
		ttl:       ttl,
		limit:     limit,
		newEditor: factory,
		now:       time.Now,
	}
}

// Open starts a session over doc. A nil fieldID gives a detached session.
func (ss *SessionStore) Open(fieldID *string, doc *edtypes.Document) (*Session, error) {
	return ss.open(dao.GenID(), fieldID, doc)
}

func (ss *SessionStore) open(id string, fieldID *string, doc *edtypes.Document, opts ...editor.Option) (*Session, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, ok := ss.sessions[id]; !ok && len(ss.sessions) >= ss.limit {
		return nil, apierrors.ErrSessionLimit
	}
	s := &Session{
		ID:      id,
		FieldID: fieldID,
		editor:  ss.newEditor(doc, opts...),
		expires: ss.now().Add(ss.ttl),
	}
	ss.sessions[id] = s
	return s, nil
}

// Restore reopens a session from its snapshot.
func (ss *SessionStore) Restore(snap *dao.EditSession) (*Session, error) {
	var opts []editor.Option
	if len(snap.Selection) > 0 {
		var r editor.Range
		if err := json.Unmarshal(snap.Selection, &r); err == nil {
			opts = append(opts, editor.WithSelection(r))
		} else {
			slog.Warn("Restore session selection", "session", snap.ID, "err", err)
		}
	}
	doc := snap.Document
	return ss.open(snap.ID, snap.FieldID, &doc, opts...)
}

func (ss *SessionStore) get(id string) (*Session, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	s, ok := ss.sessions[id]
	return s, ok
}

// Do runs fn with the session locked and extends its lifetime. A nil error
// from fn marks the session as changed.
func (ss *SessionStore) Do(id string, fn func(s *Session) error) error {
	s, ok := ss.get(id)
	if !ok {
		return apierrors.ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expires = ss.now().Add(ss.ttl)
	if err := fn(s); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// View runs fn with the session locked without marking it changed.
func (ss *SessionStore) View(id string, fn func(s *Session) error) error {
	s, ok := ss.get(id)
	if !ok {
		return apierrors.ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expires = ss.now().Add(ss.ttl)
	return fn(s)
}

func (ss *SessionStore) Close(id string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.sessions[id]; !ok {
		return false
	}
	delete(ss.sessions, id)
	return true
}

func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// Sweep closes the sessions that expired before now and returns their ids.
func (ss *SessionStore) Sweep() []string {
	now := ss.now()
	ss.mu.Lock()
	defer ss.mu.Unlock()

	var expired []string
	for id, s := range ss.sessions {
		s.mu.Lock()
		if s.expires.Before(now) {
			expired = append(expired, id)
			delete(ss.sessions, id)
		}
		s.mu.Unlock()
	}
	return expired
}

// Snapshot returns the persisted form of the session. Callers hold the session lock.
func (s *Session) Snapshot() *dao.EditSession {
	snap := &dao.EditSession{
		ID:        s.ID,
		FieldID:   s.FieldID,
		Document:  *s.editor.Document(),
		ExpiresAt: s.expires,
	}
	if sel := s.editor.Selection(); sel != nil {
		if data, err := json.Marshal(sel); err == nil {
			snap.Selection = data
		}
	}
	return snap
}

// Flush passes the snapshot of every changed session to save. A session stays
// changed when save fails.
func (ss *SessionStore) Flush(save func(*dao.EditSession) error) int {
	ss.mu.RLock()
	list := make([]*Session, 0, len(ss.sessions))
	for _, s := range ss.sessions {
		list = append(list, s)
	}
	ss.mu.RUnlock()

	var n int
	for _, s := range list {
		s.mu.Lock()
		if s.dirty {
			if err := save(s.Snapshot()); err != nil {
				slog.Error("Save session snapshot", "session", s.ID, "err", err)
			} else {
				s.dirty = false
				n++
			}
		}
		s.mu.Unlock()
	}
	return n
}
