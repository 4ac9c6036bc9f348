package richblocks

import (
	"errors"
	"log/slog"
	"time"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/apierrors"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/dao"
	store "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/memory-store"
)

// flushSessions сохраняет снимки измененных сессий.
func (s *Services) flushSessions() {
	n := s.sessions.Flush(func(snap *dao.EditSession) error {
		return dao.SaveSession(s.db, snap)
	})
	if n > 0 {
		s.metrics.flushed.Add(float64(n))
		slog.Debug("Sessions flushed", "count", n)
	}
}

// sweepSessions закрывает истекшие сессии и удаляет их снимки.
func (s *Services) sweepSessions() {
	expired := s.sessions.Sweep()
	s.metrics.swept.Add(float64(len(expired)))

	n, err := dao.DeleteExpiredSessions(s.db, time.Now())
	if err != nil {
		slog.Error("Delete expired sessions", "err", err)
		return
	}
	if len(expired) > 0 || n > 0 {
		slog.Info("Expired sessions removed", "memory", len(expired), "storage", n)
	}
}

// restoreSession поднимает сессию из снимка, если ее нет в памяти (например, после перезапуска).
func (s *Services) restoreSession(id string) bool {
	if !dao.ValidID(id) {
		return false
	}
	snap, err := dao.GetSession(s.db, id)
	if err != nil {
		return false
	}
	if snap.ExpiresAt.Before(time.Now()) {
		return false
	}
	if _, err := s.sessions.Restore(snap); err != nil {
		slog.Warn("Restore session", "session", id, "err", err)
		return false
	}
	return true
}

func (s *Services) doSession(id string, fn func(*store.Session) error) error {
	err := s.sessions.Do(id, fn)
	if errors.Is(err, apierrors.ErrSessionNotFound) && s.restoreSession(id) {
		err = s.sessions.Do(id, fn)
	}
	return err
}

func (s *Services) viewSession(id string, fn func(*store.Session) error) error {
	err := s.sessions.View(id, fn)
	if errors.Is(err, apierrors.ErrSessionNotFound) && s.restoreSession(id) {
		err = s.sessions.View(id, fn)
	}
	return err
}
