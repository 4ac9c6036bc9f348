package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/apierrors"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/dao"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func newStore(limit int) (*SessionStore, *time.Time) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ss := NewSessionStore(time.Minute, limit, editor.New)
	ss.now = func() time.Time { return now }
	return ss, &now
}

func TestSessionStore_OpenDoClose(t *testing.T) {
	ss, _ := newStore(10)
	s, err := ss.Open(nil, edtypes.NewDocument(edtypes.NewParagraph(edtypes.NewText("ab"))))
	require.NoError(t, err)
	assert.True(t, dao.ValidID(s.ID))

	err = ss.Do(s.ID, func(s *Session) error {
		ed := s.Editor()
		ed.Select(edtypes.Collapsed(editor.Point{Path: editor.Path{0, 0}, Offset: 2}))
		ed.InsertText("c")
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, ss.View(s.ID, func(s *Session) error {
		assert.Equal(t, "abc", s.Editor().Document().String(nil))
		return nil
	}))

	assert.True(t, ss.Close(s.ID))
	assert.False(t, ss.Close(s.ID))
	assert.ErrorIs(t, ss.Do(s.ID, func(*Session) error { return nil }), apierrors.ErrSessionNotFound)
}

func TestSessionStore_Limit(t *testing.T) {
	ss, _ := newStore(1)
	_, err := ss.Open(nil, nil)
	require.NoError(t, err)
	_, err = ss.Open(nil, nil)
	assert.ErrorIs(t, err, apierrors.ErrSessionLimit)
}

func TestSessionStore_Sweep(t *testing.T) {
	ss, now := newStore(10)
	a, _ := ss.Open(nil, nil)
	*now = now.Add(40 * time.Second)
	b, _ := ss.Open(nil, nil)

	*now = now.Add(30 * time.Second)
	assert.Equal(t, []string{a.ID}, ss.Sweep())
	assert.Equal(t, 1, ss.Len())

	// обращение продлевает сессию
	require.NoError(t, ss.View(b.ID, func(*Session) error { return nil }))
	*now = now.Add(50 * time.Second)
	assert.Empty(t, ss.Sweep())
}

func TestSessionStore_FlushAndRestore(t *testing.T) {
	ss, _ := newStore(10)
	field := dao.GenID()
	s, _ := ss.Open(&field, edtypes.NewDocument(edtypes.NewParagraph(edtypes.NewText("x"))))

	var saved []*dao.EditSession
	save := func(snap *dao.EditSession) error {
		saved = append(saved, snap)
		return nil
	}
	assert.Equal(t, 0, ss.Flush(save))

	require.NoError(t, ss.Do(s.ID, func(s *Session) error {
		s.Editor().Select(edtypes.Collapsed(editor.Point{Path: editor.Path{0, 0}, Offset: 1}))
		return nil
	}))
	assert.Equal(t, 1, ss.Flush(save))
	assert.Equal(t, 0, ss.Flush(save))
	require.Len(t, saved, 1)
	assert.Equal(t, &field, saved[0].FieldID)

	ss.Close(s.ID)
	restored, err := ss.Restore(saved[0])
	require.NoError(t, err)
	assert.Equal(t, s.ID, restored.ID)
	require.NoError(t, ss.View(s.ID, func(s *Session) error {
		sel := s.Editor().Selection()
		require.NotNil(t, sel)
		assert.Equal(t, 1, sel.Anchor.Offset)
		assert.Equal(t, "x", s.Editor().Document().String(nil))
		return nil
	}))
}

func TestSessionStore_FailedFlushKeepsDirty(t *testing.T) {
	ss, _ := newStore(10)
	s, _ := ss.Open(nil, nil)
	require.NoError(t, ss.Do(s.ID, func(*Session) error { return nil }))

	assert.Equal(t, 0, ss.Flush(func(*dao.EditSession) error { return errors.New("db down") }))
	assert.Equal(t, 1, ss.Flush(func(*dao.EditSession) error { return nil }))
}

func TestSessionStore_ConcurrentDo(t *testing.T) {
	ss, _ := newStore(10)
	s, _ := ss.Open(nil, nil)
	require.NoError(t, ss.Do(s.ID, func(s *Session) error {
		s.Editor().Select(edtypes.Collapsed(editor.Point{Path: editor.Path{0, 0}, Offset: 0}))
		return nil
	}))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ss.Do(s.ID, func(s *Session) error {
				s.Editor().InsertText("a")
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, ss.View(s.ID, func(s *Session) error {
		assert.Len(t, s.Editor().Document().String(nil), 20)
		return nil
	}))
}
