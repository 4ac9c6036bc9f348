package dao

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestGenID(t *testing.T) {
	id := GenID()
	assert.True(t, ValidID(id))
	assert.NotEqual(t, id, GenID())
	assert.False(t, ValidID("field-1"))
}

func TestSaveFieldValue_Versions(t *testing.T) {
	db := testDB(t)
	id := GenID()

	doc := edtypes.NewDocument(edtypes.NewElement(&edtypes.Heading{Level: 2}, edtypes.NewText("Title")))
	f, err := SaveFieldValue(db, &FieldValue{ID: id, Collection: "api::article.article", Field: "body", Value: *doc})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Version)

	doc2 := edtypes.NewDocument(edtypes.NewParagraph(edtypes.NewText("Body", edtypes.Bold)))
	f, err = SaveFieldValue(db, &FieldValue{ID: id, Value: *doc2})
	require.NoError(t, err)
	assert.Equal(t, 2, f.Version)

	got, err := GetField(db, id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, "api::article.article", got.Collection)
	assert.Equal(t, "body", got.Field)
	require.Len(t, got.Value.Children, 1)
	assert.Equal(t, doc2.Children[0], got.Value.Children[0])

	s, err := got.StringValue()
	require.NoError(t, err)
	assert.Contains(t, s, `"bold":true`)
}

func TestGetField_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := GetField(db, GenID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessions(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	live := &EditSession{ID: GenID(), Document: *edtypes.EmptyDocument(), ExpiresAt: now.Add(time.Hour)}
	old := &EditSession{ID: GenID(), Document: *edtypes.EmptyDocument(), ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, SaveSession(db, live))
	require.NoError(t, SaveSession(db, old))

	live.Selection = []byte(`{"anchor":{"path":[0,0],"offset":0},"focus":{"path":[0,0],"offset":0}}`)
	require.NoError(t, SaveSession(db, live))

	n, err := DeleteExpiredSessions(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := GetSession(db, live.ID)
	require.NoError(t, err)
	assert.Equal(t, live.Selection, got.Selection)

	_, err = GetSession(db, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, DeleteSession(db, live.ID))
	_, err = GetSession(db, live.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
