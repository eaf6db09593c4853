package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/bookit/internal/common"
	"github.com/dmitrijs2005/bookit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'user',
  business_id TEXT NOT NULL DEFAULT '',
  password TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1
);
CREATE UNIQUE INDEX idx_users_by_email ON users (email);
`)
	require.NoError(t, err)

	return db
}

func testUser(id, email string) *models.User {
	return &models.User{
		ID:       id,
		Email:    email,
		Name:     "Test",
		Role:     models.RoleUser,
		Password: "salt:100000:hash",
		IsActive: true,
	}
}

func TestAdd_And_Get(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, testUser("u1", "a@b.c")))

	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.True(t, got.IsActive)
}

func TestAdd_DuplicateID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, testUser("u1", "a@b.c")))
	err := r.Add(ctx, testUser("u1", "other@b.c"))
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestAdd_DuplicateEmail_RejectedByIndex(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, testUser("u1", "a@b.c")))
	err := r.Add(ctx, testUser("u2", "a@b.c"))
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestAdd_EmailIsCaseSensitive(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, testUser("u1", "a@b.c")))
	require.NoError(t, r.Add(ctx, testUser("u2", "A@b.c")))

	_, err := r.GetByEmail(ctx, "A@b.c")
	require.NoError(t, err)
}

func TestPut_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	u := testUser("u1", "a@b.c")
	require.NoError(t, r.Put(ctx, u))

	u.Name = "Renamed"
	u.IsActive = false
	require.NoError(t, r.Put(ctx, u))

	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.False(t, got.IsActive)
}

func TestPut_EmailTakenByOtherUser(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, testUser("u1", "a@b.c")))
	require.NoError(t, r.Add(ctx, testUser("u2", "b@b.c")))

	u := testUser("u2", "a@b.c")
	err := r.Put(ctx, u)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := r.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "b@b.c", got.Email, "failed upsert must leave the row untouched")
}

func TestGet_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetAll_StableOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, testUser("u2", "b@b.c")))
	require.NoError(t, r.Add(ctx, testUser("u1", "a@b.c")))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "u1", all[0].ID)
	assert.Equal(t, "u2", all[1].ID)
}

func TestDelete_MissingIsNoop(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, testUser("u1", "a@b.c")))
	require.NoError(t, r.Delete(ctx, "u1"))
	require.NoError(t, r.Delete(ctx, "u1"), "second delete must no-op")

	_, err := r.Get(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByEmail(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, testUser("u1", "a@b.c")))

	got, err := r.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = r.GetByEmail(ctx, "missing@b.c")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
