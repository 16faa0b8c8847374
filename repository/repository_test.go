package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "repo.db"), database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRegistrationListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRegistrationRepo(newTestDB(t).Conn)

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &models.Registration{
			StudentName: name, Email: name + "@example.com", Phone: "1", Class: "Class 9",
		}))
	}

	regs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 3)
	assert.Equal(t, "third", regs[0].StudentName)
	assert.Equal(t, "second", regs[1].StudentName)
	assert.Equal(t, "first", regs[2].StudentName)
	assert.NotEmpty(t, regs[0].ID)
	assert.WithinDuration(t, time.Now(), regs[0].CreatedAt, time.Minute)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRegistrationListEmpty(t *testing.T) {
	regs, err := NewSQLiteRegistrationRepo(newTestDB(t).Conn).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, regs)
	assert.Empty(t, regs)
}

func TestGalleryNullableCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteGalleryRepo(newTestDB(t).Conn)

	lab := "lab"
	require.NoError(t, repo.Create(ctx, &models.GalleryImage{Title: "Untagged", ImageURL: "/a.jpg"}))
	require.NoError(t, repo.Create(ctx, &models.GalleryImage{Title: "Lab", ImageURL: "/b.jpg", Category: &lab}))

	images, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.NotNil(t, images[0].Category)
	assert.Equal(t, "lab", *images[0].Category)
	assert.Nil(t, images[1].Category)
}

func TestAchievementCreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteAchievementRepo(newTestDB(t).Conn)

	year := "2024"
	require.NoError(t, repo.Create(ctx, &models.Achievement{StudentName: "Ravi", Achievement: "NTSE", Year: &year}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Year)
	assert.Equal(t, "2024", *list[0].Year)
	assert.Nil(t, list[0].Description)
}

func TestContactInfoGetAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteContactInfoRepo(newTestDB(t).Conn)

	info, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", info.ID)
	assert.Equal(t, "info@tutorzindia.org", info.Email)
	assert.Nil(t, info.UpdatedAt)

	info.Phone = "+91 1112223334"
	require.NoError(t, repo.Update(ctx, info))
	assert.NotNil(t, info.UpdatedAt)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+91 1112223334", got.Phone)
	assert.NotNil(t, got.UpdatedAt)

	err = repo.Update(ctx, &models.ContactInfo{ID: "missing"})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestContactInfoEmptyTable(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Conn.Exec(`DELETE FROM contact_info`)
	require.NoError(t, err)

	_, err = NewSQLiteContactInfoRepo(db.Conn).Get(context.Background())
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestContactMessages(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteContactMessageRepo(newTestDB(t).Conn)

	require.NoError(t, repo.Create(ctx, &models.ContactMessage{Name: "Asha", Email: "a@b.c", Message: "hi"}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hi", list[0].Message)
}

func TestUserAndSession(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewSQLiteUserRepo(db.Conn)
	sessions := NewSQLiteSessionRepo(db.Conn)

	user := &models.User{Email: "admin@example.com", FullName: "Admin", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, user))
	assert.True(t, user.IsAdmin, "the first account is the admin")

	err := users.Create(ctx, &models.User{Email: "ADMIN@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

	staff := &models.User{Email: "staff@example.com", FullName: "Staff", PasswordHash: "z", IsAdmin: true}
	require.NoError(t, users.Create(ctx, staff))
	assert.False(t, staff.IsAdmin, "only the first account is the admin")

	got, err := users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.IsAdmin)

	_, err = users.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	live := &models.Session{UserID: user.ID, RefreshToken: "live", ExpiresAt: time.Now().Add(time.Hour)}
	stale := &models.Session{UserID: user.ID, RefreshToken: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, sessions.Create(ctx, live))
	require.NoError(t, sessions.Create(ctx, stale))

	require.NoError(t, sessions.DeleteExpired(ctx))
	_, err = sessions.GetByRefreshToken(ctx, "stale")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	s, err := sessions.GetByRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, user.ID, s.UserID)

	require.NoError(t, sessions.DeleteByRefreshToken(ctx, "live"))
	_, err = sessions.GetByRefreshToken(ctx, "live")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
