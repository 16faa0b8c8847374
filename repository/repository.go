// Package repository is the row storage of the hosted backend.
//
// Every collection has an interface here and a SQLite implementation in a
// sqlite_*.go file. Services depend on the interfaces only, so tests can swap
// in fakes and the storage can move without touching them.
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tutorzindia/site/models"
)

// RegistrationRepository stores inquiry form submissions.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	// List returns every registration, most recent first.
	List(ctx context.Context) ([]models.Registration, error)
	Count(ctx context.Context) (int, error)
}

// GalleryRepository stores gallery images.
type GalleryRepository interface {
	Create(ctx context.Context, img *models.GalleryImage) error
	List(ctx context.Context) ([]models.GalleryImage, error)
}

// AchievementRepository stores student achievements.
type AchievementRepository interface {
	Create(ctx context.Context, a *models.Achievement) error
	List(ctx context.Context) ([]models.Achievement, error)
}

// ContactInfoRepository reads and updates the singleton contact_info row.
type ContactInfoRepository interface {
	// Get returns the first row, or pkg.ErrNotFound when the table is empty.
	Get(ctx context.Context) (*models.ContactInfo, error)
	// Update writes every field of info to the row with info.ID.
	Update(ctx context.Context, info *models.ContactInfo) error
}

// ContactMessageRepository stores messages from the public contact form.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

// UserRepository stores admin accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionRepository stores refresh tokens.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByRefreshToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// newRowID fills in the id and creation time of a row about to be inserted.
func newRowID() (string, time.Time) {
	return uuid.NewString(), time.Now().UTC()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
