package main

import (
	"database/sql"

	"github.com/tutorzindia/site/repository"
)

// Repositories holds every repository of the site.
type Repositories struct {
	User           repository.UserRepository
	Session        repository.SessionRepository
	Registration   repository.RegistrationRepository
	Gallery        repository.GalleryRepository
	Achievement    repository.AchievementRepository
	ContactInfo    repository.ContactInfoRepository
	ContactMessage repository.ContactMessageRepository
}

// initRepositories builds the SQLite repositories on the shared pool.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:           repository.NewSQLiteUserRepo(conn),
		Session:        repository.NewSQLiteSessionRepo(conn),
		Registration:   repository.NewSQLiteRegistrationRepo(conn),
		Gallery:        repository.NewSQLiteGalleryRepo(conn),
		Achievement:    repository.NewSQLiteAchievementRepo(conn),
		ContactInfo:    repository.NewSQLiteContactInfoRepo(conn),
		ContactMessage: repository.NewSQLiteContactMessageRepo(conn),
	}
}
