package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
)

type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo returns the SQLite UserRepository.
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

// Create inserts the account. The first row ever inserted becomes the admin;
// the check and the insert are one statement so concurrent first sign-ups
// cannot both claim it. user.IsAdmin is set from the stored row.
func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID, user.CreatedAt = newRowID()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, is_admin, created_at)
		SELECT ?, ?, ?, ?, NOT EXISTS (SELECT 1 FROM users), ?
		RETURNING is_admin`,
		user.ID, user.Email, user.FullName, user.PasswordHash, user.CreatedAt,
	).Scan(&user.IsAdmin)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *sqliteUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `WHERE email = ?`, email)
}

func (r *sqliteUserRepo) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `SELECT id, email, full_name, password_hash, is_admin, created_at FROM users ` + where

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
