package repository

import (
	"context"
	"fmt"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/models"
)

type sqliteRegistrationRepo struct {
	db database.TxQuerier
}

// NewSQLiteRegistrationRepo returns the SQLite RegistrationRepository.
func NewSQLiteRegistrationRepo(db database.TxQuerier) RegistrationRepository {
	return &sqliteRegistrationRepo{db: db}
}

func (r *sqliteRegistrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	reg.ID, reg.CreatedAt = newRowID()

	query := `
		INSERT INTO registrations (id, student_name, email, phone, parent_name, class, subject, address, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		reg.ID, reg.StudentName, reg.Email, reg.Phone, reg.ParentName,
		reg.Class, reg.Subject, reg.Address, reg.Message, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *sqliteRegistrationRepo) List(ctx context.Context) ([]models.Registration, error) {
	query := `
		SELECT id, student_name, email, phone, parent_name, class, subject, address, message, created_at
		FROM registrations
		ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	regs := []models.Registration{}
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(
			&reg.ID, &reg.StudentName, &reg.Email, &reg.Phone, &reg.ParentName,
			&reg.Class, &reg.Subject, &reg.Address, &reg.Message, &reg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

func (r *sqliteRegistrationRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}
