package repository

import (
	"context"
	"fmt"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/models"
)

type sqliteAchievementRepo struct {
	db database.TxQuerier
}

// NewSQLiteAchievementRepo returns the SQLite AchievementRepository.
func NewSQLiteAchievementRepo(db database.TxQuerier) AchievementRepository {
	return &sqliteAchievementRepo{db: db}
}

func (r *sqliteAchievementRepo) Create(ctx context.Context, a *models.Achievement) error {
	a.ID, a.CreatedAt = newRowID()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (id, student_name, achievement, year, description, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.StudentName, a.Achievement, a.Year, a.Description, a.ImageURL, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}
	return nil
}

func (r *sqliteAchievementRepo) List(ctx context.Context) ([]models.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_name, achievement, year, description, image_url, created_at
		FROM achievements
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	achievements := []models.Achievement{}
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(
			&a.ID, &a.StudentName, &a.Achievement, &a.Year, &a.Description, &a.ImageURL, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan achievement row: %w", err)
		}
		achievements = append(achievements, a)
	}

	return achievements, rows.Err()
}
