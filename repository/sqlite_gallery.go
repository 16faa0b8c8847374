package repository

import (
	"context"
	"fmt"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/models"
)

type sqliteGalleryRepo struct {
	db database.TxQuerier
}

// NewSQLiteGalleryRepo returns the SQLite GalleryRepository.
func NewSQLiteGalleryRepo(db database.TxQuerier) GalleryRepository {
	return &sqliteGalleryRepo{db: db}
}

func (r *sqliteGalleryRepo) Create(ctx context.Context, img *models.GalleryImage) error {
	img.ID, img.CreatedAt = newRowID()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gallery_images (id, title, image_url, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		img.ID, img.Title, img.ImageURL, img.Category, img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create gallery image: %w", err)
	}
	return nil
}

func (r *sqliteGalleryRepo) List(ctx context.Context) ([]models.GalleryImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, image_url, category, created_at
		FROM gallery_images
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	defer rows.Close()

	images := []models.GalleryImage{}
	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.Title, &img.ImageURL, &img.Category, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gallery image row: %w", err)
		}
		images = append(images, img)
	}

	return images, rows.Err()
}
