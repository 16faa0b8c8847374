package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
)

type sqliteContactInfoRepo struct {
	db database.TxQuerier
}

// NewSQLiteContactInfoRepo returns the SQLite ContactInfoRepository.
func NewSQLiteContactInfoRepo(db database.TxQuerier) ContactInfoRepository {
	return &sqliteContactInfoRepo{db: db}
}

func (r *sqliteContactInfoRepo) Get(ctx context.Context) (*models.ContactInfo, error) {
	info := &models.ContactInfo{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, phone, email, address, whatsapp, updated_at
		FROM contact_info
		ORDER BY rowid
		LIMIT 1`,
	).Scan(&info.ID, &info.Phone, &info.Email, &info.Address, &info.WhatsApp, &info.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact info: %w", err)
	}
	return info, nil
}

func (r *sqliteContactInfoRepo) Update(ctx context.Context, info *models.ContactInfo) error {
	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE contact_info
		SET phone = ?, email = ?, address = ?, whatsapp = ?, updated_at = ?
		WHERE id = ?`,
		info.Phone, info.Email, info.Address, info.WhatsApp, now, info.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact info: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check contact info update: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	info.UpdatedAt = &now
	return nil
}

type sqliteContactMessageRepo struct {
	db database.TxQuerier
}

// NewSQLiteContactMessageRepo returns the SQLite ContactMessageRepository.
func NewSQLiteContactMessageRepo(db database.TxQuerier) ContactMessageRepository {
	return &sqliteContactMessageRepo{db: db}
}

func (r *sqliteContactMessageRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID, msg.CreatedAt = newRowID()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, phone, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *sqliteContactMessageRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message row: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
