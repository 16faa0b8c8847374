package services

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/email"
	"github.com/tutorzindia/site/repository"
	"github.com/tutorzindia/site/ws"
)

// ContactService manages the contact details and the contact form.
type ContactService interface {
	// GetInfo returns the stored contact details with every blank field
	// filled from the defaults. A failed read yields the defaults.
	GetInfo(ctx context.Context) models.ContactInfo
	// GetStoredInfo returns the stored row as is, for the settings form.
	GetStoredInfo(ctx context.Context, actor *models.User) (*models.ContactInfo, error)
	UpdateInfo(ctx context.Context, actor *models.User, req *models.ContactInfoRequest) (*models.ContactInfo, error)
	SendMessage(ctx context.Context, req *models.ContactMessageRequest) (*models.ContactMessage, error)
	ListMessages(ctx context.Context, actor *models.User) ([]models.ContactMessage, error)
}

type contactService struct {
	db          *sql.DB
	infoRepo    repository.ContactInfoRepository
	messageRepo repository.ContactMessageRepository
	mailer      email.Sender
	notifyTo    string
	publisher   ws.EventPublisher
}

// NewContactService wires the service. With a nil db the settings update
// runs on infoRepo without a transaction. mailer and publisher may be nil;
// messages are only mailed when both mailer and notifyTo are set.
func NewContactService(
	db *sql.DB,
	infoRepo repository.ContactInfoRepository,
	messageRepo repository.ContactMessageRepository,
	mailer email.Sender,
	notifyTo string,
	publisher ws.EventPublisher,
) ContactService {
	return &contactService{
		db:          db,
		infoRepo:    infoRepo,
		messageRepo: messageRepo,
		mailer:      mailer,
		notifyTo:    notifyTo,
		publisher:   publisher,
	}
}

func (s *contactService) GetInfo(ctx context.Context) models.ContactInfo {
	def := DefaultContactInfo()

	info, err := s.infoRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, pkg.ErrNotFound) {
			log.Printf("[contact] failed to load contact info, using defaults: %v", err)
		}
		return def
	}
	return info.WithDefaults(def)
}

func (s *contactService) GetStoredInfo(ctx context.Context, actor *models.User) (*models.ContactInfo, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.infoRepo.Get(ctx)
}

// UpdateInfo overwrites the singleton row. The row is read and written in
// one transaction so the update always targets the current id.
func (s *contactService) UpdateInfo(ctx context.Context, actor *models.User, req *models.ContactInfoRequest) (*models.ContactInfo, error) {
	if err := req.Validate(); err != nil {
		return nil, badRequest(err)
	}
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var updated *models.ContactInfo
	update := func(repo repository.ContactInfoRepository) error {
		info, err := repo.Get(ctx)
		if err != nil {
			return err
		}
		info.Phone = req.Phone
		info.Email = req.Email
		info.Address = req.Address
		info.WhatsApp = req.WhatsApp
		if err := repo.Update(ctx, info); err != nil {
			return err
		}
		updated = info
		return nil
	}

	var err error
	if s.db != nil {
		err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			return update(repository.NewSQLiteContactInfoRepo(tx))
		})
	} else {
		err = update(s.infoRepo)
	}
	if err != nil {
		return nil, err
	}

	publishContentUpdate(s.publisher, CollectionContactInfo)
	return updated, nil
}

// SendMessage stores the message, then forwards it by mail. A mail failure
// is logged and does not fail the submission.
func (s *contactService) SendMessage(ctx context.Context, req *models.ContactMessageRequest) (*models.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, badRequest(err)
	}

	msg := req.ToContactMessage()
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.mailer != nil && s.notifyTo != "" {
		notice := email.ContactNotice{
			To:      s.notifyTo,
			Name:    msg.Name,
			Email:   msg.Email,
			Phone:   msg.Phone,
			Message: msg.Message,
		}
		if err := s.mailer.SendContactNotice(ctx, notice); err != nil {
			log.Printf("[contact] failed to mail message %s: %v", msg.ID, err)
		}
	}

	publishContentUpdate(s.publisher, CollectionContactMessages)
	return msg, nil
}

func (s *contactService) ListMessages(ctx context.Context, actor *models.User) ([]models.ContactMessage, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.messageRepo.List(ctx)
}
