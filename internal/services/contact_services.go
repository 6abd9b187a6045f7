package services

import (
	"context"
	"errors"
	"strings"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/rs/zerolog"
)

type ContactStore interface {
	Create(ctx context.Context, c *model.Contact) error
	ListRecent(ctx context.Context, limit int) ([]model.Contact, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type ContactService struct {
	Contacts ContactStore
	Mailer   Mailer
	Log      zerolog.Logger
}

func NewContactService(cs ContactStore, m Mailer, log zerolog.Logger) *ContactService {
	return &ContactService{Contacts: cs, Mailer: m, Log: log}
}

// Submit stores a contact-form message and forwards it to the site inbox.
// The notification is best-effort: the message is already persisted, so a
// mail failure is logged and swallowed.
func (s *ContactService) Submit(ctx context.Context, name, email, subject, message string) error {
	name = sanitizeText(name)
	email = strings.ToLower(sanitizeText(email))
	subject = sanitizeText(subject)
	message = sanitizeText(message)

	if name == "" || email == "" || subject == "" || message == "" {
		return ErrMissingContactFields
	}

	c := &model.Contact{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
		Status:  model.ContactStatusUnread,
	}
	if err := s.Contacts.Create(ctx, c); err != nil {
		return err
	}

	if err := s.Mailer.SendContactNotification(ctx, name, email, subject, message); err != nil {
		s.Log.Error().Err(err).Int64("contact_id", c.ID).Msg("contact notification failed")
	}

	return nil
}

func (s *ContactService) ListRecent(ctx context.Context, limit int) ([]model.Contact, error) {
	return s.Contacts.ListRecent(ctx, limit)
}

func (s *ContactService) MarkStatus(ctx context.Context, id int64, status string) error {
	if status != model.ContactStatusUnread && status != model.ContactStatusRead {
		return errors.New("invalid contact status")
	}
	return s.Contacts.UpdateStatus(ctx, id, status)
}

func (s *ContactService) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	email = strings.ToLower(sanitizeText(email))
	if email == "" {
		return 0, ErrMissingContactFields
	}
	return s.Contacts.DeleteByEmail(ctx, email)
}
