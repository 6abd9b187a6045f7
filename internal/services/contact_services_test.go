package services

import (
	"context"
	"errors"
	"testing"

	"github.com/giftofhope10-tech/gift-of-hope/internal/model"

	"github.com/rs/zerolog"
)

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and notifies", func(t *testing.T) {
		store := &mockContacts{}
		mail := &mockMailer{}
		svc := NewContactService(store, mail, zerolog.Nop())

		err := svc.Submit(ctx, "Jane Doe", "Jane@Example.com", "Hello", "A question")
		if err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
		if len(store.Created) != 1 {
			t.Fatalf("stored contacts = %d, want 1", len(store.Created))
		}

		c := store.Created[0]
		if c.Email != "jane@example.com" {
			t.Errorf("email = %q, want lowercased", c.Email)
		}
		if c.Status != model.ContactStatusUnread {
			t.Errorf("status = %q, want unread", c.Status)
		}
		if mail.NotifyCalls != 1 {
			t.Errorf("notifications = %d, want 1", mail.NotifyCalls)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		store := &mockContacts{}
		svc := NewContactService(store, &mockMailer{}, zerolog.Nop())

		cases := [][4]string{
			{"", "a@b.com", "subj", "msg"},
			{"Jane", "", "subj", "msg"},
			{"Jane", "a@b.com", "", "msg"},
			{"Jane", "a@b.com", "subj", ""},
			{"<b></b>", "a@b.com", "subj", "msg"}, // sanitizes to empty
		}
		for _, c := range cases {
			err := svc.Submit(ctx, c[0], c[1], c[2], c[3])
			if !errors.Is(err, ErrMissingContactFields) {
				t.Errorf("Submit(%q,%q,%q,%q) = %v, want ErrMissingContactFields", c[0], c[1], c[2], c[3], err)
			}
		}
		if len(store.Created) != 0 {
			t.Errorf("no contacts should be stored, got %d", len(store.Created))
		}
	})

	t.Run("sanitizes message markup", func(t *testing.T) {
		store := &mockContacts{}
		svc := NewContactService(store, &mockMailer{}, zerolog.Nop())

		err := svc.Submit(ctx, "Jane", "a@b.com", "subj", `<img src=x onerror=alert(1)>hello`)
		if err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
		if got := store.Created[0].Message; got != "hello" {
			t.Errorf("message = %q, want stripped markup", got)
		}
	})

	t.Run("notification failure does not fail the submit", func(t *testing.T) {
		store := &mockContacts{}
		mail := &mockMailer{NotifyErr: errMockMailer}
		svc := NewContactService(store, mail, zerolog.Nop())

		if err := svc.Submit(ctx, "Jane", "a@b.com", "subj", "msg"); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
		if len(store.Created) != 1 {
			t.Error("contact should still be stored")
		}
	})

	t.Run("store failure is surfaced and skips notification", func(t *testing.T) {
		store := &mockContacts{CreateErr: errMockStore}
		mail := &mockMailer{}
		svc := NewContactService(store, mail, zerolog.Nop())

		if err := svc.Submit(ctx, "Jane", "a@b.com", "subj", "msg"); err == nil {
			t.Fatal("expected error from store")
		}
		if mail.NotifyCalls != 0 {
			t.Error("no notification expected when the store fails")
		}
	})
}

func TestContactMarkStatus(t *testing.T) {
	ctx := context.Background()
	store := &mockContacts{}
	svc := NewContactService(store, &mockMailer{}, zerolog.Nop())

	if err := svc.MarkStatus(ctx, 1, "archived"); err == nil {
		t.Error("unknown status should be rejected")
	}
	if err := svc.MarkStatus(ctx, 1, model.ContactStatusRead); err != nil {
		t.Fatalf("MarkStatus returned error: %v", err)
	}
	if store.Statuses[1] != model.ContactStatusRead {
		t.Errorf("status = %q, want read", store.Statuses[1])
	}
}
