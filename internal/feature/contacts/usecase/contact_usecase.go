package usecase

import (
	"context"
	"time"

	"contacts_backend/internal/feature/contacts/domain/entity"
)

// Query narrows a contact listing. Empty fields are ignored.
type Query struct {
	// Search matches name, surname or email as a substring.
	Search string
	// BirthdaysWithinDays, when positive, keeps only contacts whose
	// birthday falls within the next N days.
	BirthdaysWithinDays int
}

// ContactRepository abstracts the persistence layer for contacts.
// Every operation is scoped to the owning user.
type ContactRepository interface {
	// ListByUser returns the user's contacts, optionally filtered by a
	// search term.
	ListByUser(ctx context.Context, userID uint, search string) ([]entity.Contact, error)

	// FindByID retrieves one of the user's contacts, or ErrContactNotFound.
	FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error)

	// Create persists a new contact.
	Create(ctx context.Context, contact *entity.Contact) error

	// Update saves changes to an existing contact.
	Update(ctx context.Context, contact *entity.Contact) error

	// Delete removes one of the user's contacts, or ErrContactNotFound.
	Delete(ctx context.Context, userID, id uint) error
}

// contactUsecase implements the contacts business logic.
type contactUsecase struct {
	contacts ContactRepository
	now      func() time.Time
}

// NewContactUsecase creates a new instance of contactUsecase.
func NewContactUsecase(contacts ContactRepository) *contactUsecase {
	return &contactUsecase{contacts: contacts, now: time.Now}
}

// List returns the user's contacts matching the query. The upcoming-birthday
// filter is applied in memory: birthday-in-window arithmetic wraps across
// year boundaries, which is awkward to express portably in SQL.
func (u *contactUsecase) List(ctx context.Context, userID uint, q Query) ([]entity.Contact, error) {
	contacts, err := u.contacts.ListByUser(ctx, userID, q.Search)
	if err != nil {
		return nil, err
	}

	if q.BirthdaysWithinDays <= 0 {
		return contacts, nil
	}

	today := u.now()
	out := make([]entity.Contact, 0, len(contacts))
	for _, c := range contacts {
		if birthdayWithin(c.Birthday, today, q.BirthdaysWithinDays) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Get retrieves one of the user's contacts.
func (u *contactUsecase) Get(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	return u.contacts.FindByID(ctx, userID, id)
}

// Create persists a new contact owned by the user.
func (u *contactUsecase) Create(ctx context.Context, userID uint, contact *entity.Contact) (*entity.Contact, error) {
	contact.ID = 0
	contact.UserID = userID
	if err := u.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Update overwrites the mutable fields of one of the user's contacts.
func (u *contactUsecase) Update(ctx context.Context, userID, id uint, updated *entity.Contact) (*entity.Contact, error) {
	existing, err := u.contacts.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = updated.Name
	existing.Surname = updated.Surname
	existing.Email = updated.Email
	existing.Phone = updated.Phone
	existing.Birthday = updated.Birthday
	existing.Info = updated.Info

	if err := u.contacts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes one of the user's contacts.
func (u *contactUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.contacts.Delete(ctx, userID, id)
}

// birthdayWithin reports whether the next occurrence of birthday falls within
// the next days days, counting today.
func birthdayWithin(birthday, today time.Time, days int) bool {
	ty, tm, td := today.Date()
	start := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	next := time.Date(ty, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(start) {
		next = time.Date(ty+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}

	return next.Sub(start) < time.Duration(days)*24*time.Hour
}
