package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"contacts_backend/internal/feature/contacts/domain/entity"
)

// mockContactRepository is a mock implementation of the ContactRepository interface.
type mockContactRepository struct {
	ListByUserFunc func(ctx context.Context, userID uint, search string) ([]entity.Contact, error)
	FindByIDFunc   func(ctx context.Context, userID, id uint) (*entity.Contact, error)
	CreateFunc     func(ctx context.Context, contact *entity.Contact) error
	UpdateFunc     func(ctx context.Context, contact *entity.Contact) error
	DeleteFunc     func(ctx context.Context, userID, id uint) error
}

func (m *mockContactRepository) ListByUser(ctx context.Context, userID uint, search string) ([]entity.Contact, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, search)
	}
	return nil, nil
}

func (m *mockContactRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, id)
	}
	return nil, ErrContactNotFound
}

func (m *mockContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, contact)
	}
	return nil
}

func (m *mockContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, contact)
	}
	return nil
}

func (m *mockContactRepository) Delete(ctx context.Context, userID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return ErrContactNotFound
}

func bday(month time.Month, day int) time.Time {
	return time.Date(1990, month, day, 0, 0, 0, 0, time.UTC)
}

func TestContactUsecase_List_BirthdayFilter(t *testing.T) {
	contacts := []entity.Contact{
		{ID: 1, Name: "Soon", Birthday: bday(time.June, 18)},
		{ID: 2, Name: "Today", Birthday: bday(time.June, 15)},
		{ID: 3, Name: "Later", Birthday: bday(time.August, 1)},
		{ID: 4, Name: "Passed", Birthday: bday(time.June, 10)},
	}
	repo := &mockContactRepository{
		ListByUserFunc: func(ctx context.Context, userID uint, search string) ([]entity.Contact, error) {
			return contacts, nil
		},
	}

	uc := NewContactUsecase(repo)
	uc.now = func() time.Time { return time.Date(2026, time.June, 15, 12, 30, 0, 0, time.UTC) }

	got, err := uc.List(context.Background(), 1, Query{BirthdaysWithinDays: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 contacts, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Soon" || got[1].Name != "Today" {
		t.Errorf("unexpected contacts: %+v", got)
	}
}

func TestContactUsecase_List_BirthdayFilterWrapsYearEnd(t *testing.T) {
	contacts := []entity.Contact{
		{ID: 1, Name: "NewYear", Birthday: bday(time.January, 2)},
		{ID: 2, Name: "Spring", Birthday: bday(time.April, 1)},
	}
	repo := &mockContactRepository{
		ListByUserFunc: func(ctx context.Context, userID uint, search string) ([]entity.Contact, error) {
			return contacts, nil
		},
	}

	uc := NewContactUsecase(repo)
	uc.now = func() time.Time { return time.Date(2026, time.December, 30, 0, 0, 0, 0, time.UTC) }

	got, err := uc.List(context.Background(), 1, Query{BirthdaysWithinDays: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 || got[0].Name != "NewYear" {
		t.Errorf("expected only NewYear, got: %+v", got)
	}
}

func TestContactUsecase_List_NoFilterPassesThrough(t *testing.T) {
	repo := &mockContactRepository{
		ListByUserFunc: func(ctx context.Context, userID uint, search string) ([]entity.Contact, error) {
			if search != "ali" {
				t.Errorf("expected search term to reach the repository, got %q", search)
			}
			return []entity.Contact{{ID: 1}, {ID: 2}}, nil
		},
	}

	uc := NewContactUsecase(repo)
	got, err := uc.List(context.Background(), 1, Query{Search: "ali"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 contacts, got %d", len(got))
	}
}

func TestContactUsecase_Create_ForcesOwner(t *testing.T) {
	repo := &mockContactRepository{
		CreateFunc: func(ctx context.Context, contact *entity.Contact) error {
			if contact.UserID != 42 {
				t.Errorf("expected owner 42, got %d", contact.UserID)
			}
			if contact.ID != 0 {
				t.Errorf("client-supplied ID must be discarded, got %d", contact.ID)
			}
			contact.ID = 7
			return nil
		},
	}

	uc := NewContactUsecase(repo)
	created, err := uc.Create(context.Background(), 42, &entity.Contact{ID: 99, Name: "Eve", UserID: 1})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("expected assigned ID 7, got %d", created.ID)
	}
}

func TestContactUsecase_Update(t *testing.T) {
	t.Run("overwrites mutable fields", func(t *testing.T) {
		existing := &entity.Contact{ID: 7, UserID: 42, Name: "Old", Phone: "111"}
		repo := &mockContactRepository{
			FindByIDFunc: func(ctx context.Context, userID, id uint) (*entity.Contact, error) {
				return existing, nil
			},
			UpdateFunc: func(ctx context.Context, contact *entity.Contact) error {
				if contact.Name != "New" || contact.Phone != "222" {
					t.Errorf("updated fields not applied: %+v", contact)
				}
				if contact.UserID != 42 || contact.ID != 7 {
					t.Errorf("identity fields must not change: %+v", contact)
				}
				return nil
			},
		}

		uc := NewContactUsecase(repo)
		_, err := uc.Update(context.Background(), 42, 7, &entity.Contact{Name: "New", Phone: "222"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing contact", func(t *testing.T) {
		uc := NewContactUsecase(&mockContactRepository{})
		_, err := uc.Update(context.Background(), 42, 7, &entity.Contact{})

		if !errors.Is(err, ErrContactNotFound) {
			t.Errorf("expected ErrContactNotFound, got: %v", err)
		}
	})
}
