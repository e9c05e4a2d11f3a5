// Package adapters provides the repository implementations for the contacts feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// contactMySQL is the MySQL implementation of the ContactRepository interface.
type contactMySQL struct {
	db *gorm.DB
}

// Compile-time check that contactMySQL implements ContactRepository.
var _ usecase.ContactRepository = (*contactMySQL)(nil)

// NewContactMySQL creates a new contactMySQL instance with the given gorm.DB connection.
func NewContactMySQL(db *gorm.DB) *contactMySQL {
	return &contactMySQL{db: db}
}

// ListByUser returns the user's contacts, newest first. A non-empty search
// term matches name, surname or email as a substring.
func (r *contactMySQL) ListByUser(ctx context.Context, userID uint, search string) ([]entity.Contact, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR surname LIKE ? OR email LIKE ?", like, like, like)
	}

	var contacts []entity.Contact
	if err := q.Order("id DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByID retrieves one of the user's contacts.
// A contact owned by another user is reported as not found.
func (r *contactMySQL) FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	var c entity.Contact
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts the contact.
func (r *contactMySQL) Create(ctx context.Context, c *entity.Contact) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Update saves the contact's current field values.
func (r *contactMySQL) Update(ctx context.Context, c *entity.Contact) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes one of the user's contacts.
func (r *contactMySQL) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrContactNotFound
	}
	return nil
}
