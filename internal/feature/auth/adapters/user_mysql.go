// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/auth/usecase"
)

// userMySQL is the MySQL implementation of the UserRepository interface.
// It uses GORM for database operations.
type userMySQL struct {
	db *gorm.DB
}

// Compile-time check that userMySQL implements UserRepository.
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL creates a new userMySQL instance with the given gorm.DB connection.
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// Create inserts the user. The unique constraints on email and username are
// the authoritative race-breaker: a duplicate that slipped past the
// usecase's pre-check is mapped to the matching conflict error here.
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			if strings.Contains(err.Error(), "username") {
				return usecase.ErrUsernameAlreadyExists
			}
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// MySQL error 1062 covers production; gorm.ErrDuplicatedKey covers drivers
// with error translation enabled (sqlite in tests).
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound when the user does not exist.
func (r *userMySQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves a user by email address.
// It returns usecase.ErrUserNotFound when the user does not exist.
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByUsername retrieves a user by username.
// It returns usecase.ErrUserNotFound when the user does not exist.
func (r *userMySQL) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// MarkVerified sets the user's verified flag. Applying it to an
// already-verified user is a no-op, not an error.
func (r *userMySQL) MarkVerified(ctx context.Context, email string) error {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return nil
	}
	return r.db.WithContext(ctx).Model(u).Update("is_verified", true).Error
}

// UpdateAvatarURL stores the avatar URL and returns the updated user.
func (r *userMySQL) UpdateAvatarURL(ctx context.Context, email, url string) (*entity.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(u).Update("avatar_url", url).Error; err != nil {
		return nil, err
	}
	u.AvatarURL = &url
	return u, nil
}
