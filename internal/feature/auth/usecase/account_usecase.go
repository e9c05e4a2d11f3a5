package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"contacts_backend/internal/feature/auth/domain/entity"
)

// Token purposes. A confirmation token must not be accepted where a bearer
// access token is expected, and vice versa.
const (
	TokenPurposeAccess  = "access"
	TokenPurposeConfirm = "confirm"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists or
	// ErrUsernameAlreadyExists when a unique constraint is violated.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by ID, or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail retrieves a user by email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a user by username, or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// MarkVerified flips the user's verified flag to true. Re-applying it
	// to an already-verified user is a no-op. Returns ErrUserNotFound when
	// no user has the given email.
	MarkVerified(ctx context.Context, email string) error

	// UpdateAvatarURL stores a new avatar URL and returns the updated user,
	// or ErrUserNotFound.
	UpdateAvatarURL(ctx context.Context, email, url string) (*entity.User, error)
}

// TokenCodec issues and decodes signed subject tokens.
type TokenCodec interface {
	// Issue creates a signed token carrying the subject and purpose,
	// expiring after ttl.
	Issue(subject, purpose string, ttl time.Duration) (string, error)
	// Decode verifies the token's signature, expiry and purpose, and
	// returns its subject.
	Decode(token, purpose string) (string, error)
}

// ConfirmationMailer delivers email-confirmation messages.
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, toEmail, username, token string) error
}

// AvatarUploader stores avatar images and returns their public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error)
}

// Dispatcher runs work in the background. A dispatched function's failure
// must never reach the request that scheduled it.
type Dispatcher interface {
	Go(name string, fn func(ctx context.Context) error)
}

// accountUsecase implements registration, login, email confirmation and
// avatar management.
type accountUsecase struct {
	users      UserRepository
	hasher     PasswordHasher
	tokens     TokenCodec
	mailer     ConfirmationMailer
	uploader   AvatarUploader
	tasks      Dispatcher
	accessTTL  time.Duration
	confirmTTL time.Duration
}

// NewAccountUsecase creates a new instance of accountUsecase.
func NewAccountUsecase(
	users UserRepository,
	hasher PasswordHasher,
	tokens TokenCodec,
	mailer ConfirmationMailer,
	uploader AvatarUploader,
	tasks Dispatcher,
	accessTTL, confirmTTL time.Duration,
) *accountUsecase {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if confirmTTL <= 0 {
		confirmTTL = 24 * time.Hour
	}
	return &accountUsecase{
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		mailer:     mailer,
		uploader:   uploader,
		tasks:      tasks,
		accessTTL:  accessTTL,
		confirmTTL: confirmTTL,
	}
}

// Register creates a new unverified user and schedules the confirmation email.
// The password is hashed before anything is written. The uniqueness pre-checks
// give friendly errors; the storage-level unique constraints remain the
// authoritative race-breaker, so Create can still surface a conflict.
func (u *accountUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	digest, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{Username: username, Email: email, Password: digest}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	u.dispatchConfirmation(user.Email, user.Username)

	return user, nil
}

// Dummy bcrypt digest compared when the user does not exist, so login
// latency does not reveal whether an email is registered.
const dummyPasswordDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login authenticates a user and returns a signed access token.
// An unverified account is rejected even when the password is correct.
func (u *accountUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	digest := dummyPasswordDigest
	if err == nil {
		digest = user.Password
	}

	// Always run the hash comparison to keep timing uniform.
	ok := u.hasher.Verify(password, digest)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", ErrEmailNotVerified
	}

	token, err := u.tokens.Issue(user.Email, TokenPurposeAccess, u.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// ConfirmEmail validates a confirmation token and marks the user verified.
// It reports alreadyVerified=true without touching state when the user had
// confirmed before. Bad signature, expiry and unknown subject all collapse
// into ErrInvalidConfirmationToken.
func (u *accountUsecase) ConfirmEmail(ctx context.Context, token string) (alreadyVerified bool, err error) {
	email, err := u.tokens.Decode(token, TokenPurposeConfirm)
	if err != nil {
		return false, ErrInvalidConfirmationToken
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return false, ErrInvalidConfirmationToken
	}
	if user.IsVerified {
		return true, nil
	}

	if err := u.users.MarkVerified(ctx, email); err != nil {
		return false, fmt.Errorf("failed to mark verified: %w", err)
	}
	return false, nil
}

// ResendConfirmation schedules a fresh confirmation email.
// It reports alreadyVerified=true for confirmed accounts and silently does
// nothing for unknown emails, so the endpoint's response never reveals
// whether an address is registered.
func (u *accountUsecase) ResendConfirmation(ctx context.Context, email string) (alreadyVerified bool, err error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.IsVerified {
		return true, nil
	}

	u.dispatchConfirmation(user.Email, user.Username)
	return false, nil
}

// UpdateAvatar uploads the image and stores the returned URL on the user.
// The upload is synchronous; only the persistence step can report that the
// user vanished between authentication and the write.
func (u *accountUsecase) UpdateAvatar(ctx context.Context, email, filename string, content io.Reader, size int64, contentType string) (*entity.User, error) {
	url, err := u.uploader.Upload(ctx, filename, content, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user, err := u.users.UpdateAvatarURL(ctx, email, url)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResolveUser decodes a bearer access token and loads the user it names.
// Any decode or lookup failure surfaces as ErrInvalidAccessToken.
func (u *accountUsecase) ResolveUser(ctx context.Context, token string) (*entity.User, error) {
	email, err := u.tokens.Decode(token, TokenPurposeAccess)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}
	return user, nil
}

// dispatchConfirmation issues a confirmation token and hands the email off to
// the background dispatcher. Delivery failure is logged and dropped; the
// committed registration is never rolled back because of it.
func (u *accountUsecase) dispatchConfirmation(email, username string) {
	token, err := u.tokens.Issue(email, TokenPurposeConfirm, u.confirmTTL)
	if err != nil {
		slog.Error("failed to issue confirmation token", "error", err, "email", email)
		return
	}
	u.tasks.Go("confirmation-email", func(ctx context.Context) error {
		return u.mailer.SendConfirmation(ctx, email, username, token)
	})
}
