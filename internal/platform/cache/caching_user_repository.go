// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/auth/usecase"
)

// cachedUser is the Redis encoding of a user. The entity's own JSON form
// drops the password digest for API responses; the cache must round-trip
// every column, so it uses this record instead.
type cachedUser struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	IsVerified bool      `json:"is_verified"`
	AvatarURL  *string   `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toCachedUser(u *entity.User) cachedUser {
	return cachedUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Password:   u.Password,
		IsVerified: u.IsVerified,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (cu cachedUser) toEntity() *entity.User {
	return &entity.User{
		ID:         cu.ID,
		Username:   cu.Username,
		Email:      cu.Email,
		Password:   cu.Password,
		IsVerified: cu.IsVerified,
		AvatarURL:  cu.AvatarURL,
		CreatedAt:  cu.CreatedAt,
		UpdatedAt:  cu.UpdatedAt,
	}
}

// CachingUserRepository decorates a UserRepository with Redis caching for the
// lookup methods. Every authenticated request resolves its bearer token to a
// user, so the email-lookup path is the hottest query in the system.
// Mutations write through to the inner repository and invalidate the affected
// keys, keeping the verified flag and avatar URL fresh.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator still satisfies UserRepository.
var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts the user through the inner repository. Nothing is cached:
// the follow-up lookup will populate the cache.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	return c.inner.Create(ctx, u)
}

// FindByEmail retrieves a user, checking the cache first.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.cachedFind(ctx, c.emailKey(email), func() (*entity.User, error) {
		return c.inner.FindByEmail(ctx, email)
	})
}

// FindByUsername retrieves a user, checking the cache first.
func (c *CachingUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return c.cachedFind(ctx, c.usernameKey(username), func() (*entity.User, error) {
		return c.inner.FindByUsername(ctx, username)
	})
}

// FindByID retrieves a user, checking the cache first.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return c.cachedFind(ctx, c.idKey(id), func() (*entity.User, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// MarkVerified writes through and invalidates the user's cache entries.
func (c *CachingUserRepository) MarkVerified(ctx context.Context, email string) error {
	if err := c.inner.MarkVerified(ctx, email); err != nil {
		return err
	}
	c.invalidate(ctx, email)
	return nil
}

// UpdateAvatarURL writes through and invalidates the user's cache entries.
func (c *CachingUserRepository) UpdateAvatarURL(ctx context.Context, email, url string) (*entity.User, error) {
	u, err := c.inner.UpdateAvatarURL(ctx, email, url)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, email)
	return u, nil
}

// cachedFind wraps a lookup with the cache-aside pattern.
func (c *CachingUserRepository) cachedFind(ctx context.Context, key string, load func() (*entity.User, error)) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cu cachedUser
		if err := json.Unmarshal(b, &cu); err == nil {
			return cu.toEntity(), nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(toCachedUser(u)); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return u, nil
}

// invalidate drops every cache entry for the user with the given email.
// The fresh row is read back so the username and id keys can be derived.
// Best effort: a failed invalidation only shortens cache accuracy, the
// database row is already correct and the entry expires with its TTL.
func (c *CachingUserRepository) invalidate(ctx context.Context, email string) {
	if c.rdb == nil {
		return
	}

	keys := []string{c.emailKey(email)}
	if u, err := c.inner.FindByEmail(ctx, email); err == nil {
		keys = append(keys, c.usernameKey(u.Username), c.idKey(u.ID))
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

func (c *CachingUserRepository) emailKey(email string) string {
	return fmt.Sprintf("%s:email:%s", c.namespace, safe(email))
}

func (c *CachingUserRepository) usernameKey(username string) string {
	return fmt.Sprintf("%s:name:%s", c.namespace, safe(username))
}

func (c *CachingUserRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
