package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/auth/usecase"
)

// mockUserRepository is a test mock for the inner UserRepository.
type mockUserRepository struct {
	createFn          func(ctx context.Context, u *entity.User) error
	findByIDFn        func(ctx context.Context, id uint) (*entity.User, error)
	findByEmailFn     func(ctx context.Context, email string) (*entity.User, error)
	findByUsernameFn  func(ctx context.Context, username string) (*entity.User, error)
	markVerifiedFn    func(ctx context.Context, email string) error
	updateAvatarURLFn func(ctx context.Context, email, url string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserRepository) MarkVerified(ctx context.Context, email string) error {
	if m.markVerifiedFn != nil {
		return m.markVerifiedFn(ctx, email)
	}
	return nil
}

func (m *mockUserRepository) UpdateAvatarURL(ctx context.Context, email, url string) (*entity.User, error) {
	if m.updateAvatarURLFn != nil {
		return m.updateAvatarURLFn(ctx, email, url)
	}
	return nil, usecase.ErrUserNotFound
}

var testAvatarURL = "https://cdn.example.com/avatars/alice.png"

var testUser = &entity.User{
	ID:         1,
	Username:   "alice",
	Email:      "alice@example.com",
	Password:   "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	IsVerified: true,
	AvatarURL:  &testAvatarURL,
}

func TestNewCachingUserRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingUserRepository(nil, 0, &mockUserRepository{}, "")

	if repo.ttl != 5*time.Minute {
		t.Errorf("expected default TTL of 5m, got %v", repo.ttl)
	}
	if repo.namespace != "users" {
		t.Errorf("expected default namespace 'users', got %q", repo.namespace)
	}
}

func TestCachingUserRepository_FindByEmail_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return testUser, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingUserRepository(nil, 5*time.Minute, inner, "users")

	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != testUser.ID {
		t.Errorf("expected user %d, got %d", testUser.ID, u.ID)
	}
}

func TestCachingUserRepository_FindByEmail_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(toCachedUser(testUser))
	mock.ExpectGet("users:email:alice@example.com").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")
	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if u.Email != testUser.Email || !u.IsVerified {
		t.Errorf("unexpected user from cache: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// A populate-then-hit round trip must preserve every column. The entity's
// API JSON drops the password digest, so a regression to that encoding
// would hand Login an empty digest on every cache hit.
func TestCachingUserRepository_RoundTripKeepsAllFields(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	storedJSON, _ := json.Marshal(toCachedUser(testUser))

	// First lookup misses and populates the cache.
	mock.ExpectGet("users:email:alice@example.com").RedisNil()
	mock.ExpectSet("users:email:alice@example.com", storedJSON, 5*time.Minute).SetVal("OK")
	// Second lookup replays exactly what the first one stored.
	mock.ExpectGet("users:email:alice@example.com").SetVal(string(storedJSON))

	calls := 0
	inner := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			calls++
			return testUser, nil
		},
	}

	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")

	if _, err := repo.FindByEmail(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error on hit: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected one inner call, got %d", calls)
	}
	if u.Password == "" || u.Password != testUser.Password {
		t.Errorf("password digest lost through the cache: %q", u.Password)
	}
	if !u.IsVerified {
		t.Error("verified flag lost through the cache")
	}
	if u.AvatarURL == nil || *u.AvatarURL != testAvatarURL {
		t.Errorf("avatar URL lost through the cache: %v", u.AvatarURL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_FindByEmail_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(toCachedUser(testUser))

	// Cache miss
	mock.ExpectGet("users:email:alice@example.com").RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet("users:email:alice@example.com", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return testUser, nil
		},
	}

	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")
	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != testUser.ID {
		t.Errorf("expected user %d, got %d", testUser.ID, u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_FindByEmail_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("users:email:ghost@example.com").RedisNil()

	inner := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, usecase.ErrUserNotFound
		},
	}

	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")
	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")

	if !errors.Is(err, usecase.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCachingUserRepository_FindByEmail_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(toCachedUser(testUser))

	mock.ExpectGet("users:email:alice@example.com").SetVal("{not-json")
	mock.ExpectDel("users:email:alice@example.com").SetVal(1)
	mock.ExpectSet("users:email:alice@example.com", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return testUser, nil
		},
	}

	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")
	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != testUser.ID {
		t.Errorf("expected user %d, got %d", testUser.ID, u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_MarkVerified_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("users:email:alice@example.com", "users:name:alice", "users:id:1").SetVal(3)

	inner := &mockUserRepository{
		markVerifiedFn: func(ctx context.Context, email string) error { return nil },
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return testUser, nil
		},
	}

	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")
	if err := repo.MarkVerified(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_UpdateAvatarURL_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("users:email:alice@example.com", "users:name:alice", "users:id:1").SetVal(3)

	inner := &mockUserRepository{
		updateAvatarURLFn: func(ctx context.Context, email, url string) (*entity.User, error) {
			u := *testUser
			u.AvatarURL = &url
			return &u, nil
		},
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return testUser, nil
		},
	}

	repo := NewCachingUserRepository(rdb, 5*time.Minute, inner, "users")
	u, err := repo.UpdateAvatarURL(context.Background(), "alice@example.com", "https://cdn.example.com/a.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.AvatarURL == nil || *u.AvatarURL != "https://cdn.example.com/a.png" {
		t.Errorf("avatar URL not returned: %v", u.AvatarURL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_MarkVerified_InnerErrorSkipsInvalidation(t *testing.T) {
	t.Parallel()

	inner := &mockUserRepository{
		markVerifiedFn: func(ctx context.Context, email string) error {
			return usecase.ErrUserNotFound
		},
	}

	repo := NewCachingUserRepository(nil, 5*time.Minute, inner, "users")
	err := repo.MarkVerified(context.Background(), "ghost@example.com")

	if !errors.Is(err, usecase.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
