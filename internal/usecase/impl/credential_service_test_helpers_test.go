package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"arena/config"
	"arena/internal/domain/entity"
	domainerrors "arena/internal/domain/errors"
	"arena/internal/domain/repository"
	"arena/internal/domain/service"
	"arena/internal/errors"
	"arena/internal/infra/auth"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCodec(t *testing.T) service.TokenCodec {
	t.Helper()

	cfg := &config.Config{}
	cfg.Token.Secret = "credential-service-test-secret"

	codec, err := auth.NewJWTCodec(cfg)
	require.NoError(t, err)

	return codec
}

// memoryUserRepository is an in-memory account store that enforces username
// uniqueness at insert time under a single lock, the same guarantee the
// PostgreSQL unique index gives the real repository.
type memoryUserRepository struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	failWith error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*entity.User)}
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, domainerrors.NewDatabaseExecuteError(r.failWith, "failed to find user by username")
	}

	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	copied := *user

	return &copied, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return domainerrors.NewDatabaseExecuteError(r.failWith, "failed to create user")
	}

	if _, exists := r.users[user.Username]; exists {
		return domainerrors.ErrUsernameTaken.WrapMessage("username already exists")
	}

	copied := *user
	r.users[user.Username] = &copied

	return nil
}

// failingHasher simulates a catastrophic internal hashing failure.
type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) {
	return "", errors.New("entropy source unavailable")
}

func (failingHasher) Check(string, string) bool { return false }

type credentialServiceFixtures struct {
	service  *credentialService
	userRepo *memoryUserRepository
	codec    service.TokenCodec
}

func createTestCredentialService(t *testing.T) credentialServiceFixtures {
	t.Helper()

	userRepo := newMemoryUserRepository()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	codec := newTestCodec(t)

	svc := NewCredentialService(userRepo, hasher, codec, newDiscardLogger())

	concrete, ok := svc.(*credentialService)
	require.True(t, ok)

	return credentialServiceFixtures{
		service:  concrete,
		userRepo: userRepo,
		codec:    codec,
	}
}
