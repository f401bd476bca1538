package impl

import (
	"context"
	"strings"
	"sync"
	"testing"

	domainerrors "arena/internal/domain/errors"
	"arena/internal/errors"
	"arena/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_Register_Success(t *testing.T) {
	fixtures := createTestCredentialService(t)
	ctx := context.Background()

	output, err := fixtures.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice",
		Password: "pw1",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, 1, output.User.Level)
	assert.Empty(t, output.User.UnlockedCharacters)
	assert.NotEmpty(t, output.User.PasswordHash)
	assert.NotEqual(t, "pw1", output.User.PasswordHash)
}

func TestCredentialService_Register_UsernameTaken(t *testing.T) {
	fixtures := createTestCredentialService(t)
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, err = fixtures.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "pw2"})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestCredentialService_Register_UsernameBounds(t *testing.T) {
	fixtures := createTestCredentialService(t)
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, &usecase.RegisterInput{Username: "", Password: "pw"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fixtures.service.Register(ctx, &usecase.RegisterInput{
		Username: strings.Repeat("x", 51),
		Password: "pw",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	// 50 characters is still acceptable.
	_, err = fixtures.service.Register(ctx, &usecase.RegisterInput{
		Username: strings.Repeat("x", 50),
		Password: "pw",
	})
	assert.NoError(t, err)
}

func TestCredentialService_Register_HashFailure(t *testing.T) {
	fixtures := createTestCredentialService(t)
	svc := NewCredentialService(fixtures.userRepo, failingHasher{}, fixtures.codec, newDiscardLogger())

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestCredentialService_Register_StoreUnavailable(t *testing.T) {
	fixtures := createTestCredentialService(t)
	fixtures.userRepo.failWith = errors.New("connection refused")

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}

func TestCredentialService_Login_InvalidCredentialsIndistinguishable(t *testing.T) {
	fixtures := createTestCredentialService(t)
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, wrongPassErr := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})
	_, unknownUserErr := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "anything"})

	// Wrong password and unknown user surface as the same error value, so a
	// caller cannot enumerate registered usernames.
	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUserErr, domainerrors.ErrInvalidCredentials)
}

func TestCredentialService_Login_StoreUnavailable(t *testing.T) {
	fixtures := createTestCredentialService(t)
	fixtures.userRepo.failWith = errors.New("connection refused")

	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}

func TestCredentialService_RegisterThenLogin_TokenCarriesUsername(t *testing.T) {
	fixtures := createTestCredentialService(t)
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, &usecase.RegisterInput{Username: "bob", Password: "secret123"})
	require.NoError(t, err)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "bob", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, output.AccessToken)

	claims, err := fixtures.codec.Verify(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
}

func TestCredentialService_Profile(t *testing.T) {
	fixtures := createTestCredentialService(t)
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, &usecase.RegisterInput{Username: "bob", Password: "secret123"})
	require.NoError(t, err)

	output, err := fixtures.service.Profile(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", output.User.Username)
	assert.Equal(t, 1, output.User.Level)

	_, err = fixtures.service.Profile(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestCredentialService_ConcurrentRegister_SingleWinner(t *testing.T) {
	fixtures := createTestCredentialService(t)
	ctx := context.Background()

	const attempts = 8

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := range attempts {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = fixtures.service.Register(ctx, &usecase.RegisterInput{
				Username: "carol",
				Password: "pw",
			})
		}(i)
	}
	wg.Wait()

	var winners, losers int
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, domainerrors.ErrUsernameTaken):
			losers++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, winners)
	assert.Equal(t, attempts-1, losers)
}
