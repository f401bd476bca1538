// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"arena/internal/domain/entity"
	domainerrors "arena/internal/domain/errors"
	"arena/internal/domain/repository"
	"arena/internal/domain/service"
	"arena/internal/errors"
	"arena/internal/usecase"
)

// credentialService implements the CredentialUsecase interface. It is
// stateless apart from its injected collaborators, so concurrent calls from
// the HTTP layer need no synchronization here; the one genuine race, two
// registrations of the same username, is settled by the store's unique index.
type credentialService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	codec    service.TokenCodec
	logger   *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	codec service.TokenCodec,
	logger *slog.Logger,
) usecase.CredentialUsecase {
	return &credentialService{
		userRepo: userRepo,
		hasher:   hasher,
		codec:    codec,
		logger:   logger,
	}
}

// Register creates a new account with a hashed password and default game
// state. Uniqueness is not pre-checked: the insert itself is the authoritative
// duplicate test, so racing registrations cannot both win.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("registration failed")
	}

	newUser := entity.NewUser(input.Username, hashedPassword)

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, domainerrors.ErrUsernameTaken) {
			srv.logger.Info("Registration rejected, username taken", "username", input.Username)

			return nil, err
		}
		srv.logger.Error("Failed to create user", "username", input.Username, "error", err)

		return nil, domainerrors.ErrStoreUnavailable.WrapMessage("failed to create user")
	}

	srv.logger.Debug("User registered successfully", "userID", newUser.ID)

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies the password and issues a bearer token. An unknown username
// and a wrong password return the same error value, so callers cannot probe
// which usernames exist.
func (srv *credentialService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		srv.logger.Error("Failed to look up user during login", "error", err)

		return nil, domainerrors.ErrStoreUnavailable.WrapMessage("failed to look up user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Info("Login rejected", "username", input.Username)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	accessToken, err := srv.codec.Issue(user.Username)
	if err != nil {
		srv.logger.Error("Failed to issue token", "username", input.Username, "error", err)

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue token")
	}

	srv.logger.Debug("User logged in successfully", "userID", user.ID)

	return &usecase.LoginOutput{AccessToken: accessToken}, nil
}

// Profile returns the game profile for an already-authenticated username.
func (srv *credentialService) Profile(ctx context.Context, username string) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile lookup failed")
		}
		srv.logger.Error("Failed to look up user for profile", "error", err)

		return nil, domainerrors.ErrStoreUnavailable.WrapMessage("failed to look up user")
	}

	return &usecase.ProfileOutput{User: user}, nil
}

// validateUsername enforces the 1..50 character constraint on registration.
// Counted in runes so multibyte names are not over-rejected.
func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n == 0 || n > entity.MaxUsernameLength {
		return domainerrors.ErrValidationFailed.WithDetails("username must be between 1 and 50 characters")
	}

	return nil
}
