package postgres

import (
	"testing"

	"arena/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "create user")))

	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_users_username"}
	assert.True(t, isUniqueConstraintViolation(pgErr))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(pgErr, "create user")))

	assert.False(t, isUniqueConstraintViolation(gorm.ErrRecordNotFound))
	assert.False(t, isUniqueConstraintViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection refused")))
	assert.False(t, isUniqueConstraintViolation(nil))
}

func TestUserMappers_RoundTrip(t *testing.T) {
	user := &entity.User{
		ID:                 uuid.New(),
		Username:           "alice",
		PasswordHash:       "$2a$10$hash",
		Level:              3,
		UnlockedCharacters: []string{"pikachu", "eevee"},
	}

	restored := toUserDomain(fromUserDomain(user))
	assert.Equal(t, user.ID, restored.ID)
	assert.Equal(t, user.Username, restored.Username)
	assert.Equal(t, user.PasswordHash, restored.PasswordHash)
	assert.Equal(t, user.Level, restored.Level)
	assert.Equal(t, user.UnlockedCharacters, restored.UnlockedCharacters)
}

func TestUserMappers_NilHandling(t *testing.T) {
	assert.Nil(t, toUserDomain(nil))
	assert.Nil(t, fromUserDomain(nil))

	// A nil character list normalizes to an empty slice, not null, in both
	// directions.
	domain := toUserDomain(fromUserDomain(&entity.User{Username: "bob"}))
	assert.NotNil(t, domain.UnlockedCharacters)
	assert.Empty(t, domain.UnlockedCharacters)
}
