// Package model contains the GORM persistence models mirroring database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The unique index on username is the
// authoritative duplicate guard: concurrent inserts of the same name resolve
// at the database, not in application code.
type UserModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username           string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	Level              int       `gorm:"not null;default:1"`
	UnlockedCharacters []string  `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
