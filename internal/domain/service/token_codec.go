package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the claim set carried by issued bearer tokens.
// The wire shape is a JSON object with at least "username" and "exp".
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenTTL is the fixed validity window of an issued token.
const TokenTTL = time.Hour

// TokenCodec defines the interface for issuing and validating signed bearer tokens.
// This abstracts the token format (compact JWS) from the use cases.
type TokenCodec interface {
	// Issue encodes a claim set for the given username, signed with the
	// process secret and expiring TokenTTL from now.
	Issue(username string) (string, error)

	// Verify parses and validates a token string. Validation runs in order:
	// structure, then signature, then expiry, short-circuiting to the typed
	// domain error of the first failing stage. On success it returns the
	// decoded claims unchanged.
	Verify(token string) (*Claims, error)
}
