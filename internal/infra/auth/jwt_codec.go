package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"arena/config"
	domainerrors "arena/internal/domain/errors"
	"arena/internal/domain/service"
	"arena/internal/errors"
)

// jwtCodec is a concrete implementation of the TokenCodec interface using the
// compact JWS form: three base64url segments joined by dots, signed with a
// single process-wide HMAC-SHA-256 secret.
type jwtCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTCodec is the constructor for jwtCodec. The signing secret comes from
// loaded configuration, never from a source literal.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.Token.Secret == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	return &jwtCodec{
		secret: []byte(cfg.Token.Secret),
		ttl:    service.TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token carrying the username and an expiry one TTL
// from now.
func (c *jwtCodec) Issue(username string) (string, error) {
	claims := service.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(c.now().Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify parses and validates a token string, translating jwt/v5 failures
// into the domain's token error taxonomy. Structure is checked before the
// signature and the signature before expiry, so a garbled token reports as
// malformed even when it would also be expired, and a forged token is
// rejected for its signature before its claims are ever consulted.
func (c *jwtCodec) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return c.secret, nil
	},
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
		// Every token this service issues carries exp; one without it is not ours.
		jwt.WithExpirationRequired(),
		// Expiry is inclusive: a token stays valid through the exp instant itself
		// and is rejected strictly after issue time plus TTL.
		jwt.WithLeeway(time.Nanosecond),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domainerrors.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domainerrors.ErrTokenBadSignature
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			// The keyfunc refused the token, e.g. a non-HMAC alg header.
			return nil, domainerrors.ErrTokenBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domainerrors.ErrTokenExpired
		default:
			return nil, domainerrors.ErrTokenMalformed.WithDetails(err.Error())
		}
	}

	if !token.Valid {
		return nil, domainerrors.ErrTokenBadSignature
	}

	return claims, nil
}
