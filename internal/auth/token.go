// Package auth implements the stateless session token service. Tokens are
// HS256-signed JWTs carrying a minimal identity claim set; there is no
// revocation list, so a token stays valid until its natural expiry.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "devconnect-api"
	audience = "devconnect-client"
)

// Verification failures. Callers should match with errors.Is.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("token is invalid")
)

// Claims is the decoded identity payload of a session token.
type Claims struct {
	UserID uint
	Name   string
	Avatar string
}

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	// now is swappable for expiry tests.
	now func() time.Time
}

// NewTokenService returns a TokenService signing with secret. Tokens are
// valid for ttl (one hour in the default configuration).
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed, time-bounded token embedding the given identity.
func (s *TokenService) Issue(c Claims) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":    strconv.FormatUint(uint64(c.UserID), 10),
		"name":   c.Name,
		"avatar": c.Avatar,
		"iss":    issuer,
		"aud":    audience,
		"exp":    now.Add(s.ttl).Unix(),
		"iat":    now.Unix(),
		"jti":    newJTI(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		default:
			return Claims{}, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}

	name, _ := mapClaims["name"].(string)
	avatar, _ := mapClaims["avatar"].(string)

	return Claims{
		UserID: uint(userID),
		Name:   name,
		Avatar: avatar,
	}, nil
}

// newJTI creates a unique JWT ID to prevent replay attacks
func newJTI(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8])
}
