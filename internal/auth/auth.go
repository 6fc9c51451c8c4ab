// Package auth verifies the identity tokens issued by the auth provider and
// turns them into roles.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mauv0809/padel-draw/internal/role"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of an identity token. Subject is the user id; club
// tokens carry the club they act for in ClubID.
type Claims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	ClubID string `json:"club_id,omitempty"`
}

// Verifier checks HS256 tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify validates the token and returns the role it grants.
func (v *Verifier) Verify(token string) (role.Role, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id := claims.Subject
	if claims.Role == "club" {
		id = claims.ClubID
	}
	r, err := role.Parse(claims.Role, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return r, nil
}

// Sign issues a token for subject acting as r. It is used by the seeder and
// tests; production tokens come from the auth provider.
func Sign(secret, subject string, r role.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: r.Kind(),
	}
	if c, ok := r.(role.Club); ok {
		claims.ClubID = c.ID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
