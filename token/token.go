// Package token issues and verifies the signed session tokens handed out by
// the authentication service. Tokens are compact JWTs; validity is purely a
// function of the signature and the encoded expiry.
package token

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims is the payload embedded into every issued token. Reset tokens carry
// only the Subject.
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
}

// JWT signs and verifies tokens with a shared HMAC secret (HS256).
type JWT struct {
	secret []byte
	issuer string
}

func NewJWT(secret, issuer string) (*JWT, error) {
	if secret == "" {
		return nil, fmt.Errorf("[NewJWT] signing secret is required")
	}
	return &JWT{secret: []byte(secret), issuer: issuer}, nil
}

// Sign creates a signed token from the claims. An expiresIn of zero produces
// a token without an exp claim.
func (j *JWT) Sign(claims Claims, expiresIn time.Duration) (string, error) {
	now := NowTimeFunc()

	mapClaims := jwtlib.MapClaims{
		"sub": claims.Subject,
		"iss": j.issuer,
		"iat": now.Unix(),
		"jti": uuid.New().String(),
	}
	if claims.Email != "" {
		mapClaims["email"] = claims.Email
	}
	if claims.Role != "" {
		mapClaims["role"] = claims.Role
	}
	if expiresIn > 0 {
		mapClaims["exp"] = now.Add(expiresIn).Unix()
	}

	signedToken, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, mapClaims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// Verify validates the signature and expiry of a raw token and returns the
// embedded claims.
func (j *JWT) Verify(rawToken string) (Claims, error) {
	parsed, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	}, jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }))

	if err != nil {
		if apperrors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, apperrors.ErrTokenExpired
		}
		return Claims{}, apperrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.ErrInvalidToken
	}

	claims := Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if claims.Subject == "" {
		return Claims{}, apperrors.ErrInvalidToken
	}

	return claims, nil
}
