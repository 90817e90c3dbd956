package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified fields extracted from a session token.
type Claims struct {
	TokenID string
	UserID  string
	Email   string
	Role    models.UserRole
}

// TokenManager issues and verifies signed JWTs for authenticated users.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (t *TokenManager) TTL() time.Duration {
	return t.ttl
}

// Generate issues a signed JWT for the user. The jti claim doubles as the
// active session key so individual logins can be revoked.
func (t *TokenManager) Generate(user *models.User) (token string, tokenID string, err error) {
	now := time.Now()
	tokenID = uuid.NewString()
	claims := jwt.MapClaims{
		"iss":   t.issuer,
		"sub":   user.ID,
		"jti":   tokenID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return signed, tokenID, nil
}

// Parse verifies the signature and standard claims and returns the
// session claims.
func (t *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	jti, _ := claims["jti"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || jti == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		TokenID: jti,
		UserID:  sub,
		Email:   email,
		Role:    models.UserRole(role),
	}, nil
}
