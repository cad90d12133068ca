package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const sessionClaim = "sid"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("token issued by another service")
)

// JwtService handles session token operations.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a JWT bound to the given session.
func (s *JwtService) Generate(sessionID uuid.UUID, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"exp":        now.Add(expTime).Unix(),
		"iat":        now.Unix(),
		"iss":        s.issuer,
		sessionClaim: sessionID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the session it is bound to.
func (s *JwtService) Decode(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return uuid.Nil, ErrInvalidIssuer
	}

	raw, ok := claims[sessionClaim].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return sessionID, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
