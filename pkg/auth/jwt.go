package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	audienceSession = "valor-assist/session"
	audienceChat    = "valor-assist/chat"
)

// SessionClaims wraps the opaque server-side session id.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// ChatClaims is carried by simulated chat identity tokens.
type ChatClaims struct {
	Scopes []string `json:"scp"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 tokens for session cookies and simulated
// chat identities.
type Signer struct {
	secretKey []byte
}

func NewSigner(secretKey string) *Signer {
	return &Signer{secretKey: []byte(secretKey)}
}

// RandomSecret is used when no SESSION_SECRET is configured; sessions then
// do not survive a restart.
func RandomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *Signer) SignSession(sessionID string, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceSession},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// ParseSession returns the session id carried by a cookie value.
func (s *Signer) ParseSession(tokenString string) (string, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims, audienceSession); err != nil {
		return "", err
	}
	if claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}

func (s *Signer) SignChatToken(identity string, scopes []string, expiresAt time.Time) (string, error) {
	claims := ChatClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			Audience:  jwt.ClaimStrings{audienceChat},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// ParseChatToken returns the identity a chat token was issued to.
func (s *Signer) ParseChatToken(tokenString string) (string, error) {
	claims := &ChatClaims{}
	if err := s.parse(tokenString, claims, audienceChat); err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Signer) parse(tokenString string, claims jwt.Claims, audience string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithAudience(audience))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
