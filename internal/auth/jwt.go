package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("session secret not set")
	ErrInvalidToken  = errors.New("invalid token")
)

// DefaultSessionTTL is how long an anonymous storefront session stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionTokens signs and checks the HS256 tokens that identify a storefront
// session. There are no accounts; the token carries only the session id.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(secret string, ttl time.Duration) (*SessionTokens, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionTokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *SessionTokens) GenerateToken(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("empty sessionID passed to GenerateToken")
	}

	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": s.now().Unix(),
		"exp": s.now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the session id carried by a valid token.
func (s *SessionTokens) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sessionID, _ := claims["sid"].(string)
	if sessionID == "" {
		return "", ErrInvalidToken
	}
	return sessionID, nil
}
