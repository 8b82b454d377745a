package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
)

// TTL is the fixed validity window of a session token.
const TTL = 30 * 24 * time.Hour

var (
	// ErrSecretNotSet means the signing secret was never configured. It is
	// a deployment error, not a verdict about the token.
	ErrSecretNotSet   = errors.New("APP_JWT_SECRET is not set")
	ErrInvalidToken   = errors.New("invalid session token")
	ErrInvalidPayload = errors.New("invalid session payload")
)

type Option func(*Codec)

// WithClock overrides the time source used to stamp and check tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// Codec signs and verifies HS256 session tokens with a single shared
// secret. A Codec is immutable and safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
}

type claims struct {
	UID   int64  `json:"uid"`
	Phone string `json:"phone"`
	// Only the JSON literal true grants admin, so the raw value is kept.
	IsAdmin any `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

func NewCodec(secret string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrSecretNotSet
	}

	c := &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Codec) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Sign issues a token for an admin session valid for TTL.
func (c *Codec) Sign(s model.Session) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrSecretNotSet
	}
	if s.UID <= 0 || s.Phone == "" || !s.IsAdmin {
		return "", ErrInvalidPayload
	}

	now := c.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UID:     s.UID,
		Phone:   s.Phone,
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	})

	return token.SignedString(c.secret)
}

// Verify decodes a token. Forged, expired and malformed tokens all
// return ErrInvalidToken. A decoded session may still lack admin rights.
func (c *Codec) Verify(token string) (model.Session, error) {
	if len(c.secret) == 0 {
		return model.Session{}, ErrSecretNotSet
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock),
	)

	var cl claims
	_, err := parser.ParseWithClaims(token, &cl, func(_ *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return model.Session{}, ErrInvalidToken
	}

	admin, _ := cl.IsAdmin.(bool)
	return model.Session{
		UID:     cl.UID,
		Phone:   cl.Phone,
		IsAdmin: admin,
	}, nil
}
