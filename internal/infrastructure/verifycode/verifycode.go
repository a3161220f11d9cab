package verifycode

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"lifecycle/internal/domain"
)

// Fixed hands out and accepts one code for every subject.
type Fixed struct {
	domain.FixedCode
}

func NewFixed(code string) Fixed { return Fixed{FixedCode: domain.FixedCode(code)} }

func (f Fixed) Issue(string) (string, error) { return string(f.FixedCode), nil }

// Signer issues HS256 tokens bound to a subject. A code matches only the subject
// it was issued for, and only until it expires.
type Signer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (s *Signer) Issue(subject string) (string, error) {
	now := s.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", errors.Wrap(err, "sign verification code")
	}
	return signed, nil
}

func (s *Signer) Match(subject, code string) bool {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(code, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.Now),
		jwt.WithSubject(subject),
		jwt.WithExpirationRequired(),
	)
	return err == nil && parsed.Valid
}
