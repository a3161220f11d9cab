package usecase

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"lifecycle/internal/domain"
	"lifecycle/internal/metrics"
)

type EmailRepo interface {
	Insert(domain.AnyEmail) bool
	Get(address string) (domain.AnyEmail, bool)
	Update(address string, fn func(domain.AnyEmail) (domain.AnyEmail, error)) (bool, error)
}

// CodeIssuer produces the code a subject must present to be verified and
// later checks it.
type CodeIssuer interface {
	domain.CodeChecker
	Issue(subject string) (string, error)
}

type EmailService struct {
	Repo    EmailRepo
	Codes   CodeIssuer
	Log     zerolog.Logger
	Metrics *metrics.Metrics
}

// Register stores a new unverified address and returns the code to deliver to it.
func (s *EmailService) Register(address string) (domain.Email[domain.Unverified], string, error) {
	e, err := domain.NewEmail(address)
	if err != nil {
		s.record("register", err)
		return e, "", err
	}
	code, err := s.Codes.Issue(e.String())
	if err != nil {
		return e, "", errors.Wrap(err, "issue verification code")
	}
	if !s.Repo.Insert(e) {
		s.record("register", ErrConflict("exists"))
		return e, "", ErrConflict("email " + address + " already registered")
	}
	s.record("register", nil)
	s.Log.Info().Str("address", address).Msg("email registered")
	return e, code, nil
}

func (s *EmailService) Get(address string) (domain.AnyEmail, error) {
	e, ok := s.Repo.Get(address)
	if !ok {
		return nil, ErrNotFound("email")
	}
	return e, nil
}

// Verify is only legal for an unverified address. A wrong code leaves the stored
// address unverified so it can be retried.
func (s *EmailService) Verify(address, code string) (domain.Email[domain.Verified], error) {
	var out domain.Email[domain.Verified]
	found, err := s.Repo.Update(address, func(cur domain.AnyEmail) (domain.AnyEmail, error) {
		e, ok := cur.(domain.Email[domain.Unverified])
		if !ok {
			return nil, &domain.InvalidOperationError{Op: "verify", From: string(cur.Stage())}
		}
		v, err := domain.VerifyEmail(e, code, s.Codes)
		if err != nil {
			return nil, err
		}
		out = v
		return v, nil
	})
	return out, s.finish("verify", address, found, err)
}

// Block is only legal for a verified address.
func (s *EmailService) Block(address string) (domain.Email[domain.Blocked], error) {
	var out domain.Email[domain.Blocked]
	found, err := s.Repo.Update(address, func(cur domain.AnyEmail) (domain.AnyEmail, error) {
		v, ok := cur.(domain.Email[domain.Verified])
		if !ok {
			return nil, &domain.InvalidOperationError{Op: "block", From: string(cur.Stage())}
		}
		out = domain.BlockEmail(v)
		return out, nil
	})
	return out, s.finish("block", address, found, err)
}

func (s *EmailService) finish(transition, address string, found bool, err error) error {
	if !found {
		return ErrNotFound("email")
	}
	s.record(transition, err)
	if err != nil {
		s.Log.Warn().Err(err).Str("address", address).Msgf("%s rejected", transition)
		return errors.Wrapf(err, "%s email %s", transition, address)
	}
	s.Log.Info().Str("address", address).Msgf("email %s", pastTense[transition])
	return nil
}

var pastTense = map[string]string{"verify": "verified", "block": "blocked"}

func (s *EmailService) record(transition string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidFormat):
		result = "invalid_format"
	case errors.Is(err, domain.ErrInvalidCode):
		result = "invalid_code"
	case errors.Is(err, domain.ErrInvalidOperation):
		result = "invalid_operation"
	default:
		result = "error"
	}
	s.Metrics.EmailTransitions.WithLabelValues(transition, result).Inc()
}
