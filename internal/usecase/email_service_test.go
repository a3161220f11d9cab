package usecase

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"lifecycle/internal/domain"
	"lifecycle/internal/metrics"
)

type fakeEmailRepo struct {
	m map[string]domain.AnyEmail
}

func (r *fakeEmailRepo) Insert(e domain.AnyEmail) bool {
	if r.m == nil {
		r.m = map[string]domain.AnyEmail{}
	}
	if _, ok := r.m[e.String()]; ok {
		return false
	}
	r.m[e.String()] = e
	return true
}

func (r *fakeEmailRepo) Get(address string) (domain.AnyEmail, bool) {
	e, ok := r.m[address]
	return e, ok
}

func (r *fakeEmailRepo) Update(address string, fn func(domain.AnyEmail) (domain.AnyEmail, error)) (bool, error) {
	e, ok := r.m[address]
	if !ok {
		return false, nil
	}
	next, err := fn(e)
	if err != nil {
		return true, err
	}
	r.m[address] = next
	return true, nil
}

type fixedCodes string

func (c fixedCodes) Match(_, code string) bool    { return code == string(c) }
func (c fixedCodes) Issue(string) (string, error) { return string(c), nil }

type failingCodes struct{ fixedCodes }

func (failingCodes) Issue(string) (string, error) { return "", errors.New("signer down") }

func newEmailService() (*EmailService, *fakeEmailRepo) {
	repo := &fakeEmailRepo{}
	return &EmailService{
		Repo:    repo,
		Codes:   fixedCodes("123456"),
		Log:     zerolog.Nop(),
		Metrics: metrics.Nop(),
	}, repo
}

func TestEmailService_Lifecycle(t *testing.T) {
	svc, repo := newEmailService()

	e, code, err := svc.Register("info@example.com")
	if err != nil || code != "123456" || e.Stage() != domain.StageUnverified {
		t.Fatalf("register = %q, %q, %v", e.String(), code, err)
	}
	v, err := svc.Verify("info@example.com", code)
	if err != nil || v.String() != "info@example.com" {
		t.Fatalf("verify = %q, %v", v.String(), err)
	}
	b, err := svc.Block("info@example.com")
	if err != nil || b.String() != "info@example.com" {
		t.Fatalf("block = %q, %v", b.String(), err)
	}
	if got, _ := repo.Get("info@example.com"); got.Stage() != domain.StageBlocked {
		t.Fatalf("stored stage = %s", got.Stage())
	}
	if got := testutil.ToFloat64(svc.Metrics.EmailTransitions.WithLabelValues("block", "ok")); got != 1 {
		t.Fatalf("block ok = %v", got)
	}
}

func TestEmailService_WrongCodeKeepsUnverified(t *testing.T) {
	svc, _ := newEmailService()
	_, _, _ = svc.Register("info@example.com")

	v, err := svc.Verify("info@example.com", "000000")
	if !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("err = %v", err)
	}
	if v != (domain.Email[domain.Verified]{}) {
		t.Fatalf("failed verify returned %q", v.String())
	}
	got, _ := svc.Get("info@example.com")
	if got.Stage() != domain.StageUnverified {
		t.Fatalf("stage = %s", got.Stage())
	}
	if _, err := svc.Verify("info@example.com", "123456"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := testutil.ToFloat64(svc.Metrics.EmailTransitions.WithLabelValues("verify", "invalid_code")); got != 1 {
		t.Fatalf("invalid_code = %v", got)
	}
}

func TestEmailService_WrongStage(t *testing.T) {
	svc, _ := newEmailService()
	_, _, _ = svc.Register("info@example.com")

	_, err := svc.Block("info@example.com")
	var ie *domain.InvalidOperationError
	if !errors.As(err, &ie) || ie.From != "unverified" {
		t.Fatalf("block unverified err = %v", err)
	}

	_, _ = svc.Verify("info@example.com", "123456")
	if _, err := svc.Verify("info@example.com", "123456"); !errors.Is(err, domain.ErrInvalidOperation) {
		t.Fatalf("verify twice err = %v", err)
	}
	_, _ = svc.Block("info@example.com")
	if _, err := svc.Block("info@example.com"); !errors.Is(err, domain.ErrInvalidOperation) {
		t.Fatalf("block twice err = %v", err)
	}
}

func TestEmailService_Errors(t *testing.T) {
	svc, _ := newEmailService()
	if _, _, err := svc.Register("not-an-email"); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Fatalf("format err = %v", err)
	}
	if got := testutil.ToFloat64(svc.Metrics.EmailTransitions.WithLabelValues("register", "invalid_format")); got != 1 {
		t.Fatalf("invalid_format = %v", got)
	}
	_, _, _ = svc.Register("a@b")
	if _, _, err := svc.Register("a@b"); !errors.As(err, new(ErrConflict)) {
		t.Fatalf("duplicate err = %v", err)
	}
	if _, err := svc.Verify("x@y", "123456"); !errors.As(err, new(ErrNotFound)) {
		t.Fatalf("verify missing err = %v", err)
	}
	if _, err := svc.Block("x@y"); !errors.As(err, new(ErrNotFound)) {
		t.Fatalf("block missing err = %v", err)
	}
	if _, err := svc.Get("x@y"); !errors.As(err, new(ErrNotFound)) {
		t.Fatalf("get missing err = %v", err)
	}

	svc.Codes = failingCodes{}
	if _, _, err := svc.Register("c@d"); err == nil {
		t.Fatal("issuer failure swallowed")
	}
	if _, ok := svc.Repo.Get("c@d"); ok {
		t.Fatal("address stored without a code")
	}
}
