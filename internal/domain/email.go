package domain

import (
	"strings"

	"github.com/pkg/errors"
)

type Address string

func (a Address) String() string { return string(a) }

// Validate only checks for the '@' separator.
func (a Address) Validate() error {
	if !strings.Contains(string(a), "@") {
		return errors.Wrapf(ErrInvalidFormat, "email %q has no '@'", string(a))
	}
	return nil
}

type Email[S State] = Subject[Address, S]

// AnyEmail is an email in whichever state it has reached. Holders switch on the
// concrete type to get back a value the typed transitions accept.
type AnyEmail interface {
	String() string
	Stage() Stage
}

var (
	_ AnyEmail = Email[Unverified]{}
	_ AnyEmail = Email[Verified]{}
	_ AnyEmail = Email[Blocked]{}
)

func NewEmail(address string) (Email[Unverified], error) {
	return New(Address(address))
}

func VerifyEmail(e Email[Unverified], code string, codes CodeChecker) (Email[Verified], error) {
	return Verify(e, code, codes)
}

func BlockEmail(e Email[Verified]) Email[Blocked] {
	return Block(e)
}
