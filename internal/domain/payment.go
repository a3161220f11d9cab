package domain

import (
	"strings"
	"time"
)

type CardBrand string

const (
	CardVisa   CardBrand = "visa"
	CardJCB    CardBrand = "jcb"
	CardMaster CardBrand = "master"
	CardAmex   CardBrand = "amex"
	CardDiners CardBrand = "diners"
)

func (b CardBrand) Valid() bool {
	switch b {
	case CardVisa, CardJCB, CardMaster, CardAmex, CardDiners:
		return true
	}
	return false
}

func ParseCardBrand(s string) (CardBrand, error) {
	b := CardBrand(strings.ToLower(strings.TrimSpace(s)))
	if !b.Valid() {
		return "", &UnknownVariantError{Kind: "card brand", Value: s}
	}
	return b, nil
}

// PaymentDeadlineRule is the longest time allowed between an order entering
// Pending and its capture.
type PaymentDeadlineRule struct {
	Days int
}

func (r PaymentDeadlineRule) Duration() time.Duration {
	return time.Duration(r.Days) * 24 * time.Hour
}

// PaymentMethod is a closed set: BankTransfer, CashOnDelivery and CreditCard.
// Each variant states its own deadline policy, so a new variant cannot be added
// without deciding one.
//
//sumtype:decl
type PaymentMethod interface {
	// DeadlineRule returns false when no deadline applies.
	DeadlineRule() (PaymentDeadlineRule, bool)
	Code() string
	Kind() PaymentKind

	paymentMethod()
}

type PaymentKind string

const (
	KindBankTransfer   PaymentKind = "bank_transfer"
	KindCashOnDelivery PaymentKind = "cash_on_delivery"
	KindCreditCard     PaymentKind = "credit_card"
)

type BankTransfer struct {
	PayeeBankAccount string
}

func (BankTransfer) DeadlineRule() (PaymentDeadlineRule, bool) {
	return PaymentDeadlineRule{Days: 20}, true
}
func (BankTransfer) Code() string      { return "B" }
func (BankTransfer) Kind() PaymentKind { return KindBankTransfer }
func (BankTransfer) paymentMethod()    {}

type CashOnDelivery struct{}

func (CashOnDelivery) DeadlineRule() (PaymentDeadlineRule, bool) {
	return PaymentDeadlineRule{}, false
}
func (CashOnDelivery) Code() string      { return "COD" }
func (CashOnDelivery) Kind() PaymentKind { return KindCashOnDelivery }
func (CashOnDelivery) paymentMethod()    {}

type CreditCard struct {
	Brand CardBrand
}

func (CreditCard) DeadlineRule() (PaymentDeadlineRule, bool) {
	return PaymentDeadlineRule{Days: 15}, true
}
func (CreditCard) Code() string      { return "CR" }
func (CreditCard) Kind() PaymentKind { return KindCreditCard }
func (CreditCard) paymentMethod()    {}
