package domain

import (
	"time"

	"github.com/pkg/errors"
)

type OrderID string

// NewOrderID rejects empty identifiers.
func NewOrderID(s string) (OrderID, error) {
	v, err := NewMinString[One](s)
	if err != nil {
		return "", err
	}
	return OrderID(v.String()), nil
}

func (id OrderID) String() string { return string(id) }

type StatusName string

const (
	StatusPending   StatusName = "pending"
	StatusPaid      StatusName = "paid"
	StatusShipped   StatusName = "shipped"
	StatusCancelled StatusName = "cancelled"
)

func (s StatusName) IsTerminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

// OrderStatus is a closed set: Pending, Paid, Shipped and Cancelled.
// Exactly one of them is an order's current status.
//
//sumtype:decl
type OrderStatus interface {
	Name() StatusName

	orderStatus()
}

type Pending struct {
	StartedAt time.Time
}

type Paid struct {
	PaidAt        time.Time
	TransactionID *string
}

// Shipped and Cancelled have no transition into them yet.
type Shipped struct {
	ShippedAt        time.Time
	TrackingNumber   string
	DeliveryProvider string
}

type Cancelled struct {
	CancelledAt time.Time
	Reason      string
	Refunded    bool
}

func (Pending) Name() StatusName   { return StatusPending }
func (Paid) Name() StatusName      { return StatusPaid }
func (Shipped) Name() StatusName   { return StatusShipped }
func (Cancelled) Name() StatusName { return StatusCancelled }

func (Pending) orderStatus()   {}
func (Paid) orderStatus()      {}
func (Shipped) orderStatus()   {}
func (Cancelled) orderStatus() {}

// Order owns its payment method and status. Status only changes through
// the transition methods, and never returns to Pending once it has left.
type Order struct {
	id            OrderID
	paymentMethod PaymentMethod
	status        OrderStatus
}

func NewOrder(id OrderID, pm PaymentMethod, orderedAt time.Time) *Order {
	return &Order{
		id:            id,
		paymentMethod: pm,
		status:        Pending{StartedAt: orderedAt},
	}
}

func (o *Order) ID() OrderID                  { return o.id }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Status() OrderStatus          { return o.status }

// Capture moves a Pending order to Paid. It fails without side effects when the
// order is not Pending, or when more than the payment method's deadline has passed
// since the order started. Exactly reaching the deadline is still in time.
func (o *Order) Capture(now time.Time, txnID *string) error {
	switch st := o.status.(type) {
	case Pending:
		if o.paymentMethod == nil {
			return errors.Wrapf(ErrInvalidFormat, "order %s has no payment method", o.id)
		}
		if rule, ok := o.paymentMethod.DeadlineRule(); ok {
			if now.Sub(st.StartedAt) > rule.Duration() {
				return &DeadlineExceededError{Days: rule.Days}
			}
		}
		o.status = Paid{PaidAt: now, TransactionID: txnID}
		return nil
	case Paid, Shipped, Cancelled:
	}
	return o.invalid("capture")
}

func (o *Order) invalid(op string) error {
	from := "unknown"
	if o.status != nil {
		from = string(o.status.Name())
	}
	return &InvalidOperationError{Op: op, From: from}
}
