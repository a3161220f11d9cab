package server

import (
	"time"

	"lifecycle/internal/domain"
)

type paymentMethodReq struct {
	Type             string `json:"type"`
	PayeeBankAccount string `json:"payeeBankAccount"`
	CardBrand        string `json:"cardBrand"`
}

type createOrderReq struct {
	PaymentMethod paymentMethodReq `json:"paymentMethod"`
	OrderedAt     *time.Time       `json:"orderedAt"`
}

type captureReq struct {
	TransactionID *string `json:"transactionId"`
}

type registerEmailReq struct {
	Address string `json:"address"`
}

type verifyEmailReq struct {
	Code string `json:"code"`
}

type paymentMethodResp struct {
	Type             domain.PaymentKind `json:"type"`
	Code             string             `json:"code"`
	PayeeBankAccount string             `json:"payeeBankAccount,omitempty"`
	CardBrand        domain.CardBrand   `json:"cardBrand,omitempty"`
	DeadlineDays     *int               `json:"deadlineDays,omitempty"`
}

type statusResp struct {
	Name             domain.StatusName `json:"name"`
	StartedAt        *time.Time        `json:"startedAt,omitempty"`
	PaidAt           *time.Time        `json:"paidAt,omitempty"`
	TransactionID    *string           `json:"transactionId,omitempty"`
	ShippedAt        *time.Time        `json:"shippedAt,omitempty"`
	TrackingNumber   string            `json:"trackingNumber,omitempty"`
	DeliveryProvider string            `json:"deliveryProvider,omitempty"`
	CancelledAt      *time.Time        `json:"cancelledAt,omitempty"`
	Reason           string            `json:"reason,omitempty"`
	Refunded         *bool             `json:"refunded,omitempty"`
}

type orderResp struct {
	ID            domain.OrderID    `json:"id"`
	PaymentMethod paymentMethodResp `json:"paymentMethod"`
	Status        statusResp        `json:"status"`
}

type emailResp struct {
	Address string       `json:"address"`
	Stage   domain.Stage `json:"stage"`
	Code    string       `json:"code,omitempty"`
}

func toPaymentMethod(r paymentMethodReq) (domain.PaymentMethod, error) {
	switch domain.PaymentKind(r.Type) {
	case domain.KindBankTransfer:
		acct, err := domain.NewMinMaxString[domain.One, domain.Sixty4](r.PayeeBankAccount)
		if err != nil {
			return nil, err
		}
		return domain.BankTransfer{PayeeBankAccount: acct.String()}, nil
	case domain.KindCashOnDelivery:
		return domain.CashOnDelivery{}, nil
	case domain.KindCreditCard:
		b, err := domain.ParseCardBrand(r.CardBrand)
		if err != nil {
			return nil, err
		}
		return domain.CreditCard{Brand: b}, nil
	}
	return nil, &domain.UnknownVariantError{Kind: "payment method", Value: r.Type}
}

func toPaymentMethodResp(pm domain.PaymentMethod) paymentMethodResp {
	out := paymentMethodResp{Type: pm.Kind(), Code: pm.Code()}
	if rule, ok := pm.DeadlineRule(); ok {
		out.DeadlineDays = &rule.Days
	}
	switch v := pm.(type) {
	case domain.BankTransfer:
		out.PayeeBankAccount = v.PayeeBankAccount
	case domain.CreditCard:
		out.CardBrand = v.Brand
	case domain.CashOnDelivery:
	}
	return out
}

func toStatusResp(st domain.OrderStatus) statusResp {
	out := statusResp{Name: st.Name()}
	switch v := st.(type) {
	case domain.Pending:
		out.StartedAt = &v.StartedAt
	case domain.Paid:
		out.PaidAt = &v.PaidAt
		out.TransactionID = v.TransactionID
	case domain.Shipped:
		out.ShippedAt = &v.ShippedAt
		out.TrackingNumber = v.TrackingNumber
		out.DeliveryProvider = v.DeliveryProvider
	case domain.Cancelled:
		out.CancelledAt = &v.CancelledAt
		out.Reason = v.Reason
		out.Refunded = &v.Refunded
	}
	return out
}

func toOrderResp(o *domain.Order) orderResp {
	return orderResp{
		ID:            o.ID(),
		PaymentMethod: toPaymentMethodResp(o.PaymentMethod()),
		Status:        toStatusResp(o.Status()),
	}
}

func toEmailResp(e domain.AnyEmail) emailResp {
	return emailResp{Address: e.String(), Stage: e.Stage()}
}
