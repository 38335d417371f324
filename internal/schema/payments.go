package schema

// PaymentType is the payment instrument.
type PaymentType string

const (
	PaymentTypeCash         PaymentType = "cash"
	PaymentTypeBankCard     PaymentType = "bank-card"
	PaymentTypeEMoney       PaymentType = "e-money"
	PaymentTypeBankTransfer PaymentType = "bank-transfer"
	PaymentTypeCredit       PaymentType = "credit"
)

// Valid reports whether t is an accepted payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeBankCard, PaymentTypeEMoney,
		PaymentTypeBankTransfer, PaymentTypeCredit:
		return true
	}
	return false
}

// PaymentStatus is the provider-side payment state.
type PaymentStatus string

const (
	PaymentStatusNotPaid      PaymentStatus = "not-paid"
	PaymentStatusInvoice      PaymentStatus = "invoice"
	PaymentStatusWaitApproved PaymentStatus = "wait-approved"
	PaymentStatusPaymentStart PaymentStatus = "payment-start"
	PaymentStatusCanceled     PaymentStatus = "canceled"
	PaymentStatusFail         PaymentStatus = "fail"
	PaymentStatusPaid         PaymentStatus = "paid"
	PaymentStatusReturned     PaymentStatus = "returned"
)

// Valid reports whether s is an accepted payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusNotPaid, PaymentStatusInvoice, PaymentStatusWaitApproved,
		PaymentStatusPaymentStart, PaymentStatusCanceled, PaymentStatusFail,
		PaymentStatusPaid, PaymentStatusReturned:
		return true
	}
	return false
}

// PaymentCreate is the inbound DTO for attaching a payment to an order.
// OrderID selects the order; on the wire toward the CRM it becomes a nested
// order reference rather than a field of the payment itself.
type PaymentCreate struct {
	OrderID int           `json:"orderId"`
	Amount  float64       `json:"amount"`
	Type    PaymentType   `json:"type,omitempty"`
	Status  PaymentStatus `json:"status,omitempty"`
	PaidAt  string        `json:"paidAt,omitempty"` // YYYY-MM-DD
	Comment string        `json:"comment,omitempty"`
}

// Validate checks the DTO before it is sent anywhere.
func (p PaymentCreate) Validate() error {
	var r result
	if p.OrderID <= 0 {
		r.add("orderId", "must be a positive integer")
	}
	if p.Amount <= 0 {
		r.add("amount", "must be positive")
	}
	if p.Type != "" && !p.Type.Valid() {
		r.add("type", "is not a supported payment type")
	}
	if p.Status != "" && !p.Status.Valid() {
		r.add("status", "is not a supported payment status")
	}
	return r.err("payment")
}

// Normalize returns a copy with enum defaults applied.
func (p PaymentCreate) Normalize() PaymentCreate {
	if p.Type == "" {
		p.Type = PaymentTypeCash
	}
	if p.Status == "" {
		p.Status = PaymentStatusNotPaid
	}
	return p
}

// PaymentRef identifies a created payment by ID only.
type PaymentRef struct {
	ID int `json:"id"`
}
