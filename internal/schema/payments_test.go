package schema

import (
	"errors"
	"testing"
)

func TestPaymentCreate_Validate(t *testing.T) {
	tests := []struct {
		name      string
		dto       PaymentCreate
		wantField string
	}{
		{name: "valid minimal", dto: PaymentCreate{OrderID: 1, Amount: 99.5}},
		{
			name: "valid full",
			dto: PaymentCreate{
				OrderID: 1, Amount: 10, Type: PaymentTypeBankCard,
				Status: PaymentStatusPaid, PaidAt: "2024-06-01", Comment: "ok",
			},
		},
		{name: "missing order", dto: PaymentCreate{Amount: 10}, wantField: "orderId"},
		{name: "zero amount", dto: PaymentCreate{OrderID: 1}, wantField: "amount"},
		{name: "negative amount", dto: PaymentCreate{OrderID: 1, Amount: -5}, wantField: "amount"},
		{name: "bad type", dto: PaymentCreate{OrderID: 1, Amount: 10, Type: "crypto"}, wantField: "type"},
		{name: "bad status", dto: PaymentCreate{OrderID: 1, Amount: 10, Status: "pending"}, wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dto.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, ve.Fields)
			}
		})
	}
}

func TestPaymentCreate_Normalize(t *testing.T) {
	p := PaymentCreate{OrderID: 1, Amount: 10}.Normalize()
	if p.Type != PaymentTypeCash {
		t.Errorf("type = %q, want %q", p.Type, PaymentTypeCash)
	}
	if p.Status != PaymentStatusNotPaid {
		t.Errorf("status = %q, want %q", p.Status, PaymentStatusNotPaid)
	}

	p = PaymentCreate{OrderID: 1, Amount: 10, Type: PaymentTypeCredit, Status: PaymentStatusPaid}.Normalize()
	if p.Type != PaymentTypeCredit || p.Status != PaymentStatusPaid {
		t.Errorf("Normalize() overwrote explicit values: %+v", p)
	}
}
