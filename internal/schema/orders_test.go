package schema

import (
	"errors"
	"testing"
)

func validOrder() OrderCreate {
	return OrderCreate{
		Customer: CustomerRef{ID: 1},
		Items: []OrderItem{
			{Quantity: 2, InitialPrice: 10, PurchasePrice: 8, ProductName: "Widget"},
		},
		Number: "ORD-1",
	}
}

func TestOrderCreate_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*OrderCreate)
		wantField string
	}{
		{name: "valid", mutate: func(o *OrderCreate) {}},
		{
			name:      "missing number",
			mutate:    func(o *OrderCreate) { o.Number = "" },
			wantField: "number",
		},
		{
			name:      "missing customer",
			mutate:    func(o *OrderCreate) { o.Customer = CustomerRef{} },
			wantField: "customer.id",
		},
		{
			name:      "no items",
			mutate:    func(o *OrderCreate) { o.Items = nil },
			wantField: "items",
		},
		{
			name:      "zero quantity",
			mutate:    func(o *OrderCreate) { o.Items[0].Quantity = 0 },
			wantField: "items.quantity",
		},
		{
			name:      "unnamed product",
			mutate:    func(o *OrderCreate) { o.Items[0].ProductName = " " },
			wantField: "items.productName",
		},
		{
			name:      "unknown order type",
			mutate:    func(o *OrderCreate) { o.OrderType = "web" },
			wantField: "orderType",
		},
		{
			name:      "unknown order method",
			mutate:    func(o *OrderCreate) { o.OrderMethod = "fax" },
			wantField: "orderMethod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(&o)
			err := o.Validate()
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

func TestOrderCreate_Normalize(t *testing.T) {
	o := validOrder().Normalize()
	if o.OrderType != OrderTypeMain {
		t.Errorf("orderType = %q, want %q", o.OrderType, OrderTypeMain)
	}
	if o.OrderMethod != OrderMethodPhone {
		t.Errorf("orderMethod = %q, want %q", o.OrderMethod, OrderMethodPhone)
	}

	o = validOrder()
	o.OrderMethod = OrderMethodMessenger
	if got := o.Normalize().OrderMethod; got != OrderMethodMessenger {
		t.Errorf("Normalize() overwrote explicit method: %q", got)
	}
}

func TestOrderMethod_Valid(t *testing.T) {
	for _, m := range []OrderMethod{
		OrderMethodPhone, OrderMethodShoppingCart, OrderMethodOneClick,
		OrderMethodPriceDecreaseRequest, OrderMethodLandingPage, OrderMethodOffline,
		OrderMethodApp, OrderMethodLiveChat, OrderMethodTerminal,
		OrderMethodMissedCall, OrderMethodMessenger,
	} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if OrderMethod("carrier-pigeon").Valid() {
		t.Error("unknown method accepted")
	}
}
