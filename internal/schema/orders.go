package schema

import "strings"

// OrderType is the order channel type. The provider account only has the
// main type enabled.
type OrderType string

const OrderTypeMain OrderType = "main"

// Valid reports whether t is an accepted order type.
func (t OrderType) Valid() bool { return t == OrderTypeMain }

// OrderMethod is how the order was placed.
type OrderMethod string

const (
	OrderMethodPhone                OrderMethod = "phone"
	OrderMethodShoppingCart         OrderMethod = "shopping-cart"
	OrderMethodOneClick             OrderMethod = "one-click"
	OrderMethodPriceDecreaseRequest OrderMethod = "price-decrease-request"
	OrderMethodLandingPage          OrderMethod = "landing-page"
	OrderMethodOffline              OrderMethod = "offline"
	OrderMethodApp                  OrderMethod = "app"
	OrderMethodLiveChat             OrderMethod = "live-chat"
	OrderMethodTerminal             OrderMethod = "terminal"
	OrderMethodMissedCall           OrderMethod = "missed-call"
	OrderMethodMessenger            OrderMethod = "messenger"
)

// Valid reports whether m is an accepted order method.
func (m OrderMethod) Valid() bool {
	switch m {
	case OrderMethodPhone, OrderMethodShoppingCart, OrderMethodOneClick,
		OrderMethodPriceDecreaseRequest, OrderMethodLandingPage, OrderMethodOffline,
		OrderMethodApp, OrderMethodLiveChat, OrderMethodTerminal,
		OrderMethodMissedCall, OrderMethodMessenger:
		return true
	}
	return false
}

// OrderItem is one position of an order being created.
type OrderItem struct {
	Quantity      float64 `json:"quantity"`
	InitialPrice  float64 `json:"initialPrice"`
	PurchasePrice float64 `json:"purchasePrice"`
	ProductName   string  `json:"productName"`
}

// OrderCreate is the inbound DTO for creating an order.
type OrderCreate struct {
	Customer    CustomerRef `json:"customer"`
	Items       []OrderItem `json:"items"`
	Number      string      `json:"number"`
	OrderType   OrderType   `json:"orderType,omitempty"`
	OrderMethod OrderMethod `json:"orderMethod,omitempty"`
}

// Validate checks the DTO before it is sent anywhere.
func (o OrderCreate) Validate() error {
	var r result
	if strings.TrimSpace(o.Number) == "" {
		r.add("number", "is required")
	}
	if o.Customer.ID <= 0 {
		r.add("customer.id", "must be a positive integer")
	}
	if len(o.Items) == 0 {
		r.add("items", "must contain at least one item")
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			r.add("items.quantity", "must be positive")
		}
		if strings.TrimSpace(item.ProductName) == "" {
			r.add("items.productName", "is required")
		}
	}
	if o.OrderType != "" && !o.OrderType.Valid() {
		r.add("orderType", "is not a supported order type")
	}
	if o.OrderMethod != "" && !o.OrderMethod.Valid() {
		r.add("orderMethod", "is not a supported order method")
	}
	return r.err("order")
}

// Normalize returns a copy with enum defaults applied.
func (o OrderCreate) Normalize() OrderCreate {
	if o.OrderType == "" {
		o.OrderType = OrderTypeMain
	}
	if o.OrderMethod == "" {
		o.OrderMethod = OrderMethodPhone
	}
	return o
}

// Offer is the catalog offer an order item resolved to.
type Offer struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// OrderItemDetail is one position of an order as returned by the CRM.
type OrderItemDetail struct {
	ID            int     `json:"id"`
	Quantity      float64 `json:"quantity"`
	InitialPrice  float64 `json:"initialPrice"`
	PurchasePrice float64 `json:"purchasePrice"`
	ProductName   string  `json:"productName,omitempty"`
	Offer         Offer   `json:"offer"`
}

// Order is an order record as returned by the CRM.
type Order struct {
	ID          int               `json:"id"`
	Number      string            `json:"number"`
	Customer    Customer          `json:"customer"`
	Items       []OrderItemDetail `json:"items"`
	TotalAmount float64           `json:"totalSumm"`
	CreatedAt   string            `json:"createdAt"`
}

// OrdersList is the result of an order listing.
type OrdersList struct {
	Orders     []Order     `json:"orders"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
