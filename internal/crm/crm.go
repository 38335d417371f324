// Package crm defines the provider-independent CRM surface and the generic
// request pipeline concrete providers plug into. The pipeline per call is:
// build envelope, one transport round trip, validate the response envelope,
// hand the payload back. Providers supply the request-shaping hooks; the
// pipeline owns everything else.
package crm

import (
	"context"

	"github.com/omnicart/crmbridge/internal/crm/filter"
	"github.com/omnicart/crmbridge/internal/schema"
)

// Operation identifies a logical CRM operation. Providers key their
// request-shaping hooks off it.
type Operation string

const (
	OpListCustomers  Operation = "customers.list"
	OpCreateCustomer Operation = "customers.create"
	OpListOrders     Operation = "orders.list"
	OpGetOrder       Operation = "orders.get"
	OpCreateOrder    Operation = "orders.create"
	OpCreatePayment  Operation = "payments.create"
)

// CRM is what the rest of the application sees of a CRM integration.
// Implementations are safe for concurrent use; every call is an independent
// round trip and any failure is scoped to that call.
type CRM interface {
	// GetCustomers returns customers matching the filters.
	GetCustomers(ctx context.Context, filters schema.CustomerFilters) (*schema.CustomersList, error)

	// CreateCustomer creates a customer and returns its new ID.
	CreateCustomer(ctx context.Context, customer schema.CustomerCreate) (*schema.CustomerRef, error)

	// GetCustomerOrders returns the orders of one customer.
	GetCustomerOrders(ctx context.Context, query schema.CustomerOrdersQuery) (*schema.OrdersList, error)

	// CreateOrder creates an order and returns the created record.
	CreateOrder(ctx context.Context, order schema.OrderCreate) (*schema.Order, error)

	// CreatePayment attaches a payment to an existing order and returns the
	// new payment's ID.
	CreatePayment(ctx context.Context, payment schema.PaymentCreate) (*schema.PaymentRef, error)
}

// Provider supplies the provider-specific request-shaping hooks the generic
// Client needs. Implementations must be stateless with respect to calls.
type Provider interface {
	// AuthParams returns the fixed authentication parameters appended to
	// every call.
	AuthParams() []filter.Param

	// SuccessField names the boolean success indicator in op's response
	// envelope; "" means the operation's response carries none.
	SuccessField(op Operation) string

	// BodyField names the form field carrying op's JSON-encoded body
	// object, e.g. "customer" for customer creation.
	BodyField(op Operation) string
}
