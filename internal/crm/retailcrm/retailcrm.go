// Package retailcrm implements the CRM interface against the RetailCRM v5
// HTTP API: apiKey authentication on every call, bracketed filter[...]
// query parameters, and form-urlencoded write bodies whose fields are
// JSON-serialized objects.
package retailcrm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/omnicart/crmbridge/internal/crm"
	"github.com/omnicart/crmbridge/internal/crm/envelope"
	"github.com/omnicart/crmbridge/internal/crm/filter"
	"github.com/omnicart/crmbridge/internal/crm/transport"
	"github.com/omnicart/crmbridge/internal/schema"
)

// Config holds the RetailCRM account coordinates.
type Config struct {
	BaseURL    string // e.g. https://demo.retailcrm.ru
	PathPrefix string // e.g. /api/v5
	APIKey     string
}

// Service talks to one RetailCRM account. It holds only read-only
// configuration and the shared transport, so it is safe for concurrent use.
type Service struct {
	apiKey string
	client *crm.Client
	log    zerolog.Logger
}

var _ crm.CRM = (*Service)(nil)
var _ crm.Provider = (*Service)(nil)

// New returns a Service for the given account, calling through doer.
func New(cfg Config, doer transport.Doer, log zerolog.Logger) *Service {
	s := &Service{apiKey: cfg.APIKey, log: log}
	s.client = crm.NewClient(cfg.BaseURL+cfg.PathPrefix, s, doer, log)
	return s
}

// AuthParams appends the account API key to every call.
func (s *Service) AuthParams() []filter.Param {
	return []filter.Param{{Key: "apiKey", Value: s.apiKey}}
}

// SuccessField reports RetailCRM's success indicator, present on every
// operation's response.
func (s *Service) SuccessField(crm.Operation) string { return "success" }

// BodyField names the form field carrying the operation's JSON body.
func (s *Service) BodyField(op crm.Operation) string {
	switch op {
	case crm.OpCreateCustomer:
		return "customer"
	case crm.OpCreateOrder:
		return "order"
	case crm.OpCreatePayment:
		return "payment"
	}
	return ""
}

// GetCustomers returns customers matching the filters.
func (s *Service) GetCustomers(ctx context.Context, filters schema.CustomerFilters) (*schema.CustomersList, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	f := filters.Normalize()

	payload, err := s.client.Get(ctx, crm.OpListCustomers, epCustomersList, customerFilterParams(f))
	if err != nil {
		return nil, err
	}

	list := &schema.CustomersList{Customers: []schema.Customer{}}
	if _, err := payload.Field("customers", &list.Customers); err != nil {
		return nil, err
	}
	if _, err := payload.Field("pagination", &list.Pagination); err != nil {
		return nil, err
	}

	s.log.Info().Int("count", len(list.Customers)).Msg("retrieved customers")
	return list, nil
}

// CreateCustomer creates a customer and returns its new ID.
func (s *Service) CreateCustomer(ctx context.Context, customer schema.CustomerCreate) (*schema.CustomerRef, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	payload, err := s.client.Post(ctx, crm.OpCreateCustomer, epCustomersCreate, customer)
	if err != nil {
		return nil, err
	}

	id, err := recordID(payload, "customer")
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("customer_id", id).Msg("customer created")
	return &schema.CustomerRef{ID: id}, nil
}

// GetCustomerOrders returns the orders of one customer.
func (s *Service) GetCustomerOrders(ctx context.Context, query schema.CustomerOrdersQuery) (*schema.OrdersList, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	q := query.Normalize()

	payload, err := s.client.Get(ctx, crm.OpListOrders, epOrdersList, customerOrdersParams(q))
	if err != nil {
		return nil, err
	}

	list := &schema.OrdersList{Orders: []schema.Order{}}
	if _, err := payload.Field("orders", &list.Orders); err != nil {
		return nil, err
	}
	if _, err := payload.Field("pagination", &list.Pagination); err != nil {
		return nil, err
	}

	s.log.Info().Int("customer_id", q.CustomerID).Int("count", len(list.Orders)).Msg("retrieved customer orders")
	return list, nil
}

// CreateOrder creates an order and returns the created record.
func (s *Service) CreateOrder(ctx context.Context, order schema.OrderCreate) (*schema.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	o := order.Normalize()

	payload, err := s.client.Post(ctx, crm.OpCreateOrder, epOrdersCreate, o)
	if err != nil {
		return nil, err
	}

	created := &schema.Order{}
	ok, err := payload.Field("order", created)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Some responses carry the order fields at the top level.
		if _, err := payload.Field("id", &created.ID); err != nil {
			return nil, err
		}
		if _, err := payload.Field("number", &created.Number); err != nil {
			return nil, err
		}
	}
	if created.ID == 0 {
		return nil, &envelope.MalformedError{Err: fmt.Errorf("order creation response carries no order id")}
	}

	s.log.Info().Int("order_id", created.ID).Str("number", o.Number).Msg("order created")
	return created, nil
}

// paymentWire is the payment object as RetailCRM expects it: the target
// order is a nested reference, never a plain orderId field.
type paymentWire struct {
	Amount  float64              `json:"amount"`
	Type    schema.PaymentType   `json:"type"`
	Status  schema.PaymentStatus `json:"status"`
	PaidAt  string               `json:"paidAt,omitempty"`
	Comment string               `json:"comment,omitempty"`
	Order   orderRef             `json:"order"`
}

type orderRef struct {
	ID int `json:"id"`
}

// CreatePayment attaches a payment to an existing order. The order is
// looked up first; paying a missing order fails without creating anything.
func (s *Service) CreatePayment(ctx context.Context, payment schema.PaymentCreate) (*schema.PaymentRef, error) {
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	p := payment.Normalize()

	orderPayload, err := s.client.Get(ctx, crm.OpGetOrder, orderEndpoint(p.OrderID),
		[]filter.Param{{Key: "by", Value: "id"}})
	if err != nil {
		return nil, err
	}
	if _, found := orderPayload["order"]; !found {
		return nil, &envelope.ProviderError{Message: fmt.Sprintf("order with id %d not found", p.OrderID)}
	}

	payload, err := s.client.Post(ctx, crm.OpCreatePayment, epPaymentsCreate, paymentWire{
		Amount:  p.Amount,
		Type:    p.Type,
		Status:  p.Status,
		PaidAt:  p.PaidAt,
		Comment: p.Comment,
		Order:   orderRef{ID: p.OrderID},
	})
	if err != nil {
		return nil, err
	}

	id, err := recordID(payload, "payment")
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("payment_id", id).Int("order_id", p.OrderID).Msg("payment created")
	return &schema.PaymentRef{ID: id}, nil
}

// recordID extracts the created record's ID from a write response: either
// nested under field ({"customer": {"id": N}}) or at the top level
// ({"id": N}). A response with neither shape is malformed.
func recordID(payload envelope.Payload, field string) (int, error) {
	var ref struct {
		ID int `json:"id"`
	}
	ok, err := payload.Field(field, &ref)
	if err != nil {
		return 0, err
	}
	if !ok || ref.ID == 0 {
		if _, err := payload.Field("id", &ref.ID); err != nil {
			return 0, err
		}
	}
	if ref.ID == 0 {
		return 0, &envelope.MalformedError{Err: fmt.Errorf("%s creation response carries no id", field)}
	}
	return ref.ID, nil
}
