package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/omnicart/crmbridge/internal/crm"
	"github.com/omnicart/crmbridge/internal/crm/envelope"
	"github.com/omnicart/crmbridge/internal/crm/transport"
	"github.com/omnicart/crmbridge/internal/schema"
)

// stubCRM lets each test pin the behavior of a single operation.
type stubCRM struct {
	getCustomers      func(context.Context, schema.CustomerFilters) (*schema.CustomersList, error)
	createCustomer    func(context.Context, schema.CustomerCreate) (*schema.CustomerRef, error)
	getCustomerOrders func(context.Context, schema.CustomerOrdersQuery) (*schema.OrdersList, error)
	createOrder       func(context.Context, schema.OrderCreate) (*schema.Order, error)
	createPayment     func(context.Context, schema.PaymentCreate) (*schema.PaymentRef, error)
}

var _ crm.CRM = (*stubCRM)(nil)

func (s *stubCRM) GetCustomers(ctx context.Context, f schema.CustomerFilters) (*schema.CustomersList, error) {
	return s.getCustomers(ctx, f)
}

func (s *stubCRM) CreateCustomer(ctx context.Context, c schema.CustomerCreate) (*schema.CustomerRef, error) {
	return s.createCustomer(ctx, c)
}

func (s *stubCRM) GetCustomerOrders(ctx context.Context, q schema.CustomerOrdersQuery) (*schema.OrdersList, error) {
	return s.getCustomerOrders(ctx, q)
}

func (s *stubCRM) CreateOrder(ctx context.Context, o schema.OrderCreate) (*schema.Order, error) {
	return s.createOrder(ctx, o)
}

func (s *stubCRM) CreatePayment(ctx context.Context, p schema.PaymentCreate) (*schema.PaymentRef, error) {
	return s.createPayment(ctx, p)
}

func newTestRouter(stub *stubCRM) http.Handler {
	return NewServer(stub, zerolog.Nop(), 0).Router()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode error response: %v (body %s)", err, rec.Body.String())
	}
	return er
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(&stubCRM{})
	rec := doRequest(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestListCustomers(t *testing.T) {
	var gotFilters schema.CustomerFilters
	h := newTestRouter(&stubCRM{
		getCustomers: func(_ context.Context, f schema.CustomerFilters) (*schema.CustomersList, error) {
			gotFilters = f
			return &schema.CustomersList{
				Customers:  []schema.Customer{{ID: 1, FirstName: "John"}},
				Pagination: &schema.Pagination{Limit: 20, TotalCount: 1, CurrentPage: 1, TotalPageCount: 1},
			}, nil
		},
	})

	rec := doRequest(t, h, http.MethodGet, "/v1/customers?name=John&limit=50&page=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if gotFilters.Name != "John" || gotFilters.Limit != 50 || gotFilters.Page != 2 {
		t.Errorf("filters = %+v", gotFilters)
	}

	var list schema.CustomersList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(list.Customers) != 1 || list.Customers[0].FirstName != "John" {
		t.Errorf("customers = %+v", list.Customers)
	}
}

func TestListCustomersBadLimit(t *testing.T) {
	h := newTestRouter(&stubCRM{})
	rec := doRequest(t, h, http.MethodGet, "/v1/customers?limit=lots", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if er := decodeError(t, rec); er.Code != ErrCodeBadRequest {
		t.Errorf("code = %s", er.Code)
	}
}

func TestCreateCustomer(t *testing.T) {
	h := newTestRouter(&stubCRM{
		createCustomer: func(_ context.Context, c schema.CustomerCreate) (*schema.CustomerRef, error) {
			if c.FirstName != "Alice" {
				t.Errorf("firstName = %q", c.FirstName)
			}
			return &schema.CustomerRef{ID: 7}, nil
		},
	})

	rec := doRequest(t, h, http.MethodPost, "/v1/customers", `{"firstName":"Alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var ref schema.CustomerRef
	if err := json.Unmarshal(rec.Body.Bytes(), &ref); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if ref.ID != 7 {
		t.Errorf("ID = %d, want 7", ref.ID)
	}
}

func TestCreateCustomerInvalidJSON(t *testing.T) {
	h := newTestRouter(&stubCRM{})
	rec := doRequest(t, h, http.MethodPost, "/v1/customers", `{"firstName":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if er := decodeError(t, rec); er.Code != ErrCodeInvalidJSON {
		t.Errorf("code = %s", er.Code)
	}
}

func TestCreateCustomerValidationError(t *testing.T) {
	h := newTestRouter(&stubCRM{
		createCustomer: func(context.Context, schema.CustomerCreate) (*schema.CustomerRef, error) {
			return nil, &schema.ValidationError{
				Message: "invalid customer",
				Fields:  map[string]string{"firstName": "is required"},
			}
		},
	})

	rec := doRequest(t, h, http.MethodPost, "/v1/customers", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	er := decodeError(t, rec)
	if er.Code != ErrCodeValidation {
		t.Errorf("code = %s", er.Code)
	}
	if er.Fields["firstName"] != "is required" {
		t.Errorf("fields = %v", er.Fields)
	}
	if er.RequestID == "" {
		t.Error("request_id missing from error response")
	}
}

func TestCustomerOrders(t *testing.T) {
	h := newTestRouter(&stubCRM{
		getCustomerOrders: func(_ context.Context, q schema.CustomerOrdersQuery) (*schema.OrdersList, error) {
			if q.CustomerID != 5 {
				t.Errorf("customerID = %d, want 5", q.CustomerID)
			}
			return &schema.OrdersList{Orders: []schema.Order{{ID: 10, Number: "ORD-1"}}}, nil
		},
	})

	rec := doRequest(t, h, http.MethodGet, "/v1/orders/customer/5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var list schema.OrdersList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(list.Orders) != 1 || list.Orders[0].Number != "ORD-1" {
		t.Errorf("orders = %+v", list.Orders)
	}
}

func TestCustomerOrdersBadID(t *testing.T) {
	h := newTestRouter(&stubCRM{})
	rec := doRequest(t, h, http.MethodGet, "/v1/orders/customer/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateOrder(t *testing.T) {
	h := newTestRouter(&stubCRM{
		createOrder: func(_ context.Context, o schema.OrderCreate) (*schema.Order, error) {
			return &schema.Order{ID: 44, Number: o.Number}, nil
		},
	})

	body := `{"number":"ORD-9","customer":{"id":5},"items":[{"quantity":1,"productName":"Widget"}]}`
	rec := doRequest(t, h, http.MethodPost, "/v1/orders", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var order schema.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if order.ID != 44 || order.Number != "ORD-9" {
		t.Errorf("order = %+v", order)
	}
}

func TestCreatePaymentRejectedByProvider(t *testing.T) {
	h := newTestRouter(&stubCRM{
		createPayment: func(context.Context, schema.PaymentCreate) (*schema.PaymentRef, error) {
			return nil, &envelope.ProviderError{Message: "order with id 99 not found"}
		},
	})

	rec := doRequest(t, h, http.MethodPost, "/v1/payments", `{"orderId":99,"amount":10}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	er := decodeError(t, rec)
	if er.Code != ErrCodeProviderRejected {
		t.Errorf("code = %s", er.Code)
	}
	if er.Message != "order with id 99 not found" {
		t.Errorf("message = %q", er.Message)
	}
}

func TestUpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{"transport failure", &transport.Error{Status: 503}, ErrCodeUpstreamUnavailable},
		{"malformed response", &envelope.MalformedError{}, ErrCodeUpstreamMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(&stubCRM{
				getCustomers: func(context.Context, schema.CustomerFilters) (*schema.CustomersList, error) {
					return nil, tt.err
				},
			})
			rec := doRequest(t, h, http.MethodGet, "/v1/customers", "")
			if rec.Code != http.StatusBadGateway {
				t.Fatalf("status = %d, want 502", rec.Code)
			}
			if er := decodeError(t, rec); er.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", er.Code, tt.wantCode)
			}
		})
	}
}
