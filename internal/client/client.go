// Package client is the HTTP client for the crmbridge API, used by crmctl.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/omnicart/crmbridge/internal/schema"
)

// Client is an HTTP client for the crmbridge API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is the bridge's structured error response.
type APIError struct {
	Status  int
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d, %s): %s", e.Status, e.Code, e.Message)
}

// ListCustomers retrieves customers matching the filters
func (c *Client) ListCustomers(ctx context.Context, filters schema.CustomerFilters) (*schema.CustomersList, error) {
	q := url.Values{}
	if filters.Name != "" {
		q.Set("name", filters.Name)
	}
	if filters.Email != "" {
		q.Set("email", filters.Email)
	}
	if filters.CreatedAtFrom != "" {
		q.Set("createdAtFrom", filters.CreatedAtFrom)
	}
	if filters.CreatedAtTo != "" {
		q.Set("createdAtTo", filters.CreatedAtTo)
	}
	if filters.Limit != 0 {
		q.Set("limit", strconv.Itoa(filters.Limit))
	}
	if filters.Page != 0 {
		q.Set("page", strconv.Itoa(filters.Page))
	}

	var list schema.CustomersList
	if err := c.get(ctx, "/v1/customers", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateCustomer creates a customer and returns its new ID
func (c *Client) CreateCustomer(ctx context.Context, customer schema.CustomerCreate) (*schema.CustomerRef, error) {
	var ref schema.CustomerRef
	if err := c.post(ctx, "/v1/customers", customer, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// ListCustomerOrders retrieves the orders of one customer
func (c *Client) ListCustomerOrders(ctx context.Context, customerID, limit, page int) (*schema.OrdersList, error) {
	q := url.Values{}
	if limit != 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if page != 0 {
		q.Set("page", strconv.Itoa(page))
	}

	var list schema.OrdersList
	if err := c.get(ctx, fmt.Sprintf("/v1/orders/customer/%d", customerID), q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateOrder creates an order and returns the created record
func (c *Client) CreateOrder(ctx context.Context, order schema.OrderCreate) (*schema.Order, error) {
	var created schema.Order
	if err := c.post(ctx, "/v1/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreatePayment attaches a payment to an order and returns its new ID
func (c *Client) CreatePayment(ctx context.Context, payment schema.PaymentCreate) (*schema.PaymentRef, error) {
	var ref schema.PaymentRef
	if err := c.post(ctx, "/v1/payments", payment, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.BaseURL + path
	if enc := query.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		apiErr := &APIError{Status: resp.StatusCode}
		bodyBytes, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(bodyBytes, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = string(bodyBytes)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
