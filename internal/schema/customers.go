package schema

import (
	"encoding/json"
	"strings"
)

// Phones is a list of phone numbers. The CRM returns phones as objects
// ([{"number": "123"}]) while the bridge accepts and emits plain strings,
// so decoding tolerates both shapes.
type Phones []string

func (p *Phones) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*p = plain
		return nil
	}

	var wrapped []struct {
		Number string `json:"number"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	nums := make([]string, 0, len(wrapped))
	for _, w := range wrapped {
		if w.Number != "" {
			nums = append(nums, w.Number)
		}
	}
	*p = nums
	return nil
}

// CustomerCreate is the inbound DTO for creating a customer.
type CustomerCreate struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phones    []string `json:"phones,omitempty"`
	Birthday  string   `json:"birthday,omitempty"` // YYYY-MM-DD
}

// Validate checks the DTO before it is sent anywhere.
func (c CustomerCreate) Validate() error {
	var r result
	if strings.TrimSpace(c.FirstName) == "" {
		r.add("firstName", "is required")
	}
	if c.Email != "" && !validEmail(c.Email) {
		r.add("email", "is not a valid email address")
	}
	for _, phone := range c.Phones {
		if strings.TrimSpace(phone) == "" {
			r.add("phones", "must not contain empty entries")
			break
		}
	}
	return r.err("customer")
}

// Customer is a customer record as returned by the CRM.
type Customer struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phones    Phones `json:"phones,omitempty"`
	Birthday  string `json:"birthday,omitempty"`
}

// CustomerRef identifies a customer by ID only; creation responses carry
// nothing more.
type CustomerRef struct {
	ID int `json:"id"`
}

// Pagination mirrors the provider's paging envelope on list responses.
type Pagination struct {
	Limit          int `json:"limit"`
	TotalCount     int `json:"totalCount"`
	CurrentPage    int `json:"currentPage"`
	TotalPageCount int `json:"totalPageCount"`
}

// CustomersList is the result of a filtered customer listing.
type CustomersList struct {
	Customers  []Customer  `json:"customers"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// CustomerFilters is the filter criteria for listing customers. Zero-valued
// fields mean "not set" and are omitted from the upstream query.
type CustomerFilters struct {
	Name          string
	Email         string
	CreatedAtFrom string // YYYY-MM-DD
	CreatedAtTo   string // YYYY-MM-DD
	Limit         int
	Page          int
}

// Validate checks filter bounds.
func (f CustomerFilters) Validate() error {
	var r result
	if f.Email != "" && !validEmail(f.Email) {
		r.add("email", "is not a valid email address")
	}
	checkPage(&r, f.Limit, f.Page)
	return r.err("customer filters")
}

// Normalize returns a copy with paging defaults applied.
func (f CustomerFilters) Normalize() CustomerFilters {
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	return f
}

// CustomerOrdersQuery selects the orders of one customer.
type CustomerOrdersQuery struct {
	CustomerID int
	Limit      int
	Page       int
}

// Validate checks the query before it is sent anywhere.
func (q CustomerOrdersQuery) Validate() error {
	var r result
	if q.CustomerID <= 0 {
		r.add("customerId", "must be a positive integer")
	}
	checkPage(&r, q.Limit, q.Page)
	return r.err("customer orders query")
}

// Normalize returns a copy with paging defaults applied.
func (q CustomerOrdersQuery) Normalize() CustomerOrdersQuery {
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	return q
}
