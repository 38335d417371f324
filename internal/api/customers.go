package api

import (
	"net/http"
	"strconv"

	"github.com/omnicart/crmbridge/internal/schema"
)

// handleListCustomers proxies GET /v1/customers to the CRM customer listing.
// Filters arrive as plain query parameters; paging ones must be integers.
func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := schema.CustomerFilters{
		Name:          q.Get("name"),
		Email:         q.Get("email"),
		CreatedAtFrom: q.Get("createdAtFrom"),
		CreatedAtTo:   q.Get("createdAtTo"),
	}

	var ok bool
	if filters.Limit, ok = intQuery(w, r, "limit"); !ok {
		return
	}
	if filters.Page, ok = intQuery(w, r, "page"); !ok {
		return
	}

	list, err := s.crm.GetCustomers(r.Context(), filters)
	if err != nil {
		DomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer schema.CustomerCreate
	if !decodeJSON(w, r, &customer) {
		return
	}

	ref, err := s.crm.CreateCustomer(r.Context(), customer)
	if err != nil {
		DomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

// intQuery parses an optional integer query parameter. A missing parameter
// is zero; a non-numeric one is a 400.
func intQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		BadRequestError(w, r, ErrCodeBadRequest, name+" must be an integer")
		return 0, false
	}
	return n, true
}
