package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omnicart/crmbridge/internal/schema"
)

// handleCustomerOrders proxies GET /v1/orders/customer/{customerID} to the
// CRM order listing filtered by customer.
func (s *Server) handleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.Atoi(chi.URLParam(r, "customerID"))
	if err != nil {
		BadRequestError(w, r, ErrCodeBadRequest, "customerID must be an integer")
		return
	}

	query := schema.CustomerOrdersQuery{CustomerID: customerID}
	var ok bool
	if query.Limit, ok = intQuery(w, r, "limit"); !ok {
		return
	}
	if query.Page, ok = intQuery(w, r, "page"); !ok {
		return
	}

	list, err := s.crm.GetCustomerOrders(r.Context(), query)
	if err != nil {
		DomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var order schema.OrderCreate
	if !decodeJSON(w, r, &order) {
		return
	}

	created, err := s.crm.CreateOrder(r.Context(), order)
	if err != nil {
		DomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
