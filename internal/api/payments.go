package api

import (
	"net/http"

	"github.com/omnicart/crmbridge/internal/schema"
)

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var payment schema.PaymentCreate
	if !decodeJSON(w, r, &payment) {
		return
	}

	ref, err := s.crm.CreatePayment(r.Context(), payment)
	if err != nil {
		DomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}
