package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/photoopsbackend/repository"
)

// FamilyHandler serves read-only family lookups over the reconciled store.
type FamilyHandler struct {
	FamilyRepo repository.FamilyRepositoryInterface
	OrderRepo  repository.OrderRepositoryInterface
}

// ListFamilies returns every family, ordered by last name.
func (h *FamilyHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.FamilyRepo.ListAll()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list families")
		return
	}
	WriteJSON(w, http.StatusOK, families)
}

// GetFamily returns one family by its derived key.
func (h *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "family_key")

	family, err := h.FamilyRepo.GetByKey(key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no family with key "+key)
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "lookup_failed", "failed to look up family")
		return
	}
	WriteJSON(w, http.StatusOK, family)
}

// GetFamilyOrders returns the orders linked to one family.
func (h *FamilyHandler) GetFamilyOrders(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "family_key")

	if _, err := h.FamilyRepo.GetByKey(key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "no family with key "+key)
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "lookup_failed", "failed to look up family")
		return
	}

	orders, err := h.OrderRepo.ListByFamilyKey(key)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list family orders")
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}
