package handlers

import (
	"net/http"

	"github.com/camden-git/photoopsbackend/repository"
)

// OrderHandler serves read-only order lookups.
type OrderHandler struct {
	OrderRepo repository.OrderRepositoryInterface
}

// ListOrders returns every imported order, newest first.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.OrderRepo.ListAll()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list orders")
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}
