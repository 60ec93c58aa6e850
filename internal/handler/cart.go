package handler

import (
	"net/http"

	"github.com/ngducnhatt/muacode.com/internal/domain/cart"
	"github.com/ngducnhatt/muacode.com/internal/session"
)

const msgBadRequestBody = "Yêu cầu không hợp lệ."

// cartView is the cart payload returned by every cart endpoint.
type cartView struct {
	Items      []cart.Item `json:"items"`
	TotalValue int64       `json:"totalValue"`
}

func (h *Handler) store(r *http.Request) *cart.Store {
	return h.carts.Store(r.Context(), session.FromContext(r.Context()))
}

func viewOf(s *cart.Store) cartView {
	items := s.Items()
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{Items: items, TotalValue: s.TotalValue()}
}

func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, viewOf(h.store(r)))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var item cart.Item
	if err := decodeBody(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}
	if item.ID == "" {
		respondError(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}

	s := h.store(r)
	s.Add(r.Context(), item, item.Quantity)
	respondJSON(w, http.StatusOK, viewOf(s))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}

	s := h.store(r)
	s.UpdateQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	respondJSON(w, http.StatusOK, viewOf(s))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	s := h.store(r)
	s.Remove(r.Context(), r.PathValue("id"))
	respondJSON(w, http.StatusOK, viewOf(s))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.store(r)
	s.Clear(r.Context())
	respondJSON(w, http.StatusOK, viewOf(s))
}
