// Package handler exposes the storefront JSON API, mapping domain results
// and errors to localized HTTP responses. Raw errors go to the operator log,
// never to the customer.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/ngducnhatt/muacode.com/internal/domain/cart"
	"github.com/ngducnhatt/muacode.com/internal/domain/catalog"
	"github.com/ngducnhatt/muacode.com/internal/domain/order"
	"github.com/ngducnhatt/muacode.com/internal/vietqr"
)

// BankDirectory lists banks for the payout selection list.
type BankDirectory interface {
	Banks(ctx context.Context) ([]vietqr.Bank, error)
}

// Handler holds the storefront API dependencies.
type Handler struct {
	catalog *catalog.Service
	cache   *catalog.DetailCache
	carts   *cart.Sessions
	orders  *order.Service
	banks   BankDirectory
}

// New constructs a Handler with the required domain dependencies.
func New(
	catalogSvc *catalog.Service,
	cache *catalog.DetailCache,
	carts *cart.Sessions,
	orders *order.Service,
	banks BankDirectory,
) *Handler {
	return &Handler{
		catalog: catalogSvc,
		cache:   cache,
		carts:   carts,
		orders:  orders,
		banks:   banks,
	}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/categories", h.Categories)
	mux.HandleFunc("GET /api/products", h.Products)
	mux.HandleFunc("GET /api/products/{category}", h.ProductDetail)
	mux.HandleFunc("GET /api/popular", h.Popular)
	mux.HandleFunc("GET /api/deals", h.Deals)
	mux.HandleFunc("GET /api/services", h.Services)
	mux.HandleFunc("GET /api/posts", h.Posts)
	mux.HandleFunc("GET /api/hero", h.HeroSlides)
	mux.HandleFunc("GET /api/banks", h.Banks)

	mux.HandleFunc("GET /api/cart", h.Cart)
	mux.HandleFunc("POST /api/cart/items", h.AddCartItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.UpdateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveCartItem)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)

	mux.HandleFunc("POST /api/checkout", h.Checkout)
	mux.HandleFunc("POST /api/orders", h.PlaceOrder)
}

// errorResponse is the standard API error envelope.
type errorResponse struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Code: status, Message: message})
}

// logError records the technical error for operators; customers only see
// the localized message.
func logError(ctx context.Context, msg string, err error) {
	zctx.From(ctx).Error(msg, zap.Error(err))
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
