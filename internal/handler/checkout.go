package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/ngducnhatt/muacode.com/internal/domain/order"
	"github.com/ngducnhatt/muacode.com/internal/telegram"
)

const (
	msgValidation       = "Vui lòng kiểm tra lại thông tin đã nhập."
	msgEmptyCart        = "Giỏ hàng trống."
	msgTelegramDown     = "Không thể kết nối đến dịch vụ Telegram. Vui lòng thử lại sau."
	msgTelegramConfig   = "Lỗi cấu hình: Vui lòng thiết lập biến môi trường cho Telegram."
	msgCheckoutAccepted = "Đơn hàng của bạn đã được gửi thành công!"
)

type checkoutRequest struct {
	Email string `json:"email"`
	Note  string `json:"note"`
}

type checkoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	Total   int64  `json:"total"`
	QRURL   string `json:"qrUrl"`
}

// Checkout submits the session cart as an order. The cart is only cleared
// after the operator notification is acknowledged.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}

	res, err := h.orders.Checkout(r.Context(), h.store(r), order.CheckoutRequest{
		Email: req.Email,
		Note:  req.Note,
	})
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutResponse{
		Success: true,
		Message: msgCheckoutAccepted,
		OrderID: res.OrderID,
		Total:   res.Total,
		QRURL:   res.QRURL,
	})
}

type placeOrderRequest struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"`
	Amount      int    `json:"amount"`
	SellID      string `json:"sellId"`
	Bank        string `json:"bank"`
	Account     string `json:"account"`
	Name        string `json:"name"`
}

type placeOrderResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OrderID     string `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
	QRURL       string `json:"qrUrl"`
}

// PlaceOrder submits a direct buy/sell form order for a single variant.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}

	res, err := h.orders.PlaceDirect(r.Context(), order.DirectRequest{
		VariantID:   req.ID,
		ProductName: req.ProductName,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Amount,
		SellID:      req.SellID,
		Bank:        req.Bank,
		Account:     req.Account,
		AccountName: req.Name,
	})
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, placeOrderResponse{
		Success:     true,
		Message:     msgCheckoutAccepted,
		OrderID:     res.OrderID,
		TotalAmount: res.TotalAmount,
		QRURL:       res.QRURL,
	})
}

// respondOrderError maps order domain errors to localized HTTP responses.
// Validation errors carry per-field messages; notifier failures distinguish
// an explicit Telegram rejection from an unreachable service.
func (h *Handler) respondOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *order.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: msgValidation,
			Errors:  verr.Fields,
		})
		return
	}
	if errors.Is(err, order.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, msgEmptyCart)
		return
	}

	logError(r.Context(), "place order", err)

	if errors.Is(err, telegram.ErrNotConfigured) {
		respondError(w, http.StatusInternalServerError, msgTelegramConfig)
		return
	}
	var aerr *telegram.APIError
	if errors.As(err, &aerr) {
		respondError(w, http.StatusBadGateway,
			"Không gửi được đơn hàng. Lỗi từ Telegram: "+aerr.Description)
		return
	}
	respondError(w, http.StatusBadGateway, msgTelegramDown)
}
