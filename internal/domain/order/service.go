package order

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ngducnhatt/muacode.com/internal/domain/cart"
	"github.com/ngducnhatt/muacode.com/internal/vietqr"
)

var meter = otel.Meter("github.com/ngducnhatt/muacode.com/internal/domain/order")

// buySideVariants are the variants a customer buys from the store; bank
// payout details are only required for sell-side orders.
var buySideVariants = map[string]bool{
	"duelbuy":   true,
	"empirebuy": true,
}

// PayeeConfig identifies the storefront's receiving bank account for QR
// payments.
type PayeeConfig struct {
	BankBIN string
	Account string
}

// Service encapsulates order placement and checkout.
type Service struct {
	notifier Notifier
	payee    PayeeConfig
	now      func() time.Time
	placed   metric.Int64Counter
}

// NewService creates an order Service. Zero payee fields fall back to the
// storefront defaults.
func NewService(notifier Notifier, payee PayeeConfig) *Service {
	if payee.BankBIN == "" {
		payee.BankBIN = vietqr.DefaultBankBIN
	}
	if payee.Account == "" {
		payee.Account = vietqr.DefaultAccount
	}
	placed, _ := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders acknowledged by the notifier"))
	return &Service{
		notifier: notifier,
		payee:    payee,
		now:      time.Now,
		placed:   placed,
	}
}

// DirectRequest is a buy/sell form submission for a single variant.
type DirectRequest struct {
	VariantID   string
	ProductName string
	UnitPrice   int64
	Quantity    int
	SellID      string
	Bank        string
	Account     string
	AccountName string
}

// DirectResult is an acknowledged direct order.
type DirectResult struct {
	OrderID     string
	TotalAmount int64
	QRURL       string
}

// PlaceDirect validates a direct order, notifies the operator, and on
// acknowledgement returns the order id and payment QR URL with the order id
// as the payment memo.
func (s *Service) PlaceDirect(ctx context.Context, req DirectRequest) (*DirectResult, error) {
	if err := s.validateDirect(req); err != nil {
		return nil, err
	}

	orderID := "CS2PRIME" + strconv.FormatInt(s.now().UnixMilli(), 10)
	total := req.UnitPrice * int64(req.Quantity)

	err := s.notifier.SendOrder(ctx, Notice{
		OrderID:     orderID,
		VariantID:   req.VariantID,
		ProductName: req.ProductName,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		TotalAmount: total,
		SellID:      req.SellID,
		Bank:        req.Bank,
		Account:     req.Account,
		AccountName: req.AccountName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "notify order")
	}
	s.placed.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "direct")))

	return &DirectResult{
		OrderID:     orderID,
		TotalAmount: total,
		QRURL:       vietqr.PaymentURL(s.payee.BankBIN, s.payee.Account, total, orderID),
	}, nil
}

func (s *Service) validateDirect(req DirectRequest) error {
	verr := &ValidationError{}
	if req.Quantity < 1 {
		verr.add("amount", "Số lượng không hợp lệ")
	}
	if strings.TrimSpace(req.SellID) == "" {
		verr.add("sellId", "ID Bán là bắt buộc")
	}
	if !buySideVariants[req.VariantID] {
		if strings.TrimSpace(req.Bank) == "" {
			verr.add("bank", "Ngân hàng là bắt buộc.")
		}
		if strings.TrimSpace(req.Account) == "" {
			verr.add("account", "Số tài khoản là bắt buộc.")
		}
		if strings.TrimSpace(req.AccountName) == "" {
			verr.add("accountName", "Tên tài khoản là bắt buộc.")
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// CheckoutRequest is a cart checkout submission.
type CheckoutRequest struct {
	Email string
	Note  string
}

// CheckoutResult is an acknowledged checkout.
type CheckoutResult struct {
	OrderID string
	Total   int64
	QRURL   string
}

// Checkout validates the request, notifies the operator with the cart
// contents and total, and only after acknowledged success clears the cart
// and returns the payment QR. On any failure the cart is left intact and no
// QR is issued.
func (s *Service) Checkout(ctx context.Context, store *cart.Store, req CheckoutRequest) (*CheckoutResult, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(req.Email) == "" {
		verr.add("email", "Email là bắt buộc.")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	items := store.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	total := store.TotalValue()

	now := s.now()
	orderID := "ORDER_" + strconv.FormatInt(now.UnixMilli(), 10)

	err := s.notifier.SendCheckout(ctx, CheckoutNotice{
		OrderID: orderID,
		Email:   req.Email,
		Note:    req.Note,
		Total:   total,
		Items:   items,
	})
	if err != nil {
		return nil, errors.Wrap(err, "notify checkout")
	}
	s.placed.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "checkout")))

	memo := vietqr.EncodeMemo(req.Email + " " + now.UTC().Format(time.RFC3339))
	qr := vietqr.PaymentURL(s.payee.BankBIN, s.payee.Account, total, memo)

	store.Clear(ctx)

	return &CheckoutResult{
		OrderID: orderID,
		Total:   total,
		QRURL:   qr,
	}, nil
}
