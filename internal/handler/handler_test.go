package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngducnhatt/muacode.com/internal/domain/cart"
	"github.com/ngducnhatt/muacode.com/internal/domain/catalog"
	"github.com/ngducnhatt/muacode.com/internal/domain/order"
	"github.com/ngducnhatt/muacode.com/internal/kv"
	"github.com/ngducnhatt/muacode.com/internal/session"
	"github.com/ngducnhatt/muacode.com/internal/telegram"
	"github.com/ngducnhatt/muacode.com/internal/vietqr"
)

// --- Mock implementations ---

type mockSource struct {
	mu            sync.Mutex
	categories    []catalog.CategoryRow
	products      []catalog.ProductRow
	err           error
	detailFetches int
}

func (m *mockSource) Category(_ context.Context, id string) (*catalog.CategoryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailFetches++
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.categories {
		if c.ID == id {
			row := c
			return &row, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (m *mockSource) Categories(_ context.Context) ([]catalog.CategoryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categories, m.err
}

func (m *mockSource) Products(_ context.Context) ([]catalog.ProductRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products, m.err
}

func (m *mockSource) ProductsByCategory(_ context.Context, id string) ([]catalog.ProductRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []catalog.ProductRow
	for _, p := range m.products {
		if p.CategoryID == id {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockSource) renameProduct(id, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Name = name
		}
	}
}

func (m *mockSource) detailFetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detailFetches
}

func (m *mockSource) Services(_ context.Context) ([]catalog.ServiceRow, error) {
	return nil, m.err
}

func (m *mockSource) Posts(_ context.Context, _ int) ([]catalog.PostRow, error) {
	return nil, m.err
}

func (m *mockSource) HeroSections(_ context.Context) ([]catalog.HeroRow, error) {
	return nil, m.err
}

type mockBanks struct {
	banks []vietqr.Bank
	err   error
}

func (m *mockBanks) Banks(_ context.Context) ([]vietqr.Bank, error) {
	return m.banks, m.err
}

type mockNotifier struct {
	err   error
	calls int
}

func (m *mockNotifier) SendOrder(_ context.Context, _ order.Notice) error {
	m.calls++
	return m.err
}

func (m *mockNotifier) SendCheckout(_ context.Context, _ order.CheckoutNotice) error {
	m.calls++
	return m.err
}

// --- Helpers ---

type fixture struct {
	src      *mockSource
	banks    *mockBanks
	notifier *mockNotifier
	server   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		src: &mockSource{
			categories: []catalog.CategoryRow{
				{ID: "duel", Name: "Duel.com", Sold: 100},
			},
			products: []catalog.ProductRow{
				{ID: "duelbuy", CategoryID: "duel", Name: "Mua Duel Value", Sold: 60},
				{ID: "duelsell", CategoryID: "duel", Name: "Bán Duel Value", Sold: 40},
			},
		},
		banks:    &mockBanks{},
		notifier: &mockNotifier{},
	}

	catalogSvc := catalog.NewService(f.src)
	h := New(
		catalogSvc,
		catalog.NewDetailCache(catalogSvc),
		cart.NewSessions(kv.NewMemory()),
		order.NewService(f.notifier, order.PayeeConfig{}),
		f.banks,
	)
	mux := http.NewServeMux()
	h.Register(mux)
	f.server = session.Middleware(mux)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, r)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

// --- Catalog tests ---

func TestCategories(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cats []catalog.Category
	decodeInto(t, w, &cats)
	require.Len(t, cats, 1)
	assert.Equal(t, "duel", cats[0].ID)
	assert.Equal(t, "/products/duel", cats[0].Href)
}

func TestProductDetail_CacheHeaders(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/products/duel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "miss", w.Header().Get("X-Cache"))

	w = f.do(t, http.MethodGet, "/api/products/duel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hit", w.Header().Get("X-Cache"))

	var d catalog.Detail
	decodeInto(t, w, &d)
	assert.Equal(t, "duel", d.CategoryID)
	assert.Len(t, d.Variants, 2)
}

func TestProductDetail_HitStillFetches(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/products/duel", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "miss", w.Header().Get("X-Cache"))

	f.src.renameProduct("duelbuy", "Mua Duel Value 2026")

	// The hit answers from the snapshot, so it still shows the old name.
	w = f.do(t, http.MethodGet, "/api/products/duel", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "hit", w.Header().Get("X-Cache"))

	var d catalog.Detail
	decodeInto(t, w, &d)
	require.NotEmpty(t, d.Variants)
	assert.Equal(t, "Mua Duel Value", d.Variants[0].Label)

	// The hit still issued the upstream fetch and wrote the edit back,
	// well before the snapshot would have expired.
	require.Eventually(t, func() bool {
		return f.src.detailFetchCount() >= 2
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		w := f.do(t, http.MethodGet, "/api/products/duel", "")
		var d catalog.Detail
		if json.Unmarshal(w.Body.Bytes(), &d) != nil || len(d.Variants) == 0 {
			return false
		}
		return d.Variants[0].Label == "Mua Duel Value 2026"
	}, time.Second, 5*time.Millisecond)
}

func TestProductDetail_NotFound(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/products/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp errorResponse
	decodeInto(t, w, &resp)
	assert.Equal(t, "Không tìm thấy sản phẩm", resp.Message)
}

func TestProductDetail_TransientFailure(t *testing.T) {
	f := newFixture(t)
	f.src.err = errors.New("db down")
	w := f.do(t, http.MethodGet, "/api/products/duel", "")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp errorResponse
	decodeInto(t, w, &resp)
	assert.Equal(t, "Không tải được dữ liệu sản phẩm", resp.Message)
}

func TestPopular(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/popular?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []catalog.ListItem
	decodeInto(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "duel-duelbuy", items[0].ID)
}

func TestPopular_DefaultLimit(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"p3", "p4", "p5", "p6", "p7"} {
		f.src.products = append(f.src.products, catalog.ProductRow{
			ID: id, CategoryID: "duel", Name: id, Sold: 10,
		})
	}

	w := f.do(t, http.MethodGet, "/api/popular", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []catalog.ListItem
	decodeInto(t, w, &items)
	assert.Len(t, items, 6)
}

func TestBanks_DegradesToEmptyList(t *testing.T) {
	f := newFixture(t)
	f.banks.err = errors.New("directory unreachable")

	w := f.do(t, http.MethodGet, "/api/banks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

// --- Cart tests ---

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/cart/items",
		`{"id": "duelbuy", "name": "Mua Duel Value", "price": "10.000đ", "quantity": 2}`)
	require.Equal(t, http.StatusOK, w.Code)
	sess := sessionCookie(t, w)

	var view cartView
	decodeInto(t, w, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, int64(20000), view.TotalValue)

	// Adding the same id merges.
	w = f.do(t, http.MethodPost, "/api/cart/items",
		`{"id": "duelbuy", "price": "10.000đ", "quantity": 3}`, sess)
	decodeInto(t, w, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)

	// Update, then remove.
	w = f.do(t, http.MethodPatch, "/api/cart/items/duelbuy", `{"quantity": 1}`, sess)
	decodeInto(t, w, &view)
	assert.Equal(t, 1, view.Items[0].Quantity)

	w = f.do(t, http.MethodDelete, "/api/cart/items/duelbuy", "", sess)
	decodeInto(t, w, &view)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.TotalValue)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/cart/items", `{"id": "a", "price": "1.000đ", "quantity": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	// A request without the cookie gets a fresh session and an empty cart.
	w = f.do(t, http.MethodGet, "/api/cart", "")
	var view cartView
	decodeInto(t, w, &view)
	assert.Empty(t, view.Items)
}

func TestAddCartItem_RejectsMissingID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/cart/items", `{"price": "1.000đ"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Checkout tests ---

func TestCheckout(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/cart/items",
		`{"id": "duelbuy", "price": "10.000đ", "quantity": 2}`)
	sess := sessionCookie(t, w)

	w = f.do(t, http.MethodPost, "/api/checkout", `{"email": "a@b.vn"}`, sess)
	require.Equal(t, http.StatusOK, w.Code)

	var resp checkoutResponse
	decodeInto(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(20000), resp.Total)
	assert.Contains(t, resp.QRURL, "img.vietqr.io")
	assert.True(t, strings.HasPrefix(resp.OrderID, "ORDER_"))

	// Cart drained after acknowledged checkout.
	w = f.do(t, http.MethodGet, "/api/cart", "", sess)
	var view cartView
	decodeInto(t, w, &view)
	assert.Empty(t, view.Items)
}

func TestCheckout_ValidationError(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/cart/items", `{"id": "a", "price": "1.000đ"}`)
	sess := sessionCookie(t, w)

	w = f.do(t, http.MethodPost, "/api/checkout", `{"email": ""}`, sess)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	decodeInto(t, w, &resp)
	assert.Contains(t, resp.Errors, "email")
	assert.Zero(t, f.notifier.calls)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout", `{"email": "a@b.vn"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	decodeInto(t, w, &resp)
	assert.Equal(t, "Giỏ hàng trống.", resp.Message)
}

func TestCheckout_TelegramRejection(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = &telegram.APIError{Description: "chat not found"}

	w := f.do(t, http.MethodPost, "/api/cart/items", `{"id": "a", "price": "1.000đ"}`)
	sess := sessionCookie(t, w)

	w = f.do(t, http.MethodPost, "/api/checkout", `{"email": "a@b.vn"}`, sess)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp errorResponse
	decodeInto(t, w, &resp)
	assert.Equal(t, "Không gửi được đơn hàng. Lỗi từ Telegram: chat not found", resp.Message)

	// The cart survives.
	w = f.do(t, http.MethodGet, "/api/cart", "", sess)
	var view cartView
	decodeInto(t, w, &view)
	assert.Len(t, view.Items, 1)
}

func TestCheckout_TelegramUnreachable(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("connection refused")

	w := f.do(t, http.MethodPost, "/api/cart/items", `{"id": "a", "price": "1.000đ"}`)
	sess := sessionCookie(t, w)

	w = f.do(t, http.MethodPost, "/api/checkout", `{"email": "a@b.vn"}`, sess)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp errorResponse
	decodeInto(t, w, &resp)
	assert.Equal(t, "Không thể kết nối đến dịch vụ Telegram. Vui lòng thử lại sau.", resp.Message)
}

func TestCheckout_TelegramNotConfigured(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = telegram.ErrNotConfigured

	w := f.do(t, http.MethodPost, "/api/cart/items", `{"id": "a", "price": "1.000đ"}`)
	sess := sessionCookie(t, w)

	w = f.do(t, http.MethodPost, "/api/checkout", `{"email": "a@b.vn"}`, sess)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPlaceOrder_ValidationFieldMessages(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/orders",
		`{"id": "duelsell", "productName": "Bán Duel Value", "unitPrice": 430000, "amount": 1, "sellId": ""}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	decodeInto(t, w, &resp)
	assert.Equal(t, []string{"ID Bán là bắt buộc"}, resp.Errors["sellId"])
	assert.Contains(t, resp.Errors, "bank")
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/orders",
		`{"id": "duelbuy", "productName": "Mua Duel Value", "unitPrice": 430000, "amount": 1, "sellId": "player-1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp placeOrderResponse
	decodeInto(t, w, &resp)
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.OrderID, "CS2PRIME"))
	assert.Equal(t, int64(430000), resp.TotalAmount)
	assert.Contains(t, resp.QRURL, "amount=430000")
}
