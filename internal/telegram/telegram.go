// Package telegram delivers order notices to the operator chat via the
// Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ngducnhatt/muacode.com/internal/domain/order"
	"github.com/ngducnhatt/muacode.com/pkg/vnd"
)

var _ order.Notifier = (*Notifier)(nil)

// ErrNotConfigured is returned when the bot token or chat id is missing.
var ErrNotConfigured = errors.New("telegram bot token or chat id not configured")

// APIError is a rejection from the Telegram Bot API (ok=false). Callers
// treat it exactly like a transport failure; Description is for the log.
type APIError struct {
	Description string
}

func (e *APIError) Error() string {
	return "telegram api: " + e.Description
}

// Config holds the bot credentials.
type Config struct {
	Token  string
	ChatID string
	// BaseURL overrides the API host; used by tests.
	BaseURL string
}

// Notifier sends Markdown-formatted order messages to one operator chat.
type Notifier struct {
	http    *http.Client
	token   string
	chatID  string
	baseURL string
}

// New creates a Notifier. Credentials are checked at send time, not here, so
// a storefront without a bot configured still boots.
func New(cfg Config) *Notifier {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.telegram.org"
	}
	return &Notifier{
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		token:   cfg.Token,
		chatID:  cfg.ChatID,
		baseURL: base,
	}
}

// SendOrder delivers a direct (buy/sell form) order notice.
func (n *Notifier) SendOrder(ctx context.Context, o order.Notice) error {
	bankInfo := fmt.Sprintf(
		"\n**Ngân hàng:** `%s`\n**Số tài khoản:** `%s`\n**Tên chủ tài khoản:** `%s`\n",
		orPlaceholder(o.Bank), orPlaceholder(o.Account), orPlaceholder(o.AccountName),
	)
	if o.VariantID == "duelbuy" || o.VariantID == "empirebuy" {
		bankInfo = ""
	}

	text := fmt.Sprintf(`
ĐƠN HÀNG MỚI
**Order ID:** `+"`%s`"+`
**Sản phẩm:** ***%s***
**Đơn giá:** %s
**Số lượng:** %d
**THÀNH TIỀN:** `+"`%s`"+`
--------------------
**ID Bán:** `+"`%s`"+`
%s--------------------
`,
		o.OrderID, o.ProductName, vnd.Format(o.UnitPrice),
		o.Quantity, vnd.Format(o.TotalAmount), o.SellID, bankInfo,
	)

	return n.sendMessage(ctx, text)
}

// SendCheckout delivers a cart checkout notice with one line per item.
func (n *Notifier) SendCheckout(ctx context.Context, o order.CheckoutNotice) error {
	var lines strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&lines, "- %s × %d (%s)\n", it.Name, it.Quantity, it.Price)
	}

	note := o.Note
	if note == "" {
		note = "-"
	}

	text := fmt.Sprintf(`
ĐƠN HÀNG MỚI
**Order ID:** `+"`%s`"+`
**Email:** `+"`%s`"+`
**Ghi chú:** %s
--------------------
%s**THÀNH TIỀN:** `+"`%s`"+`
--------------------
`,
		o.OrderID, o.Email, note, lines.String(), vnd.Format(o.Total),
	)

	return n.sendMessage(ctx, text)
}

// sendMessage posts one Markdown message and fails unless the API responds
// with ok=true.
func (n *Notifier) sendMessage(ctx context.Context, text string) error {
	if n.token == "" || n.chatID == "" {
		return ErrNotConfigured
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("chat_id", func(e *jx.Encoder) { e.Str(n.chatID) })
		e.Field("text", func(e *jx.Encoder) { e.Str(text) })
		e.Field("parse_mode", func(e *jx.Encoder) { e.Str("Markdown") })
	})

	url := n.baseURL + "/bot" + n.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(e.Bytes()))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "send message")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	ok, desc, err := decodeSendResult(body)
	if err != nil {
		return errors.Wrap(err, "decode response")
	}
	if !ok {
		return &APIError{Description: desc}
	}
	return nil
}

// decodeSendResult extracts ok/description from the Bot API envelope.
func decodeSendResult(body []byte) (ok bool, desc string, _ error) {
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "ok":
			v, err := d.Bool()
			ok = v
			return err
		case "description":
			if d.Next() == jx.Null {
				return d.Null()
			}
			s, err := d.Str()
			desc = s
			return err
		default:
			return d.Skip()
		}
	})
	return ok, desc, err
}

func orPlaceholder(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
