package vietqr

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// banksURL is the public VietQR bank directory endpoint.
const banksURL = "https://api.vietqr.io/v2/banks"

// Client fetches the bank directory. The zero value is not usable; construct
// with NewClient.
type Client struct {
	http    *http.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the directory endpoint; used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a bank directory client with an instrumented transport
// and a conservative timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: banksURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Banks returns the bank directory. Callers populating selection lists are
// expected to degrade to an empty list on error; the error itself is for the
// operator log.
func (c *Client) Banks(ctx context.Context) ([]Bank, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch banks")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch banks: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}

	banks, err := decodeBanks(body)
	if err != nil {
		return nil, errors.Wrap(err, "decode banks")
	}
	return banks, nil
}

// decodeBanks parses the {"data":[...]} envelope, tolerating unknown fields
// and nulls.
func decodeBanks(body []byte) ([]Bank, error) {
	var banks []Bank
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "data" {
			return d.Skip()
		}
		if d.Next() == jx.Null {
			return d.Null()
		}
		return d.Arr(func(d *jx.Decoder) error {
			var b Bank
			if err := d.Obj(func(d *jx.Decoder, key string) error {
				switch key {
				case "id":
					v, err := d.Int64()
					b.ID = v
					return err
				case "name":
					return decodeStr(d, &b.Name)
				case "code":
					return decodeStr(d, &b.Code)
				case "bin":
					return decodeStr(d, &b.BIN)
				case "shortName":
					return decodeStr(d, &b.ShortName)
				default:
					return d.Skip()
				}
			}); err != nil {
				return err
			}
			banks = append(banks, b)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return banks, nil
}

func decodeStr(d *jx.Decoder, dst *string) error {
	if d.Next() == jx.Null {
		return d.Null()
	}
	s, err := d.Str()
	if err != nil {
		return err
	}
	*dst = s
	return nil
}
