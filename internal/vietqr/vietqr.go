// Package vietqr talks to the VietQR ecosystem: the public bank directory
// and the img.vietqr.io one-off payment QR images.
package vietqr

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Default payee account for storefront payments (Techcombank).
const (
	DefaultBankBIN = "970407"
	DefaultAccount = "1122102102"
)

// Bank is one entry of the VietQR bank directory.
type Bank struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	BIN       string `json:"bin"`
	ShortName string `json:"shortName"`
}

// PaymentURL builds the QR image URL for a one-off payment. This is pure
// string templating: malformed input produces a malformed URL, never an
// error, matching the upstream contract.
func PaymentURL(bin, account string, amount int64, addInfo string) string {
	return fmt.Sprintf(
		"https://img.vietqr.io/image/%s-%s-compact.png?amount=%d&addInfo=%s",
		bin, account, amount, addInfo,
	)
}

// EncodeMemo encodes a free-text payment memo as base64 with the trailing
// '=' padding stripped, the form the checkout flow puts into addInfo.
func EncodeMemo(raw string) string {
	return strings.TrimRight(base64.StdEncoding.EncodeToString([]byte(raw)), "=")
}
