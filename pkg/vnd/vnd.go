// Package vnd holds helpers for Vietnamese đồng amounts. Prices move through
// the system as int64 đồng and are only rendered to strings at the
// presentation boundary.
package vnd

import "strconv"

// Parse extracts the numeric value from a formatted price string by stripping
// every non-digit byte and parsing the remainder. A string with no digits
// parses to 0. "10.000đ" -> 10000, "1.200.000 ₫" -> 1200000.
func Parse(price string) int64 {
	digits := make([]byte, 0, len(price))
	for i := 0; i < len(price); i++ {
		if price[i] >= '0' && price[i] <= '9' {
			digits = append(digits, price[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	v, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		// Overflow on absurdly long digit runs.
		return 0
	}
	return v
}

// Format renders an amount the way vi-VN currency formatting does:
// thousands separated by dots with a trailing đồng sign. 430000 -> "430.000 ₫".
func Format(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		out = append([]byte{'-'}, out...)
	}
	return string(out) + " ₫"
}
