package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DealTag is the storefront label attached to every deal highlight.
const DealTag = "Ưu đãi nhiều nhất"

// Popular returns the top n items by units sold. The sort is stable: ties
// keep upstream order. The input slice is not modified.
func Popular(items []ListItem, n int) []ListItem {
	sorted := make([]ListItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sold > sorted[j].Sold
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Deals returns the top n discount highlights. Items carrying a save value
// are ranked by discount percentage descending; when none do, the whole list
// ranked by units sold stands in. Both sorts are stable.
func Deals(items []ListItem, n int) []Deal {
	source := make([]ListItem, 0, len(items))
	for _, it := range items {
		if it.Save != "" {
			source = append(source, it)
		}
	}
	if len(source) == 0 {
		source = make([]ListItem, len(items))
		copy(source, items)
		sort.SliceStable(source, func(i, j int) bool {
			return source[i].Sold > source[j].Sold
		})
	}

	sort.SliceStable(source, func(i, j int) bool {
		return savePercent(source[i].Save).GreaterThan(savePercent(source[j].Save))
	})
	if len(source) > n {
		source = source[:n]
	}

	deals := make([]Deal, len(source))
	for i, it := range source {
		rate := it.Save
		if rate == "" {
			rate = "0%"
		}
		deals[i] = Deal{
			ID:    it.ID,
			Title: it.Title,
			Rate:  rate,
			Tag:   DealTag,
			Href:  "/products/" + it.CategoryID,
		}
	}
	return deals
}

// savePercent parses the numeric prefix of a save string ("12.5%" -> 12.5).
// Unparseable values rank as zero.
func savePercent(save string) decimal.Decimal {
	s := strings.TrimSuffix(strings.TrimSpace(save), "%")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
