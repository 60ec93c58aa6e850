package catalog

import (
	"regexp"
	"strings"
)

// mojibakePattern matches the byte sequences the legacy double-encoding left
// behind in Vietnamese text (for example "Thẻ" mangled into "ThA�").
var mojibakePattern = regexp.MustCompile(`A�|cA3|mA�`)

// HasMojibake reports whether a text field is corrupted by the upstream
// encoding mismatch: it contains the Unicode replacement character or one of
// the known mis-encoding patterns.
func HasMojibake(text string) bool {
	if text == "" {
		return false
	}
	return strings.ContainsRune(text, '�') || mojibakePattern.MatchString(text)
}

// BoolStatus coerces a loosely-typed availability flag to a boolean.
// Booleans pass through, numbers are available when positive, strings are
// available for "1" or case-insensitive "true". Anything else, including
// absence, defaults to available.
func BoolStatus(v any) bool {
	switch s := v.(type) {
	case bool:
		return s
	case int:
		return s > 0
	case int32:
		return s > 0
	case int64:
		return s > 0
	case float32:
		return s > 0
	case float64:
		return s > 0
	case string:
		return s == "1" || strings.EqualFold(s, "true")
	default:
		return true
	}
}

// fallbackName resolves a display name: a garbled value with a known fallback
// uses the fallback; an empty value uses the fallback and finally the id.
func fallbackName(raw, fallback, id string) string {
	if HasMojibake(raw) && fallback != "" {
		return fallback
	}
	if raw != "" {
		return raw
	}
	if fallback != "" {
		return fallback
	}
	return id
}

// NormalizeVariant maps a raw product row to a strict variant. The explicit
// save string wins over the numeric sale percentage; variant order is the
// caller's concern and is never changed here.
func NormalizeVariant(row ProductRow) Variant {
	save := row.Save
	if save == "" && row.Sale != nil {
		save = row.Sale.String() + "%"
	}
	return Variant{
		ID:     row.ID,
		Label:  fallbackName(row.Name, productNameFallback[row.ID], row.ID),
		Price:  row.Price,
		Sold:   row.Sold,
		Tag:    "",
		Save:   save,
		Status: BoolStatus(row.Status),
		Bonus:  "",
	}
}

// NormalizeCategory maps a raw category row to a strict category. A garbled
// or empty description falls back to the static per-category lines; otherwise
// the upstream text is split into trimmed non-empty lines.
func NormalizeCategory(row CategoryRow) Category {
	var desc []string
	if HasMojibake(row.Description) || row.Description == "" {
		desc = categoryDescFallback[row.ID]
	} else {
		for _, line := range strings.Split(row.Description, "\n") {
			if t := strings.TrimSpace(line); t != "" {
				desc = append(desc, t)
			}
		}
	}
	return Category{
		ID:          row.ID,
		Name:        fallbackName(row.Name, categoryNameFallback[row.ID], row.ID),
		Href:        "/products/" + row.ID,
		Sold:        row.Sold,
		Image:       row.Image,
		Description: desc,
	}
}

// NormalizeDetail builds a detail snapshot from a category row and its
// product rows. Variants keep upstream order.
func NormalizeDetail(cat CategoryRow, rows []ProductRow) *Detail {
	variants := make([]Variant, len(rows))
	for i, row := range rows {
		variants[i] = NormalizeVariant(row)
	}

	desc := cat.Description
	if HasMojibake(desc) || desc == "" {
		desc = strings.Join(categoryDescFallback[cat.ID], "\n")
	}

	return &Detail{
		CategoryID: cat.ID,
		Hero: Hero{
			Title: fallbackName(cat.Name, categoryNameFallback[cat.ID], cat.ID),
			Image: cat.Image,
			Notes: []string{},
		},
		Variants:    variants,
		Description: desc,
	}
}

// NormalizeListItem flattens a raw product row into a cross-category list
// entry. The composite id keeps entries unique across categories.
func NormalizeListItem(row ProductRow) ListItem {
	save := ""
	if row.Sale != nil {
		save = row.Sale.String() + "%"
	}
	return ListItem{
		ID:         row.CategoryID + "-" + row.ID,
		CategoryID: row.CategoryID,
		Title:      fallbackName(row.Name, productNameFallback[row.ID], row.ID),
		Price:      row.Price,
		Sold:       row.Sold,
		Save:       save,
		Status:     BoolStatus(row.Status),
		Image:      row.Image,
	}
}

// NormalizeService maps a raw service row to a strict service item.
func NormalizeService(row ServiceRow) ServiceItem {
	desc := row.Description
	if HasMojibake(desc) && serviceDescFallback[row.ID] != "" {
		desc = serviceDescFallback[row.ID]
	} else if desc == "" {
		desc = serviceDescFallback[row.ID]
	}
	return ServiceItem{
		ID:          row.ID,
		Title:       fallbackName(row.Name, serviceNameFallback[row.ID], row.ID),
		Description: desc,
		Status:      BoolStatus(row.Status),
	}
}

// NormalizePost maps a raw post row to a strict post; the excerpt mirrors the
// content.
func NormalizePost(row PostRow) Post {
	title := fallbackName(row.Title, postTitleFallback[row.ID], row.ID)
	content := row.Content
	if HasMojibake(content) && postContentFallback[row.ID] != "" {
		content = postContentFallback[row.ID]
	} else if content == "" {
		content = postContentFallback[row.ID]
	}
	return Post{
		ID:      row.ID,
		Title:   title,
		Content: content,
		Excerpt: content,
		Date:    row.Date,
	}
}

// NormalizeHeroSlide maps a raw hero row to a slide. Slides without a title
// or image are dropped by the caller; defaults match the storefront copy.
func NormalizeHeroSlide(row HeroRow) HeroSlide {
	href := strings.TrimSpace(row.Href)
	if href == "" {
		href = "/"
	}
	cta := strings.TrimSpace(row.CTALabel)
	if cta == "" {
		cta = "mua ngay"
	}
	return HeroSlide{
		Title:       strings.TrimSpace(row.Title),
		Subtitle:    row.Subtitle,
		Description: row.Description,
		Image:       strings.TrimSpace(row.Image),
		Href:        href,
		CTALabel:    cta,
	}
}
