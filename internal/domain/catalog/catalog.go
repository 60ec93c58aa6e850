// Package catalog holds the product catalog domain: categories, product
// variants, per-category detail aggregates, and the normalization layer that
// turns loosely-typed legacy rows into strict values.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested category does not exist upstream.
// It is distinct from transient fetch failures.
var ErrNotFound = errors.New("category not found")

// Category is a top-level product grouping shown on the storefront.
type Category struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Href        string   `json:"href"`
	Sold        int64    `json:"sold"`
	Image       string   `json:"image,omitempty"`
	Description []string `json:"description,omitempty"`
}

// Variant is a purchasable SKU within a category. A nil Price means
// "contact for price".
type Variant struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Price  *int64 `json:"price,omitempty"`
	Sold   int64  `json:"sold"`
	Tag    string `json:"tag,omitempty"`
	Save   string `json:"save,omitempty"`
	Status bool   `json:"status"`
	Bonus  string `json:"bonus,omitempty"`
}

// Hero is the display metadata block of a product detail page.
type Hero struct {
	Title     string   `json:"title"`
	Region    string   `json:"region,omitempty"`
	Guarantee string   `json:"guarantee,omitempty"`
	Image     string   `json:"image,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// Detail is the per-category product detail aggregate. Each fetch produces a
// new immutable snapshot; variants keep upstream order.
type Detail struct {
	CategoryID  string    `json:"categoryId"`
	Hero        Hero      `json:"hero"`
	Variants    []Variant `json:"variants"`
	Description string    `json:"description"`
}

// ListItem is a flattened product row used by cross-category listings.
type ListItem struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Price      *int64 `json:"price,omitempty"`
	Sold       int64  `json:"sold"`
	Tag        string `json:"tag,omitempty"`
	Save       string `json:"save,omitempty"`
	Status     bool   `json:"status"`
	Image      string `json:"image,omitempty"`
}

// Deal is a discount highlight derived from the product list.
type Deal struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Rate  string `json:"rate"`
	Tag   string `json:"tag"`
	Href  string `json:"href"`
}

// ServiceItem is a payment/exchange service advertised on the storefront.
type ServiceItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      bool   `json:"status"`
}

// Post is a news/guide entry.
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt,omitempty"`
	Date    string `json:"date"`
}

// HeroSlide is a homepage banner slide.
type HeroSlide struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	Href        string `json:"href"`
	CTALabel    string `json:"ctalabel,omitempty"`
}

// CategoryRow is a raw category record as stored upstream. Text fields may be
// empty or mojibake; Status carries whatever scalar type the source held.
type CategoryRow struct {
	ID          string
	Name        string
	Sold        int64
	Image       string
	Description string
}

// ProductRow is a raw product record as stored upstream. Sale is a nullable
// percentage; Status is loosely typed (bool, number, or string).
type ProductRow struct {
	ID         string
	CategoryID string
	Name       string
	Price      *int64
	Sold       int64
	Sale       *decimal.Decimal
	Save       string
	Status     any
	Image      string
}

// ServiceRow is a raw service record.
type ServiceRow struct {
	ID          string
	Name        string
	Description string
	Status      any
	Image       string
}

// PostRow is a raw post record.
type PostRow struct {
	ID      string
	Title   string
	Content string
	Date    string
}

// HeroRow is a raw hero_sections record.
type HeroRow struct {
	Title       string
	Subtitle    string
	Description string
	Image       string
	Href        string
	CTALabel    string
}

// Source provides raw catalog rows from the backend data source. Category
// returns ErrNotFound when the id does not exist; every other failure is the
// generic transient fetch error.
type Source interface {
	Category(ctx context.Context, id string) (*CategoryRow, error)
	Categories(ctx context.Context) ([]CategoryRow, error)
	Products(ctx context.Context) ([]ProductRow, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]ProductRow, error)
	Services(ctx context.Context) ([]ServiceRow, error)
	Posts(ctx context.Context, limit int) ([]PostRow, error)
	HeroSections(ctx context.Context) ([]HeroRow, error)
}
