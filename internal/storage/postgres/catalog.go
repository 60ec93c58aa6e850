package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ngducnhatt/muacode.com/internal/domain/catalog"
)

var _ catalog.Source = (*CatalogRepository)(nil)

// CatalogRepository reads raw catalog rows from the legacy schema. Text
// columns come back verbatim, mojibake included; the domain normalizer deals
// with them.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository returns a CatalogRepository using the given pool.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// Category returns one raw category row. It returns catalog.ErrNotFound when
// the id does not exist.
func (r *CatalogRepository) Category(ctx context.Context, id string) (*catalog.CategoryRow, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, sold, image, description FROM categories WHERE id = $1`, id)

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting category %q: %w", id, err)
	}
	return &c, nil
}

// Categories returns all raw category rows in creation order.
func (r *CatalogRepository) Categories(ctx context.Context) ([]catalog.CategoryRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, sold, image, description FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []catalog.CategoryRow
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Products returns every raw product row.
func (r *CatalogRepository) Products(ctx context.Context) ([]catalog.ProductRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, category_id, name, price, sold, sale, save, status, image FROM products`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ProductsByCategory returns the raw product rows of one category in
// upstream (insertion) order.
func (r *CatalogRepository) ProductsByCategory(ctx context.Context, categoryID string) ([]catalog.ProductRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, category_id, name, price, sold, sale, save, status, image
		 FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing products for %q: %w", categoryID, err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Services returns raw service rows ordered by name.
func (r *CatalogRepository) Services(ctx context.Context) ([]catalog.ServiceRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, status, image FROM services ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	var out []catalog.ServiceRow
	for rows.Next() {
		var (
			s      catalog.ServiceRow
			name   *string
			desc   *string
			status *string
			image  *string
		)
		if err := rows.Scan(&s.ID, &name, &desc, &status, &image); err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}
		s.Name = deref(name)
		s.Description = deref(desc)
		s.Image = deref(image)
		if status != nil {
			s.Status = *status
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Posts returns the newest raw post rows.
func (r *CatalogRepository) Posts(ctx context.Context, limit int) ([]catalog.PostRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, date FROM posts ORDER BY date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var out []catalog.PostRow
	for rows.Next() {
		var (
			p       catalog.PostRow
			title   *string
			content *string
		)
		if err := rows.Scan(&p.ID, &title, &content, &p.Date); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		p.Title = deref(title)
		p.Content = deref(content)
		out = append(out, p)
	}
	return out, rows.Err()
}

// HeroSections returns the active hero rows in display order.
func (r *CatalogRepository) HeroSections(ctx context.Context) ([]catalog.HeroRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT title, subtitle, description, image, href, ctalabel
		 FROM hero_sections WHERE status = TRUE
		 ORDER BY priority, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing hero sections: %w", err)
	}
	defer rows.Close()

	var out []catalog.HeroRow
	for rows.Next() {
		var (
			h        catalog.HeroRow
			title    *string
			subtitle *string
			desc     *string
			image    *string
			href     *string
			cta      *string
		)
		if err := rows.Scan(&title, &subtitle, &desc, &image, &href, &cta); err != nil {
			return nil, fmt.Errorf("scanning hero section: %w", err)
		}
		h.Title = deref(title)
		h.Subtitle = deref(subtitle)
		h.Description = deref(desc)
		h.Image = deref(image)
		h.Href = deref(href)
		h.CTALabel = deref(cta)
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanCategory(row pgx.Row) (catalog.CategoryRow, error) {
	var (
		c     catalog.CategoryRow
		name  *string
		image *string
		desc  *string
	)
	if err := row.Scan(&c.ID, &name, &c.Sold, &image, &desc); err != nil {
		return catalog.CategoryRow{}, err
	}
	c.Name = deref(name)
	c.Image = deref(image)
	c.Description = deref(desc)
	return c, nil
}

func collectProducts(rows pgx.Rows) ([]catalog.ProductRow, error) {
	var out []catalog.ProductRow
	for rows.Next() {
		var (
			p      catalog.ProductRow
			name   *string
			sale   *decimal.Decimal
			save   *string
			status *string
			image  *string
		)
		if err := rows.Scan(&p.ID, &p.CategoryID, &name, &p.Price, &p.Sold, &sale, &save, &status, &image); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p.Name = deref(name)
		p.Sale = sale
		p.Save = deref(save)
		p.Image = deref(image)
		// The legacy status column is TEXT; rows written before the schema
		// cleanup hold "0"/"1", newer ones "true"/"false". NULL keeps the
		// default-available behaviour.
		if status != nil {
			p.Status = *status
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
