package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"
)

// Service exposes normalized catalog reads over a raw Source.
type Service struct {
	src Source
}

// NewService creates a catalog Service over the given Source.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// Categories returns all normalized categories in upstream order.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.src.Categories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch categories")
	}
	out := make([]Category, len(rows))
	for i, row := range rows {
		out[i] = NormalizeCategory(row)
	}
	return out, nil
}

// Detail fetches and normalizes the detail aggregate for one category. The
// category row and its product rows are fetched concurrently. It returns
// ErrNotFound when the category does not exist.
func (s *Service) Detail(ctx context.Context, categoryID string) (*Detail, error) {
	var (
		cat      *CategoryRow
		notFound bool
		rows     []ProductRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cat, err = s.src.Category(gctx, categoryID)
		if errors.Is(err, ErrNotFound) {
			notFound = true
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "fetch category")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = s.src.ProductsByCategory(gctx, categoryID)
		if err != nil {
			return errors.Wrap(err, "fetch category products")
		}
		return nil
	})
	err := g.Wait()
	// A missing category is authoritative even when the product fetch also
	// failed.
	if notFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return NormalizeDetail(*cat, rows), nil
}

// Products returns every product flattened into list items.
func (s *Service) Products(ctx context.Context) ([]ListItem, error) {
	rows, err := s.src.Products(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}
	out := make([]ListItem, len(rows))
	for i, row := range rows {
		out[i] = NormalizeListItem(row)
	}
	return out, nil
}

// Popular returns the top n products by units sold.
func (s *Service) Popular(ctx context.Context, n int) ([]ListItem, error) {
	items, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return Popular(items, n), nil
}

// Deals returns the top n discount highlights.
func (s *Service) Deals(ctx context.Context, n int) ([]Deal, error) {
	items, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return Deals(items, n), nil
}

// Services returns the normalized payment/exchange services.
func (s *Service) Services(ctx context.Context) ([]ServiceItem, error) {
	rows, err := s.src.Services(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch services")
	}
	out := make([]ServiceItem, len(rows))
	for i, row := range rows {
		out[i] = NormalizeService(row)
	}
	return out, nil
}

// Posts returns the latest normalized posts, newest first.
func (s *Service) Posts(ctx context.Context) ([]Post, error) {
	rows, err := s.src.Posts(ctx, 9)
	if err != nil {
		return nil, errors.Wrap(err, "fetch posts")
	}
	out := make([]Post, len(rows))
	for i, row := range rows {
		out[i] = NormalizePost(row)
	}
	return out, nil
}

// HeroSlides returns the active homepage slides; slides without a title or
// image are dropped.
func (s *Service) HeroSlides(ctx context.Context) ([]HeroSlide, error) {
	rows, err := s.src.HeroSections(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch hero sections")
	}
	out := make([]HeroSlide, 0, len(rows))
	for _, row := range rows {
		slide := NormalizeHeroSlide(row)
		if slide.Title == "" || slide.Image == "" {
			continue
		}
		out = append(out, slide)
	}
	return out, nil
}
