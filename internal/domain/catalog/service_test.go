package catalog

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	category    *CategoryRow
	categoryErr error
	categories  []CategoryRow
	products    []ProductRow
	productsErr error
	services    []ServiceRow
	posts       []PostRow
	hero        []HeroRow
}

func (s *stubSource) Category(_ context.Context, _ string) (*CategoryRow, error) {
	return s.category, s.categoryErr
}

func (s *stubSource) Categories(_ context.Context) ([]CategoryRow, error) {
	return s.categories, nil
}

func (s *stubSource) Products(_ context.Context) ([]ProductRow, error) {
	return s.products, s.productsErr
}

func (s *stubSource) ProductsByCategory(_ context.Context, _ string) ([]ProductRow, error) {
	return s.products, s.productsErr
}

func (s *stubSource) Services(_ context.Context) ([]ServiceRow, error) {
	return s.services, nil
}

func (s *stubSource) Posts(_ context.Context, _ int) ([]PostRow, error) {
	return s.posts, nil
}

func (s *stubSource) HeroSections(_ context.Context) ([]HeroRow, error) {
	return s.hero, nil
}

func TestServiceDetail(t *testing.T) {
	svc := NewService(&stubSource{
		category: &CategoryRow{ID: "duel", Name: "Duel.com"},
		products: []ProductRow{{ID: "duelbuy"}, {ID: "duelsell"}},
	})

	d, err := svc.Detail(context.Background(), "duel")
	require.NoError(t, err)
	assert.Equal(t, "duel", d.CategoryID)
	assert.Equal(t, "Duel.com", d.Hero.Title)
	require.Len(t, d.Variants, 2)
	assert.Equal(t, "duelbuy", d.Variants[0].ID)
}

func TestServiceDetail_NotFound(t *testing.T) {
	svc := NewService(&stubSource{categoryErr: ErrNotFound})

	_, err := svc.Detail(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDetail_NotFoundWinsOverProductError(t *testing.T) {
	svc := NewService(&stubSource{
		categoryErr: ErrNotFound,
		productsErr: errors.New("db down"),
	})

	_, err := svc.Detail(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDetail_TransientError(t *testing.T) {
	svc := NewService(&stubSource{
		category:    &CategoryRow{ID: "duel"},
		productsErr: errors.New("db down"),
	})

	_, err := svc.Detail(context.Background(), "duel")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestServiceHeroSlides_DropsIncomplete(t *testing.T) {
	svc := NewService(&stubSource{hero: []HeroRow{
		{Title: "Keep", Image: "/a.png"},
		{Title: "", Image: "/b.png"},
		{Title: "No image"},
	}})

	slides, err := svc.HeroSlides(context.Background())
	require.NoError(t, err)
	require.Len(t, slides, 1)
	assert.Equal(t, "Keep", slides[0].Title)
}
