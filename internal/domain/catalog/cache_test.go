package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	detail *Detail
	err    error
	calls  int
}

func (f *stubFetcher) Detail(_ context.Context, _ string) (*Detail, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func newTestCache(f DetailFetcher, at time.Time) (*DetailCache, *time.Time) {
	now := at
	c := &DetailCache{
		fetch:   f,
		ttl:     DetailTTL,
		now:     func() time.Time { return now },
		entries: make(map[string]detailEntry),
	}
	return c, &now
}

func TestDetailCache_FreshLookupSkipsFetch(t *testing.T) {
	f := &stubFetcher{detail: &Detail{CategoryID: "duel"}}
	c, _ := newTestCache(f, time.Unix(1000, 0))

	_, err := c.Get(context.Background(), "duel")
	require.NoError(t, err)
	require.Equal(t, 1, f.calls)

	d, ok := c.Lookup("duel")
	require.True(t, ok)
	assert.Equal(t, "duel", d.CategoryID)
	assert.Equal(t, 1, f.calls, "Lookup must never fetch")
}

func TestDetailCache_ExpiredLookupMisses(t *testing.T) {
	f := &stubFetcher{detail: &Detail{CategoryID: "duel"}}
	c, now := newTestCache(f, time.Unix(1000, 0))

	_, err := c.Get(context.Background(), "duel")
	require.NoError(t, err)

	*now = now.Add(DetailTTL + time.Second)
	_, ok := c.Lookup("duel")
	assert.False(t, ok)
}

func TestDetailCache_LookupAtExactTTLIsFresh(t *testing.T) {
	f := &stubFetcher{detail: &Detail{CategoryID: "duel"}}
	c, now := newTestCache(f, time.Unix(1000, 0))

	_, err := c.Get(context.Background(), "duel")
	require.NoError(t, err)

	*now = now.Add(DetailTTL)
	_, ok := c.Lookup("duel")
	assert.True(t, ok)
}

func TestDetailCache_FailedRefreshKeepsEntry(t *testing.T) {
	f := &stubFetcher{detail: &Detail{CategoryID: "duel"}}
	c, _ := newTestCache(f, time.Unix(1000, 0))

	_, err := c.Get(context.Background(), "duel")
	require.NoError(t, err)

	f.err = errors.New("upstream down")
	_, err = c.Get(context.Background(), "duel")
	require.Error(t, err)

	d, ok := c.Stale("duel")
	require.True(t, ok)
	assert.Equal(t, "duel", d.CategoryID)
}

func TestDetailCache_NotFoundPropagates(t *testing.T) {
	f := &stubFetcher{err: ErrNotFound}
	c, _ := newTestCache(f, time.Unix(1000, 0))

	_, err := c.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, ok := c.Stale("missing")
	assert.False(t, ok)
}

func TestDetailCache_Invalidate(t *testing.T) {
	f := &stubFetcher{detail: &Detail{CategoryID: "duel"}}
	c, _ := newTestCache(f, time.Unix(1000, 0))

	_, err := c.Get(context.Background(), "duel")
	require.NoError(t, err)

	c.Invalidate("duel")
	_, ok := c.Lookup("duel")
	assert.False(t, ok)
	_, ok = c.Stale("duel")
	assert.False(t, ok)
}
