package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopular_TopNBySold(t *testing.T) {
	items := []ListItem{
		{ID: "a", Sold: 10},
		{ID: "b", Sold: 30},
		{ID: "c", Sold: 20},
	}

	top := Popular(items, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].ID)
	assert.Equal(t, "c", top[1].ID)

	// Input untouched.
	assert.Equal(t, "a", items[0].ID)
}

func TestPopular_StableTies(t *testing.T) {
	items := []ListItem{
		{ID: "first", Sold: 5},
		{ID: "second", Sold: 5},
		{ID: "third", Sold: 5},
	}

	top := Popular(items, 3)
	assert.Equal(t, "first", top[0].ID)
	assert.Equal(t, "second", top[1].ID)
	assert.Equal(t, "third", top[2].ID)
}

func TestPopular_NLargerThanList(t *testing.T) {
	top := Popular([]ListItem{{ID: "a"}}, 10)
	assert.Len(t, top, 1)
}

func TestDeals_RankedBySavePercent(t *testing.T) {
	items := []ListItem{
		{ID: "a", CategoryID: "ca", Title: "A", Save: "5%"},
		{ID: "b", CategoryID: "cb", Title: "B", Save: "14%"},
		{ID: "c", CategoryID: "cc", Title: "C"},
		{ID: "d", CategoryID: "cd", Title: "D", Save: "7.5%"},
	}

	deals := Deals(items, 2)
	require.Len(t, deals, 2)
	assert.Equal(t, "b", deals[0].ID)
	assert.Equal(t, "14%", deals[0].Rate)
	assert.Equal(t, DealTag, deals[0].Tag)
	assert.Equal(t, "/products/cb", deals[0].Href)
	assert.Equal(t, "d", deals[1].ID)
}

func TestDeals_FallbackToSoldWhenNoSaves(t *testing.T) {
	items := []ListItem{
		{ID: "a", Sold: 10},
		{ID: "b", Sold: 99},
	}

	deals := Deals(items, 5)
	require.Len(t, deals, 2)
	assert.Equal(t, "b", deals[0].ID)
	assert.Equal(t, "0%", deals[0].Rate)
}

func TestSavePercent_Unparseable(t *testing.T) {
	assert.True(t, savePercent("garbage").IsZero())
	assert.True(t, savePercent("").IsZero())
	assert.Equal(t, "12.5", savePercent(" 12.5% ").String())
}
