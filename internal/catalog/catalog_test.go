package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noorcaftan/boutique-backend/internal/product"
)

type fakeSource struct {
	products []product.Product
	err      error
}

func (f *fakeSource) List(adminMode bool) ([]product.Product, error) {
	return f.products, f.err
}

type fakeSyncer struct {
	calls     int
	err       error
	likeCalls int
	likeErr   error
}

func (f *fakeSyncer) IncrementViews(id string) (int, error) {
	f.calls++
	return 0, f.err
}

func (f *fakeSyncer) AddLikes(id string, delta int) (int, error) {
	f.likeCalls++
	return 0, f.likeErr
}

func seedProducts() []product.Product {
	return []product.Product{
		{
			ID: "royal", Name: "قفطان ملكي", NameEn: "Royal Caftan",
			Description: "حرير", DescriptionEn: "Silk evening wear",
			Price: "150 د.ك", Tags: []string{"حرير"}, TagsEn: []string{"Silk"},
			Featured: true, Active: true, Views: 10,
			CreatedAt: "2025-01-01T00:00:00Z",
		},
		{
			ID: "cotton", Name: "قفطان قطني", NameEn: "Cotton Caftan",
			Description: "قطن", DescriptionEn: "Light summer cotton",
			Price: "80 د.ك", Tags: []string{"قطن"}, TagsEn: []string{"Cotton"},
			Active: true, Views: 25,
			CreatedAt: "2025-02-01T00:00:00Z",
		},
		{
			ID: "request", Name: "قفطان مخمل", NameEn: "Velvet Caftan",
			Description: "مخمل", DescriptionEn: "Velvet, price on request",
			Price: "", Tags: []string{"مخمل"}, TagsEn: []string{"Velvet"},
			Active: true, Views: 3,
			CreatedAt: "2025-03-01T00:00:00Z",
		},
	}
}

func newLoaded(t *testing.T) (*Catalog, *fakeSource, *fakeSyncer) {
	t.Helper()
	src := &fakeSource{products: seedProducts()}
	syn := &fakeSyncer{}
	c := New(src, syn)
	require.NoError(t, c.Refresh())
	return c, src, syn
}

func TestFilter_Search(t *testing.T) {
	c, _, _ := newLoaded(t)

	got := c.Filter(Criteria{Search: "silk"})
	require.Len(t, got, 1)
	assert.Equal(t, "royal", got[0].ID)

	// matches Arabic fields too
	got = c.Filter(Criteria{Search: "قطن"})
	require.Len(t, got, 1)
	assert.Equal(t, "cotton", got[0].ID)

	assert.Empty(t, c.Filter(Criteria{Search: "denim"}))
}

func TestFilter_Tags(t *testing.T) {
	c, _, _ := newLoaded(t)

	got := c.Filter(Criteria{Tags: []string{"Cotton"}})
	require.Len(t, got, 1)
	assert.Equal(t, "cotton", got[0].ID)

	// match-any across requested tags
	got = c.Filter(Criteria{Tags: []string{"Cotton", "Velvet"}})
	assert.Len(t, got, 2)
}

func TestFilter_Featured(t *testing.T) {
	c, _, _ := newLoaded(t)

	featured := true
	got := c.Filter(Criteria{Featured: &featured})
	require.Len(t, got, 1)
	assert.Equal(t, "royal", got[0].ID)
}

func TestFilter_PriceRangeIsBestEffort(t *testing.T) {
	c, _, _ := newLoaded(t)

	min, max := 100.0, 200.0
	got := c.Filter(Criteria{MinPrice: &min, MaxPrice: &max})
	ids := idsOf(got)
	// 150 passes the range; the unpriced product passes because price
	// filtering never excludes non-numeric prices
	assert.ElementsMatch(t, []string{"royal", "request"}, ids)
}

func TestSort_PriceAscendingTreatsNonNumericAsZero(t *testing.T) {
	c, _, _ := newLoaded(t)

	got := c.Filter(Criteria{Sort: SortPriceAsc})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"request", "cotton", "royal"}, idsOf(got))

	got = c.Filter(Criteria{Sort: SortPriceDesc})
	assert.Equal(t, []string{"royal", "cotton", "request"}, idsOf(got))
}

func TestSort_NewestAndPopular(t *testing.T) {
	c, _, _ := newLoaded(t)

	got := c.Filter(Criteria{Sort: SortNewest})
	assert.Equal(t, []string{"request", "cotton", "royal"}, idsOf(got))

	got = c.Filter(Criteria{Sort: SortPopular})
	assert.Equal(t, "cotton", got[0].ID)
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	c, src, _ := newLoaded(t)

	src.err = errors.New("network down")
	err := c.Refresh()
	require.Error(t, err)
	assert.Error(t, c.LastError())

	// previous list must survive a failed refresh
	assert.Len(t, c.Products(), 3)

	src.err = nil
	require.NoError(t, c.Refresh())
	assert.NoError(t, c.LastError())
}

func TestIncrementViews_OptimisticWithoutRollback(t *testing.T) {
	c, _, syn := newLoaded(t)

	syn.err = errors.New("store unreachable")
	c.IncrementViews("royal")

	assert.Equal(t, 1, syn.calls)
	for _, p := range c.Products() {
		if p.ID == "royal" {
			// bump sticks even though the sync failed
			assert.Equal(t, 11, p.Views)
		}
	}
}

func likesOf(c *Catalog, id string) int {
	for _, p := range c.Products() {
		if p.ID == id {
			return p.Likes
		}
	}
	return -1
}

func TestToggleLike_SyncedFlip(t *testing.T) {
	c, _, syn := newLoaded(t)

	liked, err := c.ToggleLike("royal")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, c.Liked("royal"))
	assert.Equal(t, 1, syn.likeCalls)
	assert.Equal(t, 1, likesOf(c, "royal"))

	// toggling again unlikes and moves the counter back down
	liked, err = c.ToggleLike("royal")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.False(t, c.Liked("royal"))
	assert.Equal(t, 0, likesOf(c, "royal"))
}

func TestToggleLike_FailedSyncRollsBack(t *testing.T) {
	c, _, syn := newLoaded(t)

	syn.likeErr = errors.New("store unreachable")
	liked, err := c.ToggleLike("royal")
	require.Error(t, err)

	// count and liked-state both return to their pre-toggle values
	assert.False(t, liked)
	assert.False(t, c.Liked("royal"))
	assert.Equal(t, 0, likesOf(c, "royal"))
}

func TestAllTags_DeduplicatedSortedUnion(t *testing.T) {
	src := &fakeSource{products: []product.Product{
		{ID: "a", Tags: []string{"حرير"}, TagsEn: []string{"Silk"}},
		{ID: "b", Tags: []string{"حرير"}, TagsEn: []string{"Cotton", "Silk"}},
	}}
	c := New(src, nil)
	require.NoError(t, c.Refresh())

	tags := c.AllTags()
	assert.Equal(t, []string{"Cotton", "Silk", "حرير"}, tags)
}

func TestProducts_ReturnsCopies(t *testing.T) {
	c, _, _ := newLoaded(t)

	first := c.Products()
	first[0].Name = "mutated"

	again := c.Products()
	assert.NotEqual(t, "mutated", again[0].Name)
}

func idsOf(products []product.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
