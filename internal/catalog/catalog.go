// Package catalog holds an in-memory snapshot of the product list and answers
// filter/sort queries without touching the store. Pages share one Catalog
// instead of each running their own fetch-and-filter.
package catalog

import (
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/noorcaftan/boutique-backend/internal/product"
)

// Source loads the full product list. Satisfied by *product.Service.
type Source interface {
	List(adminMode bool) ([]product.Product, error)
}

// Syncer pushes counter changes to the store. Satisfied by *product.Service.
type Syncer interface {
	IncrementViews(id string) (int, error)
	AddLikes(id string, delta int) (int, error)
}

type Catalog struct {
	mu     sync.RWMutex
	source Source
	syncer Syncer

	products []product.Product
	tags     []string
	liked    map[string]bool
	lastErr  error
}

func New(source Source, syncer Syncer) *Catalog {
	return &Catalog{source: source, syncer: syncer, liked: map[string]bool{}}
}

// Refresh reloads the snapshot wholesale. A failed load keeps the previous
// snapshot intact — an empty list on error would read as "no products".
func (c *Catalog) Refresh() error {
	products, err := c.source.List(false)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	if err != nil {
		return err
	}
	c.products = products
	c.tags = collectTags(products)
	return nil
}

// LastError reports the outcome of the most recent Refresh.
func (c *Catalog) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Products returns a copy of the current snapshot, newest first.
func (c *Catalog) Products() []product.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]product.Product, len(c.products))
	copy(out, c.products)
	return out
}

// AllTags returns the deduplicated sorted union of every product's tags,
// computed once per refresh.
func (c *Catalog) AllTags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.tags))
	copy(out, c.tags)
	return out
}

// IncrementViews bumps the snapshot counter immediately and then tells the
// store. A failed sync is logged and ignored: view counts are best-effort
// telemetry and the optimistic bump is never rolled back.
func (c *Catalog) IncrementViews(id string) {
	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i].Views++
			break
		}
	}
	c.mu.Unlock()

	if c.syncer == nil {
		return
	}
	if _, err := c.syncer.IncrementViews(id); err != nil {
		log.Printf("view sync failed for %s: %v", id, err)
	}
}

// Liked reports the local liked-state for id.
func (c *Catalog) Liked(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.liked[id]
}

// ToggleLike flips the local liked-state and moves the like counter in the
// matching direction, optimistically. Unlike views, a failed sync rolls both
// back: the liked heart is user-visible state and must not drift from the
// store. Returns the liked-state after the call settles.
func (c *Catalog) ToggleLike(id string) (bool, error) {
	c.mu.Lock()
	wasLiked := c.liked[id]
	delta := 1
	if wasLiked {
		delta = -1
	}
	c.liked[id] = !wasLiked
	c.applyLikeDelta(id, delta)
	c.mu.Unlock()

	if c.syncer == nil {
		return !wasLiked, nil
	}
	if _, err := c.syncer.AddLikes(id, delta); err != nil {
		c.mu.Lock()
		c.liked[id] = wasLiked
		c.applyLikeDelta(id, -delta)
		c.mu.Unlock()
		return wasLiked, err
	}
	return !wasLiked, nil
}

// applyLikeDelta moves the snapshot counter, clamped at zero. Callers hold mu.
func (c *Catalog) applyLikeDelta(id string, delta int) {
	for i := range c.products {
		if c.products[i].ID == id {
			likes := c.products[i].Likes + delta
			if likes < 0 {
				likes = 0
			}
			c.products[i].Likes = likes
			return
		}
	}
}

func collectTags(products []product.Product) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, p := range products {
		for _, t := range p.Tags {
			if t != "" && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
		for _, t := range p.TagsEn {
			if t != "" && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}

// matchesSearch reports whether the query appears in any searchable text field.
func matchesSearch(p product.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.NameEn), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.DescriptionEn), query) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	for _, t := range p.TagsEn {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}
