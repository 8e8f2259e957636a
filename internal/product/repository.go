package product

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	// List returns every product when adminMode is true, otherwise only
	// active ones. Newest first by createdAt.
	List(adminMode bool) ([]Product, error)
	// ListByIDs returns the products whose ids appear in the given set;
	// unknown ids are skipped. Used to enrich client wishlists.
	ListByIDs(ids []string) ([]Product, error)
	GetByID(id string) (Product, error)
	Create(p Product) (Product, error)
	// Update applies a merge-patch: only fields set on the patch change.
	Update(id string, patch Patch, updatedAt string) (Product, error)
	Delete(id string) error
	// ToggleActive flips the stored active flag atomically relative to the
	// current row value, so two admins never race through stale client state.
	ToggleActive(id string, updatedAt string) (Product, error)
	IncrementViews(id string) (int, error)
	// AddLikes moves the like counter by delta (+1/-1), clamped at zero.
	AddLikes(id string, delta int) (int, error)
	// Reset replaces all products with the provided list (used for dev / seeding)
	Reset(products []Product) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	for _, p := range seed {
		p.normalizeLists()
		r.storage = append(r.storage, p)
	}
	return r
}

func (r *InMemoryRepository) List(adminMode bool) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if !adminMode && !p.Active {
			continue
		}
		out = append(out, p)
	}
	// createdAt is RFC3339 so lexicographic order matches time order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (r *InMemoryRepository) ListByIDs(ids []string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]Product, 0, len(ids))
	for _, p := range r.storage {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.normalizeLists()
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id string, patch Patch, updatedAt string) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p := r.storage[i]
			patch.Apply(&p)
			p.normalizeLists()
			p.UpdatedAt = updatedAt
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ToggleActive(id string, updatedAt string) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Active = !r.storage[i].Active
			r.storage[i].UpdatedAt = updatedAt
			return r.storage[i], nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) IncrementViews(id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Views++
			return r.storage[i].Views, nil
		}
	}
	return 0, ErrNotFound
}

func (r *InMemoryRepository) AddLikes(id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			likes := r.storage[i].Likes + delta
			if likes < 0 {
				likes = 0
			}
			r.storage[i].Likes = likes
			return likes, nil
		}
	}
	return 0, ErrNotFound
}

// Reset replaces the whole in-memory storage with the provided products.
func (r *InMemoryRepository) Reset(products []Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = make([]Product, 0, len(products))
	for _, p := range products {
		p.normalizeLists()
		r.storage = append(r.storage, p)
	}
	return nil
}
