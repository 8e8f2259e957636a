package product

import (
	"time"

	"github.com/jaevor/go-nanoid"
)

type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	gen, err := nanoid.Standard(21)
	if err != nil {
		// only reachable with an out-of-range length constant
		panic(err)
	}
	return &Service{repo: repo, newID: gen}
}

func (s *Service) List(adminMode bool) ([]Product, error) {
	return s.repo.List(adminMode)
}

func (s *Service) ListByIDs(ids []string) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

// Create assigns identity and timestamps; counters start at zero. Visibility
// defaulting happens at the request boundary, not here.
func (s *Service) Create(p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	p.ID = s.newID()
	p.Views = 0
	p.Likes = 0
	p.CreatedAt = now
	p.UpdatedAt = now
	p.normalizeLists()
	return s.repo.Create(p)
}

func (s *Service) Update(id string, patch Patch) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, patch, now)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

func (s *Service) ToggleActive(id string) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.ToggleActive(id, now)
}

func (s *Service) IncrementViews(id string) (int, error) {
	return s.repo.IncrementViews(id)
}

func (s *Service) AddLikes(id string, delta int) (int, error) {
	return s.repo.AddLikes(id, delta)
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(products []Product) error {
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = s.newID()
		}
	}
	return s.repo.Reset(products)
}
