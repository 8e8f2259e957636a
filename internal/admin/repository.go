package admin

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Repository interface {
	List() ([]Admin, error)
	GetByID(id string) (Admin, error)
	GetByEmail(email string) (Admin, error)
	Create(a Admin) (Admin, error)
	Update(id string, a Admin) (Admin, error)
	Delete(id string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Admin
}

func NewInMemoryRepository(seed []Admin) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Admin, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List() ([]Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Admin, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.storage {
		if a.ID == id {
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.storage {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
}

func (r *InMemoryRepository) Create(a Admin) (Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, have := range r.storage {
		if strings.EqualFold(have.Email, a.Email) {
			return Admin{}, ErrEmailExists
		}
	}
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) Update(id string, a Admin) (Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			a.ID = id
			r.storage[i] = a
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
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
