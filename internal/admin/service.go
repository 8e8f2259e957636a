package admin

import (
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	gen, err := nanoid.Standard(21)
	if err != nil {
		panic(err)
	}
	return &Service{repo: repo, newID: gen}
}

func (s *Service) List() ([]Admin, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Admin, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(a Admin) (Admin, error) {
	if _, err := s.repo.GetByEmail(a.Email); err == nil {
		return Admin{}, ErrEmailExists
	} else if err != ErrNotFound {
		return Admin{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}
	a.Password = string(hashed)
	a.ID = s.newID()
	a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(a)
}

// Update applies a merge-patch to an account. The password is rehashed only
// when the patch carries a non-empty value; an omitted or blank password
// leaves the stored hash alone.
func (s *Service) Update(id string, patch Patch) (Admin, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return Admin{}, err
	}

	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Email != nil && !strings.EqualFold(*patch.Email, current.Email) {
		if _, err := s.repo.GetByEmail(*patch.Email); err == nil {
			return Admin{}, ErrEmailExists
		} else if err != ErrNotFound {
			return Admin{}, err
		}
		current.Email = *patch.Email
	}
	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return Admin{}, err
		}
		current.Password = string(hashed)
	}

	return s.repo.Update(id, current)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

func (s *Service) Authenticate(email, password string) (Admin, error) {
	a, err := s.repo.GetByEmail(email)
	if err != nil {
		return Admin{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) != nil {
		return Admin{}, ErrInvalidCredentials
	}
	return a, nil
}
