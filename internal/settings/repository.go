package settings

import (
	"database/sql"
	"sync"
)

// Repository reads and writes the settings singleton.
type Repository interface {
	// Get returns the stored settings, or the zero value when the row has
	// never been written.
	Get() (Settings, error)
	// Upsert writes the whole record under the fixed singleton key.
	Upsert(s Settings) error
}

// InMemoryRepository is used for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	current Settings
}

func NewInMemoryRepository(seed Settings) *InMemoryRepository {
	return &InMemoryRepository{current: seed}
}

func (r *InMemoryRepository) Get() (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, nil
}

func (r *InMemoryRepository) Upsert(s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = s
	return nil
}

// PostgresRepository keeps the singleton in a one-row `settings` table.
type PostgresRepository struct {
	db *sql.DB
}

const (
	getSettingsQuery = `
		SELECT phone, whatsapp, instagram, email, hero_image, hero_image_mobile, about, about_en, updated_at
		FROM settings
		WHERE id = 1
	`
	upsertSettingsQuery = `
		INSERT INTO settings (id, phone, whatsapp, instagram, email, hero_image, hero_image_mobile, about, about_en, updated_at)
		VALUES (1,$1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			phone = EXCLUDED.phone,
			whatsapp = EXCLUDED.whatsapp,
			instagram = EXCLUDED.instagram,
			email = EXCLUDED.email,
			hero_image = EXCLUDED.hero_image,
			hero_image_mobile = EXCLUDED.hero_image_mobile,
			about = EXCLUDED.about,
			about_en = EXCLUDED.about_en,
			updated_at = EXCLUDED.updated_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get() (Settings, error) {
	s := Settings{}
	var updatedAt sql.NullString
	err := r.db.QueryRow(getSettingsQuery).Scan(
		&s.Phone,
		&s.Whatsapp,
		&s.Instagram,
		&s.Email,
		&s.HeroImage,
		&s.HeroImageMobile,
		&s.About,
		&s.AboutEn,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// never written yet; defaults are fine
			return Settings{}, nil
		}
		return Settings{}, err
	}
	if updatedAt.Valid {
		s.UpdatedAt = updatedAt.String
	}
	return s, nil
}

func (r *PostgresRepository) Upsert(s Settings) error {
	_, err := r.db.Exec(
		upsertSettingsQuery,
		s.Phone,
		s.Whatsapp,
		s.Instagram,
		s.Email,
		s.HeroImage,
		s.HeroImageMobile,
		s.About,
		s.AboutEn,
		s.UpdatedAt,
	)
	return err
}
