package settings

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresGet_MissingRowReturnsZeroValue(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM settings").
		WillReturnRows(sqlmock.NewRows([]string{
			"phone", "whatsapp", "instagram", "email",
			"hero_image", "hero_image_mobile", "about", "about_en", "updated_at",
		}))

	got, err := NewPostgresRepository(db).Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != (Settings{}) {
		t.Fatalf("expected zero settings for missing row, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresUpsert_WritesSingletonRow(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO settings").
		WithArgs(
			"+96550001234", "+96550001234", "@noorcaftan", "hello@noorcaftan.com",
			"/uploads/hero.jpg", "/uploads/hero-m.jpg", "قفاطين فاخرة", "Luxury caftans",
			"2026-02-01T10:00:00Z",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPostgresRepository(db).Upsert(Settings{
		Phone:           "+96550001234",
		Whatsapp:        "+96550001234",
		Instagram:       "@noorcaftan",
		Email:           "hello@noorcaftan.com",
		HeroImage:       "/uploads/hero.jpg",
		HeroImageMobile: "/uploads/hero-m.jpg",
		About:           "قفاطين فاخرة",
		AboutEn:         "Luxury caftans",
		UpdatedAt:       "2026-02-01T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
