package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/noorcaftan/boutique-backend/internal/admin"
	"github.com/noorcaftan/boutique-backend/internal/cache"
	"github.com/noorcaftan/boutique-backend/internal/config"
	"github.com/noorcaftan/boutique-backend/internal/product"
	"github.com/noorcaftan/boutique-backend/internal/settings"
	"github.com/noorcaftan/boutique-backend/internal/upload"
)

const shutdownTimeout = 30 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		panic("JWT_SECRET is not set")
	}

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	ensureSchema(db)

	var settingsCache *cache.Cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		settingsCache = cache.New(redisClient, "boutique:", 5*time.Minute)
		log.Printf("settings cache enabled via redis at %s", cfg.RedisAddr)
	}

	productHandler := product.NewHandler(product.NewService(product.NewPostgresRepository(db)))
	adminHandler := admin.NewHandler(admin.NewService(admin.NewPostgresRepository(db)), cfg.JWTSecret)
	settingsHandler := settings.NewHandler(settings.NewService(settings.NewPostgresRepository(db), settingsCache))
	uploadHandler := upload.NewHandler(cfg.UploadDir)

	// public routes first; everything registered after the JWT middleware
	// requires a session
	productHandler.RegisterPublicRoutes(app)
	settingsHandler.RegisterPublicRoutes(app)
	adminHandler.RegisterPublicRoutes(app)
	app.Static("/uploads", cfg.UploadDir)

	if cfg.AllowSeed {
		log.Printf("warning: product seeding endpoint is enabled")
	}

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session token"})
		},
	}))

	productHandler.RegisterProtectedRoutes(app)
	adminHandler.RegisterProtectedRoutes(app)
	settingsHandler.RegisterProtectedRoutes(app)
	uploadHandler.RegisterProtectedRoutes(app)

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				return app.ShutdownWithContext(ctx)
			},
			"db": func(ctx context.Context) error {
				return db.Close()
			},
			"redis": func(ctx context.Context) error {
				if redisClient == nil {
					return nil
				}
				return redisClient.Close()
			},
		},
	)
	os.Exit(<-wait)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// ensureSchema creates the tables on first run. List columns are TEXT holding
// JSON-encoded arrays; timestamps are RFC3339 strings so ORDER BY created_at
// sorts chronologically.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS product (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			name_en TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			description_en TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '',
			price_en TEXT NOT NULL DEFAULT '',
			details TEXT,
			details_en TEXT,
			images TEXT,
			tags TEXT,
			tags_en TEXT,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			views INT NOT NULL DEFAULT 0,
			likes INT NOT NULL DEFAULT 0,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS admin (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INT PRIMARY KEY,
			phone TEXT NOT NULL DEFAULT '',
			whatsapp TEXT NOT NULL DEFAULT '',
			instagram TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			hero_image TEXT NOT NULL DEFAULT '',
			hero_image_mobile TEXT NOT NULL DEFAULT '',
			about TEXT NOT NULL DEFAULT '',
			about_en TEXT NOT NULL DEFAULT '',
			updated_at TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
