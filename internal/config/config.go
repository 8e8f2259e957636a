// Package config collects the environment the server needs at startup.
package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	RedisAddr   string
	UploadDir   string
	AllowSeed   bool
}

// Load reads configuration from the environment. DatabaseURL and JWTSecret
// have no defaults; main fails fast when they are missing.
func Load() Config {
	return Config{
		Addr:        getenv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		UploadDir:   getenv("UPLOAD_DIR", "./uploads"),
		AllowSeed:   os.Getenv("ALLOW_SEED") == "1",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
