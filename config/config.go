package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	PgHost    string
	PgPort    string
	PgUser    string
	PgPass    string
	PgDBName  string
	PgSSLMode string
	BaseURL   string
	LogLevel  string

	// Upload storage
	StorageDriver string
	StorageDir    string
	GCSBucket     string
	GCPCreds      string
	ImportDir     string

	// Client side
	GraphQLURL string
	UploadURL  string
	ClientName string
	PlanID     string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Port:      getenvDefault("PORT", "8000"),
		PgHost:    os.Getenv("PG_HOST"),
		PgPort:    getenvDefault("PG_PORT", "5432"),
		PgUser:    os.Getenv("PG_USER"),
		PgPass:    os.Getenv("PG_PASS"),
		PgDBName:  os.Getenv("PG_DBNAME"),
		PgSSLMode: getenvDefault("PG_SSLMODE", "disable"),
		BaseURL:   getenvDefault("BASE_URL", "http://localhost:8000/media"),
		LogLevel:  getenvDefault("LOG_LEVEL", "info"),

		StorageDriver: getenvDefault("STORAGE_DRIVER", "local"),
		StorageDir:    getenvDefault("STORAGE_DIR", "./static/uploads"),
		GCSBucket:     os.Getenv("GCS_BUCKET"),
		GCPCreds:      os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ImportDir:     os.Getenv("IMPORT_DIR"),

		GraphQLURL: getenvDefault("GRAPHQL_URL", "http://localhost:8000/graphql"),
		UploadURL:  getenvDefault("UPLOAD_URL", "http://localhost:8000/upload"),
		ClientName: os.Getenv("CLIENT_NAME"),
		PlanID:     os.Getenv("PLAN_ID"),
	}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
