package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported vector store backends.
const (
	VectorBackendChromem  = "chromem"
	VectorBackendPGVector = "pgvector"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// URL takes precedence over the individual components when set.
type DatabaseConfig struct {
	URL                string `yaml:"url"`
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Name               string `yaml:"name"`
	SSLMode            string `yaml:"sslmode"`
	MaxOpenConns       int    `yaml:"max_open_conns"`
	MaxIdleConns       int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `yaml:"conn_max_lifetime_sec"`
	AutoMigrate        bool   `yaml:"auto_migrate"`
}

// VectorConfig holds the chunk store settings. Path, EmbeddingModel and
// Dimensions are echoed by the stats endpoint and only change on redeploy.
type VectorConfig struct {
	Backend        string `yaml:"backend"`
	Path           string `yaml:"path"`
	Collection     string `yaml:"collection"`
	Compress       bool   `yaml:"compress"`
	EmbeddingModel string `yaml:"embedding_model"`
	Dimensions     int    `yaml:"dimensions"`
}

// MinIOConfig holds object storage settings used for vector store snapshots.
// Snapshots are disabled when Endpoint is empty.
type MinIOConfig struct {
	Endpoint     string `yaml:"endpoint"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	Bucket       string `yaml:"bucket"`
	UseSSL       bool   `yaml:"use_ssl"`
	URLExpirySec int    `yaml:"url_expiry_sec"`
}

// Enabled reports whether snapshot storage is configured.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is built once by Load and passed explicitly to the components that need it.
type AppConfig struct {
	Name        string         `yaml:"name"`
	Version     string         `yaml:"version"`
	Port        string         `yaml:"port"`
	Timezone    string         `yaml:"timezone"`
	LogLevel    string         `yaml:"log_level"`
	APIPrefix   string         `yaml:"api_prefix"`
	CORSOrigins []string       `yaml:"cors_origins"`
	Database    DatabaseConfig `yaml:"database"`
	Vector      VectorConfig   `yaml:"vector"`
	MinIO       MinIOConfig    `yaml:"minio"`
}

// Defaults returns the configuration used when neither a YAML file nor
// environment variables provide a value.
func Defaults() AppConfig {
	return AppConfig{
		Name:        "Campus API",
		Version:     "1.0.0",
		Port:        "8080",
		Timezone:    "UTC",
		LogLevel:    "info",
		APIPrefix:   "/api/v1",
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:8000"},
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
			AutoMigrate:        true,
		},
		Vector: VectorConfig{
			Backend:        VectorBackendChromem,
			Path:           "./chroma_db_store",
			Collection:     "documents",
			EmbeddingModel: "models/text-embedding-004",
			Dimensions:     768,
		},
		MinIO: MinIOConfig{
			URLExpirySec: 900,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing order of precedence.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() (*AppConfig, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.Name = getEnv("APP_NAME", cfg.Name)
	cfg.Version = getEnv("APP_VERSION", cfg.Version)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Timezone = getEnv("APP_TIMEZONE", cfg.Timezone)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.APIPrefix = getEnv("API_PREFIX", cfg.APIPrefix)
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)

	db := &cfg.Database
	db.URL = getEnv("DATABASE_URL", db.URL)
	db.Host = getEnv("DB_HOST", db.Host)
	db.Port = getEnv("DB_PORT", db.Port)
	db.User = getEnv("DB_USER", db.User)
	db.Password = getEnv("DB_PASSWORD", db.Password)
	db.Name = getEnv("DB_NAME", db.Name)
	db.SSLMode = getEnv("DB_SSLMODE", db.SSLMode)
	db.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", db.MaxIdleConns)
	db.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", db.ConnMaxLifetimeSec)
	db.AutoMigrate = getEnvBool("DB_AUTO_MIGRATE", db.AutoMigrate)

	vec := &cfg.Vector
	vec.Backend = strings.ToLower(getEnv("VECTOR_BACKEND", vec.Backend))
	vec.Path = getEnv("VECTOR_DB_PATH", vec.Path)
	vec.Collection = getEnv("VECTOR_COLLECTION", vec.Collection)
	vec.Compress = getEnvBool("VECTOR_COMPRESS", vec.Compress)
	vec.EmbeddingModel = getEnv("EMBEDDING_MODEL", vec.EmbeddingModel)
	vec.Dimensions = getEnvInt("EMBEDDING_DIMENSIONS", vec.Dimensions)

	mio := &cfg.MinIO
	mio.Endpoint = getEnv("MINIO_ENDPOINT", mio.Endpoint)
	mio.AccessKey = getEnv("MINIO_ACCESS_KEY", mio.AccessKey)
	mio.SecretKey = getEnv("MINIO_SECRET_KEY", mio.SecretKey)
	mio.Bucket = getEnv("MINIO_BUCKET", mio.Bucket)
	mio.UseSSL = getEnvBool("MINIO_USE_SSL", mio.UseSSL)
	mio.URLExpirySec = getEnvInt("SNAPSHOT_URL_EXPIRY_SEC", mio.URLExpirySec)

	switch vec.Backend {
	case VectorBackendChromem, VectorBackendPGVector:
	default:
		return nil, fmt.Errorf("unsupported vector backend: %q", vec.Backend)
	}
	if vec.Dimensions <= 0 {
		return nil, fmt.Errorf("embedding dimensions must be positive, got %d", vec.Dimensions)
	}

	return &cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
