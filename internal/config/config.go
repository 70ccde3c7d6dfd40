package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Metadata and blob backend names accepted by METADATA_BACKEND and BLOB_BACKEND.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendLocal    = "local"
	BackendMinIO    = "minio"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MongoConfig holds document store settings for the files collection.
type MongoConfig struct {
	Host              string
	Port              string
	User              string
	Password          string
	Database          string
	Collection        string
	MaxPoolSize       int
	ConnectTimeoutSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// BlobConfig selects where uploaded bytes are written.
type BlobConfig struct {
	Backend string
	Dir     string
}

// RedisConfig configures the optional record cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTLSec   int
}

// ConnectTimeout is the dial and first-ping budget for the client pool.
func (c MongoConfig) ConnectTimeout() time.Duration {
	if c.ConnectTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ConnectTimeoutSec) * time.Second
}

// TTL is how long a cached record lives. Non-positive values mean no expiry.
func (c RedisConfig) TTL() time.Duration {
	if c.TTLSec <= 0 {
		return 0
	}
	return time.Duration(c.TTLSec) * time.Second
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost         string // host:port advertised in the Swagger document
	Port            string
	Timezone        string
	UploadMaxBytes  int
	MetadataBackend string
	Mongo           MongoConfig
	Database        DatabaseConfig
	Blob            BlobConfig
	MinIO           MinIOConfig
	Redis           RedisConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:         getEnv("APP_HOST", "localhost:8080"),
		Port:            getEnv("PORT", "8080"),
		Timezone:        getEnv("APP_TIMEZONE", "UTC"),
		UploadMaxBytes:  getEnvInt("UPLOAD_MAX_BYTES", 10<<20),
		MetadataBackend: getEnv("METADATA_BACKEND", BackendMongo),
		Mongo: MongoConfig{
			Host:              getEnv("MONGO_HOST", "localhost"),
			Port:              getEnv("MONGO_PORT", "27017"),
			User:              getEnv("MONGO_USER", ""),
			Password:          getEnv("MONGO_PASSWORD", ""),
			Database:          getEnv("MONGO_DATABASE", "file-uploader"),
			Collection:        getEnv("MONGO_COLLECTION", "files"),
			MaxPoolSize:       getEnvInt("MONGO_MAX_POOL_SIZE", 20),
			ConnectTimeoutSec: getEnvInt("MONGO_CONNECT_TIMEOUT_SEC", 10),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Blob: BlobConfig{
			Backend: getEnv("BLOB_BACKEND", BackendLocal),
			Dir:     getEnv("BLOB_DIR", "temp"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTLSec:   getEnvInt("REDIS_TTL_SEC", 3600),
		},
	}
}

// Validate rejects unknown backend names and missing settings for the
// selected backends, so misconfiguration fails before any connection attempt.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}

	switch c.MetadataBackend {
	case BackendMongo:
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			errs = append(errs, errors.New("MONGO_DATABASE and MONGO_COLLECTION are required"))
		}
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("DB_HOST, DB_USER and DB_NAME are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown METADATA_BACKEND %q", c.MetadataBackend))
	}

	switch c.Blob.Backend {
	case BackendLocal:
		if c.Blob.Dir == "" {
			errs = append(errs, errors.New("BLOB_DIR is required"))
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT and MINIO_BUCKET are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown BLOB_BACKEND %q", c.Blob.Backend))
	}

	return errors.Join(errs...)
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
