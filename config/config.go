package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Session   SessionConfig
	Upload    UploadConfig
	Model     ModelConfig
	CORS      CORSConfig
	Retention RetentionConfig
	Admin     AdminConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type SessionConfig struct {
	CookieName string
	TTLHours   int
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type ModelConfig struct {
	Path string
	// LibraryPath points at the onnxruntime shared library; empty means the
	// platform default lookup.
	LibraryPath    string
	InputName      string
	OutputName     string
	InputSize      int
	TimeoutSeconds int
}

type CORSConfig struct {
	AllowedOrigins string
}

type RetentionConfig struct {
	MaxAgeDays    int
	SweepEveryHrs int
}

type AdminConfig struct {
	Username string
	Email    string
	Password string
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtExpiry, err := getIntEnv("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}

	sessionTTL, err := getIntEnv("SESSION_TTL_HOURS", 72)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}

	maxUpload, err := getIntEnv("UPLOAD_MAX_MB", 16)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_MB: %w", err)
	}

	inputSize, err := getIntEnv("MODEL_INPUT_SIZE", 224)
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_INPUT_SIZE: %w", err)
	}

	inferTimeout, err := getIntEnv("MODEL_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_TIMEOUT_SECONDS: %w", err)
	}

	retentionDays, err := getIntEnv("LOG_RETENTION_DAYS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_RETENTION_DAYS: %w", err)
	}

	sweepEvery, err := getIntEnv("LOG_SWEEP_EVERY_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_SWEEP_EVERY_HOURS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "plantdisease"),
			Password: getEnv("DB_PASSWORD", "plantdisease_dev_password"),
			Name:     getEnv("DB_NAME", "plantdisease"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
			ExpiryHours: jwtExpiry,
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "sid"),
			TTLHours:   sessionTTL,
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "static/uploads"),
			MaxBytes: int64(maxUpload) << 20,
		},
		Model: ModelConfig{
			Path:           getEnv("MODEL_PATH", "cnn.onnx"),
			LibraryPath:    getEnv("MODEL_ONNXRUNTIME_LIB", ""),
			InputName:      getEnv("MODEL_INPUT_NAME", "input"),
			OutputName:     getEnv("MODEL_OUTPUT_NAME", "output"),
			InputSize:      inputSize,
			TimeoutSeconds: inferTimeout,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Retention: RetentionConfig{
			MaxAgeDays:    retentionDays,
			SweepEveryHrs: sweepEvery,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@localhost"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
