package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DefaultPath = "configs/config.yaml"

	minSecretLength = 32
)

type Config struct {
	Env       string          `yaml:"env"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Upload    UploadConfig    `yaml:"upload"`
	Storage   StorageConfig   `yaml:"storage"`
	Admin     AdminConfig     `yaml:"admin"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BodyLimit       int64         `yaml:"body_limit"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type JWTConfig struct {
	Secret           string `yaml:"secret"`
	RefreshSecret    string `yaml:"refresh_secret"`
	ExpiresIn        string `yaml:"expires_in"`
	RefreshExpiresIn string `yaml:"refresh_expires_in"`

	AccessTTL  time.Duration `yaml:"-"`
	RefreshTTL time.Duration `yaml:"-"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

type RateLimitConfig struct {
	WindowMS    int64  `yaml:"window_ms"`
	MaxRequests int    `yaml:"max_requests"`
	RedisURL    string `yaml:"redis_url"`
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMS) * time.Millisecond
}

type UploadConfig struct {
	Dir               string   `yaml:"dir"`
	MaxFileSize       int64    `yaml:"max_file_size"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PublicURL       string `yaml:"public_url"`
	Prefix          string `yaml:"prefix"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

// Load reads the yaml file at path (missing is fine), applies environment
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultPath
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.overrideFromEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	if val := firstEnv("APP_ENV", "NODE_ENV"); val != "" {
		c.Env = val
	}

	// Server
	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}
	if val := os.Getenv("GIN_MODE"); val != "" {
		c.Server.Mode = val
	}

	// Database
	if val := os.Getenv("DATABASE_DRIVER"); val != "" {
		c.Database.Driver = val
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Database.URL = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("JWT_REFRESH_SECRET"); val != "" {
		c.JWT.RefreshSecret = val
	}
	if val := os.Getenv("JWT_EXPIRES_IN"); val != "" {
		c.JWT.ExpiresIn = val
	}
	if val := os.Getenv("JWT_REFRESH_EXPIRES_IN"); val != "" {
		c.JWT.RefreshExpiresIn = val
	}

	if val := os.Getenv("CORS_ORIGIN"); val != "" {
		c.CORS.Origins = splitList(val)
	}

	// Rate limiting
	if val := os.Getenv("RATE_LIMIT_WINDOW_MS"); val != "" {
		if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.RateLimit.WindowMS = ms
		}
	}
	if val := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.RateLimit.MaxRequests = n
		}
	}
	if val := os.Getenv("REDIS_URL"); val != "" {
		c.RateLimit.RedisURL = val
	}

	// Upload
	if val := os.Getenv("MAX_FILE_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.Upload.MaxFileSize = size
		}
	}
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Upload.Dir = val
	}

	// S3
	if val := os.Getenv("S3_BUCKET"); val != "" {
		c.Storage.S3.Bucket = val
	}
	if val := os.Getenv("S3_REGION"); val != "" {
		c.Storage.S3.Region = val
	}
	if val := os.Getenv("S3_ENDPOINT"); val != "" {
		c.Storage.S3.Endpoint = val
	}
	if val := os.Getenv("S3_ACCESS_KEY_ID"); val != "" {
		c.Storage.S3.AccessKeyID = val
	}
	if val := os.Getenv("S3_SECRET_ACCESS_KEY"); val != "" {
		c.Storage.S3.SecretAccessKey = val
	}
	if val := os.Getenv("S3_PUBLIC_URL"); val != "" {
		c.Storage.S3.PublicURL = val
	}
	if val := os.Getenv("S3_USE_PATH_STYLE"); val != "" {
		c.Storage.S3.UsePathStyle, _ = strconv.ParseBool(val)
	}

	// Seed admin
	if val := os.Getenv("ADMIN_EMAIL"); val != "" {
		c.Admin.Email = val
	}
	if val := os.Getenv("ADMIN_PASSWORD"); val != "" {
		c.Admin.Password = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FILE"); val != "" {
		c.Log.File = val
	}
}

func (c *Config) setDefaults() {
	if c.Env == "" {
		c.Env = EnvDevelopment
	}

	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.Mode == "" {
		if c.IsProduction() {
			c.Server.Mode = "release"
		} else {
			c.Server.Mode = "debug"
		}
	}
	if c.Server.BodyLimit == 0 {
		c.Server.BodyLimit = 10 << 20 // 10MB
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}

	if c.JWT.ExpiresIn == "" {
		c.JWT.ExpiresIn = "7d"
	}
	if c.JWT.RefreshExpiresIn == "" {
		c.JWT.RefreshExpiresIn = "30d"
	}

	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	if c.RateLimit.WindowMS == 0 {
		c.RateLimit.WindowMS = 900000 // 15 minutes
	}
	if c.RateLimit.MaxRequests == 0 {
		c.RateLimit.MaxRequests = 100
	}

	if c.Upload.Dir == "" {
		c.Upload.Dir = "./uploads"
	}
	if c.Upload.MaxFileSize == 0 {
		c.Upload.MaxFileSize = 5242880 // 5MB
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		c.Upload.AllowedExtensions = []string{"jpg", "jpeg", "png", "gif", "svg", "webp", "ico"}
	}

	if c.Storage.S3.Region == "" {
		c.Storage.S3.Region = "us-east-1"
	}

	if c.Admin.Email == "" {
		c.Admin.Email = "admin@banglaquotes.com"
	}
	if c.Admin.Password == "" {
		c.Admin.Password = "Admin@123456"
	}
	if c.Admin.Name == "" {
		c.Admin.Name = "Super Admin"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "./logs/app.log"
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = 100
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = 30
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 10
	}
}

// Validate checks every setting and reports all problems at once. It also
// resolves the token lifetimes.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be development, production or test, got %q", c.Env))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.Database.Driver))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	if len(c.JWT.Secret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength))
	}
	if len(c.JWT.RefreshSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_REFRESH_SECRET must be at least %d characters", minSecretLength))
	}
	if c.JWT.Secret != "" && c.JWT.Secret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ"))
	}

	var err error
	if c.JWT.AccessTTL, err = ParseDuration(c.JWT.ExpiresIn); err != nil {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_IN: %w", err))
	}
	if c.JWT.RefreshTTL, err = ParseDuration(c.JWT.RefreshExpiresIn); err != nil {
		errs = append(errs, fmt.Errorf("JWT_REFRESH_EXPIRES_IN: %w", err))
	}

	if c.RateLimit.WindowMS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW_MS must be positive"))
	}
	if c.RateLimit.MaxRequests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX_REQUESTS must be positive"))
	}

	if c.Upload.MaxFileSize <= 0 {
		errs = append(errs, errors.New("MAX_FILE_SIZE must be positive"))
	}
	if c.Storage.S3.Enabled() && (c.Storage.S3.AccessKeyID == "" || c.Storage.S3.SecretAccessKey == "") {
		errs = append(errs, errors.New("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required when S3_BUCKET is set"))
	}

	if _, err := mail.ParseAddress(c.Admin.Email); err != nil {
		errs = append(errs, fmt.Errorf("ADMIN_EMAIL is not a valid email: %w", err))
	}
	if len(c.Admin.Password) < 8 {
		errs = append(errs, errors.New("ADMIN_PASSWORD must be at least 8 characters"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// ParseDuration accepts Go durations plus a day suffix ("7d") and bare
// seconds ("3600").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be positive, got %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", s)
	}
	return d, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
