package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort       = "5000"
	defaultAppEnv        = "local"
	defaultDBDriver      = "mongo"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "mern_auth"
	defaultDBTimeout     = 10 * time.Second
	defaultRedisAddr     = "localhost:6379"
	defaultCacheTTL      = 5 * time.Minute
	defaultJWTSecret     = "change-me-in-production"
	defaultBcryptCost    = 10
	defaultAdminUsername = "admin"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json, then .env, then the process environment on top of
// the built-in defaults. Only the first call does any work.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":             defaultAppEnv,
		"APP_PORT":            defaultAppPort,
		"DB_DRIVER":           defaultDBDriver,
		"MONGO_URI":           defaultMongoURI,
		"MONGO_DATABASE":      defaultMongoDatabase,
		"REDIS_ADDR":          defaultRedisAddr,
		"REDIS_PASSWORD":      "",
		"JWT_SECRET":          defaultJWTSecret,
		"ADMIN_USERNAME":      defaultAdminUsername,
		"ADMIN_PASSWORD":      "",
		"ADMIN_PASSWORD_HASH": "",
	}
}

func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }
func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

// ── Database ─────────────────────────────────────────────────────────────────

// DatabaseDriver returns "mongo" or "memory". Unknown values fall back to mongo.
func DatabaseDriver() string {
	_ = Load()

	driver := strings.ToLower(get("DB_DRIVER", defaultDBDriver))
	switch driver {
	case "mongo", "memory":
		return driver
	default:
		return defaultDBDriver
	}
}

func MongoURI() string      { _ = Load(); return get("MONGO_URI", defaultMongoURI) }
func MongoDatabase() string { _ = Load(); return get("MONGO_DATABASE", defaultMongoDatabase) }

func DBTimeout() time.Duration {
	_ = Load()
	return Duration("DB_TIMEOUT", defaultDBTimeout)
}

// ── Cache ────────────────────────────────────────────────────────────────────

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

func CacheTTL() time.Duration {
	_ = Load()
	return Duration("CACHE_TTL", defaultCacheTTL)
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func JWTSecret() string { _ = Load(); return get("JWT_SECRET", defaultJWTSecret) }

// BcryptCost reads BCRYPT_SALT_ROUNDS, the name the frontend deployment already uses.
func BcryptCost() int {
	_ = Load()
	return Int("BCRYPT_SALT_ROUNDS", defaultBcryptCost)
}

func AdminUsername() string     { _ = Load(); return get("ADMIN_USERNAME", defaultAdminUsername) }
func AdminPassword() string     { _ = Load(); return get("ADMIN_PASSWORD", "") }
func AdminPasswordHash() string { _ = Load(); return get("ADMIN_PASSWORD_HASH", "") }
func AdminGuard() bool          { _ = Load(); return Bool("ADMIN_GUARD", false) }

// ── Logging ──────────────────────────────────────────────────────────────────

func LogToMongo() bool { _ = Load(); return Bool("LOG_MONGO", false) }

// ── Typed readers ────────────────────────────────────────────────────────────

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Int reads key as an integer, returning fallback when unset or malformed.
func Int(key string, fallback int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// Bool reads key as a boolean ("true", "1", "yes" …).
func Bool(key string, fallback bool) bool {
	raw := strings.ToLower(Get(key, ""))
	switch raw {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// Duration reads key as a time.Duration ("30s", "5m"). A bare number is seconds.
func Duration(key string, fallback time.Duration) time.Duration {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Set overrides a single key at runtime. Used by the CLI flags and tests.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}

// ── Loading ──────────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mergeEnviron(loaded)

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case bool, float64:
			out[k] = fmt.Sprint(v)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = value
	}
	return nil
}

// mergeEnviron lets real environment variables win over files, so containers
// can be configured without a .env.
func mergeEnviron(out map[string]string) {
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, known := out[key]; known || isAppKey(key) {
			out[key] = value
		}
	}
}

var appKeyPrefixes = []string{"APP_", "DB_", "MONGO_", "REDIS_", "CACHE_", "JWT_", "BCRYPT_", "ADMIN_", "LOG_", "MAX_"}

func isAppKey(key string) bool {
	for _, p := range appKeyPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}
