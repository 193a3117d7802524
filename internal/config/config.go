package config

import "os"

// DatabaseConfig returns host, port, user, password, database name
func DatabaseConfig() (string, string, string, string, string) {
	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "screenlist")
	password := GetEnv("DB_PASS", "")
	name := GetEnv("DB_NAME", "screenlist")
	return host, port, user, password, name
}

// RedisConfig returns host, port, password
func RedisConfig() (string, string, string) {
	host := GetEnv("R_HOST", "redis")
	port := GetEnv("R_PORT", "6379")
	password := GetEnv("R_PASS", "")
	return host, port, password
}

// CatalogConfig returns the TMDb base URL and API key. The key may be empty;
// callers degrade instead of crashing when it is.
func CatalogConfig() (string, string) {
	baseURL := GetEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	apiKey := GetEnv("TMDB_API_KEY", "")
	return baseURL, apiKey
}

// JWTSecret returns the signing secret for access tokens.
func JWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

// GetEnv retrieves values from environment files based on the key it matches,
// returns a string (value) if not empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
