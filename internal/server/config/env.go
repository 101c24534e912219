package config

import (
	"os"
	"strconv"
	"strings"
)

// parseEnv overlays the environment variables the deployment sets:
//
//	PORT                    bare port, becomes ":PORT"
//	HTTP_ADDR               full bind address (wins over PORT)
//	DATABASE_DSN            PostgreSQL DSN
//	STORAGE_TYPE            postgres | memory
//	JWT_SECRET              session signing secret
//	NODE_ENV / APP_ENV      "production" turns on production mode
//	PRODUCTION_DOMAIN       allowed CORS origin
//	ENFORCE_TASK_OWNERSHIP  true | false
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := os.LookupEnv("HTTP_ADDR"); ok && v != "" {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("STORAGE_TYPE"); ok && v != "" {
		config.StorageType = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		config.SecretKey = v
	}
	for _, name := range []string{"NODE_ENV", "APP_ENV"} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			config.Production = strings.EqualFold(v, "production")
		}
	}
	if v, ok := os.LookupEnv("PRODUCTION_DOMAIN"); ok && v != "" {
		config.AllowedOrigin = v
	}
	if v, ok := os.LookupEnv("ENFORCE_TASK_OWNERSHIP"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.EnforceTaskOwnership = b
		}
	}
}
