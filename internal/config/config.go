package config

import "os"

// Config is everything the process reads from the environment. The
// storage driver is fixed here, once, at startup; nothing downstream
// branches on it.
type Config struct {
	Port     string
	DBDriver string // "sqlite" or "mysql"
	DBDSN    string

	JWTSecret   string
	AllowOrigin string

	// Bootstrap admin, seeded only when user_profiles is empty.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads the configuration, falling back to local-development
// defaults.
func Load() Config {
	return Config{
		Port:          getenv("PORT", "3001"),
		DBDriver:      getenv("POS_DB_DRIVER", "sqlite"),
		DBDSN:         getenv("POS_DB_DSN", "./cream_roast.db"),
		JWTSecret:     getenv("JWT_SECRET", "demo-secret"),
		AllowOrigin:   getenv("POS_ALLOW_ORIGIN", "http://localhost:5173"),
		AdminName:     getenv("POS_ADMIN_NAME", "Administrador"),
		AdminEmail:    getenv("POS_ADMIN_EMAIL", "admin@creamroast.com"),
		AdminPassword: getenv("POS_ADMIN_PASSWORD", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
