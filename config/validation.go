package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the fields a running server cannot do
// without are present. Production additionally requires credentials
// that development defaults paper over.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "must be set"}
	}
	if cfg.DBName == "" {
		return ValidationError{Field: "DB_NAME", Message: "must be set"}
	}
	if IsProduction() {
		if cfg.DBUser == "" {
			return ValidationError{Field: "DB_USER", Message: "required in production"}
		}
		if cfg.DBPassword == "" {
			return ValidationError{Field: "DB_PASSWORD", Message: "required in production"}
		}
		if cfg.DBSSLMode == "disable" {
			return ValidationError{Field: "DB_SSL_MODE", Message: "must not be disabled in production"}
		}
	}
	return nil
}
