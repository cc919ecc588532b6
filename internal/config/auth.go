package config

// Auth carries the optional shared-secret gate. When APIKey is empty the gate
// is disabled and every request passes.
type Auth struct {
	APIKey string `env:"API_KEY"`
}
