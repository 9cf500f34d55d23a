package config

import (
	"os"
	"time"
)

const secretEnvKey = "JWT_SECRET"

const defaultTokenTTLHours = 7 * 24

type AuthConfig struct {
	SigningSecret string `yaml:"secret"`
	TokenTTLHours int64  `yaml:"token-ttl-hours"`
}

// Secret prefers the environment so the signing key can stay out of the
// config file in deployments.
func (s *AuthConfig) Secret() string {
	if env := os.Getenv(secretEnvKey); env != "" {
		return env
	}
	return s.SigningSecret
}

func (s *AuthConfig) TokenTTL() time.Duration {
	hours := s.TokenTTLHours
	if hours <= 0 {
		hours = defaultTokenTTLHours
	}
	return time.Duration(hours) * time.Hour
}
