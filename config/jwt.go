package config

import (
	"time"
)

const defaultJWTExpiration = 24 * time.Hour

type JWTConfig struct {
	Secret     []byte
	Expiration time.Duration
}

func NewJWTConfig(secret string, expiration time.Duration) JWTConfig {
	if expiration <= 0 {
		expiration = defaultJWTExpiration
	}
	return JWTConfig{
		Secret:     []byte(secret),
		Expiration: expiration,
	}
}
