package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors Config for envconfig processing. Empty values mean
// "not set" and leave the previous layer untouched.
type envConfig struct {
	Addr                    string        `envconfig:"ADDR"`
	DatabaseDSN             string        `envconfig:"DATABASE_DSN"`
	SecretKey               string        `envconfig:"SECRET_KEY"`
	SessionValidityDuration time.Duration `envconfig:"SESSION_VALIDITY_DURATION"`
	AdminEmail              string        `envconfig:"ADMIN_EMAIL"`
	S3RootUser              string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword          string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket                string        `envconfig:"S3_BUCKET"`
	S3Region                string        `envconfig:"S3_REGION"`
	S3BaseEndpoint          string        `envconfig:"S3_BASE_ENDPOINT"`
}

// parseEnv overlays environment variables (BLOGERZ_* prefix) onto the config.
func parseEnv(config *Config) {
	var e envConfig
	if err := envconfig.Process("blogerz", &e); err != nil {
		panic(err)
	}

	if e.Addr != "" {
		config.Addr = e.Addr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.SessionValidityDuration != 0 {
		config.SessionValidityDuration = e.SessionValidityDuration
	}
	if e.AdminEmail != "" {
		config.AdminEmail = e.AdminEmail
	}
	if e.S3RootUser != "" {
		config.S3RootUser = e.S3RootUser
	}
	if e.S3RootPassword != "" {
		config.S3RootPassword = e.S3RootPassword
	}
	if e.S3Bucket != "" {
		config.S3Bucket = e.S3Bucket
	}
	if e.S3Region != "" {
		config.S3Region = e.S3Region
	}
	if e.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = e.S3BaseEndpoint
	}
}
