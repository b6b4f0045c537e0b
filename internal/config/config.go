// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-bio-auth server.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - default: value applied before any other source (mcuadros/go-defaults).
type StructuredConfig struct {
	// App holds token parameters, password hashing cost and the version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds addresses and timeouts of the HTTP and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Biometric holds the encoder and decision parameters.
	Biometric Biometric `envPrefix:"BIOMETRIC_"`

	// Workers holds the intervals of background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the log level and optional rotating file output.
	Log Log `envPrefix:"LOG_"`

	// Adapter holds the client's view of the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// ConfigFilePath is the optional path to a JSON or TOML configuration
	// file. Populated via the CONFIG environment variable or the -c / -config
	// flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in and required from every JWT.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" default:"go-bio-auth"`

	// TokenDuration specifies how long a JWT remains valid after issuance.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" default:"24h"`

	// PasswordCost is the bcrypt cost used for new password hashes.
	// Env: APP_PASSWORD_COST
	PasswordCost int `env:"PASSWORD_COST" default:"10"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION" default:"1.0.0"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by scheme: postgres:// or postgresql:// open
	// PostgreSQL, anything else is treated as a SQLite file DSN.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI" default:"file:bioauth.db?_foreign_keys=on"`

	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS" default:"10"`

	// Env: STORAGE_DB_CONN_MAX_LIFETIME
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" default:"30m"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP API in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" default:"localhost:5000"`

	// GRPCAddress is the TCP address of the gRPC health endpoint. Empty
	// disables the gRPC server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds the handling of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"30s"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Biometric holds the encoder and decision parameters.
type Biometric struct {
	// BitLength is the length of every code. Must be a perfect square.
	// Env: BIOMETRIC_BIT_LENGTH
	BitLength int `env:"BIT_LENGTH" default:"256"`

	// Env: BIOMETRIC_DEFAULT_THRESHOLD
	DefaultThreshold float64 `env:"DEFAULT_THRESHOLD" default:"15"`
	// Env: BIOMETRIC_MIN_THRESHOLD
	MinThreshold float64 `env:"MIN_THRESHOLD" default:"5"`
	// Env: BIOMETRIC_MAX_THRESHOLD
	MaxThreshold float64 `env:"MAX_THRESHOLD" default:"50"`

	// Fusion is one of "average", "max" or "weighted".
	// Env: BIOMETRIC_FUSION
	Fusion string `env:"FUSION" default:"average"`

	// FaceWeight is used by the weighted fusion rule.
	// Env: BIOMETRIC_FACE_WEIGHT
	FaceWeight float64 `env:"FACE_WEIGHT" default:"0.5"`

	// EncodeTimeout bounds each encoder call.
	// Env: BIOMETRIC_ENCODE_TIMEOUT
	EncodeTimeout time.Duration `env:"ENCODE_TIMEOUT" default:"2s"`

	// MaxImagePixels bounds the width times height of a sample image. Larger
	// images are rejected before their pixels are decoded.
	// Env: BIOMETRIC_MAX_IMAGE_PIXELS
	MaxImagePixels int `env:"MAX_IMAGE_PIXELS" default:"16777216"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// Env: WORKERS_STATS_INTERVAL
	StatsInterval time.Duration `env:"STATS_INTERVAL" default:"1m"`
	// Env: WORKERS_HEALTH_INTERVAL
	HealthInterval time.Duration `env:"HEALTH_INTERVAL" default:"15s"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL" default:"info"`

	// Dir enables rotating file output when non-empty.
	// Env: LOG_DIR
	Dir string `env:"DIR"`

	// Env: LOG_MAX_AGE
	MaxAge time.Duration `env:"MAX_AGE" default:"168h"`
	// Env: LOG_ROTATION_TIME
	RotationTime time.Duration `env:"ROTATION_TIME" default:"24h"`
}

// Adapter holds the client's connection settings.
type Adapter struct {
	// HTTPAddress is the base URL of the server API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS" default:"http://localhost:5000"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"30s"`

	// TokenFile keeps the session token between client invocations.
	// Env: ADAPTER_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE" default:".bioauth_token"`
}

// GetStructuredConfig loads, merges, and validates the server configuration.
// args are the command-line arguments without the program name.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withFile().
		build()
}
