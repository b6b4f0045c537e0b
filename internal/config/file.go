// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors [StructuredConfig] with snake_case keys for JSON and
// TOML files.
type fileConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key" toml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" toml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" toml:"token_duration"`
		PasswordCost  int      `json:"password_cost" toml:"password_cost"`
		Version       string   `json:"version" toml:"version"`
	} `json:"app" toml:"app"`

	Storage struct {
		DB struct {
			DSN             string   `json:"dsn" toml:"dsn"`
			MaxOpenConns    int      `json:"max_open_conns" toml:"max_open_conns"`
			ConnMaxLifetime Duration `json:"conn_max_lifetime" toml:"conn_max_lifetime"`
		} `json:"db" toml:"db"`
	} `json:"storage" toml:"storage"`

	Server struct {
		HTTPAddress     string   `json:"http_address" toml:"http_address"`
		GRPCAddress     string   `json:"grpc_address" toml:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout" toml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" toml:"shutdown_timeout"`
	} `json:"server" toml:"server"`

	Biometric struct {
		BitLength        int      `json:"bit_length" toml:"bit_length"`
		DefaultThreshold float64  `json:"default_threshold" toml:"default_threshold"`
		MinThreshold     float64  `json:"min_threshold" toml:"min_threshold"`
		MaxThreshold     float64  `json:"max_threshold" toml:"max_threshold"`
		Fusion           string   `json:"fusion" toml:"fusion"`
		FaceWeight       float64  `json:"face_weight" toml:"face_weight"`
		EncodeTimeout    Duration `json:"encode_timeout" toml:"encode_timeout"`
		MaxImagePixels   int      `json:"max_image_pixels" toml:"max_image_pixels"`
	} `json:"biometric" toml:"biometric"`

	Workers struct {
		StatsInterval  Duration `json:"stats_interval" toml:"stats_interval"`
		HealthInterval Duration `json:"health_interval" toml:"health_interval"`
	} `json:"workers" toml:"workers"`

	Log struct {
		Level        string   `json:"level" toml:"level"`
		Dir          string   `json:"dir" toml:"dir"`
		MaxAge       Duration `json:"max_age" toml:"max_age"`
		RotationTime Duration `json:"rotation_time" toml:"rotation_time"`
	} `json:"log" toml:"log"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
		TokenFile      string   `json:"token_file" toml:"token_file"`
	} `json:"adapter" toml:"adapter"`
}

// parseFile reads a config file, choosing the format by extension:
// ".toml" is TOML, anything else JSON.
func parseFile(path string) (*StructuredConfig, error) {
	var fc fileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("error decoding toml configs: %w", err)
		}
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error reading a json file: %w", err)
		}
		defer f.Close()

		if err := json.NewDecoder(f).Decode(&fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  fc.App.TokenSignKey,
			TokenIssuer:   fc.App.TokenIssuer,
			TokenDuration: time.Duration(fc.App.TokenDuration),
			PasswordCost:  fc.App.PasswordCost,
			Version:       fc.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:             fc.Storage.DB.DSN,
				MaxOpenConns:    fc.Storage.DB.MaxOpenConns,
				ConnMaxLifetime: time.Duration(fc.Storage.DB.ConnMaxLifetime),
			},
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			GRPCAddress:     fc.Server.GRPCAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
		},
		Biometric: Biometric{
			BitLength:        fc.Biometric.BitLength,
			DefaultThreshold: fc.Biometric.DefaultThreshold,
			MinThreshold:     fc.Biometric.MinThreshold,
			MaxThreshold:     fc.Biometric.MaxThreshold,
			Fusion:           fc.Biometric.Fusion,
			FaceWeight:       fc.Biometric.FaceWeight,
			EncodeTimeout:    time.Duration(fc.Biometric.EncodeTimeout),
			MaxImagePixels:   fc.Biometric.MaxImagePixels,
		},
		Workers: Workers{
			StatsInterval:  time.Duration(fc.Workers.StatsInterval),
			HealthInterval: time.Duration(fc.Workers.HealthInterval),
		},
		Log: Log{
			Level:        fc.Log.Level,
			Dir:          fc.Log.Dir,
			MaxAge:       time.Duration(fc.Log.MaxAge),
			RotationTime: time.Duration(fc.Log.RotationTime),
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			TokenFile:      fc.Adapter.TokenFile,
		},
	}
}

// Duration is a time.Duration that decodes from strings like "1h" or "30s"
// in both JSON and TOML. JSON numbers are taken as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d *Duration) UnmarshalText(b []byte) error {
	tmp, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
