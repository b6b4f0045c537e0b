// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command dbinit prepares the go-bio-auth database.
//
// Usage:
//
//	dbinit [-yes] [-user name] <init|sample|reset|deactivate|activate> [config flags]
//
// Config flags are the server's (-d, -c, -bit-length, ...).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/crypto"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/store"
	"github.com/MKhiriev/go-bio-auth/models"
)

const (
	sampleUsername = "demo_user"
	sampleEmail    = "demo@example.com"
	samplePassword = "demo123"
)

var (
	errUnknownCommand    = errors.New("unknown command")
	errResetNotConfirmed = errors.New("reset drops all data, rerun with -yes")
	errNoUsername        = errors.New("-user is required")
)

func main() {
	log := logger.NewLogger("go-bio-auth-dbinit")

	if err := run(context.Background(), os.Args[1:], os.Stdout, log); err != nil {
		log.Fatal().Err(err).Msg("dbinit failed")
	}
}

func run(ctx context.Context, args []string, out io.Writer, log *logger.Logger) error {
	fs := flag.NewFlagSet("dbinit", flag.ContinueOnError)
	fs.SetOutput(out)
	yes := fs.Bool("yes", false, "confirm destructive commands")
	username := fs.String("user", "", "username for activate and deactivate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUnknownCommand
	}
	command := fs.Arg(0)

	switch command {
	case "init", "sample", "reset", "deactivate", "activate":
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, command)
	}
	if command == "reset" && !*yes {
		return errResetNotConfirmed
	}
	if (command == "deactivate" || command == "activate") && *username == "" {
		return errNoUsername
	}

	cfg, err := config.GetToolConfig(fs.Args()[1:])
	if err != nil {
		return err
	}

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return err
	}
	defer db.Close()

	switch command {
	case "init":
		if err = db.Migrate(); err != nil {
			return err
		}
		fmt.Fprintln(out, "database initialized")
	case "reset":
		if err = db.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(out, "database reset")
	case "sample":
		if err = db.Migrate(); err != nil {
			return err
		}
		user, err := createSampleUser(ctx, store.NewStorages(db, log), cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "sample user created: %s / %s (id %d)\n", user.Username, samplePassword, user.UserID)
	default:
		active := command == "activate"
		storages := store.NewStorages(db, log)
		user, err := storages.UserRepository.FindUserByUsername(ctx, *username)
		if err != nil {
			return err
		}
		if err = storages.UserRepository.SetActive(ctx, user.UserID, active); err != nil {
			return err
		}
		fmt.Fprintf(out, "user %s active=%t\n", user.Username, active)
	}

	return nil
}

// createSampleUser stores the demo account with random codes for every
// required modality.
func createSampleUser(ctx context.Context, storages *store.Storages, cfg *config.ToolConfig) (models.User, error) {
	hash, err := crypto.NewBcryptHasher(cfg.App.PasswordCost).Hash(samplePassword)
	if err != nil {
		return models.User{}, err
	}

	codes := make([]biometric.Code, 0, len(biometric.RequiredModalities()))
	for _, m := range biometric.RequiredModalities() {
		packed, err := crypto.RandomBytes((cfg.Biometric.BitLength + 7) / 8)
		if err != nil {
			return models.User{}, fmt.Errorf("generating %s code: %w", m, err)
		}
		code, err := biometric.NewCode(0, m, cfg.Biometric.BitLength, packed)
		if err != nil {
			return models.User{}, err
		}
		codes = append(codes, code)
	}

	user, _, err := storages.EnrollmentRepository.CreateUserWithEnrollment(ctx, models.User{
		Username:     sampleUsername,
		Email:        sampleEmail,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}, codes)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
