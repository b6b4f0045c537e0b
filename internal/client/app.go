// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/go-bio-auth/internal/adapter"
	"github.com/MKhiriev/go-bio-auth/internal/app"
	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/capture"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/utils"
	"github.com/MKhiriev/go-bio-auth/models"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingSamples = errors.New("both -face and -fingerprint are required")
)

const usage = `usage: client <command> [flags]

commands:
  register  -user -email -password -face -fingerprint
  login     -user -password | -face -fingerprint [-threshold]
  verify    -face -fingerprint [-threshold] [-label genuine|impostor]
  enroll    -face -fingerprint
  stats
  profile
  health
  version
  whoami
  logout
`

type App struct {
	adapter adapter.ServerAdapter
	tokens  TokenStore
	out     io.Writer
	logger  *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, tokens TokenStore, out io.Writer, logger *logger.Logger) *App {
	return &App{adapter: serverAdapter, tokens: tokens, out: out, logger: logger}
}

// Run executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUnknownCommand
	}

	cmd, rest := args[0], args[1:]
	a.logger.Debug().Str("command", cmd).Msg("running command")

	var err error
	switch cmd {
	case "register":
		err = a.register(ctx, rest)
	case "login":
		err = a.login(ctx, rest)
	case "verify":
		err = a.verify(ctx, rest)
	case "enroll":
		err = a.enroll(ctx, rest)
	case "stats":
		err = a.authed(ctx, func(ctx context.Context) error {
			stats, err := a.adapter.Stats(ctx)
			if err != nil {
				return err
			}
			return a.printJSON(stats)
		})
	case "profile":
		err = a.authed(ctx, func(ctx context.Context) error {
			profile, err := a.adapter.Profile(ctx)
			if err != nil {
				return err
			}
			return a.printJSON(profile)
		})
	case "health":
		var health models.HealthResponse
		health, err = a.adapter.Health(ctx)
		if health.Status != "" {
			fmt.Fprintf(a.out, "status: %s, database: %s\n", health.Status, health.Database)
		}
	case "version":
		var version string
		if version, err = a.adapter.Version(ctx); err == nil {
			fmt.Fprintln(a.out, version)
		}
	case "whoami":
		err = a.whoami()
	case "logout":
		err = a.tokens.Clear()
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	return a.describe(err)
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register", a.out)
	username := fs.String("user", "", "username")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	face, fingerprint := sampleFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	images, err := a.capture(ctx, *face, *fingerprint)
	if err != nil {
		return err
	}

	resp, err := a.adapter.Register(ctx, models.RegisterRequest{
		Username:         *username,
		Email:            *email,
		Password:         *password,
		FaceImage:        images[biometric.ModalityFace],
		FingerprintImage: images[biometric.ModalityFingerprint],
	})
	if err != nil {
		return err
	}
	if err = a.tokens.Save(a.adapter.Token()); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %s (id %d)\n", resp.Message, resp.User.Username, resp.User.UserID)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", a.out)
	username := fs.String("user", "", "username")
	password := fs.String("password", "", "password")
	face, fingerprint := sampleFlags(fs)
	threshold := thresholdFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := models.LoginRequest{Username: *username, Password: *password}
	if *face != "" || *fingerprint != "" {
		images, err := a.capture(ctx, *face, *fingerprint)
		if err != nil {
			return err
		}
		req = models.LoginRequest{
			FaceImage:        images[biometric.ModalityFace],
			FingerprintImage: images[biometric.ModalityFingerprint],
			Threshold:        threshold.value,
		}
	}

	resp, err := a.adapter.Login(ctx, req)
	if err != nil {
		return err
	}
	if err = a.tokens.Save(a.adapter.Token()); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %s\n", resp.Message, resp.User.Username)
	if resp.Distance != nil && resp.Threshold != nil {
		fmt.Fprintf(a.out, "distance %.2f <= threshold %.2f\n", *resp.Distance, *resp.Threshold)
	}
	return nil
}

func (a *App) verify(ctx context.Context, args []string) error {
	fs := newFlagSet("verify", a.out)
	face, fingerprint := sampleFlags(fs)
	threshold := thresholdFlag(fs)
	label := fs.String("label", "", "ground truth of the attempt: genuine or impostor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.authed(ctx, func(ctx context.Context) error {
		images, err := a.capture(ctx, *face, *fingerprint)
		if err != nil {
			return err
		}

		res, err := a.adapter.Verify(ctx, models.VerificationRequest{
			FaceImage:        images[biometric.ModalityFace],
			FingerprintImage: images[biometric.ModalityFingerprint],
			Threshold:        threshold.value,
			TrialLabel:       models.TrialLabel(*label),
		})
		if err != nil {
			return err
		}

		verdict := "REJECTED"
		if res.Verified {
			verdict = "VERIFIED"
		}
		fmt.Fprintf(a.out, "%s: distance %.2f, threshold %.2f\n", verdict, res.Distance, res.Threshold)
		for _, m := range biometric.RequiredModalities() {
			if d, ok := res.ModalityDistances[m.String()]; ok {
				fmt.Fprintf(a.out, "  %s: %d\n", m, d)
			}
		}
		return nil
	})
}

func (a *App) enroll(ctx context.Context, args []string) error {
	fs := newFlagSet("enroll", a.out)
	face, fingerprint := sampleFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.authed(ctx, func(ctx context.Context) error {
		images, err := a.capture(ctx, *face, *fingerprint)
		if err != nil {
			return err
		}

		resp, err := a.adapter.ReEnroll(ctx, models.EnrollmentRequest{
			FaceImage:        images[biometric.ModalityFace],
			FingerprintImage: images[biometric.ModalityFingerprint],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "enrollment replaced: %v, %d bits\n", resp.Modalities, resp.BitLength)
		return nil
	})
}

// whoami reads the user id from the stored token without contacting the
// server.
func (a *App) whoami() error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	id, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return fmt.Errorf("reading session token: %w", err)
	}
	fmt.Fprintf(a.out, "logged in as user %d\n", id)
	return nil
}

// authed loads the session token before running fn.
func (a *App) authed(ctx context.Context, fn func(ctx context.Context) error) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.adapter.SetToken(token)
	return fn(ctx)
}

// capture reads both samples and returns them as data URLs by modality.
func (a *App) capture(ctx context.Context, face, fingerprint string) (map[biometric.Modality]string, error) {
	if face == "" || fingerprint == "" {
		return nil, ErrMissingSamples
	}

	images, err := capture.CaptureAll(ctx,
		capture.NewFileSource(face, biometric.ModalityFace),
		capture.NewFileSource(fingerprint, biometric.ModalityFingerprint),
	)
	if err != nil {
		return nil, err
	}

	urls := make(map[biometric.Modality]string, len(images))
	for m, img := range images {
		urls[m] = img.DataURL()
	}
	return urls, nil
}

// describe adds the server's verdict details and a retry hint to err.
func (a *App) describe(err error) error {
	var serverErr *adapter.ServerError
	if !errors.As(err, &serverErr) {
		return err
	}

	if serverErr.Distance != nil && serverErr.Threshold != nil {
		fmt.Fprintf(a.out, "best match: distance %.2f > threshold %.2f\n", *serverErr.Distance, *serverErr.Threshold)
	}
	if app.Retryable(serverErr.Kind) {
		fmt.Fprintln(a.out, "capture fresh samples and try again")
	}
	return err
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func sampleFlags(fs *flag.FlagSet) (*string, *string) {
	face := fs.String("face", "", "face image file")
	fingerprint := fs.String("fingerprint", "", "fingerprint image file")
	return face, fingerprint
}

// optionalFloat is a flag that stays nil unless set.
type optionalFloat struct {
	value *float64
}

func (f *optionalFloat) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.FormatFloat(*f.value, 'f', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.value = &v
	return nil
}

func thresholdFlag(fs *flag.FlagSet) *optionalFloat {
	f := &optionalFloat{}
	fs.Var(f, "threshold", "acceptance threshold, clamped by the server")
	return f
}
