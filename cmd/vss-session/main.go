// Package main provides the vss-session binary: a command line client for the
// session backend and a local HTTP bridge over the same session.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"vss-session/internal/app"
	"vss-session/internal/config"
	apperrors "vss-session/internal/errors"
	"vss-session/internal/logging"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "vss-session"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorText(err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Session client for the VSS backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `vss-session signs in to the VSS backend, keeps the token pair in a
local store and refreshes it transparently when the backend rejects an
expired access token.

Every subcommand restores the stored session first. "serve" exposes the
same session over a local HTTP bridge.`,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	run := func(fn func(ctx context.Context, a *app.App, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, _ []string) error {
			return withApp(c.Context(), logLevel, func(ctx context.Context, a *app.App) error {
				return fn(ctx, a, c.OutOrStdout())
			})
		}
	}

	cmd.AddCommand(
		loginCmd(run),
		registerCmd(run),
		logoutCmd(run),
		statusCmd(run),
		routeCmd(run),
		usersCmd(run),
		passwordCmd(run),
		serveCmd(run),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(c *cobra.Command, args []string) {
				fmt.Fprintf(c.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// runner wraps a command body so it runs against an initialized session
type runner func(fn func(ctx context.Context, a *app.App, out io.Writer) error) func(*cobra.Command, []string) error

// withApp loads configuration, restores the stored session and runs fn.
// SIGINT and SIGTERM cancel the context passed to fn.
func withApp(parent context.Context, logLevel string, fn func(ctx context.Context, a *app.App) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log := logging.New(cfg.Log, Version, os.Stderr)

	a, err := app.New(cfg, log, Version)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("Failed to close session", "error", err)
		}
	}()

	a.Initialize(ctx)
	return fn(ctx, a)
}

// errorText prefers the display message of a session error and falls back
// to the raw text for configuration and usage errors.
func errorText(err error) string {
	var sessionErr *apperrors.Error
	if errors.As(err, &sessionErr) {
		return apperrors.UserMessage(err)
	}
	return err.Error()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
