package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/config"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/notify"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
	sec "github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/security/secretbox"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store/pg"
	migrations "github.com/MixxMasterMike123/b8s-reseller-app-sub004/migrations/postgres"
)

func main() {
	_ = godotenv.Load(".env")
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var (
		baseURL    = envOr("NOTIFY_URL", "http://localhost:8080")
		token      = envOr("NOTIFY_TOKEN", "")
		out        = envOr("NOTIFY_OUT", "text")
		configPath = envOr("CONFIG_PATH", "")
		timeout    = 60 * time.Second
	)

	cl := &client{HTTP: &http.Client{Timeout: timeout}, Out: stdout}

	root := &cobra.Command{
		Use:          "notifyctl",
		Short:        "Client and operator tool for the notification service",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cl.BaseURL, cl.Token, cl.OutFormat = baseURL, token, out
		},
	}
	root.SetOut(stdout)
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "Service base URL (env NOTIFY_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Bearer token for /v1 (env NOTIFY_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Output format: json|text")
	root.PersistentFlags().StringVar(&configPath, "config", configPath, "YAML config for in-process commands (env CONFIG_PATH)")

	// ─── Remote ───

	var dispatchFile string
	dispatchCmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Send one notification (POST /v1/notifications)",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(dispatchFile, stdin)
			if err != nil {
				return err
			}
			status, resp, err := cl.do(cmd.Context(), http.MethodPost, "/v1/notifications", body)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			if status/100 != 2 {
				return fmt.Errorf("dispatch failed: status=%d", status)
			}
			return nil
		},
	}
	dispatchCmd.Flags().StringVarP(&dispatchFile, "file", "f", "", "EventContext JSON file, - for stdin")

	var previewFile string
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Render without sending (POST /v1/notifications/preview)",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(previewFile, stdin)
			if err != nil {
				return err
			}
			status, resp, err := cl.do(cmd.Context(), http.MethodPost, "/v1/notifications/preview", body)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			if status/100 != 2 {
				return fmt.Errorf("preview failed: status=%d", status)
			}
			return nil
		},
	}
	previewCmd.Flags().StringVarP(&previewFile, "file", "f", "", "EventContext JSON file, - for stdin")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Readiness of the running service (GET /readyz)",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, resp, err := cl.do(cmd.Context(), http.MethodGet, "/readyz", nil)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			if status != http.StatusOK {
				return fmt.Errorf("not ready: status=%d", status)
			}
			return nil
		},
	}

	eventTypesCmd := &cobra.Command{
		Use:   "event-types",
		Short: "List supported event types and their required fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, et := range notify.EventTypes() {
				req, _ := notify.RequiredFields(et)
				if len(req) == 0 {
					fmt.Fprintln(stdout, et)
					continue
				}
				fmt.Fprintf(stdout, "%s\t%s\n", et, strings.Join(req, ", "))
			}
			return nil
		},
	}

	// ─── In-process (read config) ───

	smtpTestCmd := &cobra.Command{
		Use:   "smtp-test",
		Short: "Check the configured SMTP server accepts a connection and login",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			tr, err := email.NewTransport(ctx, cfg)
			if err != nil {
				return err
			}
			res := tr.TestConnectivity(ctx)
			if !res.Success {
				return fmt.Errorf("smtp %s:%d: %s (%s)", cfg.SMTP.Host, cfg.SMTP.Port, res.Error, res.Code)
			}
			fmt.Fprintf(stdout, "smtp %s:%d ok\n", cfg.SMTP.Host, cfg.SMTP.Port)
			return nil
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded postgres migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return errors.New("migrate requires storage.driver=postgres")
			}
			s, err := pg.New(cmd.Context(), cfg.Storage.DSN, pg.PoolConfig{MaxConns: 2})
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Migrate(cmd.Context(), migrations.FS, migrations.Dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "applied=%v skipped=%v in %s\n", res.Applied, res.Skipped, res.Duration)
			return nil
		},
	}

	encryptCmd := &cobra.Command{
		Use:   "encrypt [value]",
		Short: "Seal a secret (e.g. smtp.password_enc) with SECRETBOX_MASTER_KEY",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := os.Getenv("SECRETBOX_MASTER_KEY")
			if key == "" {
				return errors.New("SECRETBOX_MASTER_KEY not set")
			}
			var value string
			if len(args) == 1 {
				value = args[0]
			} else {
				b, err := io.ReadAll(stdin)
				if err != nil {
					return err
				}
				value = strings.TrimRight(string(b), "\r\n")
			}
			if value == "" {
				return errors.New("nothing to encrypt")
			}
			sealed, err := sec.EncryptWithKey(key, value)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, sealed)
			return nil
		},
	}

	var (
		tokenSub string
		tokenTTL time.Duration
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for /v1 from auth.jwt_secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			signed, err := mintToken(cfg, tokenSub, tokenTTL, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, signed)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&tokenSub, "sub", "notifyctl", "Subject claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")

	root.AddCommand(dispatchCmd, previewCmd, healthCmd, eventTypesCmd, smtpTestCmd, migrateCmd, encryptCmd, tokenCmd)
	return root
}

// loadConfig reads the service config and quiets the logger so command
// output stays readable.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Config{Env: "dev", Level: "warn"})
	return cfg, nil
}

func mintToken(cfg *config.Config, sub string, ttl time.Duration, now time.Time) (string, error) {
	if cfg.Auth.JWTSecret == "" {
		return "", errors.New("auth.jwt_secret is empty, the API is unauthenticated")
	}
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    cfg.Auth.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if cfg.Auth.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Auth.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Auth.JWTSecret))
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
