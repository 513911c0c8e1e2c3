package email

import (
	"context"
	"fmt"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/config"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email/transport"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
	sec "github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/security/secretbox"
)

// NewTransport returns the Transport described by cfg. With smtp.dry_run a
// Recorder is returned and nothing leaves the process.
func NewTransport(ctx context.Context, cfg *config.Config) (transport.Transport, error) {
	log := logger.From(ctx).With(logger.Component("email.provider"))

	if cfg.SMTP.DryRun {
		log.Warn("smtp dry-run enabled, messages are recorded only")
		return transport.NewRecorder(cfg.Mail.OperatorAddress, cfg.Mail.DefaultSender), nil
	}

	password, err := smtpPassword(cfg)
	if err != nil {
		return nil, err
	}

	log.Debug("smtp transport configured",
		logger.String("host", cfg.SMTP.Host),
		logger.Int("port", cfg.SMTP.Port),
		logger.String("tls_mode", cfg.SMTP.TLS),
	)
	return transport.NewSMTP(transport.SMTPConfig{
		Host:               cfg.SMTP.Host,
		Port:               cfg.SMTP.Port,
		Username:           cfg.SMTP.Username,
		Password:           password,
		TLSMode:            cfg.SMTP.TLS,
		InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
		Timeout:            cfg.SMTP.Timeout,
		DefaultFrom:        cfg.Mail.DefaultSender,
		OperatorAddress:    cfg.Mail.OperatorAddress,
	}), nil
}

// smtpPassword prefers the plain password; password_enc is only opened when
// no plain value is configured.
func smtpPassword(cfg *config.Config) (string, error) {
	if cfg.SMTP.Password != "" || cfg.SMTP.PasswordEnc == "" {
		return cfg.SMTP.Password, nil
	}
	if cfg.Security.SecretBoxMasterKey == "" {
		return "", fmt.Errorf("smtp.password_enc set but security.secretbox_master_key is empty")
	}
	plain, err := sec.DecryptWithKey(cfg.Security.SecretBoxMasterKey, cfg.SMTP.PasswordEnc)
	if err != nil {
		return "", fmt.Errorf("decrypt smtp password: %w", err)
	}
	return plain, nil
}
