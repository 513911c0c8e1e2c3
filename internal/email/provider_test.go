package email

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/config"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email/transport"
	sec "github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/security/secretbox"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestNewTransport_DryRunUsesRecorder(t *testing.T) {
	cfg := &config.Config{}
	cfg.SMTP.DryRun = true
	cfg.Mail.OperatorAddress = "ops@b8shield.com"
	cfg.Mail.DefaultSender = "info@b8shield.com"

	tr, err := NewTransport(context.Background(), cfg)
	require.NoError(t, err)
	rec, ok := tr.(*transport.Recorder)
	require.True(t, ok)
	assert.Equal(t, "ops@b8shield.com", rec.OperatorAddress)
	assert.Equal(t, "info@b8shield.com", rec.DefaultFrom)
}

func TestNewTransport_SMTP(t *testing.T) {
	cfg := &config.Config{}
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Port = 587

	tr, err := NewTransport(context.Background(), cfg)
	require.NoError(t, err)
	_, ok := tr.(*transport.SMTPTransport)
	assert.True(t, ok)
}

func TestSMTPPassword(t *testing.T) {
	sealed, err := sec.EncryptWithKey(testKey, "s3cret")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.SMTP.PasswordEnc = sealed
	cfg.Security.SecretBoxMasterKey = testKey
	got, err := smtpPassword(cfg)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	cfg.SMTP.Password = "plain"
	got, err = smtpPassword(cfg)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	cfg.SMTP.Password = ""
	cfg.Security.SecretBoxMasterKey = ""
	_, err = smtpPassword(cfg)
	require.Error(t, err)

	cfg.Security.SecretBoxMasterKey = strings.Repeat("ff", 32)
	_, err = smtpPassword(cfg)
	require.Error(t, err)
}
