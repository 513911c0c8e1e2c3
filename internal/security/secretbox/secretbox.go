// Package secretbox seals small secrets (SMTP passwords) stored in config files.
// The sealed format is base64(nonce)|base64(ciphertext), AES-256-GCM.
package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	nonceSize = 12
	keyLength = 32
	sep       = "|"
)

var ErrMalformed = errors.New("secretbox: expected base64(nonce)|base64(ciphertext)")

// ParseKey acepta una clave de 32 bytes en base64 (std o raw), hex o bytes crudos.
func ParseKey(key string) ([]byte, error) {
	key = strings.TrimSpace(key)
	if b, err := base64.StdEncoding.DecodeString(key); err == nil && len(b) == keyLength {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.DecodeString(key); err == nil && len(b) == keyLength {
		return b, nil
	}
	if len(key) == 2*keyLength {
		if b, err := hex.DecodeString(key); err == nil {
			return b, nil
		}
	}
	if len(key) == keyLength {
		return []byte(key), nil
	}
	return nil, fmt.Errorf("secretbox: key must be %d bytes", keyLength)
}

func newGCM(key string) (cipher.AEAD, error) {
	k, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// EncryptWithKey cifra plainText y devuelve base64(nonce)|base64(ciphertext).
func EncryptWithKey(key, plainText string) (string, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	ct := aead.Seal(nil, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(nonce) + sep + base64.StdEncoding.EncodeToString(ct), nil
}

// DecryptWithKey descifra un valor producido por EncryptWithKey.
func DecryptWithKey(key, sealed string) (string, error) {
	parts := strings.Split(sealed, sep)
	if len(parts) != 2 {
		return "", ErrMalformed
	}
	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("decode nonce: %w", err)
	}
	ct, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(nonce) != nonceSize {
		return "", fmt.Errorf("secretbox: nonce must be %d bytes, got %d", nonceSize, len(nonce))
	}

	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}
	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("gcm open: %w", err)
	}
	return string(pt), nil
}
