package secretbox

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"
)

func testKey() []byte {
	raw := make([]byte, keyLength)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	return raw
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()
	key := base64.StdEncoding.EncodeToString(testKey())

	ct, err := EncryptWithKey(key, "smtp-lösenord")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	pt, err := DecryptWithKey(key, ct)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if pt != "smtp-lösenord" {
		t.Fatalf("plaintext mismatch: got %q", pt)
	}

	// hex form of the same key opens it too
	pt, err = DecryptWithKey(hex.EncodeToString(testKey()), ct)
	if err != nil || pt != "smtp-lösenord" {
		t.Fatalf("hex key: %q %v", pt, err)
	}
}

func TestDecrypt_DetectsTamper(t *testing.T) {
	t.Parallel()
	key := base64.StdEncoding.EncodeToString(testKey())

	ct, err := EncryptWithKey(key, "top secret")
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(ct, sep)
	bs, _ := base64.StdEncoding.DecodeString(parts[1])
	bs[0] ^= 0x01
	corrupted := parts[0] + sep + base64.StdEncoding.EncodeToString(bs)

	if _, err := DecryptWithKey(key, corrupted); err == nil {
		t.Fatalf("expected auth error, got nil")
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	t.Parallel()
	key := base64.StdEncoding.EncodeToString(testKey())
	if _, err := DecryptWithKey(key, "no-separator"); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, err := ParseKey("short"); err == nil {
		t.Fatalf("expected key length error")
	}
}
