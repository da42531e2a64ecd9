package services_test

import (
	"strings"
	"testing"

	"github.com/mockqv/Lumina-Bank/internal/usecase/services"
)

func TestCryptoServiceRejectsShortKey(t *testing.T) {
	if _, err := services.NewCryptoService("abcd"); err == nil {
		t.Fatal("expected an error for a key shorter than 32 bytes")
	}
}

func TestCryptoServiceRejectsInvalidHex(t *testing.T) {
	if _, err := services.NewCryptoService(strings.Repeat("zz", 32)); err == nil {
		t.Fatal("expected an error for non-hex key material")
	}
}

func TestCryptoServiceRoundTrip(t *testing.T) {
	svc, err := services.NewCryptoService(testCryptoKey)
	if err != nil {
		t.Fatalf("init crypto service: %v", err)
	}

	ciphertext, err := svc.Encrypt("52998224725")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if strings.Count(ciphertext, ":") != 2 {
		t.Fatalf("expected iv:ciphertext:tag layout, got %q", ciphertext)
	}
	if strings.Contains(ciphertext, "52998224725") {
		t.Fatal("ciphertext must not contain the plaintext")
	}

	plaintext, err := svc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plaintext != "52998224725" {
		t.Fatalf("round trip mismatch: %q", plaintext)
	}
}

func TestCryptoServiceDistinctNonces(t *testing.T) {
	svc, err := services.NewCryptoService(testCryptoKey)
	if err != nil {
		t.Fatalf("init crypto service: %v", err)
	}

	first, err := svc.Encrypt("same input")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	second, err := svc.Encrypt("same input")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if first == second {
		t.Fatal("two encryptions of the same input must not share a nonce")
	}
}

func TestCryptoServiceDecryptRejectsTampering(t *testing.T) {
	svc, err := services.NewCryptoService(testCryptoKey)
	if err != nil {
		t.Fatalf("init crypto service: %v", err)
	}

	ciphertext, err := svc.Encrypt("document")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	parts := strings.Split(ciphertext, ":")
	first := byte('0')
	if parts[1][0] == first {
		first = '1'
	}
	flipped := string(first) + parts[1][1:]
	if _, err := svc.Decrypt(parts[0] + ":" + flipped + ":" + parts[2]); err == nil {
		t.Fatal("expected tampered ciphertext to fail authentication")
	}
}
