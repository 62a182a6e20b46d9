package auth

import (
	"database/sql"
	"strings"
	"testing"
)

func TestEncryptDecryptTOTPSecretRoundTrip(t *testing.T) {
	const key = "test-encryption-key"

	secrets := []string{
		"JBSWY3DPEHPK3PXP",
		"A",
		"EXACTLY-16-BYTES",
		strings.Repeat("Q", 64),
	}

	for _, secret := range secrets {
		encrypted, err := EncryptTOTPSecret(secret, key)
		if err != nil {
			t.Fatalf("EncryptTOTPSecret(%q): %v", secret, err)
		}
		if encrypted == secret {
			t.Errorf("secret %q stored unencrypted", secret)
		}

		decrypted, err := DecryptTOTPSecret(sql.NullString{String: encrypted, Valid: true}, key)
		if err != nil {
			t.Fatalf("DecryptTOTPSecret: %v", err)
		}
		if !decrypted.Valid || decrypted.String != secret {
			t.Errorf("round trip gave %q, want %q", decrypted.String, secret)
		}
	}
}

func TestDecryptTOTPSecretNullPassthrough(t *testing.T) {
	got, err := DecryptTOTPSecret(sql.NullString{Valid: false}, "key")
	if err != nil {
		t.Fatalf("DecryptTOTPSecret(null): %v", err)
	}
	if got.Valid {
		t.Errorf("null secret decrypted to %q, want invalid", got.String)
	}
}

func TestGenerateTOTPSecretShape(t *testing.T) {
	a, err := GenerateTOTPSecret()
	if err != nil {
		t.Fatalf("GenerateTOTPSecret: %v", err)
	}
	b, err := GenerateTOTPSecret()
	if err != nil {
		t.Fatalf("GenerateTOTPSecret: %v", err)
	}
	if a == b {
		t.Error("two generated secrets are identical")
	}
	// 20 random bytes base32-encode to 32 characters without padding.
	if len(a) != 32 {
		t.Errorf("secret length = %d, want 32", len(a))
	}
	if strings.Contains(a, "=") {
		t.Errorf("secret %q contains padding", a)
	}
}

func TestGenerateTOTPQRCodeURL(t *testing.T) {
	url := GenerateTOTPQRCodeURL("JBSWY3DPEHPK3PXP", "chef@example.com", "RestaurantManager")
	for _, want := range []string{
		"otpauth://totp/",
		"secret=JBSWY3DPEHPK3PXP",
		"issuer=RestaurantManager",
		"chef%40example.com",
	} {
		if !strings.Contains(url, want) {
			t.Errorf("QR URL %q missing %q", url, want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword("hunter22", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("hunter23", hash) {
		t.Error("wrong password accepted")
	}
}
