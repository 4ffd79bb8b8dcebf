package util

import "testing"

func TestDeriveAndVerifyPassword(t *testing.T) {
	hash, salt, err := DerivePassword("s3cret-Pass1")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if len(hash) == 0 || len(salt) == 0 {
		t.Fatalf("expected hash and salt to be populated")
	}
	if !VerifyPassword("s3cret-Pass1", salt, hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong-pass", salt, hash) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Wanderlust42"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
	for _, bad := range []string{"short1A", "alllowercase42", "ALLUPPERCASE42", "NoDigitsHere"} {
		if err := ValidatePassword(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword("", []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if _, err := HashPassword("secret", nil); err == nil {
		t.Fatalf("expected error when salt empty")
	}
}
