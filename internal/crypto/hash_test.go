package crypto

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if hash == "" || hash == "123456" {
		t.Fatal("HashPassword() returned empty or plaintext hash")
	}

	ok, err := VerifyPassword("123456", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !ok {
		t.Error("VerifyPassword() = false for correct password")
	}
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	ok, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if ok {
		t.Error("VerifyPassword() = true for wrong password")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("password", "not-a-bcrypt-hash")
	if err == nil {
		t.Error("VerifyPassword() expected error for malformed hash")
	}
}
