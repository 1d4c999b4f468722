package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("6542abc0", "admin", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestValidateTokenValid(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken("6542abc0", "admin", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != "6542abc0" {
		t.Errorf("ValidateToken() UserID = %q, want %q", claims.UserID, "6542abc0")
	}
	if claims.Username != "admin" {
		t.Errorf("ValidateToken() Username = %q, want %q", claims.Username, "admin")
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	_, err := ValidateToken("not-a-valid-token", "test-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("6542abc0", "admin", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "wrong-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("6542abc0", "admin", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "test-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

// All failure kinds must surface as the same sentinel so that nothing
// upstream can build an oracle out of them.
func TestValidateTokenFailuresIndistinguishable(t *testing.T) {
	valid, err := GenerateToken("6542abc0", "admin", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	expired, err := GenerateToken("6542abc0", "admin", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	cases := map[string]string{
		"malformed":       "garbage",
		"wrong signature": valid,
		"expired":         expired,
	}
	for name, token := range cases {
		if _, err := ValidateToken(token, "test-secret"); err != ErrInvalidToken {
			t.Errorf("%s: error = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wrong-issuer",
			Audience:  jwt.ClaimStrings{"taskplan-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: "6542abc0",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := ValidateToken(tokenString, secret); err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenWrongAudience(t *testing.T) {
	secret := "test-secret"

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "taskplan",
			Audience:  jwt.ClaimStrings{"wrong-audience"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: "6542abc0",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := ValidateToken(tokenString, secret); err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}
