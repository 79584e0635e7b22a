package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "alice", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username alice, got %s", claims.Username)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "alice", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "alice", -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Fatal("expected password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}
