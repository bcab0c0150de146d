package auth

import (
	"errors"
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("HashPassword() returned the plain password")
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("CheckPasswordHash() = false for the right password")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("CheckPasswordHash() = true for a wrong password")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	first, _ := HashPassword("same")
	second, _ := HashPassword("same")
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}

func TestSessionToken(t *testing.T) {
	signer := NewSigner("test-secret")

	token, err := signer.SignSession("abc-123", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("SignSession() error = %v", err)
	}
	sid, err := signer.ParseSession(token)
	if err != nil {
		t.Fatalf("ParseSession() error = %v", err)
	}
	if sid != "abc-123" {
		t.Errorf("ParseSession() = %q, want abc-123", sid)
	}
}

func TestSessionTokenRejects(t *testing.T) {
	signer := NewSigner("test-secret")

	expired, _ := signer.SignSession("abc", time.Now().Add(-time.Minute))
	otherKey, _ := NewSigner("other-secret").SignSession("abc", time.Now().Add(time.Hour))
	chatToken, _ := signer.SignChatToken("sim-user-1", []string{"chat"}, time.Now().Add(time.Hour))

	for name, token := range map[string]string{
		"expired":    expired,
		"other key":  otherKey,
		"chat token": chatToken,
		"garbage":    "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := signer.ParseSession(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ParseSession() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestChatToken(t *testing.T) {
	signer := NewSigner("test-secret")

	token, err := signer.SignChatToken("sim-user-42", []string{"chat", "voip"}, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("SignChatToken() error = %v", err)
	}
	identity, err := signer.ParseChatToken(token)
	if err != nil {
		t.Fatalf("ParseChatToken() error = %v", err)
	}
	if identity != "sim-user-42" {
		t.Errorf("ParseChatToken() = %q, want sim-user-42", identity)
	}
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret()
	if err != nil {
		t.Fatalf("RandomSecret() error = %v", err)
	}
	b, _ := RandomSecret()
	if len(a) != 64 || a == b {
		t.Errorf("RandomSecret() = %q, %q; want two distinct 64-char secrets", a, b)
	}
}
