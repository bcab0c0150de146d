package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/repository"
	"valor-assist/internal/repository/memory"
	"valor-assist/pkg/auth"

	"go.uber.org/zap"
)

func newTestAuth(t *testing.T) (*AuthService, *repository.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewAuthService(store, auth.NewSigner("test-secret"), time.Hour, zap.NewNop()), store
}

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuth(t)

	user, session, err := svc.Register(ctx, &dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "correct horse"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if session == nil || session.Cookie == "" {
		t.Fatal("Register() did not start a session")
	}

	logged, loginSession, err := svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "correct horse"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if logged.ID != user.ID || logged.LastLoginAt == nil {
		t.Errorf("Login() user = %+v", logged)
	}

	current, err := svc.Authenticate(ctx, loginSession.Cookie)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if current.ID != user.ID {
		t.Errorf("Authenticate() id = %d, want %d", current.ID, user.ID)
	}

	entries, _ := store.Audit.ListByUser(ctx, user.ID, 10)
	if len(entries) != 2 {
		t.Errorf("audit entries = %d, want register + login", len(entries))
	}
}

func TestAuthLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)
	_, _, _ = svc.Register(ctx, &dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "correct horse"}, "")

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Username: "jdoe", Password: "wrong"}},
		{"unknown user", dto.LoginRequest{Username: "nobody", Password: "correct horse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(ctx, &tt.req, ""); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAuthRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)
	req := &dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "correct horse"}

	if _, _, err := svc.Register(ctx, req, ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, _, err := svc.Register(ctx, req, ""); !errors.Is(err, ErrUserExists) {
		t.Errorf("second Register() error = %v, want ErrUserExists", err)
	}
}

func TestAuthLogoutInvalidatesSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)
	_, session, _ := svc.Register(ctx, &dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "correct horse"}, "")

	if err := svc.Logout(ctx, session.Cookie, ""); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, session.Cookie); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("Authenticate() after logout error = %v, want ErrSessionInvalid", err)
	}
	if err := svc.Logout(ctx, "garbage", ""); err != nil {
		t.Errorf("Logout(garbage) error = %v, want nil", err)
	}
}

func TestAuthExpiredSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)
	_, session, _ := svc.Register(ctx, &dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "correct horse"}, "")

	// The row expires before the signed cookie does.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Authenticate(ctx, session.Cookie); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("Authenticate() error = %v, want ErrSessionInvalid", err)
	}
}
