package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"valor-assist/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func TestRateLimiterRejectsPastBurst(t *testing.T) {
	rl := NewRateLimiter(3, zap.NewNop())
	defer rl.Stop()

	app := fiber.New()
	app.Get("/limited", rl.Middleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(10, zap.NewNop())
	defer rl.Stop()

	rl.getLimiter("10.0.0.1")
	if n := rl.evictIdle(time.Now()); n != 0 {
		t.Errorf("evicted %d fresh visitors", n)
	}
	if n := rl.evictIdle(time.Now().Add(time.Hour)); n != 1 {
		t.Errorf("evicted %d idle visitors, want 1", n)
	}
}

type fakeAuthenticator struct {
	users map[string]*models.User
}

func (f fakeAuthenticator) Authenticate(_ context.Context, cookie string) (*models.User, error) {
	if u, ok := f.users[cookie]; ok {
		return u, nil
	}
	return nil, errors.New("bad session")
}

func TestSessionAndRoleGuards(t *testing.T) {
	authn := fakeAuthenticator{users: map[string]*models.User{
		"user-cookie":  {ID: 1, Role: models.RoleUser},
		"admin-cookie": {ID: 2, Role: models.RoleAdmin},
	}}

	app := fiber.New()
	app.Use(Session(authn, zap.NewNop()))
	app.Get("/me", RequireAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": *CurrentUserID(c)})
	})
	app.Get("/admin", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		cookie string
		want   int
	}{
		{"anonymous", "/me", "", fiber.StatusUnauthorized},
		{"invalid cookie", "/me", "forged", fiber.StatusUnauthorized},
		{"signed in", "/me", "user-cookie", fiber.StatusOK},
		{"user on admin route", "/admin", "user-cookie", fiber.StatusForbidden},
		{"admin", "/admin", "admin-cookie", fiber.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders(true))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Header.Get("X-Frame-Options") != "DENY" || resp.Header.Get("Strict-Transport-Security") == "" {
		t.Errorf("headers = %v", resp.Header)
	}
}
