package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/models"
	"valor-assist/internal/repository"
	"valor-assist/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrSessionInvalid     = errors.New("session invalid or expired")
)

// Session is what the route layer needs to set the cookie.
type Session struct {
	ID        string
	Cookie    string
	ExpiresAt time.Time
}

type AuthService struct {
	store      *repository.Store
	signer     *auth.Signer
	sessionTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

func NewAuthService(store *repository.Store, signer *auth.Signer, sessionTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:      store,
		signer:     signer,
		sessionTTL: sessionTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// Register creates the account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, ip string) (*models.User, *Session, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}

	var session *Session
	err = s.store.WithTx(ctx, func(tx *repository.Store) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrUserExists
			}
			return err
		}

		created, err := s.createSession(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		session = created

		return s.audit(ctx, tx, &user.ID, models.AuditActionRegister, ip, map[string]any{"username": user.Username})
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, session, nil
}

// Login returns ErrInvalidCredentials for an unknown user and for a wrong
// password alike; only the log says which.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest, ip string) (*models.User, *Session, error) {
	user, err := s.store.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("Login failed: unknown username", zap.String("username", req.Username), zap.String("ip", ip))
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		s.logger.Info("Login failed: wrong password", zap.Int64("user_id", user.ID), zap.String("ip", ip))
		return nil, nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	session, err := s.createSession(ctx, s.store, user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.store.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to update last login", zap.Int64("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}
	if err := s.audit(ctx, s.store, &user.ID, models.AuditActionLogin, ip, nil); err != nil {
		s.logger.Warn("Failed to write audit log", zap.String("action", models.AuditActionLogin), zap.Error(err))
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return user, session, nil
}

// Logout deletes the session behind cookie. An unknown or expired cookie is not an error.
func (s *AuthService) Logout(ctx context.Context, cookie, ip string) error {
	sid, err := s.signer.ParseSession(cookie)
	if err != nil {
		return nil
	}

	session, err := s.store.Sessions.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.store.Sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := s.audit(ctx, s.store, &session.UserID, models.AuditActionLogout, ip, nil); err != nil {
		s.logger.Warn("Failed to write audit log", zap.String("action", models.AuditActionLogout), zap.Error(err))
	}
	return nil
}

// Authenticate resolves a cookie value to its user.
func (s *AuthService) Authenticate(ctx context.Context, cookie string) (*models.User, error) {
	sid, err := s.signer.ParseSession(cookie)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	session, err := s.store.Sessions.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.store.Sessions.Delete(ctx, sid)
		return nil, ErrSessionInvalid
	}

	user, err := s.store.Users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	return user, nil
}

// PurgeExpiredSessions deletes session rows past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.store.Sessions.DeleteExpired(ctx, s.now())
}

func (s *AuthService) createSession(ctx context.Context, store *repository.Store, userID int64) (*Session, error) {
	expiresAt := s.now().Add(s.sessionTTL).UTC()
	record := &models.Session{
		SID:       uuid.NewString(),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := store.Sessions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	cookie, err := s.signer.SignSession(record.SID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	return &Session{ID: record.SID, Cookie: cookie, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) audit(ctx context.Context, store *repository.Store, userID *int64, action, ip string, details map[string]any) error {
	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: "user",
		IPAddress:  ip,
	}
	if userID != nil {
		entry.EntityID = strconv.FormatInt(*userID, 10)
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return err
		}
		entry.Details = raw
	}
	return store.Audit.Create(ctx, entry)
}

func ToUserResponse(u *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		resp.LastLoginAt = u.LastLoginAt.UTC().Format(time.RFC3339)
	}
	return resp
}
