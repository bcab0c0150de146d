package repository

import (
	"context"
	"encoding/json"
	"time"

	"valor-assist/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateVerification(ctx context.Context, id int64, verified bool) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sid string) (*models.Session, error)
	Delete(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ClaimStore interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id int64) (*models.Claim, error)
	ListByEmail(ctx context.Context, email string) ([]*models.Claim, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*models.Claim, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Claim, error)
	UpdateAnalysis(ctx context.Context, id int64, analysis json.RawMessage, status string) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	ListByClaimID(ctx context.Context, claimID int64) ([]*models.Document, error)
}

type ChatStore interface {
	CreateThread(ctx context.Context, thread *models.ChatThread) error
	GetThread(ctx context.Context, threadID string) (*models.ChatThread, error)
	ListThreadsByUser(ctx context.Context, userID int64) ([]*models.ChatThread, error)
	CloseThread(ctx context.Context, threadID string) error
	CreateMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, threadID string) ([]*models.ChatMessage, error)
}

type AnalysisStore interface {
	Create(ctx context.Context, result *models.DocumentAnalysisResult) error
	ListByDocumentID(ctx context.Context, documentID int64) ([]*models.DocumentAnalysisResult, error)
}

type AuditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.AuditLog, error)
}

var (
	_ UserStore     = (*UserRepository)(nil)
	_ SessionStore  = (*SessionRepository)(nil)
	_ ClaimStore    = (*ClaimRepository)(nil)
	_ DocumentStore = (*DocumentRepository)(nil)
	_ ChatStore     = (*ChatRepository)(nil)
	_ AnalysisStore = (*AnalysisRepository)(nil)
	_ AuditStore    = (*AuditRepository)(nil)
)
