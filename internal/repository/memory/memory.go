// Package memory is an in-process implementation of the storage facade.
// It backs the test suites and local runs with DATABASE_URL=memory://.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"valor-assist/internal/models"
	"valor-assist/internal/repository"
)

type db struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[int64]*models.User
	sessions map[string]*models.Session
	claims   map[int64]*models.Claim
	docs     map[int64]*models.Document
	threads  map[string]*models.ChatThread
	messages []*models.ChatMessage
	analyses []*models.DocumentAnalysisResult
	audit    []*models.AuditLog
}

func (d *db) id() int64 {
	d.nextID++
	return d.nextID
}

// NewStore returns an empty Store whose repositories share one in-memory database.
func NewStore() *repository.Store {
	d := &db{
		users:    map[int64]*models.User{},
		sessions: map[string]*models.Session{},
		claims:   map[int64]*models.Claim{},
		docs:     map[int64]*models.Document{},
		threads:  map[string]*models.ChatThread{},
	}
	return &repository.Store{
		Users:     &users{d},
		Sessions:  &sessions{d},
		Claims:    &claims{d},
		Documents: &documents{d},
		Chats:     &chats{d},
		Analyses:  &analyses{d},
		Audit:     &audit{d},
	}
}

func duplicate(constraint string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicate, constraint)
}

type users struct{ d *db }

func (r *users) Create(_ context.Context, user *models.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, u := range r.d.users {
		if u.Username == user.Username {
			return duplicate("users_username_key")
		}
		if u.Email == user.Email {
			return duplicate("users_email_key")
		}
	}
	now := time.Now().UTC()
	user.ID = r.d.id()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	stored := *user
	r.d.users[user.ID] = &stored
	return nil
}

func (r *users) find(match func(*models.User) bool) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, u := range r.d.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *users) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *users) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *users) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLoginAt = &at
	u.UpdatedAt = at
	return nil
}

func (r *users) UpdateVerification(_ context.Context, id int64, verified bool) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsVerified = verified
	return nil
}

type sessions struct{ d *db }

func (r *sessions) Create(_ context.Context, session *models.Session) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.sessions[session.SID]; ok {
		return duplicate("sessions_pkey")
	}
	session.CreatedAt = time.Now().UTC()
	stored := *session
	r.d.sessions[session.SID] = &stored
	return nil
}

func (r *sessions) Get(_ context.Context, sid string) (*models.Session, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	s, ok := r.d.sessions[sid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *sessions) Delete(_ context.Context, sid string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	delete(r.d.sessions, sid)
	return nil
}

func (r *sessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var n int64
	for sid, s := range r.d.sessions {
		if s.Expired(now) {
			delete(r.d.sessions, sid)
			n++
		}
	}
	return n, nil
}

type claims struct{ d *db }

func (r *claims) Create(_ context.Context, claim *models.Claim) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	now := time.Now().UTC()
	claim.ID = r.d.id()
	claim.CreatedAt, claim.UpdatedAt = now, now
	if claim.Status == "" {
		claim.Status = models.ClaimStatusSubmitted
	}
	stored := *claim
	r.d.claims[claim.ID] = &stored
	return nil
}

func (r *claims) GetByID(_ context.Context, id int64) (*models.Claim, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	c, ok := r.d.claims[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *claims) sorted(match func(*models.Claim) bool) []*models.Claim {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []*models.Claim{}
	for _, c := range r.d.claims {
		if match(c) {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *claims) ListByEmail(_ context.Context, email string) ([]*models.Claim, error) {
	return r.sorted(func(c *models.Claim) bool { return c.Email == email }), nil
}

func (r *claims) ListRecent(_ context.Context, limit, offset int) ([]*models.Claim, error) {
	return page(r.sorted(func(*models.Claim) bool { return true }), limit, offset), nil
}

func (r *claims) ListByUser(_ context.Context, userID int64, limit, offset int) ([]*models.Claim, error) {
	return page(r.sorted(func(c *models.Claim) bool {
		return c.UserID != nil && *c.UserID == userID
	}), limit, offset), nil
}

func page(all []*models.Claim, limit, offset int) []*models.Claim {
	if offset >= len(all) {
		return []*models.Claim{}
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

func (r *claims) UpdateAnalysis(_ context.Context, id int64, analysis json.RawMessage, status string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.claims[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Analysis = append(json.RawMessage(nil), analysis...)
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *claims) UpdateStatus(_ context.Context, id int64, status string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.claims[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

type documents struct{ d *db }

func (r *documents) Create(_ context.Context, doc *models.Document) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.claims[doc.ClaimID]; !ok {
		return fmt.Errorf("documents_claim_id_fkey: claim %d does not exist", doc.ClaimID)
	}
	doc.ID = r.d.id()
	doc.CreatedAt = time.Now().UTC()
	stored := *doc
	r.d.docs[doc.ID] = &stored
	return nil
}

func (r *documents) GetByID(_ context.Context, id int64) (*models.Document, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	doc, ok := r.d.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *documents) ListByClaimID(_ context.Context, claimID int64) ([]*models.Document, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []*models.Document{}
	for _, doc := range r.d.docs {
		if doc.ClaimID == claimID {
			copied := *doc
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type chats struct{ d *db }

func (r *chats) CreateThread(_ context.Context, thread *models.ChatThread) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.threads[thread.ThreadID]; ok {
		return duplicate("chat_threads_thread_id_key")
	}
	thread.ID = r.d.id()
	thread.CreatedAt = time.Now().UTC()
	if thread.Status == "" {
		thread.Status = models.ThreadStatusActive
	}
	stored := *thread
	r.d.threads[thread.ThreadID] = &stored
	return nil
}

func (r *chats) GetThread(_ context.Context, threadID string) (*models.ChatThread, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	t, ok := r.d.threads[threadID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *chats) ListThreadsByUser(_ context.Context, userID int64) ([]*models.ChatThread, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []*models.ChatThread{}
	for _, t := range r.d.threads {
		if t.UserID == userID {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *chats) CloseThread(_ context.Context, threadID string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	t, ok := r.d.threads[threadID]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	t.Status = models.ThreadStatusClosed
	t.ClosedAt = &now
	return nil
}

func (r *chats) CreateMessage(_ context.Context, msg *models.ChatMessage) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, m := range r.d.messages {
		if m.MessageID == msg.MessageID {
			return duplicate("chat_messages_message_id_key")
		}
	}
	msg.ID = r.d.id()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	stored := *msg
	r.d.messages = append(r.d.messages, &stored)
	return nil
}

func (r *chats) ListMessages(_ context.Context, threadID string) ([]*models.ChatMessage, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []*models.ChatMessage{}
	for _, m := range r.d.messages {
		if m.ThreadID == threadID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

type analyses struct{ d *db }

func (r *analyses) Create(_ context.Context, result *models.DocumentAnalysisResult) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.docs[result.DocumentID]; !ok {
		return fmt.Errorf("document_analysis_results_document_id_fkey: document %d does not exist", result.DocumentID)
	}
	result.ID = r.d.id()
	result.CreatedAt = time.Now().UTC()
	stored := *result
	r.d.analyses = append(r.d.analyses, &stored)
	return nil
}

func (r *analyses) ListByDocumentID(_ context.Context, documentID int64) ([]*models.DocumentAnalysisResult, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []*models.DocumentAnalysisResult{}
	for i := len(r.d.analyses) - 1; i >= 0; i-- {
		if a := r.d.analyses[i]; a.DocumentID == documentID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

type audit struct{ d *db }

func (r *audit) Create(_ context.Context, entry *models.AuditLog) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	entry.ID = r.d.id()
	entry.CreatedAt = time.Now().UTC()
	stored := *entry
	r.d.audit = append(r.d.audit, &stored)
	return nil
}

func (r *audit) ListByUser(_ context.Context, userID int64, limit int) ([]*models.AuditLog, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []*models.AuditLog{}
	for i := len(r.d.audit) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if e := r.d.audit[i]; e.UserID != nil && *e.UserID == userID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}
