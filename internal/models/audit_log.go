package models

import (
	"encoding/json"
	"time"
)

const (
	AuditActionRegister       = "user.register"
	AuditActionLogin          = "user.login"
	AuditActionLogout         = "user.logout"
	AuditActionClaimCreate    = "claim.create"
	AuditActionClaimAnalyze   = "claim.analyze"
	AuditActionClaimStatus    = "claim.status"
	AuditActionDocumentCreate = "document.create"
)

// AuditLog is append-only and keyed loosely to a user.
type AuditLog struct {
	ID         int64           `db:"id"`
	UserID     *int64          `db:"user_id"`
	Action     string          `db:"action"`
	EntityType string          `db:"entity_type"`
	EntityID   string          `db:"entity_id"`
	Details    json.RawMessage `db:"details"`
	IPAddress  string          `db:"ip_address"`
	CreatedAt  time.Time       `db:"created_at"`
}
