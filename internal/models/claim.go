package models

import (
	"encoding/json"
	"time"
)

const (
	ClaimStatusSubmitted = "submitted"
	ClaimStatusAnalyzed  = "analyzed"
)

// Claim is a lead-form submission. Status is a free string; no transitions are enforced.
type Claim struct {
	ID               int64           `db:"id"`
	FirstName        string          `db:"first_name"`
	LastName         string          `db:"last_name"`
	Email            string          `db:"email"`
	Phone            string          `db:"phone"`
	Branch           string          `db:"branch"`
	ServiceStartDate string          `db:"service_start_date"`
	ServiceEndDate   string          `db:"service_end_date"`
	DischargeType    string          `db:"discharge_type"`
	ClaimTypes       []string        `db:"claim_types"`
	Description      string          `db:"description"`
	Status           string          `db:"status"`
	Analysis         json.RawMessage `db:"analysis"`
	UserID           *int64          `db:"user_id"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}
