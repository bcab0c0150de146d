package dto

import (
	"encoding/json"
)

// CreateClaimRequest is the final step of the multi-step lead form.
type CreateClaimRequest struct {
	FirstName        string   `json:"firstName" validate:"required,max=100"`
	LastName         string   `json:"lastName" validate:"required,max=100"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone" validate:"required,min=7,max=30"`
	Branch           string   `json:"branch" validate:"required"`
	ServiceStartDate string   `json:"serviceStartDate" validate:"required"`
	ServiceEndDate   string   `json:"serviceEndDate"`
	DischargeType    string   `json:"dischargeType"`
	ClaimTypes       []string `json:"claimType" validate:"required,min=1,dive,required"`
	Description      string   `json:"description" validate:"required,min=10"`
}

type ClaimResponse struct {
	ID               int64           `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Branch           string          `json:"branch"`
	ServiceStartDate string          `json:"serviceStartDate"`
	ServiceEndDate   string          `json:"serviceEndDate,omitempty"`
	DischargeType    string          `json:"dischargeType,omitempty"`
	ClaimTypes       []string        `json:"claimType"`
	Description      string          `json:"description"`
	Status           string          `json:"status"`
	Analysis         json.RawMessage `json:"analysis,omitempty"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

// ClaimAnalysis is the JSON shape requested from the model for a new claim.
type ClaimAnalysis struct {
	Summary             string   `json:"summary"`
	StrengthScore       int      `json:"strengthScore"`
	RecommendedEvidence []string `json:"recommendedEvidence"`
	PotentialIssues     []string `json:"potentialIssues"`
	NextSteps           []string `json:"nextSteps"`
}

type CreateClaimResponse struct {
	Claim    ClaimResponse  `json:"claim"`
	Analysis *ClaimAnalysis `json:"analysis"`
	Message  string         `json:"message,omitempty"`
}

type UpdateClaimStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

type CreateDocumentRequest struct {
	DocumentType string `json:"documentType" validate:"required,oneof=personal_statement buddy_statement nexus_letter notice_of_disagreement"`
}

type DocumentResponse struct {
	ID           int64  `json:"id"`
	ClaimID      int64  `json:"claimId"`
	DocumentType string `json:"documentType"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	CreatedAt    string `json:"createdAt"`
}
