package models

import (
	"encoding/json"
	"time"
)

type DocumentType string

const (
	DocumentTypeStatement      DocumentType = "personal_statement"
	DocumentTypeBuddyLetter    DocumentType = "buddy_statement"
	DocumentTypeNexusLetter    DocumentType = "nexus_letter"
	DocumentTypeNoticeOfAppeal DocumentType = "notice_of_disagreement"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeStatement, DocumentTypeBuddyLetter, DocumentTypeNexusLetter, DocumentTypeNoticeOfAppeal:
		return true
	}
	return false
}

// Title returns the human readable heading used for generated templates.
func (t DocumentType) Title() string {
	switch t {
	case DocumentTypeStatement:
		return "Personal Statement in Support of Claim"
	case DocumentTypeBuddyLetter:
		return "Buddy Statement"
	case DocumentTypeNexusLetter:
		return "Nexus Letter Request"
	case DocumentTypeNoticeOfAppeal:
		return "Notice of Disagreement"
	}
	return string(t)
}

// Document holds generated template text for a claim. Immutable after create.
type Document struct {
	ID           int64        `db:"id"`
	ClaimID      int64        `db:"claim_id"`
	DocumentType DocumentType `db:"document_type"`
	Title        string       `db:"title"`
	Content      string       `db:"content"`
	CreatedAt    time.Time    `db:"created_at"`
}

type DocumentAnalysisResult struct {
	ID              int64           `db:"id"`
	DocumentID      int64           `db:"document_id"`
	ExtractedFields json.RawMessage `db:"extracted_fields"`
	Confidence      string          `db:"confidence"`
	CreatedAt       time.Time       `db:"created_at"`
}
