package dto

type DocumentAnalysisRequest struct {
	DocumentURL string `json:"documentUrl" validate:"required,url"`
	DocumentID  *int64 `json:"documentId"`
}

// ExtractedFields are the values pulled out of a VA decision letter.
type ExtractedFields struct {
	ClaimNumber      string   `json:"claimNumber"`
	VeteranName      string   `json:"veteranName"`
	ServiceConnected string   `json:"serviceConnected"`
	Dispositions     []string `json:"dispositions"`
	EffectiveDate    string   `json:"effectiveDate"`
}

type DocumentAnalysisResponse struct {
	Fields     ExtractedFields `json:"fields"`
	Confidence string          `json:"confidence"`
	Source     string          `json:"source"`
	PageCount  int             `json:"pageCount,omitempty"`
	ResultID   int64           `json:"resultId,omitempty"`
}

type StoredAnalysisResponse struct {
	ID              int64           `json:"id"`
	DocumentID      int64           `json:"documentId"`
	ExtractedFields ExtractedFields `json:"extractedFields"`
	Confidence      string          `json:"confidence"`
	CreatedAt       string          `json:"createdAt"`
}
