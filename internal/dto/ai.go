package dto

type ChatHistoryMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type AIChatRequest struct {
	Message string               `json:"message" validate:"required,max=4000"`
	History []ChatHistoryMessage `json:"history" validate:"max=50,dive"`
}

type AIChatResponse struct {
	Response    string   `json:"response"`
	Intent      string   `json:"intent,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Source      string   `json:"source"`
}

type LegalPrecedentRequest struct {
	Condition string `json:"condition" validate:"required"`
	ClaimType string `json:"claimType"`
}

type LegalPrecedent struct {
	CaseName  string `json:"caseName"`
	Citation  string `json:"citation"`
	Summary   string `json:"summary"`
	Relevance string `json:"relevance"`
}

type LegalPrecedentResponse struct {
	Precedents []LegalPrecedent `json:"precedents"`
	Guidance   string           `json:"guidance"`
}

type DocumentTextAnalysisRequest struct {
	Text string `json:"text" validate:"required"`
}
