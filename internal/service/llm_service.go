package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/models"
	"valor-assist/pkg/config"
	"valor-assist/pkg/metrics"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var (
	ErrModelUnavailable = errors.New("language model unavailable")
	ErrEmptyCompletion  = errors.New("empty completion")
)

// ChatCompleter is the part of the OpenAI client the service uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type LLMService struct {
	client         ChatCompleter
	model          string
	fineTunedModel string
	timeout        time.Duration
	provider       string
	logger         *zap.Logger
}

// NewLLMService prefers Azure OpenAI when it is fully configured, then OpenAI.
// With neither, every operation returns its fixed fallback.
func NewLLMService(cfg *config.OpenAIConfig, logger *zap.Logger) *LLMService {
	s := &LLMService{
		model:          cfg.Model,
		fineTunedModel: cfg.FineTunedModel,
		timeout:        cfg.Timeout,
		logger:         logger,
	}

	switch {
	case cfg.AzureEndpoint != "" && cfg.AzureAPIKey != "" && cfg.AzureDeployment != "":
		clientConfig := openai.DefaultAzureConfig(cfg.AzureAPIKey, cfg.AzureEndpoint)
		deployment := cfg.AzureDeployment
		clientConfig.AzureModelMapperFunc = func(string) string { return deployment }
		s.client = openai.NewClientWithConfig(clientConfig)
		s.provider = "azure-openai"
	case cfg.APIKey != "":
		s.client = openai.NewClient(cfg.APIKey)
		s.provider = "openai"
	default:
		logger.Warn("No OpenAI credentials configured, AI features will return placeholder responses")
		return s
	}

	logger.Info("LLM service initialized",
		zap.String("provider", s.provider),
		zap.String("model", s.model),
		zap.Bool("fine_tuned", s.fineTunedModel != ""),
	)
	return s
}

// NewLLMServiceWithClient is used by tests and by callers that build their own client.
func NewLLMServiceWithClient(client ChatCompleter, model, fineTunedModel string, logger *zap.Logger) *LLMService {
	return &LLMService{
		client:         client,
		model:          model,
		fineTunedModel: fineTunedModel,
		timeout:        30 * time.Second,
		provider:       "custom",
		logger:         logger,
	}
}

func (s *LLMService) Enabled() bool {
	return s.client != nil
}

func (s *LLMService) FineTuned() bool {
	return s.client != nil && s.fineTunedModel != ""
}

func (s *LLMService) complete(ctx context.Context, model string, messages []openai.ChatCompletionMessage, jsonMode bool) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.3,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	metrics.ObserveUpstream(s.provider, err)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	s.logger.Debug("Completion generated",
		zap.String("model", model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func systemAndUser(system, user string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}
}

// AnalyzeClaim asks the model for a structured assessment of a new claim.
func (s *LLMService) AnalyzeClaim(ctx context.Context, claim *models.Claim) (*dto.ClaimAnalysis, error) {
	if !s.Enabled() {
		return fallbackClaimAnalysis(claim), nil
	}

	payload, err := json.Marshal(map[string]any{
		"branch":           claim.Branch,
		"serviceStartDate": claim.ServiceStartDate,
		"serviceEndDate":   claim.ServiceEndDate,
		"dischargeType":    claim.DischargeType,
		"claimTypes":       claim.ClaimTypes,
		"description":      claim.Description,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, s.model, systemAndUser(claimAnalysisInstruction(), "Claim:\n"+string(payload)), true)
	if err != nil {
		return nil, err
	}

	var analysis dto.ClaimAnalysis
	decodeJSONObject(content, &analysis, s.logger)
	return &analysis, nil
}

// GenerateDocumentTemplate drafts a supporting document for a claim.
func (s *LLMService) GenerateDocumentTemplate(ctx context.Context, claim *models.Claim, docType models.DocumentType) (string, error) {
	if !s.Enabled() {
		return fallbackDocumentTemplate(claim, docType), nil
	}

	prompt := fmt.Sprintf(`Document type: %s

Veteran: %s %s
Branch: %s
Service: %s to %s
Discharge: %s
Claimed conditions: %s

Veteran's description:
%s`,
		docType.Title(), claim.FirstName, claim.LastName, claim.Branch, claim.ServiceStartDate,
		valueOr(claim.ServiceEndDate, "present"), valueOr(claim.DischargeType, "not provided"),
		strings.Join(claim.ClaimTypes, ", "), claim.Description)

	return s.complete(ctx, s.model, systemAndUser(documentTemplateInstruction(), prompt), false)
}

// ChatReply answers a free-form question with the conversation so far.
func (s *LLMService) ChatReply(ctx context.Context, history []dto.ChatHistoryMessage, message string) (string, error) {
	if !s.Enabled() {
		return "AI chat is not configured. Please contact our support team or try one of the suggested topics.", nil
	}

	messages := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: chatInstruction()}}
	for _, h := range history {
		role := openai.ChatMessageRoleUser
		if h.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: h.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	return s.complete(ctx, s.model, messages, false)
}

// FineTunedReply answers with the fine-tuned support model.
// It returns ErrModelUnavailable when no such model is configured.
func (s *LLMService) FineTunedReply(ctx context.Context, message string) (string, error) {
	if !s.FineTuned() {
		return "", ErrModelUnavailable
	}

	content, err := s.complete(ctx, s.fineTunedModel, systemAndUser(chatInstruction(), message), false)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

func (s *LLMService) FindLegalPrecedents(ctx context.Context, condition, claimType string) (*dto.LegalPrecedentResponse, error) {
	if !s.Enabled() {
		return fallbackLegalPrecedents(condition), nil
	}

	prompt := fmt.Sprintf("Condition: %s\nClaim type: %s", condition, valueOr(claimType, "service connection"))
	content, err := s.complete(ctx, s.model, systemAndUser(legalPrecedentInstruction(), prompt), true)
	if err != nil {
		return nil, err
	}

	result := dto.LegalPrecedentResponse{Precedents: []dto.LegalPrecedent{}}
	decodeJSONObject(content, &result, s.logger)
	if result.Precedents == nil {
		result.Precedents = []dto.LegalPrecedent{}
	}
	return &result, nil
}

// AnalyzeDocumentText extracts whatever fields the model can find in text.
func (s *LLMService) AnalyzeDocumentText(ctx context.Context, text string) (map[string]any, error) {
	if !s.Enabled() {
		return map[string]any{
			"message": "AI document analysis requires an OpenAI API key",
		}, nil
	}

	content, err := s.complete(ctx, s.model, systemAndUser(documentAnalysisInstruction(), text), true)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	decodeJSONObject(content, &fields, s.logger)
	return fields, nil
}

// ExtractTextFromImage transcribes a scanned page with the vision-capable model.
func (s *LLMService) ExtractTextFromImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	if !s.Enabled() {
		return "", ErrModelUnavailable
	}

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: imageTranscriptionInstruction()},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL,
					Detail: openai.ImageURLDetailHigh,
				}},
			},
		},
	}

	return s.complete(ctx, s.model, messages, false)
}

// decodeJSONObject pulls the outermost {...} span out of content, stripping
// markdown fences. On failure target is left as-is, i.e. empty.
func decodeJSONObject(content string, target any, logger *zap.Logger) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end < start {
		logger.Warn("Model response contained no JSON object",
			zap.Int("length", len(content)),
			zap.String("preview", truncateRunes(content, 200)),
		)
		return
	}

	jsonStr := content[start : end+1]
	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		logger.Warn("Failed to parse model JSON response",
			zap.String("preview", truncateRunes(jsonStr, 200)),
			zap.Error(err),
		)
	}
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func fallbackClaimAnalysis(claim *models.Claim) *dto.ClaimAnalysis {
	return &dto.ClaimAnalysis{
		Summary: fmt.Sprintf("Claim received for %s covering %s. A detailed AI review is unavailable, so a team member will review it manually.",
			claim.FirstName, strings.Join(claim.ClaimTypes, ", ")),
		StrengthScore: 5,
		RecommendedEvidence: []string{
			"Service treatment records",
			"Current medical diagnosis from a qualified provider",
			"Buddy statements describing in-service events",
		},
		PotentialIssues: []string{
			"A medical nexus opinion linking the condition to service may be required",
		},
		NextSteps: []string{
			"Gather your DD-214 and service treatment records",
			"Schedule a consultation with an accredited representative",
		},
	}
}

func fallbackDocumentTemplate(claim *models.Claim, docType models.DocumentType) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(docType.Title()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Veteran: %s %s\n", claim.FirstName, claim.LastName)
	fmt.Fprintf(&b, "Branch of Service: %s\n", claim.Branch)
	fmt.Fprintf(&b, "Dates of Service: %s to %s\n", claim.ServiceStartDate, valueOr(claim.ServiceEndDate, "[END DATE]"))
	fmt.Fprintf(&b, "Conditions: %s\n\n", strings.Join(claim.ClaimTypes, ", "))
	b.WriteString("To whom it may concern,\n\n")
	b.WriteString("[Describe the in-service event, injury or exposure in your own words.]\n\n")
	b.WriteString("[Describe how the condition affects your daily life and work today.]\n\n")
	b.WriteString("I certify that the statements above are true and correct to the best of my knowledge.\n\n")
	b.WriteString("Signature: ____________________    Date: [DATE]\n")
	return b.String()
}

func fallbackLegalPrecedents(condition string) *dto.LegalPrecedentResponse {
	return &dto.LegalPrecedentResponse{
		Precedents: []dto.LegalPrecedent{},
		Guidance: fmt.Sprintf("Legal precedent research for %q requires an OpenAI API key. "+
			"An accredited representative can help identify relevant Board and CAVC decisions.", condition),
	}
}
