package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"valor-assist/internal/models"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	content  string
	err      error
	requests []openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.content}}},
	}, nil
}

func sampleClaim() *models.Claim {
	return &models.Claim{
		ID:               1,
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@example.com",
		Phone:            "555-0100",
		Branch:           "Army",
		ServiceStartDate: "2004-01-10",
		ClaimTypes:       []string{"PTSD", "Tinnitus"},
		Description:      "Ringing in both ears since deployment.",
	}
}

func TestLLMServiceDisabledFallbacks(t *testing.T) {
	svc := NewLLMServiceWithClient(nil, "gpt-4o", "", zap.NewNop())
	ctx := context.Background()

	if svc.Enabled() {
		t.Fatal("Enabled() = true without a client")
	}

	analysis, err := svc.AnalyzeClaim(ctx, sampleClaim())
	if err != nil {
		t.Fatalf("AnalyzeClaim() error = %v", err)
	}
	if analysis.Summary == "" || len(analysis.NextSteps) == 0 {
		t.Errorf("AnalyzeClaim() fallback is incomplete: %+v", analysis)
	}

	tmpl, err := svc.GenerateDocumentTemplate(ctx, sampleClaim(), models.DocumentTypeBuddyLetter)
	if err != nil {
		t.Fatalf("GenerateDocumentTemplate() error = %v", err)
	}
	if !strings.HasPrefix(tmpl, "BUDDY STATEMENT") {
		t.Errorf("GenerateDocumentTemplate() = %q, want buddy statement heading", tmpl)
	}

	precedents, err := svc.FindLegalPrecedents(ctx, "tinnitus", "")
	if err != nil {
		t.Fatalf("FindLegalPrecedents() error = %v", err)
	}
	if precedents.Precedents == nil || precedents.Guidance == "" {
		t.Errorf("FindLegalPrecedents() fallback = %+v", precedents)
	}

	if _, err := svc.FineTunedReply(ctx, "hello"); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("FineTunedReply() error = %v, want ErrModelUnavailable", err)
	}
}

func TestAnalyzeClaimParsesFencedJSON(t *testing.T) {
	fake := &fakeCompleter{content: "```json\n{\"summary\":\"Strong nexus\",\"strengthScore\":8,\"nextSteps\":[\"File\"]}\n```"}
	svc := NewLLMServiceWithClient(fake, "gpt-4o", "", zap.NewNop())

	analysis, err := svc.AnalyzeClaim(context.Background(), sampleClaim())
	if err != nil {
		t.Fatalf("AnalyzeClaim() error = %v", err)
	}
	if analysis.Summary != "Strong nexus" || analysis.StrengthScore != 8 {
		t.Errorf("AnalyzeClaim() = %+v", analysis)
	}
	if got := fake.requests[0].ResponseFormat; got == nil || got.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Errorf("request ResponseFormat = %+v, want json_object", got)
	}
}

func TestAnalyzeClaimToleratesInvalidJSON(t *testing.T) {
	fake := &fakeCompleter{content: "I cannot help with that."}
	svc := NewLLMServiceWithClient(fake, "gpt-4o", "", zap.NewNop())

	analysis, err := svc.AnalyzeClaim(context.Background(), sampleClaim())
	if err != nil {
		t.Fatalf("AnalyzeClaim() error = %v", err)
	}
	if analysis.Summary != "" || analysis.StrengthScore != 0 {
		t.Errorf("AnalyzeClaim() = %+v, want empty analysis", analysis)
	}
}

func TestAnalyzeClaimRemoteFailure(t *testing.T) {
	upstream := errors.New("502 bad gateway")
	svc := NewLLMServiceWithClient(&fakeCompleter{err: upstream}, "gpt-4o", "", zap.NewNop())

	if _, err := svc.AnalyzeClaim(context.Background(), sampleClaim()); !errors.Is(err, upstream) {
		t.Errorf("AnalyzeClaim() error = %v, want wrapped upstream error", err)
	}
}

func TestChatReplyIncludesHistory(t *testing.T) {
	fake := &fakeCompleter{content: "  You can appeal within one year.  "}
	svc := NewLLMServiceWithClient(fake, "gpt-4o", "", zap.NewNop())

	reply, err := svc.ChatReply(context.Background(), nil, "How long do I have to appeal?")
	if err != nil {
		t.Fatalf("ChatReply() error = %v", err)
	}
	if reply != "You can appeal within one year." {
		t.Errorf("ChatReply() = %q", reply)
	}
	msgs := fake.requests[0].Messages
	if len(msgs) != 2 || msgs[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("messages = %+v, want system + user", msgs)
	}
}

func TestFineTunedReplyUsesFineTunedModel(t *testing.T) {
	fake := &fakeCompleter{content: "Hello from the tuned model"}
	svc := NewLLMServiceWithClient(fake, "gpt-4o", "ft:gpt-4o:valor", zap.NewNop())

	if _, err := svc.FineTunedReply(context.Background(), "hi"); err != nil {
		t.Fatalf("FineTunedReply() error = %v", err)
	}
	if got := fake.requests[0].Model; got != "ft:gpt-4o:valor" {
		t.Errorf("model = %q, want fine-tuned model", got)
	}
}
