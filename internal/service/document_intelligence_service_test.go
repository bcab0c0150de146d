package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/repository/memory"
	"valor-assist/pkg/config"

	"go.uber.org/zap"
)

const sampleDecisionLetter = `DEPARTMENT OF VETERANS AFFAIRS
Claim Number: 123456789
Veteran Name: John A. Smith

Dear Mr. Smith:
We made a decision on your claim for service connection received on March 3, 2023.

Service connection for tinnitus is granted with an evaluation of 10 percent.
Evaluation of lumbar strain is continued.
The effective date of this award is April 1, 2023.`

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name string
		text string
		want dto.ExtractedFields
	}{
		{
			name: "empty text uses every fallback",
			text: "",
			want: dto.ExtractedFields{
				ClaimNumber:      "Not found",
				VeteranName:      "Not found",
				ServiceConnected: "Undetermined",
				Dispositions:     []string{"No decision found"},
				EffectiveDate:    "Not specified",
			},
		},
		{
			name: "decision letter",
			text: sampleDecisionLetter,
			want: dto.ExtractedFields{
				ClaimNumber:      "123456789",
				VeteranName:      "John A. Smith",
				ServiceConnected: "Yes",
				Dispositions:     []string{"Granted", "Continued"},
				EffectiveDate:    "April 1, 2023",
			},
		},
		{
			name: "denial with numeric date",
			text: "File No. 7654321\nService connection for sleep apnea is denied.\nEffective 06/15/2022",
			want: dto.ExtractedFields{
				ClaimNumber:      "7654321",
				VeteranName:      "Not found",
				ServiceConnected: "No",
				Dispositions:     []string{"Denied"},
				EffectiveDate:    "06/15/2022",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFields(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFields() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	if got := Confidence(ExtractFields("")); got != "low" {
		t.Errorf("Confidence(empty) = %q, want low", got)
	}
	if got := Confidence(ExtractFields(sampleDecisionLetter)); got != "high" {
		t.Errorf("Confidence(letter) = %q, want high", got)
	}
}

func newTestDocumentIntel(t *testing.T, endpoint string, maxAttempts int) *DocumentIntelligenceService {
	t.Helper()
	svc := NewDocumentIntelligenceService(config.DocumentIntelConfig{
		Endpoint:    endpoint,
		APIKey:      "di-key",
		Model:       "prebuilt-document",
		MaxAttempts: maxAttempts,
	}, nil, memory.NewStore(), zap.NewNop())
	svc.poll.InitialDelay = time.Millisecond
	svc.poll.MaxDelay = 2 * time.Millisecond
	return svc
}

func diServer(t *testing.T, pollBody func(n int32) string) (*httptest.Server, *int32) {
	t.Helper()
	var polls int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "di-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Method == http.MethodPost {
			w.Header().Set("Operation-Location", server.URL+"/operations/1")
			w.WriteHeader(http.StatusAccepted)
			return
		}
		n := atomic.AddInt32(&polls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pollBody(n))
	}))
	t.Cleanup(server.Close)
	return server, &polls
}

func TestAnalyzeURLSucceedsAfterPolling(t *testing.T) {
	server, polls := diServer(t, func(n int32) string {
		if n < 3 {
			return `{"status":"running"}`
		}
		return `{"status":"succeeded","analyzeResult":{"content":"Claim Number: 123456789","pages":[{},{}]}}`
	})

	svc := newTestDocumentIntel(t, server.URL, 5)
	result, err := svc.AnalyzeURL(context.Background(), "https://example.com/letter.pdf")
	if err != nil {
		t.Fatalf("AnalyzeURL() error = %v", err)
	}
	if result.Fields.ClaimNumber != "123456789" {
		t.Errorf("ClaimNumber = %q", result.Fields.ClaimNumber)
	}
	if result.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", result.PageCount)
	}
	if got := atomic.LoadInt32(polls); got != 3 {
		t.Errorf("polls = %d, want 3", got)
	}
}

func TestAnalyzeURLTimesOut(t *testing.T) {
	server, polls := diServer(t, func(int32) string { return `{"status":"running"}` })

	svc := newTestDocumentIntel(t, server.URL, 4)
	_, err := svc.AnalyzeURL(context.Background(), "https://example.com/letter.pdf")
	if !errors.Is(err, ErrAnalysisTimeout) {
		t.Fatalf("AnalyzeURL() error = %v, want ErrAnalysisTimeout", err)
	}
	if got := atomic.LoadInt32(polls); got != 4 {
		t.Errorf("polls = %d, want exactly MaxAttempts", got)
	}
}

func TestAnalyzeURLFailedStatus(t *testing.T) {
	server, polls := diServer(t, func(int32) string {
		return `{"status":"failed","error":{"code":"InvalidContent","message":"corrupt file"}}`
	})

	svc := newTestDocumentIntel(t, server.URL, 10)
	_, err := svc.AnalyzeURL(context.Background(), "https://example.com/letter.pdf")
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("AnalyzeURL() error = %v, want ErrAnalysisFailed", err)
	}
	if got := atomic.LoadInt32(polls); got != 1 {
		t.Errorf("polls = %d, want 1", got)
	}
}

func TestAnalyzeURLPlaceholderWithoutCredentials(t *testing.T) {
	svc := NewDocumentIntelligenceService(config.DocumentIntelConfig{}, nil, memory.NewStore(), zap.NewNop())

	result, err := svc.AnalyzeURL(context.Background(), "https://example.com/letter.pdf")
	if err != nil {
		t.Fatalf("AnalyzeURL() error = %v", err)
	}
	if result.Source != "placeholder" || result.Confidence != "low" {
		t.Errorf("result = %+v, want low-confidence placeholder", result)
	}
	if result.Fields.ClaimNumber != "Not found" {
		t.Errorf("ClaimNumber = %q, want fallback", result.Fields.ClaimNumber)
	}
}
