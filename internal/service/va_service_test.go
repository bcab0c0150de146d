package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/pkg/config"

	"go.uber.org/zap"
)

func TestVAServicePlaceholdersWithoutKeys(t *testing.T) {
	svc := NewVAService(config.VAConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (json.RawMessage, error)
	}{
		{"claims", func() (json.RawMessage, error) { return svc.GetClaimStatus(ctx, "600123", "796068948") }},
		{"patient", func() (json.RawMessage, error) { return svc.GetPatient(ctx, "1012667145V762142") }},
		{"verify", func() (json.RawMessage, error) { return svc.VerifyVeteran(ctx, &dto.VerifyVeteranRequest{}) }},
		{"facilities", func() (json.RawMessage, error) { return svc.ListFacilities(ctx, &dto.FacilityQuery{}) }},
		{"facility", func() (json.RawMessage, error) { return svc.GetFacility(ctx, "vha_688") }},
		{"education", func() (json.RawMessage, error) { return svc.GetEducationBenefits(ctx, "796123018") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.call()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			var body map[string]any
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatalf("placeholder is not JSON: %v", err)
			}
			if body["message"] == "" || body["message"] == nil {
				t.Errorf("placeholder %s has no message", raw)
			}
		})
	}
}

func TestVAServiceClaimPlaceholderIsPending(t *testing.T) {
	svc := NewVAService(config.VAConfig{}, zap.NewNop())

	raw, err := svc.GetClaimStatus(context.Background(), "600123", "796068948")
	if err != nil {
		t.Fatalf("GetClaimStatus() error = %v", err)
	}
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	if body["status"] != "PENDING" {
		t.Errorf("status = %v, want PENDING", body["status"])
	}
}

func TestVAServiceSendsAPIKey(t *testing.T) {
	var gotKey, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("apikey")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"vha_688"}]}`))
	}))
	defer server.Close()

	svc := NewVAService(config.VAConfig{BaseURL: server.URL, FacilitiesKey: "secret", Timeout: time.Second}, zap.NewNop())

	raw, err := svc.ListFacilities(context.Background(), &dto.FacilityQuery{State: "DC", PerPage: 5})
	if err != nil {
		t.Fatalf("ListFacilities() error = %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("apikey header = %q, want secret", gotKey)
	}
	if gotPath != "/services/va_facilities/v1/facilities" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "per_page=5&state=DC" {
		t.Errorf("query = %q", gotQuery)
	}
	if string(raw) != `{"data":[{"id":"vha_688"}]}` {
		t.Errorf("body = %s, want upstream body unchanged", raw)
	}
}

func TestVAServiceUpstreamErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewVAService(config.VAConfig{BaseURL: server.URL, HealthKey: "k", Timeout: time.Second}, zap.NewNop())
	if _, err := svc.GetPatient(context.Background(), "1"); !errors.Is(err, ErrVAUnavailable) {
		t.Errorf("GetPatient() error = %v, want ErrVAUnavailable", err)
	}

	server.Close()
	if _, err := svc.GetPatient(context.Background(), "1"); !errors.Is(err, ErrVAUnavailable) {
		t.Errorf("GetPatient() after close error = %v, want ErrVAUnavailable", err)
	}
}
