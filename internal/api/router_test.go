package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"valor-assist/internal/api/handlers"
	"valor-assist/internal/models"
	"valor-assist/internal/repository"
	"valor-assist/internal/repository/memory"
	"valor-assist/internal/service"
	"valor-assist/pkg/auth"
	"valor-assist/pkg/config"
	"valor-assist/pkg/middleware"
	"valor-assist/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type testServer struct {
	app   *fiber.App
	store *repository.Store
}

// serverConfig holds the upstream settings a test may point at fakes.
type serverConfig struct {
	va config.VAConfig
	di config.DocumentIntelConfig
}

func newTestServer(t *testing.T, aiPerMinute int, opts ...func(*serverConfig)) *testServer {
	t.Helper()

	cfg := serverConfig{
		va: config.VAConfig{BaseURL: "http://127.0.0.1:0", Timeout: time.Second},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := zap.NewNop()
	store := memory.NewStore()
	signer := auth.NewSigner("test-secret")
	v := validator.New()

	threads := service.NewMemoryThreadStore(time.Hour, 0, log)
	limiter := middleware.NewRateLimiter(aiPerMinute, log)
	t.Cleanup(func() {
		limiter.Stop()
		_ = threads.Close()
	})

	llm := service.NewLLMServiceWithClient(nil, "", "", log)
	authService := service.NewAuthService(store, signer, time.Hour, log)
	claimService := service.NewClaimService(store, llm, log)
	vaService := service.NewVAService(cfg.va, log)
	diService := service.NewDocumentIntelligenceService(cfg.di, service.NewOCRService(llm, log), store, log)
	chatService := service.NewChatService(nil, threads, store, signer, service.NewDefaultBot(), llm, log)

	h := &Handlers{
		Auth:             handlers.NewAuthHandler(authService, v, false, log),
		Claims:           handlers.NewClaimHandler(claimService, v, log),
		VA:               handlers.NewVAHandler(vaService, v, log),
		AI:               handlers.NewAIHandler(chatService, llm, v, log),
		DocumentAnalysis: handlers.NewDocumentAnalysisHandler(diService, v, log),
		Chat:             handlers.NewChatHandler(chatService, v, log),
		Health:           handlers.NewHealthHandler(store, vaService, log),
		WebSocket:        handlers.NewWebSocketHandler(chatService, diService, log),
	}

	app := SetupRouter(h, Options{
		Authenticator: authService,
		AIRateLimiter: limiter,
	}, log)

	return &testServer{app: app, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookie string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '[' {
		var items []any
		if err := json.Unmarshal(raw, &items); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
		out["items"] = items
	}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp, out
}

func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "email": username + "@example.com", "password": "correct-horse"}
	resp, body := s.do(t, http.MethodPost, "/api/register", creds, "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s status = %d: %v", username, resp.StatusCode, body)
	}
	cookie := sessionCookie(resp)
	if cookie == "" {
		t.Fatalf("register %s did not set the session cookie", username)
	}
	return cookie
}

func items(body map[string]any) []any {
	list, _ := body["items"].([]any)
	return list
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Value
		}
	}
	return ""
}

func validClaim() map[string]any {
	return map[string]any{
		"firstName":        "Jane",
		"lastName":         "Doe",
		"email":            "jane@example.com",
		"phone":            "555-123-4567",
		"branch":           "army",
		"serviceStartDate": "2004-06-01",
		"serviceEndDate":   "2012-06-01",
		"dischargeType":    "honorable",
		"claimType":        []string{"ptsd", "tinnitus"},
		"description":      "Hearing loss and PTSD after two deployments.",
	}
}

func TestSubmitAndFetchClaim(t *testing.T) {
	s := newTestServer(t, 30)

	resp, body := s.do(t, http.MethodPost, "/api/claims", validClaim(), "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", resp.StatusCode, body)
	}

	claim, ok := body["claim"].(map[string]any)
	if !ok {
		t.Fatalf("response has no claim: %v", body)
	}
	if claim["status"] != models.ClaimStatusAnalyzed {
		t.Errorf("status = %v, want %s", claim["status"], models.ClaimStatusAnalyzed)
	}
	if body["analysis"] == nil {
		t.Error("analysis missing from response")
	}

	id := strconv.FormatInt(int64(claim["id"].(float64)), 10)
	resp, body = s.do(t, http.MethodGet, "/api/claims/"+id, nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	if body["email"] != "jane@example.com" {
		t.Errorf("email = %v", body["email"])
	}
}

func TestSubmitClaimValidation(t *testing.T) {
	s := newTestServer(t, 30)

	claim := validClaim()
	delete(claim, "email")
	claim["claimType"] = []string{}

	resp, body := s.do(t, http.MethodPost, "/api/claims", claim, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("no field errors in %v", body)
	}
	for _, name := range []string{"email", "claimType"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("missing field error for %s: %v", name, fields)
		}
	}
}

func TestClaimRoutes(t *testing.T) {
	s := newTestServer(t, 30)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"invalid id", http.MethodGet, "/api/claims/abc", nil, fiber.StatusBadRequest},
		{"unknown claim", http.MethodGet, "/api/claims/999", nil, fiber.StatusNotFound},
		{"list requires auth", http.MethodGet, "/api/claims", nil, fiber.StatusUnauthorized},
		{"status requires auth", http.MethodPatch, "/api/claims/1/status", map[string]string{"status": "closed"}, fiber.StatusUnauthorized},
		{"document for unknown claim", http.MethodPost, "/api/claims/999/documents", map[string]string{"documentType": "buddy_statement"}, fiber.StatusNotFound},
		{"bad document type", http.MethodPost, "/api/claims/1/documents", map[string]string{"documentType": "memo"}, fiber.StatusBadRequest},
		{"unknown api path", http.MethodGet, "/api/nope", nil, fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, tt.method, tt.path, tt.body, "")
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d: %v", resp.StatusCode, tt.want, body)
			}
			if _, ok := body["error"]; !ok {
				t.Errorf("error body missing: %v", body)
			}
		})
	}
}

func TestRegisterLoginSession(t *testing.T) {
	s := newTestServer(t, 30)

	creds := map[string]string{"username": "jdoe", "email": "jdoe@example.com", "password": "correct-horse"}
	resp, body := s.do(t, http.MethodPost, "/api/register", creds, "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d: %v", resp.StatusCode, body)
	}
	registered := body["user"].(map[string]any)

	resp, _ = s.do(t, http.MethodPost, "/api/register", creds, "")
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", resp.StatusCode)
	}

	resp, _ = s.do(t, http.MethodPost, "/api/login", map[string]string{"username": "jdoe", "password": "wrong-password"}, "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", resp.StatusCode)
	}

	resp, _ = s.do(t, http.MethodPost, "/api/login", map[string]string{"username": "jdoe", "password": "correct-horse"}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	if cookie == "" {
		t.Fatal("login did not set the session cookie")
	}

	resp, body = s.do(t, http.MethodGet, "/api/user", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("current user status = %d", resp.StatusCode)
	}
	if got := body["user"].(map[string]any)["id"]; got != registered["id"] {
		t.Errorf("current user id = %v, want %v", got, registered["id"])
	}

	resp, _ = s.do(t, http.MethodGet, "/api/claims?email=jdoe@example.com", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("list claims status = %d, want 200", resp.StatusCode)
	}

	resp, _ = s.do(t, http.MethodPatch, "/api/claims/1/status", map[string]string{"status": "closed"}, cookie)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("non-admin status update = %d, want 403", resp.StatusCode)
	}

	resp, _ = s.do(t, http.MethodPost, "/api/logout", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("logout status = %d", resp.StatusCode)
	}
	resp, _ = s.do(t, http.MethodGet, "/api/user", nil, cookie)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("user after logout = %d, want 401", resp.StatusCode)
	}
}

func TestAdminUpdatesClaimStatus(t *testing.T) {
	s := newTestServer(t, 30)

	hash, err := auth.HashPassword("admin-password")
	if err != nil {
		t.Fatal(err)
	}
	admin := &models.User{Username: "admin", Email: "admin@example.com", Password: hash, Role: models.RoleAdmin}
	if err := s.store.Users.Create(context.Background(), admin); err != nil {
		t.Fatal(err)
	}

	resp, _ := s.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "admin-password"}, "")
	cookie := sessionCookie(resp)
	if cookie == "" {
		t.Fatalf("admin login failed: %d", resp.StatusCode)
	}

	_, created := s.do(t, http.MethodPost, "/api/claims", validClaim(), "")
	id := strconv.FormatInt(int64(created["claim"].(map[string]any)["id"].(float64)), 10)

	resp, body := s.do(t, http.MethodPatch, "/api/claims/"+id+"/status", map[string]string{"status": "in_review"}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %v", resp.StatusCode, body)
	}
	if body["status"] != "in_review" {
		t.Errorf("status = %v, want in_review", body["status"])
	}

	resp, body = s.do(t, http.MethodPost, "/api/claims/"+id+"/documents", map[string]string{"documentType": "personal_statement"}, cookie)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("document status = %d: %v", resp.StatusCode, body)
	}
	if body["content"] == "" {
		t.Error("document has no content")
	}
}

func TestHealthReportsConfiguredServices(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REDIS_URL", "")
	s := newTestServer(t, 30)

	resp, body := s.do(t, http.MethodGet, "/api/health", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	services := body["services"].(map[string]any)
	if services["openai"] != true {
		t.Errorf("openai = %v, want true", services["openai"])
	}
	if services["redis"] != false {
		t.Errorf("redis = %v, want false", services["redis"])
	}
}

func TestVAPlaceholders(t *testing.T) {
	s := newTestServer(t, 30)

	resp, body := s.do(t, http.MethodGet, "/api/va/claims/123?ssn=796043735", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "PENDING" {
		t.Errorf("status = %v, want PENDING", body["status"])
	}

	resp, _ = s.do(t, http.MethodGet, "/api/va/claims/123", nil, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("missing ssn status = %d, want 400", resp.StatusCode)
	}
}

func TestChatThreadWithBot(t *testing.T) {
	s := newTestServer(t, 30)

	resp, thread := s.do(t, http.MethodPost, "/api/chat/threads", map[string]any{"topic": "Claim help"}, "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create thread status = %d: %v", resp.StatusCode, thread)
	}
	if thread["simulated"] != true {
		t.Errorf("simulated = %v, want true", thread["simulated"])
	}
	threadID := thread["threadId"].(string)

	resp, reply := s.do(t, http.MethodPost, "/api/chat/bot/"+threadID+"/process", map[string]string{"message": "What is my claim status?"}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("bot status = %d: %v", resp.StatusCode, reply)
	}
	if reply["intent"] != string(service.IntentClaimStatus) {
		t.Errorf("intent = %v, want %s", reply["intent"], service.IntentClaimStatus)
	}

	resp, _ = s.do(t, http.MethodPost, "/api/chat/threads/"+threadID+"/close", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("close status = %d", resp.StatusCode)
	}
	resp, _ = s.do(t, http.MethodPost, "/api/chat/threads/"+threadID+"/messages", map[string]string{"senderId": "u1", "content": "hello?"}, "")
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("send to closed thread = %d, want 409", resp.StatusCode)
	}

	resp, _ = s.do(t, http.MethodGet, "/api/chat/threads/missing/messages", nil, "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown thread = %d, want 404", resp.StatusCode)
	}
}

func TestAIRoutesAreRateLimited(t *testing.T) {
	s := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		resp, body := s.do(t, http.MethodPost, "/api/ai/chat", map[string]string{"message": "how do I file a claim"}, "")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d status = %d: %v", i, resp.StatusCode, body)
		}
		if body["source"] != service.SourceBot {
			t.Errorf("source = %v, want %s", body["source"], service.SourceBot)
		}
	}

	resp, body := s.do(t, http.MethodPost, "/api/ai/chat", map[string]string{"message": "hello"}, "")
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Errorf("status = %d, want 429: %v", resp.StatusCode, body)
	}

	resp, _ = s.do(t, http.MethodGet, "/api/health", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("health is limited too: %d", resp.StatusCode)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	s := newTestServer(t, 30)

	resp, _ := s.do(t, http.MethodGet, "/ws", nil, "")
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("status = %d, want 426", resp.StatusCode)
	}
}

func TestAIFallbacksWithoutCredentials(t *testing.T) {
	s := newTestServer(t, 30)

	resp, body := s.do(t, http.MethodPost, "/api/ai/legal-precedents", map[string]string{"condition": "tinnitus"}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("precedents status = %d: %v", resp.StatusCode, body)
	}
	if body["guidance"] == "" || body["guidance"] == nil {
		t.Errorf("precedents guidance missing: %v", body)
	}

	resp, body = s.do(t, http.MethodPost, "/api/ai/document-analysis", map[string]string{"text": "Claim Number: 123456789"}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("document text status = %d: %v", resp.StatusCode, body)
	}
	if _, ok := body["message"]; !ok {
		t.Errorf("expected placeholder message: %v", body)
	}

	resp, _ = s.do(t, http.MethodPost, "/api/ai/chat", map[string]string{}, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("empty chat status = %d, want 400", resp.StatusCode)
	}
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	s := newTestServer(t, 30)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "letter.docx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("not a pdf")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/document-analysis/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp, _ = s.do(t, http.MethodPost, "/api/document-analysis/upload", nil, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("missing file status = %d, want 400", resp.StatusCode)
	}
}

func TestClaimListIsScopedToCurrentUser(t *testing.T) {
	s := newTestServer(t, 30)

	resp, _ := s.do(t, http.MethodPost, "/api/claims", validClaim(), "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("anonymous claim status = %d", resp.StatusCode)
	}

	mallory := s.register(t, "mallory")
	for _, path := range []string{"/api/claims", "/api/claims?email=jane@example.com"} {
		resp, body := s.do(t, http.MethodGet, path, nil, mallory)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("GET %s status = %d", path, resp.StatusCode)
		}
		if got := items(body); len(got) != 0 {
			t.Errorf("GET %s returned another applicant's claims: %v", path, got)
		}
	}

	own := validClaim()
	own["email"] = "mallory@example.com"
	resp, _ = s.do(t, http.MethodPost, "/api/claims", own, mallory)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signed-in claim status = %d", resp.StatusCode)
	}
	_, body := s.do(t, http.MethodGet, "/api/claims", nil, mallory)
	list := items(body)
	if len(list) != 1 {
		t.Fatalf("own claims = %v, want 1", list)
	}
	if got := list[0].(map[string]any)["email"]; got != "mallory@example.com" {
		t.Errorf("own claim email = %v", got)
	}

	hash, err := auth.HashPassword("admin-password")
	if err != nil {
		t.Fatal(err)
	}
	admin := &models.User{Username: "admin", Email: "admin@example.com", Password: hash, Role: models.RoleAdmin}
	if err := s.store.Users.Create(context.Background(), admin); err != nil {
		t.Fatal(err)
	}
	resp, _ = s.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "admin-password"}, "")
	adminCookie := sessionCookie(resp)

	_, body = s.do(t, http.MethodGet, "/api/claims?email=jane@example.com", nil, adminCookie)
	if got := items(body); len(got) != 1 {
		t.Errorf("admin email filter = %v, want jane's claim", got)
	}
	_, body = s.do(t, http.MethodGet, "/api/claims", nil, adminCookie)
	if got := items(body); len(got) != 2 {
		t.Errorf("admin listing = %d claims, want 2", len(got))
	}
}

func TestHealthReportsVAKeys(t *testing.T) {
	s := newTestServer(t, 30, func(cfg *serverConfig) {
		cfg.va.ClaimsKey = "claims-key"
	})

	_, body := s.do(t, http.MethodGet, "/api/health", nil, "")
	services := body["services"].(map[string]any)
	want := map[string]bool{
		"vaApi":          true,
		"vaClaims":       true,
		"vaHealth":       false,
		"vaVerification": false,
		"vaFacilities":   false,
		"vaEducation":    false,
	}
	for name, v := range want {
		if services[name] != v {
			t.Errorf("%s = %v, want %v", name, services[name], v)
		}
	}
}

func TestDocumentAnalysisFailedStatus(t *testing.T) {
	var upstream *httptest.Server
	upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Operation-Location", upstream.URL+"/operations/1")
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"failed","error":{"code":"InvalidContent","message":"corrupt file"}}`)
	}))
	t.Cleanup(upstream.Close)

	s := newTestServer(t, 30, func(cfg *serverConfig) {
		cfg.di = config.DocumentIntelConfig{Endpoint: upstream.URL, APIKey: "di-key", Model: "prebuilt-document", MaxAttempts: 3}
	})

	resp, body := s.do(t, http.MethodPost, "/api/document-analysis", map[string]string{"documentUrl": "https://example.com/letter.pdf"}, "")
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %v", resp.StatusCode, body)
	}
	if body["error"] != "Document analysis failed" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestListChatThreads(t *testing.T) {
	s := newTestServer(t, 30)

	resp, _ := s.do(t, http.MethodGet, "/api/chat/threads", nil, "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", resp.StatusCode)
	}

	jane := s.register(t, "jane")
	resp, created := s.do(t, http.MethodPost, "/api/chat/threads", map[string]any{"topic": "My claim"}, jane)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create thread status = %d: %v", resp.StatusCode, created)
	}
	_, _ = s.do(t, http.MethodPost, "/api/chat/threads", map[string]any{"topic": "anonymous"}, "")

	resp, body := s.do(t, http.MethodGet, "/api/chat/threads", nil, jane)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	list := items(body)
	if len(list) != 1 {
		t.Fatalf("threads = %v, want 1", list)
	}
	if got := list[0].(map[string]any)["threadId"]; got != created["threadId"] {
		t.Errorf("threadId = %v, want %v", got, created["threadId"])
	}

	other := s.register(t, "bob")
	_, body = s.do(t, http.MethodGet, "/api/chat/threads", nil, other)
	if got := items(body); len(got) != 0 {
		t.Errorf("bob sees %v, want no threads", got)
	}
}
