package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"valor-assist/pkg/metrics"

	"go.uber.org/zap"
)

var (
	ErrInvalidConnectionString = errors.New("invalid communication services connection string")
	ErrCommunicationFailed     = errors.New("communication service request failed")
)

const (
	acsIdentityAPIVersion = "2023-10-01"
	acsChatAPIVersion     = "2021-09-07"
)

// ParseConnectionString splits "endpoint=https://...;accesskey=..." into its parts.
func ParseConnectionString(conn string) (endpoint string, accessKey []byte, err error) {
	for _, part := range strings.Split(conn, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "endpoint":
			endpoint = strings.TrimRight(value, "/")
		case "accesskey":
			accessKey, err = base64.StdEncoding.DecodeString(value)
			if err != nil {
				return "", nil, fmt.Errorf("%w: access key is not base64", ErrInvalidConnectionString)
			}
		}
	}
	if endpoint == "" || len(accessKey) == 0 {
		return "", nil, ErrInvalidConnectionString
	}
	return endpoint, accessKey, nil
}

type ACSIdentity struct {
	ID        string
	Token     string
	ExpiresOn time.Time
}

type ACSMessage struct {
	ID                string
	SenderID          string
	SenderDisplayName string
	Content           string
	CreatedOn         time.Time
}

// ACSClient talks to the Azure Communication Services identity and chat REST
// APIs. Identity calls are HMAC signed with the resource access key; chat
// calls use a token for the service's own identity, created on first use.
type ACSClient struct {
	endpoint   string
	host       string
	accessKey  []byte
	httpClient *http.Client
	now        func() time.Time
	logger     *zap.Logger

	mu      sync.Mutex
	service *ACSIdentity
}

func NewACSClient(connectionString string, logger *zap.Logger) (*ACSClient, error) {
	endpoint, key, err := ParseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: bad endpoint", ErrInvalidConnectionString)
	}

	return &ACSClient{
		endpoint:   endpoint,
		host:       u.Host,
		accessKey:  key,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
		logger:     logger,
	}, nil
}

// sign sets the x-ms-date, x-ms-content-sha256 and Authorization headers.
func (c *ACSClient) sign(req *http.Request, body []byte) {
	sum := sha256.Sum256(body)
	contentHash := base64.StdEncoding.EncodeToString(sum[:])
	date := c.now().UTC().Format(http.TimeFormat)

	stringToSign := req.Method + "\n" + req.URL.RequestURI() + "\n" + date + ";" + c.host + ";" + contentHash
	mac := hmac.New(sha256.New, c.accessKey)
	mac.Write([]byte(stringToSign))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req.Header.Set("x-ms-date", date)
	req.Header.Set("x-ms-content-sha256", contentHash)
	req.Header.Set("Authorization", "HMAC-SHA256 SignedHeaders=x-ms-date;host;x-ms-content-sha256&Signature="+signature)
}

func (c *ACSClient) do(ctx context.Context, method, path string, payload any, bearer string, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		c.sign(req, body)
	}

	resp, err := c.httpClient.Do(req)
	metrics.ObserveUpstream("azure-communication", err)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommunicationFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommunicationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Communication service returned an error status",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrCommunicationFailed, resp.StatusCode)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: invalid response: %v", ErrCommunicationFailed, err)
		}
	}
	return nil
}

// CreateUser creates an identity and issues it a chat token.
func (c *ACSClient) CreateUser(ctx context.Context) (*ACSIdentity, error) {
	var resp struct {
		Identity struct {
			ID string `json:"id"`
		} `json:"identity"`
		AccessToken struct {
			Token     string    `json:"token"`
			ExpiresOn time.Time `json:"expiresOn"`
		} `json:"accessToken"`
	}

	payload := map[string]any{"createTokenFor": []string{"chat"}}
	if err := c.do(ctx, http.MethodPost, "/identities?api-version="+acsIdentityAPIVersion, payload, "", &resp); err != nil {
		return nil, err
	}

	return &ACSIdentity{
		ID:        resp.Identity.ID,
		Token:     resp.AccessToken.Token,
		ExpiresOn: resp.AccessToken.ExpiresOn,
	}, nil
}

// serviceToken returns a chat token for the service identity, renewing it
// five minutes before expiry.
func (c *ACSClient) serviceToken(ctx context.Context) (*ACSIdentity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.service != nil && c.now().Add(5*time.Minute).Before(c.service.ExpiresOn) {
		return c.service, nil
	}

	identity, err := c.CreateUser(ctx)
	if err != nil {
		return nil, err
	}
	c.service = identity
	c.logger.Info("Communication service identity issued", zap.String("identity", identity.ID))
	return identity, nil
}

func communicationIdentifier(id string) map[string]any {
	return map[string]any{
		"rawId":             id,
		"communicationUser": map[string]string{"id": id},
	}
}

func (c *ACSClient) CreateThread(ctx context.Context, topic string, participants map[string]string) (string, time.Time, error) {
	service, err := c.serviceToken(ctx)
	if err != nil {
		return "", time.Time{}, err
	}

	members := []map[string]any{{
		"communicationIdentifier": communicationIdentifier(service.ID),
		"displayName":             "Valor Assist",
	}}
	for id, name := range participants {
		if id == service.ID {
			continue
		}
		members = append(members, map[string]any{
			"communicationIdentifier": communicationIdentifier(id),
			"displayName":             name,
		})
	}

	var resp struct {
		ChatThread struct {
			ID        string    `json:"id"`
			CreatedOn time.Time `json:"createdOn"`
		} `json:"chatThread"`
	}
	payload := map[string]any{"topic": topic, "participants": members}
	if err := c.do(ctx, http.MethodPost, "/chat/threads?api-version="+acsChatAPIVersion, payload, service.Token, &resp); err != nil {
		return "", time.Time{}, err
	}
	return resp.ChatThread.ID, resp.ChatThread.CreatedOn, nil
}

func (c *ACSClient) SendMessage(ctx context.Context, threadID, senderName, content string) (string, error) {
	service, err := c.serviceToken(ctx)
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	payload := map[string]any{"content": content, "senderDisplayName": senderName, "type": "text"}
	path := "/chat/threads/" + url.PathEscape(threadID) + "/messages?api-version=" + acsChatAPIVersion
	if err := c.do(ctx, http.MethodPost, path, payload, service.Token, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ListMessages returns text messages oldest first.
func (c *ACSClient) ListMessages(ctx context.Context, threadID string) ([]ACSMessage, error) {
	service, err := c.serviceToken(ctx)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Value []struct {
			ID      string `json:"id"`
			Type    string `json:"type"`
			Content struct {
				Message string `json:"message"`
			} `json:"content"`
			SenderDisplayName string `json:"senderDisplayName"`
			Sender            struct {
				RawID string `json:"rawId"`
			} `json:"senderCommunicationIdentifier"`
			CreatedOn time.Time `json:"createdOn"`
		} `json:"value"`
	}
	path := "/chat/threads/" + url.PathEscape(threadID) + "/messages?api-version=" + acsChatAPIVersion
	if err := c.do(ctx, http.MethodGet, path, nil, service.Token, &resp); err != nil {
		return nil, err
	}

	messages := make([]ACSMessage, 0, len(resp.Value))
	for i := len(resp.Value) - 1; i >= 0; i-- {
		v := resp.Value[i]
		if v.Type != "text" && v.Type != "html" {
			continue
		}
		messages = append(messages, ACSMessage{
			ID:                v.ID,
			SenderID:          v.Sender.RawID,
			SenderDisplayName: v.SenderDisplayName,
			Content:           v.Content.Message,
			CreatedOn:         v.CreatedOn,
		})
	}
	return messages, nil
}
