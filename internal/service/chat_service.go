package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/models"
	"valor-assist/internal/repository"
	"valor-assist/pkg/auth"
	"valor-assist/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrThreadClosed = errors.New("chat thread is closed")

const (
	botSenderID   = "valor-assist-bot"
	botSenderName = "Valor Assist"

	chatTokenTTL = 24 * time.Hour
)

// Reply sources reported to clients.
const (
	SourceFineTuned = "fine-tuned"
	SourceOpenAI    = "openai"
	SourceBot       = "bot"
	SourceFallback  = "fallback"
)

// ChatService relays support chat through Azure Communication Services when a
// connection string is configured, and simulates it otherwise. Threads opened
// by signed-in users are also written to chat_threads/chat_messages.
type ChatService struct {
	acs     *ACSClient
	threads ThreadStore
	store   *repository.Store
	signer  *auth.Signer
	bot     *Bot
	llm     *LLMService
	now     func() time.Time
	logger  *zap.Logger

	idMu       sync.Mutex
	lastThread int64
}

func NewChatService(
	acs *ACSClient,
	threads ThreadStore,
	store *repository.Store,
	signer *auth.Signer,
	bot *Bot,
	llm *LLMService,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		acs:     acs,
		threads: threads,
		store:   store,
		signer:  signer,
		bot:     bot,
		llm:     llm,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *ChatService) CreateUser(ctx context.Context, displayName string) (*dto.ChatIdentity, error) {
	if s.acs != nil {
		identity, err := s.acs.CreateUser(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.ChatIdentity{
			ID:          identity.ID,
			Token:       identity.Token,
			ExpiresOn:   identity.ExpiresOn.UTC().Format(time.RFC3339),
			DisplayName: displayName,
		}, nil
	}

	id := "sim-user-" + uuid.NewString()
	expiresOn := s.now().Add(chatTokenTTL).UTC()
	token, err := s.signer.SignChatToken(id, []string{"chat"}, expiresOn)
	if err != nil {
		return nil, fmt.Errorf("failed to sign chat token: %w", err)
	}

	return &dto.ChatIdentity{
		ID:          id,
		Token:       token,
		ExpiresOn:   expiresOn.Format(time.RFC3339),
		DisplayName: displayName,
		Simulated:   true,
	}, nil
}

// nextSimulatedThreadID returns sim-thread-<unix-ms>, bumping the millisecond
// so two threads created in the same millisecond stay distinct.
func (s *ChatService) nextSimulatedThreadID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.lastThread {
		ms = s.lastThread + 1
	}
	s.lastThread = ms
	return fmt.Sprintf("sim-thread-%d", ms)
}

// CreateThread opens a chat thread. ownerUserID is the signed-in user, if any.
func (s *ChatService) CreateThread(ctx context.Context, topic string, participants []dto.ChatParticipant, ownerUserID *int64) (*dto.ChatThreadResponse, error) {
	thread := &StoredThread{
		Topic:        topic,
		Status:       models.ThreadStatusActive,
		Participants: participants,
		OwnerUserID:  ownerUserID,
		Simulated:    s.acs == nil,
		CreatedAt:    s.now().UTC(),
	}

	if s.acs != nil {
		members := make(map[string]string, len(participants))
		for _, p := range participants {
			members[p.ID] = p.DisplayName
		}
		id, createdOn, err := s.acs.CreateThread(ctx, topic, members)
		if err != nil {
			return nil, err
		}
		thread.ID = id
		if !createdOn.IsZero() {
			thread.CreatedAt = createdOn.UTC()
		}
	} else {
		thread.ID = s.nextSimulatedThreadID()
	}

	if err := s.threads.SaveThread(ctx, thread); err != nil {
		return nil, err
	}

	if ownerUserID != nil {
		record := &models.ChatThread{
			ThreadID: thread.ID,
			UserID:   *ownerUserID,
			Topic:    topic,
			Status:   models.ThreadStatusActive,
		}
		if err := s.store.Chats.CreateThread(ctx, record); err != nil {
			s.logger.Warn("Failed to persist chat thread",
				zap.String("thread_id", thread.ID),
				zap.Int64("user_id", *ownerUserID),
				zap.Error(err),
			)
			thread.OwnerUserID = nil
			if err := s.threads.SaveThread(ctx, thread); err != nil {
				s.logger.Warn("Failed to update cached chat thread",
					zap.String("thread_id", thread.ID),
					zap.Error(err),
				)
			}
		}
	}

	s.logger.Info("Chat thread created",
		zap.String("thread_id", thread.ID),
		zap.Bool("simulated", thread.Simulated),
		zap.Bool("persisted", thread.OwnerUserID != nil),
	)
	return threadResponse(thread), nil
}

// lookupThread checks the thread store first and falls back to chat_threads
// for persisted threads whose cache entry has expired.
func (s *ChatService) lookupThread(ctx context.Context, threadID string) (*StoredThread, error) {
	thread, err := s.threads.GetThread(ctx, threadID)
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, ErrThreadNotFound) {
		return nil, err
	}

	record, dbErr := s.store.Chats.GetThread(ctx, threadID)
	if dbErr != nil {
		if errors.Is(dbErr, repository.ErrNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, dbErr
	}

	owner := record.UserID
	thread = &StoredThread{
		ID:          record.ThreadID,
		Topic:       record.Topic,
		Status:      record.Status,
		OwnerUserID: &owner,
		Simulated:   s.acs == nil,
		CreatedAt:   record.CreatedAt,
	}
	if err := s.threads.SaveThread(ctx, thread); err != nil {
		s.logger.Warn("Failed to re-cache chat thread", zap.String("thread_id", threadID), zap.Error(err))
	}
	return thread, nil
}

// ListThreads returns the persisted threads a signed-in user opened, newest first.
func (s *ChatService) ListThreads(ctx context.Context, userID int64) ([]dto.ChatThreadResponse, error) {
	records, err := s.store.Chats.ListThreadsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChatThreadResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ChatThreadResponse{
			ThreadID:  r.ThreadID,
			Topic:     r.Topic,
			Status:    r.Status,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
			Simulated: s.acs == nil,
		})
	}
	return out, nil
}

func (s *ChatService) GetThread(ctx context.Context, threadID string) (*dto.ChatThreadResponse, error) {
	thread, err := s.lookupThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return threadResponse(thread), nil
}

func (s *ChatService) SendMessage(ctx context.Context, threadID, senderID, senderName, content string) (*dto.ChatMessageResponse, error) {
	return s.postMessage(ctx, threadID, senderID, senderName, content, false)
}

func (s *ChatService) postMessage(ctx context.Context, threadID, senderID, senderName, content string, isBot bool) (*dto.ChatMessageResponse, error) {
	thread, err := s.lookupThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread.Status == models.ThreadStatusClosed {
		return nil, ErrThreadClosed
	}

	msg := &dto.ChatMessageResponse{
		ID:         uuid.NewString(),
		ThreadID:   threadID,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		IsBot:      isBot,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}

	if s.acs != nil {
		id, err := s.acs.SendMessage(ctx, threadID, senderName, content)
		if err != nil {
			return nil, err
		}
		msg.ID = id
	} else if err := s.threads.AppendMessage(ctx, threadID, msg); err != nil {
		return nil, err
	}

	if thread.OwnerUserID != nil {
		record := &models.ChatMessage{
			MessageID:  msg.ID,
			ThreadID:   threadID,
			SenderID:   senderID,
			SenderName: senderName,
			Content:    content,
			IsBot:      isBot,
		}
		if err := s.store.Chats.CreateMessage(ctx, record); err != nil {
			s.logger.Warn("Failed to persist chat message", zap.String("thread_id", threadID), zap.Error(err))
		}
	}

	return msg, nil
}

func (s *ChatService) ListMessages(ctx context.Context, threadID string) ([]dto.ChatMessageResponse, error) {
	thread, err := s.lookupThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if s.acs != nil {
		messages, err := s.acs.ListMessages(ctx, threadID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ChatMessageResponse, 0, len(messages))
		for _, m := range messages {
			out = append(out, dto.ChatMessageResponse{
				ID:         m.ID,
				ThreadID:   threadID,
				SenderID:   m.SenderID,
				SenderName: m.SenderDisplayName,
				Content:    m.Content,
				IsBot:      m.SenderDisplayName == botSenderName,
				CreatedAt:  m.CreatedOn.UTC().Format(time.RFC3339),
			})
		}
		return out, nil
	}

	if thread.OwnerUserID != nil {
		records, err := s.store.Chats.ListMessages(ctx, threadID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ChatMessageResponse, 0, len(records))
		for _, r := range records {
			out = append(out, dto.ChatMessageResponse{
				ID:         r.MessageID,
				ThreadID:   r.ThreadID,
				SenderID:   r.SenderID,
				SenderName: r.SenderName,
				Content:    r.Content,
				IsBot:      r.IsBot,
				CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return out, nil
	}

	return s.threads.ListMessages(ctx, threadID)
}

// CloseThread marks a thread closed; later messages are rejected.
func (s *ChatService) CloseThread(ctx context.Context, threadID string) (*dto.ChatThreadResponse, error) {
	thread, err := s.lookupThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread.Status == models.ThreadStatusClosed {
		return threadResponse(thread), nil
	}

	if thread.OwnerUserID != nil {
		if err := s.store.Chats.CloseThread(ctx, threadID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to close thread: %w", err)
		}
	}

	thread.Status = models.ThreadStatusClosed
	if err := s.threads.SaveThread(ctx, thread); err != nil {
		return nil, err
	}

	s.logger.Info("Chat thread closed", zap.String("thread_id", threadID))
	return threadResponse(thread), nil
}

// Answer runs the reply chain: fine-tuned model, then the general model when
// allowed, then the keyword bot, then the bot's canned fallback. Model errors
// fall through to the next tier.
func (s *ChatService) Answer(ctx context.Context, history []dto.ChatHistoryMessage, message string, useGeneralModel bool) dto.AIChatResponse {
	if s.llm.FineTuned() {
		reply, err := s.llm.FineTunedReply(ctx, message)
		if err == nil {
			return dto.AIChatResponse{Response: reply, Source: SourceFineTuned}
		}
		s.logger.Warn("Fine-tuned model failed, falling back", zap.Error(err))
	}

	if useGeneralModel && s.llm.Enabled() {
		reply, err := s.llm.ChatReply(ctx, history, message)
		if err == nil && reply != "" {
			return dto.AIChatResponse{Response: reply, Source: SourceOpenAI}
		}
		s.logger.Warn("Chat model failed, falling back to bot", zap.Error(err))
	}

	resp := s.bot.Reply(history, message)
	metrics.BotIntents.WithLabelValues(string(resp.Intent)).Inc()

	source := SourceBot
	if resp.Intent == IntentUnknown {
		source = SourceFallback
	}
	return dto.AIChatResponse{
		Response:    resp.Message,
		Intent:      string(resp.Intent),
		Suggestions: resp.Suggestions,
		Source:      source,
	}
}

// ProcessBotMessage answers a message on a thread and posts the answer to it.
func (s *ChatService) ProcessBotMessage(ctx context.Context, threadID, message string) (*dto.BotReplyResponse, error) {
	if _, err := s.lookupThread(ctx, threadID); err != nil {
		return nil, err
	}

	answer := s.Answer(ctx, nil, message, false)
	if answer.Intent == "" {
		answer.Intent = string(s.bot.Classify(message))
	}

	posted, err := s.postMessage(ctx, threadID, botSenderID, botSenderName, answer.Response, true)
	if err != nil {
		return nil, err
	}

	suggestions := answer.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return &dto.BotReplyResponse{
		Intent:      answer.Intent,
		Response:    answer.Response,
		Suggestions: suggestions,
		Source:      answer.Source,
		Message:     posted,
	}, nil
}

func threadResponse(t *StoredThread) *dto.ChatThreadResponse {
	return &dto.ChatThreadResponse{
		ThreadID:  t.ID,
		Topic:     t.Topic,
		Status:    t.Status,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		Simulated: t.Simulated,
	}
}
