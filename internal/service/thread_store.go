package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"valor-assist/internal/dto"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrThreadNotFound = errors.New("chat thread not found")

// StoredThread is the relay's view of a chat thread. OwnerUserID is set when
// a signed-in user opened it, in which case it is also in chat_threads.
type StoredThread struct {
	ID           string                `json:"id"`
	Topic        string                `json:"topic"`
	Status       string                `json:"status"`
	Participants []dto.ChatParticipant `json:"participants"`
	OwnerUserID  *int64                `json:"ownerUserId,omitempty"`
	Simulated    bool                  `json:"simulated"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// ThreadStore keeps chat threads and their messages for a bounded time. Every
// write refreshes the thread's TTL.
type ThreadStore interface {
	SaveThread(ctx context.Context, thread *StoredThread) error
	GetThread(ctx context.Context, threadID string) (*StoredThread, error)
	AppendMessage(ctx context.Context, threadID string, msg *dto.ChatMessageResponse) error
	ListMessages(ctx context.Context, threadID string) ([]dto.ChatMessageResponse, error)
	Close() error
}

type memoryThread struct {
	thread    StoredThread
	messages  []dto.ChatMessageResponse
	expiresAt time.Time
}

// MemoryThreadStore is the in-process ThreadStore. A background sweeper
// drops expired threads; reads also treat expired entries as missing.
type MemoryThreadStore struct {
	mu      sync.Mutex
	threads map[string]*memoryThread
	ttl     time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
	logger  *zap.Logger
}

func NewMemoryThreadStore(ttl, sweepInterval time.Duration, logger *zap.Logger) *MemoryThreadStore {
	s := &MemoryThreadStore{
		threads: make(map[string]*memoryThread),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
		logger:  logger,
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

func (s *MemoryThreadStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("Expired chat threads removed", zap.Int("count", n))
			}
		}
	}
}

// Sweep removes expired threads and returns how many were dropped.
func (s *MemoryThreadStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, t := range s.threads {
		if !now.Before(t.expiresAt) {
			delete(s.threads, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryThreadStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.threads)
}

func (s *MemoryThreadStore) SaveThread(_ context.Context, thread *StoredThread) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(thread.ID)
	if !ok {
		entry = &memoryThread{}
		s.threads[thread.ID] = entry
	}
	entry.thread = *thread
	entry.expiresAt = s.now().Add(s.ttl)
	return nil
}

// live returns the entry for threadID if it has not expired. Callers hold mu.
func (s *MemoryThreadStore) live(threadID string) (*memoryThread, bool) {
	entry, ok := s.threads[threadID]
	if !ok {
		return nil, false
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.threads, threadID)
		return nil, false
	}
	return entry, true
}

func (s *MemoryThreadStore) GetThread(_ context.Context, threadID string) (*StoredThread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(threadID)
	if !ok {
		return nil, ErrThreadNotFound
	}
	thread := entry.thread
	return &thread, nil
}

func (s *MemoryThreadStore) AppendMessage(_ context.Context, threadID string, msg *dto.ChatMessageResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(threadID)
	if !ok {
		return ErrThreadNotFound
	}
	entry.messages = append(entry.messages, *msg)
	entry.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryThreadStore) ListMessages(_ context.Context, threadID string) ([]dto.ChatMessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(threadID)
	if !ok {
		return nil, ErrThreadNotFound
	}
	return append([]dto.ChatMessageResponse{}, entry.messages...), nil
}

func (s *MemoryThreadStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

// RedisThreadStore keeps each thread as a JSON string plus a message list,
// both expiring together.
type RedisThreadStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisThreadStore connects using a redis:// URL and pings the server.
func NewRedisThreadStore(ctx context.Context, redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisThreadStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis thread store initialized", zap.String("addr", opts.Addr), zap.Duration("ttl", ttl))
	return &RedisThreadStore{client: client, ttl: ttl, logger: logger}, nil
}

func threadKey(threadID string) string {
	return "chat:thread:" + threadID
}

func messagesKey(threadID string) string {
	return "chat:thread:" + threadID + ":messages"
}

func (s *RedisThreadStore) SaveThread(ctx context.Context, thread *StoredThread) error {
	data, err := json.Marshal(thread)
	if err != nil {
		return fmt.Errorf("failed to marshal thread: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, threadKey(thread.ID), data, s.ttl)
		pipe.Expire(ctx, messagesKey(thread.ID), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save thread: %w", err)
	}
	return nil
}

func (s *RedisThreadStore) GetThread(ctx context.Context, threadID string) (*StoredThread, error) {
	data, err := s.client.Get(ctx, threadKey(threadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	var thread StoredThread
	if err := json.Unmarshal(data, &thread); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thread: %w", err)
	}
	return &thread, nil
}

func (s *RedisThreadStore) AppendMessage(ctx context.Context, threadID string, msg *dto.ChatMessageResponse) error {
	exists, err := s.client.Exists(ctx, threadKey(threadID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check thread: %w", err)
	}
	if exists == 0 {
		return ErrThreadNotFound
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, messagesKey(threadID), data)
		pipe.Expire(ctx, messagesKey(threadID), s.ttl)
		pipe.Expire(ctx, threadKey(threadID), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (s *RedisThreadStore) ListMessages(ctx context.Context, threadID string) ([]dto.ChatMessageResponse, error) {
	if _, err := s.GetThread(ctx, threadID); err != nil {
		return nil, err
	}

	items, err := s.client.LRange(ctx, messagesKey(threadID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]dto.ChatMessageResponse, 0, len(items))
	for _, item := range items {
		var msg dto.ChatMessageResponse
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			s.logger.Warn("Skipping unreadable chat message", zap.String("thread_id", threadID), zap.Error(err))
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *RedisThreadStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisThreadStore) Close() error {
	return s.client.Close()
}
