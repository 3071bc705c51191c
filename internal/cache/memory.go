package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ignatzorin/cryptofav-backend/internal/goroutine"
)

const defaultCleanupInterval = 5 * time.Minute

// Memory - in-process кэш с TTL. Используется, когда REDIS_URL не задан.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemory создаёт кэш; просроченные записи чистятся в фоне до отмены ctx.
func NewMemory(ctx context.Context, cleanupInterval time.Duration) *Memory {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	m := &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	goroutine.SafeGoWithContext(ctx, "cache-cleanup", func(ctx context.Context) {
		m.cleanupLoop(ctx, cleanupInterval)
	})
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	// Просроченные не удаляем здесь, это делает cleanup
	if !ok || m.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.data, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		data:      append([]byte(nil), value...),
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Len возвращает число записей, включая ещё не вычищенные просроченные.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *Memory) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
}
