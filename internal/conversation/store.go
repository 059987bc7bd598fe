package conversation

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Store is the session-keyed context memory. Get returns (nil, nil) for an
// unknown session; callers create contexts lazily.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Context, error)
	// GetEnhanced overlays remembered preferences, entities, topic and goal
	// onto a copy of the stored context. The stored value is not mutated.
	GetEnhanced(ctx context.Context, sessionID string) (*Context, error)
	Put(ctx context.Context, convCtx *Context) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	sessionID string
	convCtx   *Context
	expiresAt time.Time
}

// MemoryStore is a bounded in-process store with LRU eviction and per-entry
// TTL. It replaces the unbounded session map the original design grew out of.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	maxEntries int
	ttl        time.Duration
}

// NewMemoryStore creates a store holding at most maxEntries sessions, each
// expiring ttl after its last write.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[sessionID]
	if !ok {
		return nil, nil
	}
	entry := el.Value.(*memoryEntry)
	if time.Now().After(entry.expiresAt) {
		s.removeLocked(el)
		return nil, nil
	}
	s.order.MoveToFront(el)
	return entry.convCtx, nil
}

func (s *MemoryStore) GetEnhanced(ctx context.Context, sessionID string) (*Context, error) {
	convCtx, err := s.Get(ctx, sessionID)
	if err != nil || convCtx == nil {
		return nil, err
	}
	return enhancedCopy(convCtx), nil
}

func (s *MemoryStore) Put(_ context.Context, convCtx *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := time.Now().Add(s.ttl)
	if el, ok := s.entries[convCtx.SessionID]; ok {
		entry := el.Value.(*memoryEntry)
		entry.convCtx = convCtx
		entry.expiresAt = expiresAt
		s.order.MoveToFront(el)
		return nil
	}

	el := s.order.PushFront(&memoryEntry{
		sessionID: convCtx.SessionID,
		convCtx:   convCtx,
		expiresAt: expiresAt,
	})
	s.entries[convCtx.SessionID] = el

	for s.order.Len() > s.maxEntries {
		s.removeLocked(s.order.Back())
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[sessionID]; ok {
		s.removeLocked(el)
	}
	return nil
}

// Len reports the number of live sessions (expired entries included until
// their next access).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *MemoryStore) removeLocked(el *list.Element) {
	entry := el.Value.(*memoryEntry)
	delete(s.entries, entry.sessionID)
	s.order.Remove(el)
}

// enhancedCopy returns a shallow working copy with the accumulated memory
// fields cloned, so read-side callers cannot mutate stored slices.
func enhancedCopy(src *Context) *Context {
	out := *src
	out.History = append([]HistoryMessage(nil), src.History...)
	out.Entities = RememberedEntities{
		Items:     append([]string(nil), src.Entities.Items...),
		Locations: append([]string(nil), src.Entities.Locations...),
		Dates:     append([]string(nil), src.Entities.Dates...),
		Prices:    append([]float64(nil), src.Entities.Prices...),
	}
	if src.Preferences != nil {
		out.Preferences = make(map[string]any, len(src.Preferences))
		for k, v := range src.Preferences {
			out.Preferences[k] = v
		}
	}
	if src.Topic != nil {
		topic := *src.Topic
		topic.Secondary = append([]string(nil), src.Topic.Secondary...)
		out.Topic = &topic
	}
	if src.Goal != nil {
		goal := *src.Goal
		goal.Details = make(map[string]any, len(src.Goal.Details))
		for k, v := range src.Goal.Details {
			goal.Details[k] = v
		}
		out.Goal = &goal
	}
	return &out
}
