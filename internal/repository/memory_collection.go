package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/backoffice-api/internal/domain"
)

type memoryRecord struct {
	body      []byte
	createdAt time.Time
	updatedAt time.Time
	seq       uint64
}

type memoryCollection[T any] struct {
	name    string
	mu      sync.RWMutex
	records map[string]*memoryRecord
	seq     uint64
}

// NewMemoryCollection returns a process-local collection. Bodies are stored
// JSON-encoded so callers never share memory with stored documents.
func NewMemoryCollection[T any](name string) Collection[T] {
	return &memoryCollection[T]{name: name, records: make(map[string]*memoryRecord)}
}

// NewMemoryCollections builds in-memory collections for every resource.
func NewMemoryCollections() Collections {
	return Collections{
		Accounts:  NewMemoryCollection[domain.Account](CollectionAccounts),
		Orders:    NewMemoryCollection[domain.Order](CollectionOrders),
		Products:  NewMemoryCollection[domain.Product](CollectionProducts),
		Employees: NewMemoryCollection[domain.Employee](CollectionEmployees),
	}
}

func (c *memoryCollection[T]) Name() string { return c.name }

func (c *memoryCollection[T]) Insert(_ context.Context, doc *domain.Document[T]) error {
	ensureID(doc)
	body, err := json.Marshal(doc.Body)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.records[doc.ID]; exists {
		return ErrConflict
	}
	now := utcNow()
	c.seq++
	c.records[strings.Clone(doc.ID)] = &memoryRecord{body: body, createdAt: now, updatedAt: now, seq: c.seq}
	doc.CreatedAt, doc.UpdatedAt = now, now
	return nil
}

func (c *memoryCollection[T]) Get(_ context.Context, id string) (*domain.Document[T], error) {
	c.mu.RLock()
	rec, ok := c.records[id]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeMemory[T](id, rec)
}

func (c *memoryCollection[T]) List(_ context.Context, page Page) ([]domain.Document[T], error) {
	page = page.Normalize()

	c.mu.RLock()
	ids := make([]string, 0, len(c.records))
	for id := range c.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return c.records[ids[i]].seq < c.records[ids[j]].seq
	})
	if page.Offset >= len(ids) {
		c.mu.RUnlock()
		return []domain.Document[T]{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(ids) {
		end = len(ids)
	}
	selected := make([]*memoryRecord, 0, end-page.Offset)
	for _, id := range ids[page.Offset:end] {
		selected = append(selected, c.records[id])
	}
	selectedIDs := ids[page.Offset:end]
	c.mu.RUnlock()

	result := make([]domain.Document[T], 0, len(selected))
	for i, rec := range selected {
		doc, err := decodeMemory[T](selectedIDs[i], rec)
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, nil
}

func (c *memoryCollection[T]) Replace(_ context.Context, doc *domain.Document[T]) error {
	body, err := json.Marshal(doc.Body)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[doc.ID]
	if !ok {
		return ErrNotFound
	}
	updated := *rec
	updated.body = body
	updated.updatedAt = utcNow()
	// assigning to an existing key also replaces the stored key string
	c.records[strings.Clone(doc.ID)] = &updated
	doc.CreatedAt, doc.UpdatedAt = updated.createdAt, updated.updatedAt
	return nil
}

func (c *memoryCollection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.records[id]; !ok {
		return ErrNotFound
	}
	delete(c.records, id)
	return nil
}

func decodeMemory[T any](id string, rec *memoryRecord) (*domain.Document[T], error) {
	doc := &domain.Document[T]{ID: id, CreatedAt: rec.createdAt, UpdatedAt: rec.updatedAt}
	if err := json.Unmarshal(rec.body, &doc.Body); err != nil {
		return nil, err
	}
	return doc, nil
}
