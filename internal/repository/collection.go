package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/backoffice-api/internal/domain"
)

var (
	// ErrNotFound is returned when a document id does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned when inserting an id that already exists.
	ErrConflict = errors.New("document already exists")
)

// Collection names.
const (
	CollectionAccounts  = "accounts"
	CollectionOrders    = "orders"
	CollectionProducts  = "products"
	CollectionEmployees = "employees"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page bounds a List call.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to supported bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Collection persists documents of one type, ordered by creation time.
type Collection[T any] interface {
	// Insert stores doc, assigning an id when empty and filling timestamps.
	Insert(ctx context.Context, doc *domain.Document[T]) error
	Get(ctx context.Context, id string) (*domain.Document[T], error)
	List(ctx context.Context, page Page) ([]domain.Document[T], error)
	// Replace overwrites the body of an existing document and refreshes UpdatedAt.
	Replace(ctx context.Context, doc *domain.Document[T]) error
	Delete(ctx context.Context, id string) error
	Name() string
}

// Collections bundles every collection the service uses.
type Collections struct {
	Accounts  Collection[domain.Account]
	Orders    Collection[domain.Order]
	Products  Collection[domain.Product]
	Employees Collection[domain.Employee]
}

func ensureID[T any](doc *domain.Document[T]) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
