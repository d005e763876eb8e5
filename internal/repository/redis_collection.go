package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/backoffice-api/internal/domain"
)

// redisRecord is the JSON value stored per document in the collection hash.
type redisRecord[T any] struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Body      T         `json:"body"`
}

// redisCollection keeps documents in a hash (id -> record) and orders them with
// a sorted set scored by an INCR counter, so list order is exact insertion order.
type redisCollection[T any] struct {
	name     string
	client   *redis.Client
	hashKey  string
	indexKey string
	seqKey   string
}

// NewRedisCollection returns a collection stored under "<prefix>:<name>".
func NewRedisCollection[T any](client *redis.Client, prefix, name string) Collection[T] {
	hashKey := name
	if prefix != "" {
		hashKey = prefix + ":" + name
	}
	return &redisCollection[T]{
		name:     name,
		client:   client,
		hashKey:  hashKey,
		indexKey: hashKey + ":index",
		seqKey:   hashKey + ":seq",
	}
}

// NewRedisCollections builds Redis-backed collections for every resource.
func NewRedisCollections(client *redis.Client, prefix string) Collections {
	return Collections{
		Accounts:  NewRedisCollection[domain.Account](client, prefix, CollectionAccounts),
		Orders:    NewRedisCollection[domain.Order](client, prefix, CollectionOrders),
		Products:  NewRedisCollection[domain.Product](client, prefix, CollectionProducts),
		Employees: NewRedisCollection[domain.Employee](client, prefix, CollectionEmployees),
	}
}

func (r *redisCollection[T]) Name() string { return r.name }

func (r *redisCollection[T]) Insert(ctx context.Context, doc *domain.Document[T]) error {
	ensureID(doc)
	now := utcNow()
	payload, err := json.Marshal(redisRecord[T]{CreatedAt: now, UpdatedAt: now, Body: doc.Body})
	if err != nil {
		return err
	}

	// a sequence value burned by a conflicting insert leaves a harmless gap
	seq, err := r.client.Incr(ctx, r.seqKey).Result()
	if err != nil {
		return err
	}

	var setCmd *redis.BoolCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		setCmd = pipe.HSetNX(ctx, r.hashKey, doc.ID, payload)
		pipe.ZAddNX(ctx, r.indexKey, redis.Z{Score: float64(seq), Member: doc.ID})
		return nil
	})
	if err != nil {
		return err
	}
	if !setCmd.Val() {
		return ErrConflict
	}
	doc.CreatedAt, doc.UpdatedAt = now, now
	return nil
}

func (r *redisCollection[T]) Get(ctx context.Context, id string) (*domain.Document[T], error) {
	raw, err := r.client.HGet(ctx, r.hashKey, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeRedis[T](id, raw)
}

func (r *redisCollection[T]) List(ctx context.Context, page Page) ([]domain.Document[T], error) {
	page = page.Normalize()
	start := int64(page.Offset)
	stop := start + int64(page.Limit) - 1

	ids, err := r.client.ZRange(ctx, r.indexKey, start, stop).Result()
	if err != nil {
		return nil, err
	}
	result := make([]domain.Document[T], 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	values, err := r.client.HMGet(ctx, r.hashKey, ids...).Result()
	if err != nil {
		return nil, err
	}
	for i, val := range values {
		raw, ok := val.(string)
		if !ok {
			// deleted between ZRANGE and HMGET
			continue
		}
		doc, err := decodeRedis[T](ids[i], []byte(raw))
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, nil
}

func (r *redisCollection[T]) Replace(ctx context.Context, doc *domain.Document[T]) error {
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, r.hashKey, doc.ID).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		existing, err := decodeRedis[T](doc.ID, raw)
		if err != nil {
			return err
		}

		record := redisRecord[T]{CreatedAt: existing.CreatedAt, UpdatedAt: utcNow(), Body: doc.Body}
		payload, err := json.Marshal(record)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, r.hashKey, doc.ID, payload)
			return nil
		})
		if err != nil {
			return err
		}
		doc.CreatedAt, doc.UpdatedAt = record.CreatedAt, record.UpdatedAt
		return nil
	}, r.hashKey)
}

func (r *redisCollection[T]) Delete(ctx context.Context, id string) error {
	var delCmd *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		delCmd = pipe.HDel(ctx, r.hashKey, id)
		pipe.ZRem(ctx, r.indexKey, id)
		return nil
	})
	if err != nil {
		return err
	}
	if delCmd.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeRedis[T any](id string, raw []byte) (*domain.Document[T], error) {
	var record redisRecord[T]
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return &domain.Document[T]{
		ID:        id,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		Body:      record.Body,
	}, nil
}
