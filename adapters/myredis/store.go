package myredis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/interfaces"
	"github.com/modulesio/prsnt/service"
)

const setOnlineAttempts = 5

// redisStore implements interfaces.RegistryStore. Redis owns expiry: every Put sets the key
// with PX expiry, SetOnline rewrites the value with KEEPTTL so the write stays the anchor.
type redisStore struct {
	client redis.UniversalClient
	prefix string
	expiry time.Duration
}

// NewStore creates redis implementation of the registry store. Panics on nil client,
// empty prefix or non-positive expiry.
func NewStore(client redis.UniversalClient, prefix string, expiry time.Duration) interfaces.RegistryStore {
	if expiry <= 0 {
		panic("myredis.store.go: expiry must be positive")
	}
	return &redisStore{
		client: helpers.NilPanic(client, "myredis.store.go: client is required"),
		prefix: helpers.StrPanic(prefix, "myredis.store.go: prefix is required"),
		expiry: expiry,
	}
}

func (r *redisStore) Put(ctx context.Context, url string, record domain.ServerRecord) error {
	bytes, err := json.Marshal(record)
	if err != nil {
		return service.NewInternalServerError("Redis marshal record error", fmt.Errorf("can't marshal record (url='%s'), err: %w", url, err))
	}

	err = r.client.Set(ctx, r.generateKey(url), bytes, r.expiry).Err()
	if err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write record to redis (url='%s'), err: %w", url, err))
	}

	return nil
}

func (r *redisStore) Get(ctx context.Context, url string) (domain.ServerRecord, error) {
	bytes, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ServerRecord{}, service.NewEntityNotFoundError("server not found", nil)
	}
	if err != nil {
		return domain.ServerRecord{}, service.NewInternalServerError("Redis read key error", fmt.Errorf("can't read record from redis (url='%s'), err: %w", url, err))
	}

	var record domain.ServerRecord
	if err := json.Unmarshal(bytes, &record); err != nil {
		return domain.ServerRecord{}, service.NewInternalServerError("Redis unmarshal record error", fmt.Errorf("can't unmarshal record (url='%s'), err: %w", url, err))
	}
	return record, nil
}

// List scans all keys under the store prefix then fetches their values.
// Keys that expire between the scan and the fetch, and values that can't be decoded, are skipped.
func (r *redisStore) List(ctx context.Context) ([]domain.ServerRecord, error) {
	var fullKeys []string
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		fullKeys = append(fullKeys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, service.NewInternalServerError("Redis scan keys error", fmt.Errorf("redis scan keys error, err: %w", err))
	}

	records := make([]domain.ServerRecord, 0, len(fullKeys))
	if len(fullKeys) == 0 {
		return records, nil
	}

	values, err := r.client.MGet(ctx, fullKeys...).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis get values error", fmt.Errorf("redis mget error, err: %w", err))
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var record domain.ServerRecord
		if err := json.Unmarshal([]byte(s), &record); err != nil {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *redisStore) SetOnline(ctx context.Context, url string, online bool) error {
	key := r.generateKey(url)
	update := func(tx *redis.Tx) error {
		bytes, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		var record domain.ServerRecord
		if err := json.Unmarshal(bytes, &record); err != nil {
			return err
		}
		record.Online = online
		if bytes, err = json.Marshal(record); err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, key, bytes, redis.SetArgs{Mode: "XX", KeepTTL: true})
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < setOnlineAttempts; i++ {
		err = r.client.Watch(ctx, update, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return service.NewEntityNotFoundError("server not found", nil)
	default:
		return service.NewInternalServerError("Redis update key error", fmt.Errorf("can't update record in redis (url='%s'), err: %w", url, err))
	}
}

func (r *redisStore) generateKey(url string) string {
	return r.prefix + ":" + url
}
