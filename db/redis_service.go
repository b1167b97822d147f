package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"roster-app-go/models"
)

const (
	taskListPrefix = "tasks:" // List prefix: tasks:{owner} -> task texts in insertion order
	taskListTTL    = 7 * 24 * time.Hour
	maxTxRetries   = 5
)

// RedisTaskStore keeps task lists in Redis so several server instances share them
type RedisTaskStore struct {
	Client *redis.Client
}

// NewRedisTaskStore creates a new RedisTaskStore
func NewRedisTaskStore(client *redis.Client) *RedisTaskStore {
	return &RedisTaskStore{Client: client}
}

// Helper to generate the task list key
func getTaskListKey(owner string) string {
	return taskListPrefix + owner
}

// List returns the owner's tasks in insertion order
func (s *RedisTaskStore) List(ctx context.Context, owner string) ([]models.Task, error) {
	texts, err := s.Client.LRange(ctx, getTaskListKey(owner), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.Task{}, nil
		}
		log.Printf("Error listing tasks for %s: %v", owner, err)
		return nil, fmt.Errorf("failed to list tasks from Redis: %w", err)
	}
	return toTasks(texts), nil
}

// Add appends a task and refreshes the list expiry
func (s *RedisTaskStore) Add(ctx context.Context, owner, text string) error {
	if err := validateTask(text); err != nil {
		return err
	}
	key := getTaskListKey(owner)
	pipe := s.Client.TxPipeline()
	pipe.RPush(ctx, key, text)
	pipe.Expire(ctx, key, taskListTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error adding task for %s: %v", owner, err)
		return fmt.Errorf("failed to add task to Redis: %w", err)
	}
	return nil
}

// Remove deletes the task at index. The position is checked and removed inside one WATCH transaction.
func (s *RedisTaskStore) Remove(ctx context.Context, owner string, index int) error {
	key := getTaskListKey(owner)
	marker := "__removed__" + uuid.NewString()

	txf := func(tx *redis.Tx) error {
		n, err := tx.LLen(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if index < 0 || int64(index) >= n {
			return ErrTaskNotFound
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LSet(ctx, key, int64(index), marker)
			pipe.LRem(ctx, key, 1, marker)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.Client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue // list changed underneath us
		}
		if err != nil && !errors.Is(err, ErrTaskNotFound) {
			log.Printf("Error removing task %d for %s: %v", index, owner, err)
			return fmt.Errorf("failed to remove task from Redis: %w", err)
		}
		return err
	}
	return fmt.Errorf("failed to remove task from Redis: too much contention on %s", key)
}

// InitializeRedisClient creates and tests a Redis client connection
func InitializeRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}

	log.Printf("Successfully connected to Redis DB %d", db)
	return rdb, nil
}
