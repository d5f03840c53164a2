package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSnapshotNotFound = errors.New("model snapshot not found")

// ModelStore persists trained model snapshots.
type ModelStore interface {
	Load(ctx context.Context) (*Model, error)
	Save(ctx context.Context, m *Model) error
}

// decodeSnapshot parses and validates a stored snapshot.
func decodeSnapshot(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model snapshot: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// FileModelStore keeps the snapshot as a JSON file.
type FileModelStore struct {
	path string
}

func NewFileModelStore(path string) *FileModelStore {
	return &FileModelStore{path: path}
}

func (s *FileModelStore) Load(ctx context.Context) (*Model, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read model snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

// Save writes to a temp file first so readers never see a partial snapshot.
func (s *FileModelStore) Save(ctx context.Context, m *Model) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model snapshot: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace model snapshot: %w", err)
	}
	return nil
}

// RedisModelStore keeps the snapshot as a JSON string under one key.
type RedisModelStore struct {
	client *redis.Client
	key    string
}

// NewRedisModelStore connects to Redis and verifies the connection.
func NewRedisModelStore(addr, password, key string) (*RedisModelStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisModelStoreWithClient(rdb, key), nil
}

func NewRedisModelStoreWithClient(client *redis.Client, key string) *RedisModelStore {
	return &RedisModelStore{client: client, key: key}
}

func (s *RedisModelStore) Load(ctx context.Context) (*Model, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read model snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

func (s *RedisModelStore) Save(ctx context.Context, m *Model) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write model snapshot: %w", err)
	}
	return nil
}

func (s *RedisModelStore) Close() error {
	return s.client.Close()
}
