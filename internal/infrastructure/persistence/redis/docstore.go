// Package redis implements the document-side persistence for the
// insights worker: per-student base metrics documents and the profile
// insights collection. Documents are Redis hashes with one JSON-encoded
// value per top-level field, which gives natural upsert-with-merge
// semantics: a write only touches the fields it carries.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		Password:     "",
		DB:           0,
		PoolSize:     4,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrDocNotFound is returned when the requested document does not exist.
	ErrDocNotFound = errors.New("docstore: document not found")

	// ErrDocKeyEmpty is returned when an empty document key is provided.
	ErrDocKeyEmpty = errors.New("docstore: key cannot be empty")

	// ErrDocSerialization is returned when field encoding/decoding fails.
	ErrDocSerialization = errors.New("docstore: serialization failed")
)

// ══════════════════════════════════════════════════════════════════════════════
// KEY PREFIXES
// ══════════════════════════════════════════════════════════════════════════════

// Key prefixes for namespacing document collections.
const (
	// PrefixStudentMetrics is the prefix for base metrics documents.
	PrefixStudentMetrics = "student_metrics:"

	// PrefixStudentInsights is the prefix for profile insight documents.
	PrefixStudentInsights = "student_insights:"
)

// MetricsKey returns the document key for a student's base metrics.
func MetricsKey(userID string) string {
	return PrefixStudentMetrics + userID
}

// InsightsKey returns the document key for a student's profile insights.
func InsightsKey(userID string) string {
	return PrefixStudentInsights + userID
}

// ══════════════════════════════════════════════════════════════════════════════
// DOCUMENT STORE
// ══════════════════════════════════════════════════════════════════════════════

// DocStore is a hash-backed document store. Each document is one hash;
// each top-level document field is one hash field holding JSON.
type DocStore struct {
	client *redis.Client
}

// NewDocStore creates a DocStore from explicit configuration.
func NewDocStore(cfg Config) (*DocStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return &DocStore{client: client}, nil
}

// NewDocStoreFromURL creates a DocStore from a redis:// URL.
func NewDocStoreFromURL(redisURL string) (*DocStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("docstore: failed to parse redis URL: %w", err)
	}
	return &DocStore{client: redis.NewClient(opts)}, nil
}

// GetDocument returns all fields of a document as raw JSON values.
// A document with no fields does not exist: ErrDocNotFound.
func (s *DocStore) GetDocument(ctx context.Context, key string) (map[string]json.RawMessage, error) {
	if key == "" {
		return nil, ErrDocKeyEmpty
	}

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("docstore: failed to read document %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDocNotFound, key)
	}

	doc := make(map[string]json.RawMessage, len(fields))
	for field, raw := range fields {
		doc[field] = json.RawMessage(raw)
	}
	return doc, nil
}

// GetField unmarshals one document field into out. Missing field or
// missing document both report ErrDocNotFound.
func (s *DocStore) GetField(ctx context.Context, key, field string, out any) error {
	if key == "" {
		return ErrDocKeyEmpty
	}

	raw, err := s.client.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return fmt.Errorf("%w: %s.%s", ErrDocNotFound, key, field)
	}
	if err != nil {
		return fmt.Errorf("docstore: failed to read field %s.%s: %w", key, field, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: field %s.%s: %v", ErrDocSerialization, key, field, err)
	}
	return nil
}

// MergeDocument writes the given fields into a document, creating it
// if absent. Fields not present in the write are left untouched.
func (s *DocStore) MergeDocument(ctx context.Context, key string, fields map[string]any) error {
	if key == "" {
		return ErrDocKeyEmpty
	}
	if len(fields) == 0 {
		return nil
	}

	encoded := make(map[string]string, len(fields))
	for field, value := range fields {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("%w: field %s.%s: %v", ErrDocSerialization, key, field, err)
		}
		encoded[field] = string(raw)
	}

	if err := s.client.HSet(ctx, key, encoded).Err(); err != nil {
		return fmt.Errorf("docstore: failed to merge document %s: %w", key, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *DocStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *DocStore) Close() error {
	return s.client.Close()
}
