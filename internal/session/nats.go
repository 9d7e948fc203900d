package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSConfig configures the NATS JetStream key/value backend.
type NATSConfig struct {
	// URL of the NATS server, e.g. "nats://127.0.0.1:4222".
	URL string
	// Bucket is the KV bucket name. Defaults to constants.DefaultSessionBucket.
	Bucket string
	// TTL expires idle session keys; zero keeps them forever.
	TTL time.Duration
}

// NATSBackend stores sessions in a JetStream KV bucket, letting several host
// processes share one session space.
type NATSBackend struct {
	conn    *nats.Conn
	kv      jetstream.KeyValue
	ownConn bool
}

// NewNATSBackend dials config.URL and binds (or creates) the bucket.
func NewNATSBackend(ctx context.Context, config *NATSConfig) (*NATSBackend, error) {
	if config == nil || config.URL == "" {
		return nil, constants.ErrNATSURLRequired
	}

	conn, err := nats.Connect(config.URL,
		nats.Name(constants.DefaultUserAgent),
		nats.Timeout(constants.ShortHTTPTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	backend, err := NewNATSBackendWithConn(ctx, conn, config.Bucket, config.TTL)
	if err != nil {
		conn.Close()

		return nil, err
	}

	backend.ownConn = true

	return backend, nil
}

// NewNATSBackendWithConn binds a bucket on an existing connection. The
// connection is not closed by Close.
func NewNATSBackendWithConn(ctx context.Context, conn *nats.Conn, bucket string, ttl time.Duration) (*NATSBackend, error) {
	if bucket == "" {
		bucket = constants.DefaultSessionBucket
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	kv, err := js.KeyValue(ctx, bucket)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      bucket,
			Description: "FormSynergy client sessions",
			TTL:         ttl,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("binding session bucket %s: %w", bucket, err)
	}

	return &NATSBackend{
		conn: conn,
		kv:   kv,
	}, nil
}

// Load implements Backend.
func (b *NATSBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := b.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}

	return entry.Value(), true, nil
}

// Save implements Backend.
func (b *NATSBackend) Save(ctx context.Context, key string, value []byte) error {
	_, err := b.kv.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Remove implements Backend.
func (b *NATSBackend) Remove(ctx context.Context, key string) error {
	err := b.kv.Delete(ctx, key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// Close implements Backend.
func (b *NATSBackend) Close() error {
	if b.ownConn {
		b.conn.Close()
	}

	return nil
}
