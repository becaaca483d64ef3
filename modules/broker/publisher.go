// Package broker provides the NATS JetStream publisher for task lifecycle
// events.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/task-events-backend/events"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the name of the JetStream stream for task events.
	StreamName = "TASK_EVENTS"
	// streamSubjects captures every keyed subject under the topic.
	streamSubjects = events.Topic + ".>"
)

// ErrNotConnected is returned when a publish is attempted before Connect.
var ErrNotConnected = errors.New("broker not connected")

// Config holds broker client configuration.
type Config struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConfig returns the default broker configuration.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		MaxReconnects: 10,
		ReconnectWait: time.Second,
	}
}

// Client is a long-lived publisher over a single NATS connection. It is
// created once at process start and shared by every request.
type Client struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config Config
}

// NewClient creates a new broker client. Connect must be called before
// publishing.
func NewClient(cfg Config) *Client {
	return &Client{config: cfg}
}

// Connect establishes the NATS connection and ensures the task-events stream
// exists.
func (c *Client) Connect(ctx context.Context) error {
	nc, err := nats.Connect(c.config.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(c.config.MaxReconnects),
		nats.ReconnectWait(c.config.ReconnectWait),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	c.nc = nc

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}
	c.js = js

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Description: "Task lifecycle events",
		Subjects:    []string{streamSubjects},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Duplicates:  2 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	log.Printf("[broker] Connected to NATS at %s, stream %s ready", c.config.URL, StreamName)
	return nil
}

// Publish delivers one event envelope under the given partition key. Events
// published with the same key share a subject, so JetStream preserves their
// order. Each message carries a unique Nats-Msg-Id so redeliveries can be
// deduplicated downstream.
func (c *Client) Publish(ctx context.Context, key string, env events.Envelope) error {
	if c.js == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = c.js.Publish(ctx, Subject(key), data, jetstream.WithMsgID(uuid.NewString()))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Subject returns the NATS subject for a partition key.
func Subject(key string) string {
	return events.Topic + "." + key
}

// IsConnected reports whether the underlying connection is up.
func (c *Client) IsConnected() bool {
	return c.nc != nil && c.nc.IsConnected()
}

// Close drains and closes the connection.
func (c *Client) Close() error {
	if c.nc == nil {
		return nil
	}
	return c.nc.Drain()
}
