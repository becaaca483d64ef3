package broker

import (
	"context"
	"log"

	"github.com/go-monolith/mono"
)

// Module manages the broker connection lifecycle as a mono module.
type Module struct {
	client *Client
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a broker module around an already constructed client.
// The client itself is built in main so it can be shared with the task
// module before any module starts.
func NewModule(client *Client) *Module {
	return &Module{client: client}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "broker"
}

// Start connects to the broker and ensures the event stream exists.
func (m *Module) Start(ctx context.Context) error {
	if err := m.client.Connect(ctx); err != nil {
		return err
	}
	log.Println("[broker] Module started")
	return nil
}

// Stop drains and closes the broker connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			return err
		}
	}
	log.Println("[broker] Module stopped")
	return nil
}

// Health reports the connection state.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.client == nil || !m.client.IsConnected() {
		return mono.HealthStatus{
			Healthy: false,
			Message: ErrNotConnected.Error(),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"stream": StreamName,
			"url":    m.client.config.URL,
		},
	}
}

// Client returns the shared broker client.
func (m *Module) Client() *Client {
	return m.client
}
