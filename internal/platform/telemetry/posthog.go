// Package telemetry wraps the PostHog client so callers never have to care
// whether telemetry is configured. An empty API key yields a disabled client
// whose methods are all no-ops.
package telemetry

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Client wraps posthog.Client and handles the not-configured case.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// NewClient creates a telemetry client. An empty apiKey disables capture.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, telemetry disabled.")
		return &Client{}
	}
	client := &Client{logger: logger}
	client.posthogClient, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	return client
}

// Enabled reports whether events will actually be captured.
func (c *Client) Enabled() bool {
	return c.posthogClient != nil
}

// Enqueue captures one event for the given user. No-op when disabled.
func (c *Client) Enqueue(distinctID string, event string, properties map[string]any) {
	if c.posthogClient == nil {
		return
	}
	if err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && c.logger != nil {
		c.logger.Warn("Failed to enqueue telemetry event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes and shuts down the underlying client.
func (c *Client) Close() {
	if c.posthogClient == nil {
		return
	}
	if err := c.posthogClient.Close(); err != nil && c.logger != nil {
		c.logger.Warn("Failed to close telemetry client", slog.String("error", err.Error()))
	}
}
