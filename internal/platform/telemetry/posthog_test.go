package telemetry

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_EmptyKeyDisablesCapture(t *testing.T) {
	client := NewClient("", slog.Default())

	assert.False(t, client.Enabled())

	// All methods must be safe no-ops on a disabled client.
	client.Enqueue("user-1", "api_v1_recurring_:id_record", map[string]any{"method": "POST"})
	client.Close()
}
