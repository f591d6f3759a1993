package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 24, cfg.Ticket.ValidityHours)
	assert.Equal(t, "GPay", cfg.Ticket.PaymentProvider)
	assert.Equal(t, 10, cfg.Ticket.MaxPassengers)
	assert.Equal(t, "demo123", cfg.Auth.DemoUserID)
	assert.Equal(t, "password123", cfg.Auth.DemoPassword)
	assert.Equal(t, 10, cfg.Map.StartPosition)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
}

func TestParse_Values(t *testing.T) {
	raw := `
http:
  address: ":9090"
  allowed_origins: ["http://localhost:5173"]
redis:
  addr: "localhost:6379"
kafka:
  brokers: ["localhost:9092"]
  ticket_events_topic: "ticket-events"
ticket:
  validity_hours: 12
  qr_prefix: "LKO"
map:
  start_position: 0
`
	cfg, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "ticket-events", cfg.Kafka.TicketEventsTopic)
	assert.Equal(t, 12, cfg.Ticket.ValidityHours)
	assert.Equal(t, "LKO", cfg.Ticket.QRPrefix)
	assert.Equal(t, 0, cfg.Map.StartPosition)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("http: [unclosed"))
	assert.Error(t, err)
}

func TestLoadConfig_SecretFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  secret: from-file\n"), 0o600))

	t.Setenv("AUTH_SECRET", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
