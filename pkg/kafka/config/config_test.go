package kafka_config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"localhost:9092"})
	require.NoError(t, err)

	assert.Equal(t, DefaultProducerMaxAttempts, cfg.ProducerMaxAttempts)
	assert.Equal(t, DefaultProducerCompression, cfg.ProducerCompression)
	assert.Equal(t, DefaultProducerRequireAcks, cfg.ProducerRequireAcks)
	assert.Empty(t, cfg.DLQTopic)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvKafkaProducerCompression, "zstd")
	t.Setenv(EnvKafkaProducerBatchTimeout, "50ms")
	t.Setenv(EnvKafkaDLQTopic, "bookings.dlq")

	cfg, err := Load([]string{"localhost:9092"})
	require.NoError(t, err)

	assert.Equal(t, "zstd", cfg.ProducerCompression)
	assert.Equal(t, 50*time.Millisecond, cfg.ProducerBatchTimeout)
	assert.Equal(t, "bookings.dlq", cfg.DLQTopic)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Brokers:              []string{"localhost:9092"},
			ProducerMaxAttempts:  3,
			ProducerBatchTimeout: time.Millisecond,
			ProducerRequireAcks:  -1,
			ProducerCompression:  "snappy",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"no brokers", func(c *Config) { c.Brokers = nil }, false},
		{"empty broker", func(c *Config) { c.Brokers = []string{""} }, false},
		{"bad compression", func(c *Config) { c.ProducerCompression = "brotli" }, false},
		{"bad acks", func(c *Config) { c.ProducerRequireAcks = 2 }, false},
		{"zero attempts", func(c *Config) { c.ProducerMaxAttempts = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
