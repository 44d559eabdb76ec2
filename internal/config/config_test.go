package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.InDelta(t, 30, cfg.ShippingRatePerKg, 1e-9)
	assert.Equal(t, "Customer", cfg.CustomerName)
	assert.InDelta(t, 5000, cfg.CustomerBalance, 1e-9)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "shipment-notifications", cfg.ShipmentTopic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SHIPPING_RATE_PER_KG", "12.5")
	t.Setenv("CUSTOMER_BALANCE", "250")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.InDelta(t, 12.5, cfg.ShippingRatePerKg, 1e-9)
	assert.InDelta(t, 250, cfg.CustomerBalance, 1e-9)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SHIPPING_RATE_PER_KG", "not-a-number")
	t.Setenv("POSTGRES_PORT", "also-not")

	cfg := Load()

	assert.InDelta(t, 30, cfg.ShippingRatePerKg, 1e-9)
	assert.Equal(t, 5432, cfg.PostgresPort)
}
