package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if !cfg.BalanceTolerance.Equal(decimal.RequireFromString(defaultBalanceTolerance)) {
		t.Fatalf("expected default tolerance %s, got %s", defaultBalanceTolerance, cfg.BalanceTolerance)
	}
	if cfg.Address() != ":"+defaultPort {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
}

func TestLoadBalanceTolerance(t *testing.T) {
	t.Setenv(balanceToleranceEnvVar, "0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.BalanceTolerance.IsZero() {
		t.Fatalf("expected zero tolerance, got %s", cfg.BalanceTolerance)
	}

	t.Setenv(balanceToleranceEnvVar, "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid tolerance")
	}

	t.Setenv(balanceToleranceEnvVar, "-0.01")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative tolerance")
	}
}

func TestLoadKafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "broker-1:9092" || cfg.KafkaBrokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
}
