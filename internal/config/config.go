// Package config aggregates the catalog service configuration.
package config

import (
	"strings"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/abgdnv/gocatalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer     config.HTTPConfig           `koanf:"server"`
	Database       config.DatabaseConfig       `koanf:"database"`
	Log            config.LogConfig            `koanf:"log"`
	PProf          config.PProfConfig          `koanf:"pprof"`
	GRPC           config.GrpcServerConfig     `koanf:"grpc"`
	Shutdown       config.ShutdownConfig       `koanf:"shutdown"`
	IdP            config.IdP                  `koanf:"idp"`
	Telemetry      config.TelemetryConfig      `koanf:"telemetry"`
	NATS           config.NATSConfig           `koanf:"nats"`
	CircuitBreaker config.CircuitBreakerConfig `koanf:"circuitbreaker"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.IdP.String())
	b.WriteString(c.NATS.String())
	if c.NATS.Enabled {
		b.WriteString(c.CircuitBreaker.String())
	}
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks every section and returns the first failure.
// The circuit breaker is only checked when event publication is enabled.
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Database,
		&c.Log,
		&c.PProf,
		&c.GRPC,
		&c.Shutdown,
		&c.IdP,
		&c.Telemetry,
		&c.NATS,
	}
	if c.NATS.Enabled {
		validators = append(validators, &c.CircuitBreaker)
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
