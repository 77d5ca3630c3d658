package config

import (
	"fmt"
	"strings"
	"time"
)

// IdP holds the identity provider settings used to verify bearer tokens.
type IdP struct {
	JwksURL     string        `koanf:"jwksurl"`
	Issuer      string        `koanf:"issuer"`
	ClientID    string        `koanf:"clientid"`
	MinInterval time.Duration `koanf:"mininterval"`
	AdminRole   string        `koanf:"adminrole"`
	ClockSkew   time.Duration `koanf:"clockskew"`
}

const (
	defaultAdminRole = "ADMIN"
	maxClockSkew     = 5 * time.Minute
)

// String returns a string representation of the IdP configuration.
func (c *IdP) String() string {
	var b strings.Builder
	b.WriteString("\n--- IdP ---\n")
	b.WriteString(fmt.Sprintf("  jwksurl: %s\n", c.JwksURL))
	b.WriteString(fmt.Sprintf("  issuer: %s\n", c.Issuer))
	b.WriteString(fmt.Sprintf("  clientid: %s\n", c.ClientID))
	b.WriteString(fmt.Sprintf("  mininterval: %s\n", c.MinInterval))
	b.WriteString(fmt.Sprintf("  adminrole: %s\n", c.AdminRole))
	b.WriteString(fmt.Sprintf("  clockskew: %s\n", c.ClockSkew))
	return b.String()
}

func (c *IdP) Validate() error {
	if c.JwksURL == "" {
		return fmt.Errorf("IdP JWKS URL cannot be empty")
	}
	if c.Issuer == "" {
		return fmt.Errorf("IdP issuer cannot be empty")
	}
	if c.ClientID == "" {
		return fmt.Errorf("IdP client ID cannot be empty")
	}
	if c.MinInterval <= 0 {
		return fmt.Errorf("IdP minimum interval must be greater than zero")
	}
	if c.ClockSkew < 0 || c.ClockSkew > maxClockSkew {
		return fmt.Errorf("IdP clock skew must be between 0 and %s", maxClockSkew)
	}
	if c.AdminRole == "" {
		c.AdminRole = defaultAdminRole
	}
	return nil
}
