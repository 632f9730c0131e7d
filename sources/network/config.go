package network

import (
	"net/url"
	"relaybot/sources/configuration"
	"strings"
	"time"
)

type ProxyConfig struct {
	Address  string
	User     string
	Password string
	Timeout  time.Duration
}

func NewProxyConfig(config *configuration.Config) *ProxyConfig {
	return &ProxyConfig{
		Address:  proxyAddress(config.Proxy.URL),
		User:     config.Proxy.User,
		Password: config.Proxy.Password,
		Timeout:  time.Duration(config.Proxy.TimeoutSeconds) * time.Second,
	}
}

// Enabled is false when no proxy address is configured and traffic goes out directly.
func (c *ProxyConfig) Enabled() bool {
	return c.Address != ""
}

// proxyAddress accepts both socks5://host:port and a bare host:port.
func proxyAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return parsed.Host
}
