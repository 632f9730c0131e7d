package network

import (
	"relaybot/sources/tracing"

	"golang.org/x/net/proxy"
)

func NewProxyDialer(config *ProxyConfig, log *tracing.Logger) (proxy.Dialer, error) {
	if !config.Enabled() {
		log.I("No proxy configured, dialing directly")
		return proxy.Direct, nil
	}

	var auth *proxy.Auth
	if config.User != "" {
		auth = &proxy.Auth{User: config.User, Password: config.Password}
	}

	dialer, err := proxy.SOCKS5("tcp", config.Address, auth, proxy.Direct)
	if err != nil {
		log.E("Failed to create proxy dialer", tracing.ProxyUrl, config.Address, tracing.InnerError, err)
		return nil, err
	}

	log.I("Dialing through socks5 proxy", tracing.ProxyUrl, config.Address)
	return dialer, nil
}
