package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// PingAddress dials network/address once and closes the connection
func PingAddress(network, address string, timeout time.Duration) error {
	conn, err := net.DialTimeout(network, address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s %s: %w", network, address, err)
	}
	return conn.Close()
}

// PingService checks if a service is reachable at the given URL.
// unix:///path URLs dial the socket at path.
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsedURL.Scheme == "unix" {
		return PingAddress("unix", parsedURL.Path, timeout)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()

	// Default ports if not specified
	if port == "" {
		switch parsedURL.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}

	return PingAddress("tcp", net.JoinHostPort(host, port), timeout)
}
