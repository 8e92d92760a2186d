package domain

import (
	"fmt"
	"strconv"
)

// Connection defaults.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 8108
	DefaultProtocol = ProtocolHTTP
)

// Supported protocols.
const (
	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"
)

// Connection describes how to reach a single Typesense node.
// It is resolved once at startup and never modified afterwards.
type Connection struct {
	Host     string
	Port     int
	Protocol string
	APIKey   string
}

// DefaultConnection returns a connection populated with defaults and no API key.
func DefaultConnection() Connection {
	return Connection{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Protocol: DefaultProtocol,
	}
}

// IsValidProtocol reports whether p is a protocol Typesense can be reached over.
func IsValidProtocol(p string) bool {
	return p == ProtocolHTTP || p == ProtocolHTTPS
}

// Validate ensures the connection can be used to build a client.
func (c Connection) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Host == "" {
		return fmt.Errorf("%w: host must not be empty", ErrInvalidConfig)
	}
	if !IsValidProtocol(c.Protocol) {
		return fmt.Errorf("%w: unsupported protocol %q", ErrInvalidConfig, c.Protocol)
	}
	return nil
}

// BaseURL returns the node address as protocol://host:port.
func (c Connection) BaseURL() string {
	return c.Protocol + "://" + c.Host + ":" + strconv.Itoa(c.Port)
}

// String renders the connection for logs with the API key redacted.
func (c Connection) String() string {
	key := ""
	if c.APIKey != "" {
		key = "***"
	}
	return fmt.Sprintf("{host: %s, port: %d, protocol: %s, apiKey: %s}", c.Host, c.Port, c.Protocol, key)
}
