package domain

// Settings holds values read from an optional settings file.
// Zero values mean "not set". There is no API key field.
type Settings struct {
	Host     string
	Port     int
	Protocol string
	LogFile  string
	LogLevel string
}

// ApplyTo overlays the set values onto c. An unsupported protocol is ignored.
func (s Settings) ApplyTo(c Connection) Connection {
	if s.Host != "" {
		c.Host = s.Host
	}
	if s.Port != 0 {
		c.Port = s.Port
	}
	if IsValidProtocol(s.Protocol) {
		c.Protocol = s.Protocol
	}
	return c
}
