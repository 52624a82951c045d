package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the request body size in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
}

// DefaultBodyLimitMB is used when BodyLimitMB is not positive.
const DefaultBodyLimitMB = 64

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	mb := c.BodyLimitMB
	if mb <= 0 {
		mb = DefaultBodyLimitMB
	}
	return mb << 20
}
