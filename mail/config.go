package mail

import (
	"time"

	"github.com/kbukum/tablekit/validation"
)

// DefaultBaseURL is the Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

const defaultTimeout = 15 * time.Second

// Config configures a Client.
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" json:"base_url" validate:"omitempty,url"`

	// APIKey is sent as a bearer token. A request may override it.
	APIKey string `yaml:"api_key" mapstructure:"api_key" json:"api_key"`

	// From is the sender used when SendParams leave it empty.
	From string `yaml:"from" mapstructure:"from" json:"from" validate:"omitempty,email"`

	// Timeout bounds a single attempt. Defaults to 15s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout" validate:"gte=0"`

	// DisableRetry sends every request once.
	DisableRetry bool `yaml:"disable_retry" mapstructure:"disable_retry" json:"disable_retry"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
