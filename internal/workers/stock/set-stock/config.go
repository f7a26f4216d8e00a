// internal/workers/stock/set-stock/config.go
package setstock

import "time"

type Config struct {
	Timeout time.Duration
	// VerifyItem rejects stock writes for items missing from the catalog.
	VerifyItem bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		VerifyItem: true,
	}
}
