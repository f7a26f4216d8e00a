// internal/workers/seasonal/assign-seasonal-item/config.go
package assignseasonalitem

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
