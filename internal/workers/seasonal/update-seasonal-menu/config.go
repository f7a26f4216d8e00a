// internal/workers/seasonal/update-seasonal-menu/config.go
package updateseasonalmenu

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
