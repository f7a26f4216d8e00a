// internal/workers/seasonal/delete-seasonal-menu/config.go
package deleteseasonalmenu

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
