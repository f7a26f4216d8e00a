// internal/workers/seasonal/create-seasonal-menu/config.go
package createseasonalmenu

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
