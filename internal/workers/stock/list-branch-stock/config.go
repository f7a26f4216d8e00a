// internal/workers/stock/list-branch-stock/config.go
package listbranchstock

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
