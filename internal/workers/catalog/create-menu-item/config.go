// internal/workers/catalog/create-menu-item/config.go
package createmenuitem

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
