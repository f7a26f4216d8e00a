// internal/workers/catalog/delete-menu-item/config.go
package deletemenuitem

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
