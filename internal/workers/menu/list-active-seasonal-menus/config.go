// internal/workers/menu/list-active-seasonal-menus/config.go
package listactiveseasonalmenus

import "time"

type Config struct {
	Timeout  time.Duration
	Location *time.Location
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		Location: time.UTC,
	}
}
