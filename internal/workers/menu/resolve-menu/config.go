// internal/workers/menu/resolve-menu/config.go
package resolvemenu

import "time"

type Config struct {
	Timeout time.Duration
	// Location is the zone "now" is converted into before window matching.
	Location *time.Location
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		Location: time.UTC,
	}
}
