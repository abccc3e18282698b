// internal/query/filter-companies/config.go
package filtercompanies

import "time"

type Config struct {
	Timeout time.Duration
	// MemoizeSize bounds the result memo. Zero disables memoization.
	MemoizeSize int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		MemoizeSize: 256,
	}
}
