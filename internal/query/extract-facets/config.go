// internal/query/extract-facets/config.go
package extractfacets

import "time"

type Config struct {
	Timeout time.Duration
	// Parallelism above 1 splits catalogs of at least ParallelThreshold
	// companies across that many goroutines.
	Parallelism       int
	ParallelThreshold int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           5 * time.Second,
		Parallelism:       1,
		ParallelThreshold: 2048,
	}
}
