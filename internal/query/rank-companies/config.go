// internal/query/rank-companies/config.go
package rankcompanies

import "placement-directory/internal/models"

type Config struct {
	DefaultSort models.SortOption
}

func LoadConfig() *Config {
	return &Config{
		DefaultSort: models.SortNone,
	}
}
