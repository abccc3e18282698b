// internal/query/build-detail-view/config.go
package builddetailview

import "placement-directory/internal/models"

type Config struct {
	// TrendMode is models.TrendModeSynthetic or models.TrendModeNone.
	TrendMode string
}

func LoadConfig() *Config {
	return &Config{
		TrendMode: models.TrendModeSynthetic,
	}
}
