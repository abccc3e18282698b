// pkg/fixture/document.go
package fixture

import "placement-directory/internal/models"

// Document is the on-disk shape of a company fixture.
type Document struct {
	Version     string           `json:"version" yaml:"version"`
	LastUpdated string           `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	Companies   []models.Company `json:"companies" yaml:"companies"`
}

// Format of a fixture file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)
