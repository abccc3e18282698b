// pkg/fixture/fixture.go
package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "placement-directory/internal/common/errors"
	"placement-directory/internal/common/validation"
	"placement-directory/internal/models"
)

var ErrUnknownFormat = errors.New("unknown fixture format")

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads and validates the fixture at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Parse decodes data and rejects documents with validation errors.
// Warnings do not fail the parse.
func Parse(data []byte, format Format) (*Document, error) {
	doc, result, err := Inspect(data, format)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, apperrors.NewFixtureValidationFailedError(strings.Join(result.Messages(), "; "))
	}
	return doc, nil
}

// Inspect decodes data and returns the document together with the full
// validation report. doc is nil when the schema check fails.
func Inspect(data []byte, format Format) (*Document, *validation.ValidationResult, error) {
	var raw interface{}
	if err := unmarshal(data, format, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode %s fixture: %w", format, err)
	}

	result, err := validation.ValidateDocument(raw)
	if err != nil {
		return nil, nil, err
	}
	if !result.Valid {
		return nil, result, nil
	}

	var doc Document
	if err := unmarshal(data, format, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode %s fixture: %w", format, err)
	}

	normalize(&doc)

	checks := validation.CheckCompanies(doc.Companies)
	result.Errors = append(result.Errors, checks.Errors...)
	result.Warnings = append(result.Warnings, checks.Warnings...)
	result.Valid = result.Valid && checks.Valid

	return &doc, result, nil
}

// Encode writes doc in the requested format. Absent lists are written as
// empty lists so the output always passes Parse.
func Encode(doc *Document, format Format) ([]byte, error) {
	out := *doc
	out.Companies = make([]models.Company, len(doc.Companies))
	copy(out.Companies, doc.Companies)
	normalize(&out)
	doc = &out

	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// normalize replaces nil slices with empty ones. The schema types every list
// field as an array, and null is not one.
func normalize(doc *Document) {
	if doc.Companies == nil {
		doc.Companies = []models.Company{}
	}
	for i := range doc.Companies {
		c := &doc.Companies[i]
		c.ActiveRoles = nonNil(c.ActiveRoles)
		c.DegreeRequirements = nonNil(c.DegreeRequirements)
		c.BranchesAccepted = nonNil(c.BranchesAccepted)
		if c.SalaryRanges == nil {
			c.SalaryRanges = []models.SalaryRange{}
		}
		if c.InterviewProcess == nil {
			c.InterviewProcess = []models.InterviewRound{}
		} else {
			rounds := make([]models.InterviewRound, len(c.InterviewProcess))
			copy(rounds, c.InterviewProcess)
			for j := range rounds {
				rounds[j].Topics = nonNil(rounds[j].Topics)
			}
			c.InterviewProcess = rounds
		}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func unmarshal(data []byte, format Format, out interface{}) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, out)
	case FormatYAML:
		return yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
