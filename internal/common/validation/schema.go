package validation

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"placement-directory/internal/models"
)

type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (r *ValidationResult) addError(field, code, msg string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: msg, Code: code})
	r.Valid = false
}

func (r *ValidationResult) addWarning(field, code, msg string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: msg, Code: code})
}

// Messages flattens the errors into "field: message" strings.
func (r *ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return out
}

// CompanyDocumentSchema describes a fixture document: {version, companies[]}.
var CompanyDocumentSchema = map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"required": []interface{}{"companies"},
	"properties": map[string]interface{}{
		"version":     map[string]interface{}{"type": "string"},
		"lastUpdated": map[string]interface{}{"type": "string"},
		"companies": map[string]interface{}{
			"type":  "array",
			"items": companySchema,
		},
	},
}

var stringArray = map[string]interface{}{
	"type":  "array",
	"items": map[string]interface{}{"type": "string"},
}

var companySchema = map[string]interface{}{
	"type": "object",
	"required": []interface{}{
		"id", "name", "industry", "headquarters", "size",
		"averagePackage", "placementRate", "hiringTrend", "activeRoles",
		"minCGPA", "salaryRanges", "interviewProcess",
	},
	"properties": map[string]interface{}{
		"id":                 map[string]interface{}{"type": "string", "minLength": 1},
		"name":               map[string]interface{}{"type": "string", "minLength": 1},
		"industry":           map[string]interface{}{"type": "string", "minLength": 1},
		"headquarters":       map[string]interface{}{"type": "string"},
		"size":               map[string]interface{}{"type": "string"},
		"description":        map[string]interface{}{"type": "string"},
		"logo":               map[string]interface{}{"type": "string"},
		"website":            map[string]interface{}{"type": "string"},
		"founded":            map[string]interface{}{"type": "integer", "minimum": 1600},
		"averagePackage":     map[string]interface{}{"type": "number", "minimum": 0},
		"placementRate":      map[string]interface{}{"type": "number", "minimum": 0, "maximum": 100},
		"hiringTrend":        map[string]interface{}{"type": "string", "enum": []interface{}{"increasing", "decreasing", "stable"}},
		"activeRoles":        stringArray,
		"minCGPA":            map[string]interface{}{"type": "number", "minimum": 0, "maximum": 10},
		"degreeRequirements": stringArray,
		"branchesAccepted":   stringArray,
		"salaryRanges": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"level", "min", "max"},
				"properties": map[string]interface{}{
					"level":    map[string]interface{}{"type": "string"},
					"min":      map[string]interface{}{"type": "number", "minimum": 0},
					"max":      map[string]interface{}{"type": "number", "minimum": 0},
					"location": map[string]interface{}{"type": "string"},
				},
			},
		},
		"interviewProcess": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"roundNumber", "name", "difficulty"},
				"properties": map[string]interface{}{
					"roundNumber": map[string]interface{}{"type": "integer", "minimum": 1},
					"name":        map[string]interface{}{"type": "string"},
					"description": map[string]interface{}{"type": "string"},
					"difficulty":  map[string]interface{}{"type": "string", "enum": []interface{}{"easy", "medium", "hard"}},
					"topics":      stringArray,
				},
			},
		},
		"lastHiringCycle": map[string]interface{}{"type": "string"},
		"seasonalPattern": map[string]interface{}{"type": "string"},
	},
}

// ValidateDocument checks a decoded fixture document (any JSON-compatible Go
// value) against CompanyDocumentSchema.
func ValidateDocument(document interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(CompanyDocumentSchema)
	documentLoader := gojsonschema.NewGoLoader(document)

	res, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	result := &ValidationResult{Valid: true}
	for _, desc := range res.Errors() {
		result.addError(desc.Field(), desc.Type(), desc.Description())
	}
	return result, nil
}

// CheckCompanies runs the record-level rules a schema cannot express.
// Salary ranges with min > max are errors. Duplicate ids and interview rounds
// that do not run 1..n are warnings: the catalog tolerates both.
func CheckCompanies(companies []models.Company) *ValidationResult {
	result := &ValidationResult{Valid: true}
	seen := make(map[string]int, len(companies))

	for i, c := range companies {
		field := fmt.Sprintf("companies.%d", i)

		if first, dup := seen[c.ID]; dup {
			result.addWarning(field+".id", "DUPLICATE_ID",
				fmt.Sprintf("id %q already used by companies.%d; the first record wins", c.ID, first))
		} else {
			seen[c.ID] = i
		}

		for j, r := range c.SalaryRanges {
			if r.Min > r.Max {
				result.addError(fmt.Sprintf("%s.salaryRanges.%d", field, j), "SALARY_RANGE_INVERTED",
					fmt.Sprintf("min %.2f is greater than max %.2f", r.Min, r.Max))
			}
		}

		if !c.HiringTrend.Valid() {
			result.addError(field+".hiringTrend", "INVALID_ENUM",
				fmt.Sprintf("unknown hiring trend %q", c.HiringTrend))
		}

		if c.PlacementRate < 0 || c.PlacementRate > 100 {
			result.addError(field+".placementRate", "OUT_OF_RANGE",
				fmt.Sprintf("placement rate %.2f is outside 0..100", c.PlacementRate))
		}

		if !roundsAreSequential(c.InterviewProcess) {
			result.addWarning(field+".interviewProcess", "ROUNDS_NOT_SEQUENTIAL",
				"interview rounds should be numbered 1..n in ascending order")
		}
	}

	sort.SliceStable(result.Warnings, func(i, j int) bool {
		return result.Warnings[i].Field < result.Warnings[j].Field
	})

	return result
}

func roundsAreSequential(rounds []models.InterviewRound) bool {
	for i, r := range rounds {
		if r.RoundNumber != i+1 {
			return false
		}
	}
	return true
}
