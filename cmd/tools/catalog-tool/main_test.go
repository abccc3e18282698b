package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-directory/internal/models"
	"placement-directory/internal/presentation"
)

const bundledFixture = "../../../configs/companies.json"

func run(t *testing.T, cmdArgs ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(cmdArgs)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", bundledFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: ")
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"companies": [{"id": "x"}]}`), 0o600))

	out, err := run(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "ERROR")
}

func TestConvertCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "companies.yaml")

	out, err := run(t, "convert", bundledFixture, target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")

	out, err = run(t, "validate", target)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: ")
}

func TestPrintListing(t *testing.T) {
	view := presentation.Listing(models.Facets{}, presentation.InitialState(), []models.Company{
		{ID: "a", Name: "Acme", Industry: "Tech", Headquarters: "Pune, Maharashtra", AveragePackage: 12, PlacementRate: 90, HiringTrend: models.HiringTrendIncreasing},
	}, 3)

	var buf bytes.Buffer
	require.NoError(t, printListing(&buf, view))
	assert.Contains(t, buf.String(), "Showing 1 of 3 companies")
	assert.Contains(t, buf.String(), "Increasing Hiring")

	buf.Reset()
	require.NoError(t, printListing(&buf, presentation.Listing(models.Facets{}, presentation.InitialState(), nil, 3)))
	assert.Contains(t, buf.String(), presentation.EmptyTitle)
}
