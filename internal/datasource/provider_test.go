package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-directory/internal/models"
)

func TestStatic_ListAll(t *testing.T) {
	companies := []models.Company{{ID: "a", Name: "Acme"}, {ID: "b", Name: "Zenith"}}
	p := NewStatic("static", companies)

	got, err := p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, companies, got)
	assert.Equal(t, "static", p.Name())

	got[0].Name = "changed"
	again, err := p.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme", again[0].Name)
}

func TestStatic_ListAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStatic("static", nil).ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
