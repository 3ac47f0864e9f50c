package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchemaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vehicle_fields.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSchemaFile(t, "color,fuel_type,license_plate\nsome,other,lines\n")

	fields, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "fuel_type", "license_plate"}, fields.Fields())
}

func TestLoad_TrimsSpacesAndDropsEmpties(t *testing.T) {
	path := writeSchemaFile(t, " color , ,fuel_type,\n")

	fields, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "fuel_type"}, fields.Fields())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeSchemaFile(t, "")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_BlankHeader(t *testing.T) {
	path := writeSchemaFile(t, ", ,\nreal,data\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestHas(t *testing.T) {
	path := writeSchemaFile(t, "color,fuel_type\n")

	fields, err := Load(path)
	require.NoError(t, err)
	assert.True(t, fields.Has("color"))
	assert.False(t, fields.Has("unknown"))
}

func TestFields_ReturnsCopy(t *testing.T) {
	path := writeSchemaFile(t, "color,fuel_type\n")

	fields, err := Load(path)
	require.NoError(t, err)

	got := fields.Fields()
	got[0] = "mutated"
	assert.Equal(t, []string{"color", "fuel_type"}, fields.Fields())
}
