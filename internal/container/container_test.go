package container

import (
	"context"
	"path/filepath"
	"testing"

	"liftdash/internal/config"
	"liftdash/internal/errors"
	"liftdash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileConfig(path string) *config.Config {
	return &config.Config{Data: config.DataConfig{File: path}}
}

func TestInitWithCSVFile(t *testing.T) {
	raw, err := testkit.Generate(testkit.DefaultGeneratorConfig())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data_final_bersih.csv")
	require.NoError(t, testkit.WriteCSV(path, raw))

	c, err := New(fileConfig(path), nil)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))
	defer c.Close()

	assert.Nil(t, c.DB)
	assert.Equal(t, path, c.Tables.Source())

	table, err := c.Tables.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(raw.Rows), table.Len())
	assert.Len(t, table.NumericColumns(), testkit.DefaultGeneratorConfig().NumericColumns)
}

func TestInitWithXLSXFile(t *testing.T) {
	raw, err := testkit.Generate(testkit.GeneratorConfig{Rows: 12, Seed: 7, NumericColumns: 2})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, testkit.WriteXLSX(path, raw))

	c, err := New(fileConfig(path), nil)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))

	table, err := c.Tables.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, table.Len())
}

func TestMissingFileIsReportedOnLoad(t *testing.T) {
	c, err := New(fileConfig(filepath.Join(t.TempDir(), "absent.csv")), nil)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()), "a missing file is not a startup error")

	c.Warm(context.Background())
	_, err = c.Tables.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}
