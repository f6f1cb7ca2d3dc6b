package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/okian/tourneystats/pkg/metrics"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeWorkbook(t *testing.T, dir, name string, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	first := true
	for sheet, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
			first = false
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(sheet, cell, &r))
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFileStore_LoadCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rickards.csv", "\ufeff,Event 1,Event 2\n0,Anatomy rank 3/10,\"Fossils, 5/20\"\n1,Optics 87%\n")
	registry := prometheus.NewRegistry()

	store := NewFileStore(
		WithBaseDir(dir),
		WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(registry))),
	)
	table, err := store.Load(context.Background(), Source{Name: "rickards", Path: "rickards.csv"})
	require.NoError(t, err)

	assert.Equal(t, "rickards", table.Name)
	assert.Equal(t, []string{"", "Event 1", "Event 2"}, table.Header)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"Anatomy rank 3/10", "Fossils, 5/20"}, table.EventCells(0))
	assert.Equal(t, []string{"Optics 87%"}, table.EventCells(1), "ragged rows are kept as-is")
	assert.Equal(t, "1", table.Identifier(1))

	families, err := registry.Gather()
	require.NoError(t, err)
	var loaded float64
	for _, mf := range families {
		if mf.GetName() == "tourney_stats_tournaments_loaded_total" {
			loaded = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, loaded)
}

func TestFileStore_LoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "season.xlsx", map[string][][]any{
		"Yuso": {
			{"", "Event 1"},
			{0, "Codebusters 2/30"},
			{1, "score 30/50"},
		},
	})
	store := NewFileStore()

	t.Run("first sheet by default", func(t *testing.T) {
		table, err := store.Load(context.Background(), Source{Name: "yuso", Path: path})
		require.NoError(t, err)
		require.Equal(t, 2, table.Len())
		assert.Equal(t, "0", table.Identifier(0))
		assert.Equal(t, []string{"score 30/50"}, table.EventCells(1))
	})

	t.Run("named sheet", func(t *testing.T) {
		table, err := store.Load(context.Background(), Source{Name: "yuso", Path: path, Sheet: "Yuso"})
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := store.Load(context.Background(), Source{Name: "yuso", Path: path, Sheet: "Birdso"})
		assert.ErrorIs(t, err, ErrSheetNotFound)
	})
}

func TestFileStore_Errors(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(WithBaseDir(dir))
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Load(ctx, Source{Name: "states", Path: "states.csv"})
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "states")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		writeFile(t, dir, "birdso.json", "{}")
		_, err := store.Load(ctx, Source{Name: "birdso", Path: "birdso.json"})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("empty file", func(t *testing.T) {
		writeFile(t, dir, "empty.csv", "")
		_, err := store.Load(ctx, Source{Name: "empty", Path: "empty.csv"})
		assert.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Load(cctx, Source{Name: "states", Path: "states.csv"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("absolute path ignores base dir", func(t *testing.T) {
		abs := writeFile(t, t.TempDir(), "abs.csv", "id,e\n0,Flight 1/4\n")
		assert.Equal(t, abs, store.Resolve(Source{Path: abs}))
		table, err := store.Load(ctx, Source{Name: "abs", Path: abs})
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})
}

func TestFileStore_LoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "id,e\n0,Flight 1/4\n")
	writeFile(t, dir, "b.csv", "id,e\n0,Flight 2/4\n")
	store := NewFileStore(WithBaseDir(dir))

	tables, err := store.LoadAll(context.Background(), []Source{
		{Name: "a", Path: "a.csv"},
		{Name: "b", Path: "b.csv"},
	})
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "a", tables[0].Name)
	assert.Equal(t, "b", tables[1].Name)

	_, err = store.LoadAll(context.Background(), []Source{{Name: "a", Path: "a.csv"}, {Name: "c", Path: "c.csv"}})
	assert.ErrorIs(t, err, ErrNotFound)
}
