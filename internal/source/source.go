// Package source loads medal rows from tabular files.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/model"
)

// Source loads the full dataset. Returned rows are owned by the caller and
// treated as immutable.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.Row, error)
}

func NewFromConfig(c config.DatasetConfig) (Source, error) {
	if strings.TrimSpace(c.Path) == "" {
		return nil, fmt.Errorf("dataset path is empty")
	}
	format := c.Format
	if format == "" {
		format = formatFromPath(c.Path)
	}
	switch format {
	case config.FormatCSV:
		return NewCSVSource(c.Path, c.Columns), nil
	case config.FormatXLSX:
		return NewXLSXSource(c.Path, c.Sheet, c.Columns), nil
	case config.FormatSQLite:
		return NewSQLiteSource(c.Path, c.Table, c.Columns)
	default:
		return nil, fmt.Errorf("unknown dataset format for %s", c.Path)
	}
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return config.FormatCSV
	case ".xlsx", ".xlsm":
		return config.FormatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return config.FormatSQLite
	default:
		return ""
	}
}
