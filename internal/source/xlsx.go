package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/galois26/medal-bot/internal/model"
)

type xlsxSource struct {
	path    string
	sheet   string
	columns map[string]string
}

func NewXLSXSource(path, sheet string, columns map[string]string) Source {
	return &xlsxSource{path: path, sheet: sheet, columns: columns}
}

func (s *xlsxSource) Name() string { return "xlsx:" + s.path }

func (s *xlsxSource) Load(ctx context.Context) ([]model.Row, error) {
	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", s.Name(), err)
	}
	defer file.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = file.GetSheetName(file.GetActiveSheetIndex())
	}
	rows, err := file.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: sheet %q: %w", s.Name(), sheet, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("%s: sheet %q is empty", s.Name(), sheet)
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", s.Name(), err)
	}
	cols, err := mapColumns(header, s.columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	c := &collector{cols: cols}
	for line := 2; rows.Next(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", s.Name(), line, err)
		}
		if !c.add(line, record) {
			break
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return c.result(s.Name())
}
